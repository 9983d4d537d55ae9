package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultResendBaseURL   = "https://api.resend.com"
	DefaultTinyfishBaseURL = "https://agent.tinyfish.ai"

	defaultResendTimeoutSec   = 30
	defaultTinyfishTimeoutSec = 90
)

// ResendConfig captures runtime configuration for the resend email plugin.
// APIKey may legitimately be empty at load time: the adapter reports a
// missing credential itself, after payload validation, so a caller bug is
// surfaced ahead of an operator config gap.
type ResendConfig struct {
	APIKey      string
	BaseURL     string
	DefaultFrom string
	Timeout     time.Duration
	LogLevel    string
}

// TinyfishConfig captures runtime configuration for the tinyfish automation
// plugin. The same lenient credential rule as ResendConfig applies.
type TinyfishConfig struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	LogLevel string
}

// LoadResend reads environment variables (after an optional .env file),
// applies defaults, and validates parseable values.
func LoadResend() (*ResendConfig, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &ResendConfig{
		APIKey:      ldr.getString("RESEND_API_KEY", ""),
		BaseURL:     ldr.getBaseURL("RESEND_API_BASE", DefaultResendBaseURL),
		DefaultFrom: ldr.getString("RESEND_FROM", ""),
		Timeout:     ldr.getSeconds("RESEND_TIMEOUT_SEC", defaultResendTimeoutSec),
		LogLevel:    ldr.getString("PLUGIN_LOG_LEVEL", "disabled"),
	}

	if err := ldr.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadTinyfish reads environment variables (after an optional .env file),
// applies defaults, and validates parseable values.
func LoadTinyfish() (*TinyfishConfig, error) {
	_ = godotenv.Load()

	ldr := &envLoader{}

	cfg := &TinyfishConfig{
		APIKey:   ldr.getString("TINYFISH_API_KEY", ""),
		BaseURL:  ldr.getBaseURL("TINYFISH_BASE_URL", DefaultTinyfishBaseURL),
		Timeout:  ldr.getSeconds("TINYFISH_TIMEOUT_SEC", defaultTinyfishTimeoutSec),
		LogLevel: ldr.getString("PLUGIN_LOG_LEVEL", "disabled"),
	}

	if err := ldr.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envLoader accumulates parse errors so a single load reports every problem
// at once instead of failing on the first.
type envLoader struct {
	errs []string
}

func (l *envLoader) validate() error {
	if len(l.errs) == 0 {
		return nil
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(l.errs, "; "))
}

func (l *envLoader) addError(msg string) {
	l.errs = append(l.errs, msg)
}

func (l *envLoader) getString(key, def string) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return def
	}
	return val
}

func (l *envLoader) getBaseURL(key, def string) string {
	return strings.TrimRight(l.getString(key, def), "/")
}

// getSeconds parses a duration expressed in seconds, accepting fractional
// values such as "2.5".
func (l *envLoader) getSeconds(key string, def float64) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return time.Duration(def * float64(time.Second))
	}
	secs, err := strconv.ParseFloat(val, 64)
	if err != nil || secs <= 0 {
		l.addError(fmt.Sprintf("%s must be a positive number of seconds", key))
		return time.Duration(def * float64(time.Second))
	}
	return time.Duration(secs * float64(time.Second))
}
