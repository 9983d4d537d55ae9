package common

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/example/action-plugins/internal/models"
)

// Outcome is the single JSON object printed to stdout on success.
type Outcome struct {
	Message string `json:"message"`
	Plugin  string `json:"plugin"`
}

// RunnerOption customises runner behaviour.
type RunnerOption func(*Runner)

// WithStreams replaces the process streams, primarily for tests.
func WithStreams(stdin io.Reader, stdout, stderr io.Writer) RunnerOption {
	return func(r *Runner) {
		if stdin != nil {
			r.stdin = stdin
		}
		if stdout != nil {
			r.stdout = stdout
		}
		if stderr != nil {
			r.stderr = stderr
		}
	}
}

// Runner drives one plugin invocation end to end: read stdin, normalize and
// build, dispatch once, reduce, emit. Exactly one of stdout/stderr receives
// exactly one line, and nothing is written before the outcome is fully
// determined.
type Runner struct {
	adapter    Adapter
	dispatcher *Dispatcher
	logger     zerolog.Logger
	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
}

// NewRunner wires an adapter and dispatcher into a runnable pipeline bound to
// the process streams unless overridden.
func NewRunner(adapter Adapter, dispatcher *Dispatcher, logger zerolog.Logger, opts ...RunnerOption) *Runner {
	r := &Runner{
		adapter:    adapter,
		dispatcher: dispatcher,
		logger:     logger,
		stdin:      os.Stdin,
		stdout:     os.Stdout,
		stderr:     os.Stderr,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}

	return r
}

// Run executes the pipeline and returns the process exit code.
func (r *Runner) Run(ctx context.Context) int {
	label := r.adapter.Label()

	raw, err := io.ReadAll(r.stdin)
	if err != nil {
		return r.fail(WrapInput(err), fmt.Sprintf("%s plugin failed to read stdin: %v", label, err))
	}

	approval, err := models.DecodeEnvelope(raw)
	if err != nil {
		return r.fail(WrapInput(err), fmt.Sprintf("%s plugin %v", label, err))
	}

	out, err := r.adapter.Build(approval)
	if err != nil {
		return r.fail(err, err.Error())
	}

	r.logger.Debug().
		Str("action_type", approval.ActionType).
		Str("url", out.URL).
		Msg("request built")

	result, err := r.dispatcher.Post(ctx, out)
	if err != nil {
		return r.fail(err, fmt.Sprintf("%s request failed: %v", label, err))
	}

	if !result.OK() {
		msg := r.adapter.ReduceError(result)
		err := WrapProvider(fmt.Errorf("status=%d message=%s", result.StatusCode, msg))
		return r.fail(err, fmt.Sprintf("%s request failed: status=%d message=%s", label, result.StatusCode, msg))
	}

	return r.emit(r.adapter.Reduce(result))
}

func (r *Runner) fail(err error, line string) int {
	r.logger.Error().Err(err).Msg("plugin run failed")
	fmt.Fprintln(r.stderr, line)
	return 1
}

func (r *Runner) emit(message string) int {
	enc := json.NewEncoder(r.stdout)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(Outcome{Message: message, Plugin: r.adapter.Name()}); err != nil {
		fmt.Fprintf(r.stderr, "%s plugin failed to write result: %v\n", r.adapter.Label(), err)
		return 1
	}
	r.logger.Info().Str("message", message).Msg("plugin run succeeded")
	return 0
}
