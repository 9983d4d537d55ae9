// Package resend adapts an approved email action into a single Resend API
// call (POST {base}/emails) and reduces the response to one status line.
package resend

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/example/action-plugins/internal/adapters/common"
	"github.com/example/action-plugins/internal/config"
	"github.com/example/action-plugins/internal/models"
	"github.com/example/action-plugins/internal/util"
)

// PluginName identifies this adapter in the stdout result.
const PluginName = "external_resend_email"

const defaultSubject = "Message from agent-runtime"

// Validation failures name the accepted source fields so operators can fix
// the caller.
var (
	ErrMissingRecipient = errors.New("resend_email requires payload.to or action target recipient email")
	ErrMissingSender    = errors.New("resend_email requires payload.from or RESEND_FROM env var")
	ErrMissingBody      = errors.New("resend_email requires payload.text or payload.html (or non-empty summary)")
	ErrMissingAPIKey    = errors.New("resend plugin missing RESEND_API_KEY")
)

// message is the Resend /emails request body. ReplyTo carries either a
// single address or a list, mirroring what the caller supplied.
type message struct {
	From    string         `json:"from"`
	To      []string       `json:"to"`
	Subject string         `json:"subject"`
	Text    string         `json:"text,omitempty"`
	HTML    string         `json:"html,omitempty"`
	CC      []string       `json:"cc,omitempty"`
	BCC     []string       `json:"bcc,omitempty"`
	ReplyTo any            `json:"reply_to,omitempty"`
	Tags    []any          `json:"tags,omitempty"`
	Headers map[string]any `json:"headers,omitempty"`
}

// Adapter implements common.Adapter for the Resend email provider. It is
// single-use: Build records the resolved recipients for the success message.
type Adapter struct {
	logger     zerolog.Logger
	cfg        config.ResendConfig
	recipients []string
}

// NewAdapter constructs a resend adapter from plugin configuration.
func NewAdapter(cfg *config.ResendConfig, logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger, cfg: *cfg}
}

// Name implements common.Adapter.
func (a *Adapter) Name() string { return PluginName }

// Label implements common.Adapter.
func (a *Adapter) Label() string { return "resend" }

// Build normalizes the approval payload into a Resend request. Required
// fields resolve through ordered fallbacks; malformed optional fields are
// dropped rather than rejected because upstream callers supply
// provider-agnostic, loosely-shaped payloads.
func (a *Adapter) Build(approval *models.ActionApproval) (*common.OutboundRequest, error) {
	payload := approval.Payload

	to := util.CoerceRecipients(payload["to"])
	if len(to) == 0 && approval.ActionTarget != "" {
		to = util.CoerceRecipients(approval.ActionTarget)
	}
	if len(to) == 0 {
		return nil, common.WrapValidation(ErrMissingRecipient)
	}

	from := util.FirstNonEmpty(util.CoerceString(payload["from"]), a.cfg.DefaultFrom)
	if from == "" {
		return nil, common.WrapValidation(ErrMissingSender)
	}

	subject := util.FirstNonEmpty(util.CoerceString(payload["subject"]), approval.ActionSummary, defaultSubject)

	text := util.CoerceString(payload["text"])
	html := util.CoerceString(payload["html"])
	if text == "" && html == "" {
		text = approval.ActionSummary
	}
	if text == "" && html == "" {
		return nil, common.WrapValidation(ErrMissingBody)
	}

	body := &message{
		From:    from,
		To:      to,
		Subject: subject,
		Text:    text,
		HTML:    html,
		CC:      util.CoerceRecipients(payload["cc"]),
		BCC:     util.CoerceRecipients(payload["bcc"]),
	}

	switch v := payload["reply_to"].(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			body.ReplyTo = trimmed
		}
	case []any:
		if normalized := util.CoerceRecipients(v); len(normalized) > 0 {
			body.ReplyTo = normalized
		}
	}

	if tags, ok := payload["tags"].([]any); ok {
		body.Tags = tags
	}
	if headers, ok := payload["headers"].(map[string]any); ok {
		body.Headers = headers
	}

	if a.cfg.APIKey == "" {
		return nil, common.WrapConfig(ErrMissingAPIKey)
	}

	a.recipients = to

	a.logger.Debug().
		Strs("to", to).
		Str("subject", subject).
		Bool("html", html != "").
		Msg("email request built")

	return &common.OutboundRequest{
		URL:  a.cfg.BaseURL + "/emails",
		Body: body,
		Headers: map[string]string{
			"Authorization": "Bearer " + a.cfg.APIKey,
			"Content-Type":  "application/json",
			"User-Agent":    "curl/8.7.1",
		},
	}, nil
}

// Reduce composes the success message, appending the provider email id when
// the response body carries one.
func (a *Adapter) Reduce(result *common.DispatchResult) string {
	var id string
	if strings.TrimSpace(result.Body) != "" {
		var decoded map[string]any
		if err := json.Unmarshal([]byte(result.Body), &decoded); err == nil {
			id = util.CoerceString(decoded["id"])
		}
	}

	msg := "resend email sent to " + strings.Join(a.recipients, ", ")
	if id != "" {
		msg += fmt.Sprintf(" (id: %s)", id)
	}
	return msg
}

// ReduceError probes the error body for a human-readable message, degrading
// to the raw text and finally to the bare status code.
func (a *Adapter) ReduceError(result *common.DispatchResult) string {
	if msg := parseMessage(result.Body); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP %d", result.StatusCode)
}

// parseMessage extracts a short message from an arbitrary response body. It
// never fails: unrecognized shapes degrade to the compacted raw text.
func parseMessage(body string) string {
	text := strings.TrimSpace(body)
	if text == "" {
		return ""
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return util.Compact(text)
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return util.Compact(text)
	}

	for _, key := range []string{"message", "error", "detail"} {
		value := obj[key]
		if s := util.CoerceString(value); s != "" {
			return s
		}
		if nested := util.NestedMapString(obj, key, "message"); nested != "" {
			return nested
		}
	}

	return util.Compact(text)
}
