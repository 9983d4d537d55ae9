package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/example/action-plugins/internal/util"
)

// Decode failure sentinels. Callers prefix these with a plugin label before
// surfacing them to the operator.
var (
	// ErrEmptyInput is returned when stdin carried no request document.
	ErrEmptyInput = errors.New("expected request JSON on stdin")
	// ErrMissingApproval indicates the envelope lacked an action_approval object.
	ErrMissingApproval = errors.New("missing action_approval object")
	// ErrPayloadNotObject indicates the approval payload was not a JSON object.
	ErrPayloadNotObject = errors.New("payload must be a JSON object")
)

// ActionApproval is the upstream-authorized record describing one external
// action. The runtime marshals its internal struct with Go-default field
// names, so every field is accepted under both lower_snake and UpperCamel
// keys. All scalar fields arrive trimmed.
type ActionApproval struct {
	ActionType    string
	ActionTarget  string
	ActionSummary string
	Payload       map[string]any
}

// DecodeEnvelope parses the stdin document {"action_approval": {...}} into an
// ActionApproval. The envelope may carry additional members (the runtime
// sends a version field); they are ignored. Numbers are preserved as
// json.Number so payload values keep their literal form.
func DecodeEnvelope(raw []byte) (*ActionApproval, error) {
	if strings.TrimSpace(string(raw)) == "" {
		return nil, ErrEmptyInput
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var envelope map[string]any
	if err := dec.Decode(&envelope); err != nil {
		return nil, fmt.Errorf("invalid stdin JSON: %v", err)
	}

	approval, ok := envelope["action_approval"].(map[string]any)
	if !ok {
		return nil, ErrMissingApproval
	}

	payload := map[string]any{}
	if raw, present := util.Lookup(approval, "payload", "Payload"); present && raw != nil {
		typed, ok := raw.(map[string]any)
		if !ok {
			return nil, ErrPayloadNotObject
		}
		if len(typed) > 0 {
			payload = typed
		}
	}

	return &ActionApproval{
		ActionType:    util.LookupString(approval, "action_type", "ActionType"),
		ActionTarget:  util.LookupString(approval, "action_target", "ActionTarget"),
		ActionSummary: util.LookupString(approval, "action_summary", "ActionSummary"),
		Payload:       payload,
	}, nil
}
