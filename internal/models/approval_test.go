package models

import (
	"errors"
	"testing"
)

func TestDecodeEnvelopeEmptyInput(t *testing.T) {
	if _, err := DecodeEnvelope([]byte("   \n")); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestDecodeEnvelopeInvalidJSON(t *testing.T) {
	_, err := DecodeEnvelope([]byte("{not json"))
	if err == nil || errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected JSON decode error, got %v", err)
	}
}

func TestDecodeEnvelopeMissingApproval(t *testing.T) {
	if _, err := DecodeEnvelope([]byte(`{"other": {}}`)); !errors.Is(err, ErrMissingApproval) {
		t.Fatalf("expected ErrMissingApproval, got %v", err)
	}
	if _, err := DecodeEnvelope([]byte(`{"action_approval": "nope"}`)); !errors.Is(err, ErrMissingApproval) {
		t.Fatalf("expected ErrMissingApproval for scalar, got %v", err)
	}
}

func TestDecodeEnvelopeMalformedPayload(t *testing.T) {
	raw := []byte(`{"action_approval": {"payload": "not-an-object"}}`)
	if _, err := DecodeEnvelope(raw); !errors.Is(err, ErrPayloadNotObject) {
		t.Fatalf("expected ErrPayloadNotObject, got %v", err)
	}
}

func TestDecodeEnvelopeNullPayloadTolerated(t *testing.T) {
	raw := []byte(`{"action_approval": {"payload": null}}`)
	approval, err := DecodeEnvelope(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approval.Payload == nil || len(approval.Payload) != 0 {
		t.Fatalf("expected empty payload map, got %v", approval.Payload)
	}
}

func TestDecodeEnvelopeSnakeCaseFields(t *testing.T) {
	raw := []byte(`{"action_approval": {
		"action_type": " send ",
		"action_target": "a@x.com",
		"action_summary": "hello",
		"payload": {"to": "a@x.com"}
	}}`)
	approval, err := DecodeEnvelope(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approval.ActionType != "send" {
		t.Fatalf("expected trimmed action type, got %q", approval.ActionType)
	}
	if approval.ActionTarget != "a@x.com" || approval.ActionSummary != "hello" {
		t.Fatalf("unexpected approval fields: %+v", approval)
	}
	if approval.Payload["to"] != "a@x.com" {
		t.Fatalf("unexpected payload: %v", approval.Payload)
	}
}

func TestDecodeEnvelopeCamelCaseFields(t *testing.T) {
	raw := []byte(`{"version": "1", "action_approval": {
		"ActionType": "tinyfish_async",
		"ActionTarget": "http://e.com",
		"ActionSummary": "scrape",
		"Payload": {"goal": "scrape"}
	}}`)
	approval, err := DecodeEnvelope(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if approval.ActionType != "tinyfish_async" {
		t.Fatalf("expected camel key acceptance, got %q", approval.ActionType)
	}
	if approval.Payload["goal"] != "scrape" {
		t.Fatalf("unexpected payload: %v", approval.Payload)
	}
}

func TestDecodeEnvelopePreservesNumberLiterals(t *testing.T) {
	raw := []byte(`{"action_approval": {"payload": {"count": 42}}}`)
	approval, err := DecodeEnvelope(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	num, ok := approval.Payload["count"].(interface{ String() string })
	if !ok || num.String() != "42" {
		t.Fatalf("expected json.Number 42, got %T %v", approval.Payload["count"], approval.Payload["count"])
	}
}
