package common

import (
	"errors"
	"testing"
)

func TestWrapKeepsMessageVerbatim(t *testing.T) {
	base := errors.New("resend_email requires payload.to or action target recipient email")
	wrapped := WrapValidation(base)

	if wrapped.Error() != base.Error() {
		t.Fatalf("expected verbatim message, got %q", wrapped.Error())
	}
	if !errors.Is(wrapped, ErrValidation) {
		t.Fatalf("expected validation stage, got %v", wrapped)
	}
	if !errors.Is(wrapped, base) {
		t.Fatalf("expected wrapped error to match base")
	}
}

func TestWrapStagesAreDistinct(t *testing.T) {
	err := WrapTransport(errors.New("dial tcp: connection refused"))

	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected transport stage")
	}
	for _, other := range []error{ErrInput, ErrValidation, ErrConfig, ErrProvider} {
		if errors.Is(err, other) {
			t.Fatalf("transport error unexpectedly matched %v", other)
		}
	}
}

func TestWrapNilFallsBackToSentinel(t *testing.T) {
	if !errors.Is(WrapConfig(nil), ErrConfig) {
		t.Fatalf("expected nil wrap to fall back to sentinel")
	}
}
