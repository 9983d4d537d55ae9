package common

import (
	"errors"
)

// Stage sentinels classify where a run failed. Every failure is terminal;
// the upstream runtime owns any retry policy.
var (
	// ErrInput marks stdin/envelope decoding failures.
	ErrInput = errors.New("input error")
	// ErrValidation marks a required normalized field that never resolved.
	ErrValidation = errors.New("validation error")
	// ErrConfig marks a missing or unusable plugin credential.
	ErrConfig = errors.New("configuration error")
	// ErrTransport marks network-level failures reaching the provider.
	ErrTransport = errors.New("transport error")
	// ErrProvider marks a non-2xx provider response.
	ErrProvider = errors.New("provider error")
)

// stageError attaches a stage sentinel to an error without altering its
// message. Diagnostics surface the inner text verbatim while errors.Is still
// reports the stage.
type stageError struct {
	stage error
	err   error
}

func (e *stageError) Error() string { return e.err.Error() }

func (e *stageError) Unwrap() []error { return []error{e.stage, e.err} }

func wrapStage(stage, err error) error {
	if err == nil {
		return stage
	}
	return &stageError{stage: stage, err: err}
}

// WrapInput classifies an error as an input-stage failure.
func WrapInput(err error) error { return wrapStage(ErrInput, err) }

// WrapValidation classifies an error as a validation failure.
func WrapValidation(err error) error { return wrapStage(ErrValidation, err) }

// WrapConfig classifies an error as a configuration failure.
func WrapConfig(err error) error { return wrapStage(ErrConfig, err) }

// WrapTransport classifies an error as a transport failure.
func WrapTransport(err error) error { return wrapStage(ErrTransport, err) }

// WrapProvider classifies an error as a provider failure.
func WrapProvider(err error) error { return wrapStage(ErrProvider, err) }
