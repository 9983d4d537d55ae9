package common

import (
	"github.com/example/action-plugins/internal/models"
)

// OutboundRequest is a fully built provider call: nothing may be added to it
// after Build returns, and it is never constructed with a missing required
// field.
type OutboundRequest struct {
	URL     string
	Body    any
	Headers map[string]string
}

// Adapter is one provider-specific instantiation of the normalize, build,
// dispatch, reduce pipeline. Adapters are single-use: Build may retain state
// (recipients, async mode) that the reduction methods read afterwards.
type Adapter interface {
	// Name returns the plugin identifier emitted in the stdout result.
	Name() string

	// Label returns the short provider label used in diagnostics,
	// e.g. "resend" in "resend request failed: ...".
	Label() string

	// Build normalizes the approval payload into an outbound request.
	// Errors are validation or configuration failures and abort the run
	// before any network I/O.
	Build(approval *models.ActionApproval) (*OutboundRequest, error)

	// Reduce turns a 2xx response into the success message.
	Reduce(result *DispatchResult) string

	// ReduceError extracts a short message from a non-2xx response body.
	ReduceError(result *DispatchResult) string
}
