// Package tinyfish adapts an approved web-automation action into a single
// TinyFish API call and reduces the response to one status line. Runs are
// dispatched synchronously or queued, depending on the async determination.
package tinyfish

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
const PluginName = "tinyfish_agentic_web"

// asyncActionType is the action-type sentinel that forces queued execution.
const asyncActionType = "tinyfish_async"

const (
	syncEndpoint  = "/v1/automation/run"
	asyncEndpoint = "/v1/automation/run-async"
)

var (
	ErrMissingGoal   = errors.New("tinyfish action requires payload.goal, payload.task, or summary")
	ErrMissingURL    = errors.New("tinyfish action requires payload.url, payload.request.url, or action_target")
	ErrMissingAPIKey = errors.New("tinyfish plugin is not configured: missing api key")
)

// Adapter implements common.Adapter for the TinyFish automation provider.
// Build records the async determination for response reduction.
type Adapter struct {
	logger    zerolog.Logger
	cfg       config.TinyfishConfig
	asyncMode bool
}

// NewAdapter constructs a tinyfish adapter from plugin configuration.
func NewAdapter(cfg *config.TinyfishConfig, logger zerolog.Logger) *Adapter {
	return &Adapter{logger: logger, cfg: *cfg}
}

// Name implements common.Adapter.
func (a *Adapter) Name() string { return PluginName }

// Label implements common.Adapter.
func (a *Adapter) Label() string { return "tinyfish" }

// Build assembles the automation request. A nested payload.request object
// passes through verbatim; goal and url are filled from ordered fallbacks
// only when the caller did not set them there directly.
func (a *Adapter) Build(approval *models.ActionApproval) (*common.OutboundRequest, error) {
	payload := approval.Payload

	a.asyncMode = isAsyncAction(approval.ActionType, payload)
	endpoint := syncEndpoint
	if a.asyncMode {
		endpoint = asyncEndpoint
	}

	body, err := buildRequestBody(approval.ActionSummary, approval.ActionTarget, payload)
	if err != nil {
		return nil, err
	}

	if a.cfg.APIKey == "" {
		return nil, common.WrapConfig(ErrMissingAPIKey)
	}

	a.logger.Debug().
		Bool("async", a.asyncMode).
		Str("url", util.MapString(body, "url")).
		Msg("automation request built")

	return &common.OutboundRequest{
		URL:  a.cfg.BaseURL + endpoint,
		Body: body,
		Headers: map[string]string{
			"X-API-Key":    a.cfg.APIKey,
			"Content-Type": "application/json",
		},
	}, nil
}

// isAsyncAction reports queued execution. Any one trigger suffices: the
// async action-type sentinel, an explicit boolean async flag, or mode=async.
func isAsyncAction(actionType string, payload map[string]any) bool {
	if strings.EqualFold(strings.TrimSpace(actionType), asyncActionType) {
		return true
	}
	if flag, ok := payload["async"].(bool); ok && flag {
		return true
	}
	return strings.EqualFold(util.CoerceString(payload["mode"]), "async")
}

// resolveGoal picks the instruction text from the payload fallback chain and
// appends the target URL as a labeled line when it is not already mentioned.
func resolveGoal(summary, actionTarget string, payload map[string]any) string {
	goal := util.FirstNonEmpty(
		util.CoerceString(payload["goal"]),
		util.CoerceString(payload["task"]),
		summary,
	)
	target := strings.TrimSpace(actionTarget)
	if goal != "" && target != "" && !strings.Contains(strings.ToLower(goal), strings.ToLower(target)) {
		goal = goal + "\nTarget URL: " + target
	}
	return strings.TrimSpace(goal)
}

func resolveURL(actionTarget string, payload, requestBody map[string]any) string {
	return util.FirstNonEmpty(
		util.MapString(requestBody, "url"),
		util.CoerceString(payload["url"]),
		actionTarget,
	)
}

// buildRequestBody copies the nested request object and guarantees goal and
// url are present, failing before any network I/O otherwise.
func buildRequestBody(summary, actionTarget string, payload map[string]any) (map[string]any, error) {
	requestBody := map[string]any{}
	if nested, ok := payload["request"].(map[string]any); ok {
		for key, value := range nested {
			requestBody[key] = value
		}
	}

	if util.MapString(requestBody, "goal") == "" {
		goal := resolveGoal(summary, actionTarget, payload)
		if goal == "" {
			return nil, common.WrapValidation(ErrMissingGoal)
		}
		requestBody["goal"] = goal
	}

	url := resolveURL(actionTarget, payload, requestBody)
	if url == "" {
		return nil, common.WrapValidation(ErrMissingURL)
	}
	requestBody["url"] = url

	return requestBody, nil
}

// Reduce summarizes a 2xx response, preferring a run identifier and, for
// synchronous runs, the automation output.
func (a *Adapter) Reduce(result *common.DispatchResult) string {
	text := strings.TrimSpace(result.Body)
	if text == "" {
		if a.asyncMode {
			return "tinyfish run queued"
		}
		return "tinyfish run completed"
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return "tinyfish request completed: " + util.Compact(text)
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return "tinyfish request completed: " + util.Compact(text)
	}

	runID := util.FirstNonEmpty(
		util.MapString(obj, "run_id"),
		util.NestedMapString(obj, "data", "run_id"),
		util.NestedMapString(obj, "run", "id"),
	)

	if a.asyncMode {
		if runID != "" {
			return "tinyfish run queued with run_id " + runID
		}
		return "tinyfish run queued"
	}

	output := util.FirstNonEmpty(
		util.MapString(obj, "result"),
		util.MapString(obj, "output"),
		util.MapString(obj, "message"),
		util.NestedMapString(obj, "data", "result"),
		util.NestedMapString(obj, "data", "output"),
	)
	if output != "" {
		if runID != "" {
			return fmt.Sprintf("tinyfish run completed (%s): %s", runID, util.Compact(output))
		}
		return "tinyfish run completed: " + util.Compact(output)
	}
	if runID != "" {
		return "tinyfish run completed with run_id " + runID
	}
	return "tinyfish run completed"
}

// ReduceError extracts a short message from an error body, preferring the
// provider's error field and degrading to the compacted raw text.
func (a *Adapter) ReduceError(result *common.DispatchResult) string {
	text := strings.TrimSpace(result.Body)
	if text == "" {
		return "no response body"
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return util.Compact(text)
	}
	obj, ok := decoded.(map[string]any)
	if !ok {
		return util.Compact(text)
	}

	switch v := obj["error"].(type) {
	case string:
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return util.Compact(trimmed)
		}
	case map[string]any:
		if nested := util.CoerceString(v["message"]); nested != "" {
			return util.Compact(nested)
		}
	}

	return util.Compact(util.FirstNonEmpty(
		util.MapString(obj, "message"),
		util.MapString(obj, "detail"),
		text,
	))
}
