package util

import (
	"encoding/json"
	"strconv"
	"strings"
)

// CompactMaxLen is the maximum number of characters retained by Compact
// before the remainder is replaced with an ellipsis marker.
const CompactMaxLen = 1200

// CoerceString converts a loosely-typed JSON value into its trimmed string
// form. Nil values become the empty string; scalars render in their natural
// textual form.
func CoerceString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return strings.TrimSpace(v.String())
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return ""
	}
}

// CoerceRecipients normalizes a loosely-typed recipient field into a list of
// trimmed, non-empty addresses. A single string is split on commas, a list is
// coerced element-wise, and anything else yields an empty list. The operation
// is idempotent over already-normalized lists.
func CoerceRecipients(value any) []string {
	switch v := value.(type) {
	case nil:
		return nil
	case string:
		var out []string
		for _, item := range strings.Split(v, ",") {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	case []any:
		var out []string
		for _, item := range v {
			if coerced := CoerceString(item); coerced != "" {
				out = append(out, coerced)
			}
		}
		return out
	case []string:
		var out []string
		for _, item := range v {
			if trimmed := strings.TrimSpace(item); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		return out
	default:
		return nil
	}
}

// FirstNonEmpty returns the first value whose trimmed form is non-empty.
func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Compact collapses runs of whitespace into single spaces and truncates the
// result to CompactMaxLen characters, appending "..." when truncation occurs.
func Compact(value string) string {
	text := strings.Join(strings.Fields(value), " ")
	runes := []rune(text)
	if len(runes) <= CompactMaxLen {
		return text
	}
	return string(runes[:CompactMaxLen]) + "..."
}

// Lookup probes the map for the given keys in order and returns the first
// value that is present, whether or not it is nil.
func Lookup(values map[string]any, keys ...string) (any, bool) {
	if values == nil {
		return nil, false
	}
	for _, key := range keys {
		if v, ok := values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// LookupString is Lookup followed by CoerceString.
func LookupString(values map[string]any, keys ...string) string {
	v, ok := Lookup(values, keys...)
	if !ok {
		return ""
	}
	return CoerceString(v)
}

// MapValue returns the value under key when the input is a JSON object.
func MapValue(value any, key string) any {
	m, ok := value.(map[string]any)
	if !ok {
		return nil
	}
	return m[key]
}

// MapString returns the coerced string under key when the input is a JSON
// object, and the empty string otherwise.
func MapString(value any, key string) string {
	return CoerceString(MapValue(value, key))
}

// NestedMapString descends one level into a sub-object before reading a
// string field, tolerating absent or differently-shaped intermediates.
func NestedMapString(value any, parent, child string) string {
	return MapString(MapValue(value, parent), child)
}
