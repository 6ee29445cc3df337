// Package response normalizes the heterogeneous values returned by the
// AskSage platform into a uniform success/payload/error result.
//
// Depending on the client library version, an operation may return a bare
// list of strings, a map using the legacy {"success": bool} convention, a
// map using the HTTP-style {"status": int, "response": ...} convention, or
// a bare scalar. Normalize accepts all of them and never panics.
package response

import "fmt"

// ErrUnknown is the error string reported when a failed response carries
// no usable error or message field.
const ErrUnknown = "Unknown error"

// Result is the normalized form of a remote response.
type Result struct {
	OK      bool
	Payload any
	Err     string
}

// Normalize converts a raw remote response into a Result.
//
// Shape discrimination, in order:
//   - a sequence is always a success, the sequence itself is the payload
//   - a map with a "status" key fails iff status >= 400; the payload is the
//     map's "response" value when present, otherwise the whole map
//   - a map with a "success" key (legacy convention) fails iff success is
//     falsy; the payload is the whole map
//   - anything else (string, number, nil) is a success with itself as payload
//
// Missing error/message keys on a failed response degrade to ErrUnknown.
func Normalize(resp any) Result {
	switch v := resp.(type) {
	case []any:
		return Result{OK: true, Payload: v}
	case []string:
		return Result{OK: true, Payload: v}
	case map[string]any:
		if status, ok := v["status"]; ok {
			return normalizeStatus(v, status)
		}
		if success, ok := v["success"]; ok {
			return normalizeLegacy(v, success)
		}
		// Map without either convention key; treat as a success payload.
		return Result{OK: true, Payload: v}
	default:
		return Result{OK: true, Payload: resp}
	}
}

func normalizeStatus(m map[string]any, status any) Result {
	payload := any(m)
	if inner, ok := m["response"]; ok {
		payload = inner
	}
	if asInt(status) >= 400 {
		return Result{Payload: payload, Err: errorString(m)}
	}
	return Result{OK: true, Payload: payload}
}

func normalizeLegacy(m map[string]any, success any) Result {
	if !truthy(success) {
		return Result{Payload: m, Err: errorString(m)}
	}
	return Result{OK: true, Payload: m}
}

// errorString extracts the error text from a failed response map, trying
// "error" first, then "message", then falling back to ErrUnknown.
func errorString(m map[string]any) string {
	for _, key := range []string{"error", "message"} {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ErrUnknown
}

// asInt coerces the numeric types JSON decoding can produce. Non-numeric
// status values coerce to 0, which reads as a success.
func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	default:
		return 0
	}
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case nil:
		return false
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}

// StringList coerces a normalized payload into a list of strings, dropping
// non-string elements. Non-list payloads yield nil.
func StringList(payload any) []string {
	switch v := payload.(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Message extracts the human-readable text from a query payload: the
// "message" field when present, then "response", then a string rendering
// of the payload itself.
func Message(payload any) string {
	if m, ok := payload.(map[string]any); ok {
		for _, key := range []string{"message", "response"} {
			if v, ok := m[key]; ok {
				if s, ok := v.(string); ok && s != "" {
					return s
				}
			}
		}
		return "No response content"
	}
	if s, ok := payload.(string); ok {
		return s
	}
	return fmt.Sprint(payload)
}

// TokenCount extracts an integer token count from a remote response:
// a map using the status convention carries the count under "response",
// a bare number is the count itself. Failed responses return an error.
func TokenCount(resp any) (int, error) {
	switch v := resp.(type) {
	case map[string]any:
		res := Normalize(v)
		if !res.OK {
			return 0, fmt.Errorf("API error: %s", res.Err)
		}
		return asInt(res.Payload), nil
	case int, int64, float64, float32:
		return asInt(v), nil
	default:
		return 0, nil
	}
}
