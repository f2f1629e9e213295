package todoreg

import (
	"encoding/json"
	"fmt"
)

// Result is the two-variant envelope every operation returns at the wire
// boundary: exactly one of Ok (with an operation-specific payload) or Err
// (with a text message) is present. It marshals to a single-key JSON
// object, {"Ok": <payload>} or {"Err": "<message>"}; the Ok payload of
// operations without a return value (delete, update) is null.
//
// Callers branch on the variant rather than on transport errors.
type Result struct {
	ok     bool
	value  any
	errMsg string
}

// OK returns a success Result carrying value. Pass nil for operations
// without a payload.
func OK(value any) Result {
	return Result{ok: true, value: value}
}

// Err returns a failure Result carrying the error's message.
func Err(err error) Result {
	return Result{errMsg: err.Error()}
}

// Errf returns a failure Result with a formatted message.
func Errf(format string, args ...any) Result {
	return Result{errMsg: fmt.Sprintf(format, args...)}
}

// IsOK reports whether the Ok variant is present.
func (r Result) IsOK() bool {
	return r.ok
}

// Value returns the Ok payload. It is nil for the Err variant and for
// operations without a return value.
func (r Result) Value() any {
	return r.value
}

// ErrMsg returns the Err message, or "" for the Ok variant.
func (r Result) ErrMsg() string {
	return r.errMsg
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	if !r.ok {
		return json.Marshal(map[string]string{"Err": r.errMsg})
	}
	return json.Marshal(map[string]any{"Ok": r.value})
}

// UnmarshalJSON implements json.Unmarshaler. The Ok payload is decoded
// with encoding/json defaults (numbers become float64).
//
// Variant presence is checked on the raw key set, not on decoded values:
// a present-but-null Ok payload ({"Ok":null}) is a valid unit success.
func (r *Result) UnmarshalJSON(data []byte) error {
	var wire map[string]json.RawMessage
	if err := json.Unmarshal(data, &wire); err != nil {
		return fmt.Errorf("unmarshal result: %w", err)
	}
	if raw, ok := wire["Err"]; ok {
		var msg string
		if err := json.Unmarshal(raw, &msg); err != nil {
			return fmt.Errorf("unmarshal Err message: %w", err)
		}
		*r = Result{errMsg: msg}
		return nil
	}
	if raw, ok := wire["Ok"]; ok {
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return fmt.Errorf("unmarshal Ok payload: %w", err)
		}
		*r = Result{ok: true, value: value}
		return nil
	}
	return fmt.Errorf("result has neither Ok nor Err variant")
}
