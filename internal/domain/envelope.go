package domain

import "encoding/json"

// Envelope is the uniform result of every gateway call.
// Errors is non-empty if and only if the call did not fully succeed.
type Envelope struct {
	Data   any      `json:"data"   yaml:"data"`
	Errors []string `json:"errors" yaml:"errors"`

	// Raw holds the verbatim response body of a successful call.
	Raw json.RawMessage `json:"-" yaml:"-"`

	// Cause is the typed error behind a failed call, when one is known.
	Cause error `json:"-" yaml:"-"`
}

// FailedEnvelope builds the envelope returned for any failed call.
func FailedEnvelope(message string) Envelope {
	return Envelope{
		Data:   map[string]any{},
		Errors: []string{message},
	}
}

// ErrorEnvelope builds a failed envelope carrying err as its cause.
func ErrorEnvelope(err error) Envelope {
	envelope := FailedEnvelope(err.Error())
	envelope.Cause = err
	return envelope
}

// OK reports whether the call succeeded.
func (e Envelope) OK() bool {
	return len(e.Errors) == 0
}

// FirstError returns the first error message, or an empty string on success.
func (e Envelope) FirstError() string {
	if len(e.Errors) == 0 {
		return ""
	}
	return e.Errors[0]
}

// DataField looks up a key in an object-shaped Data payload.
func (e Envelope) DataField(key string) (any, bool) {
	object, ok := e.Data.(map[string]any)
	if !ok {
		return nil, false
	}
	value, ok := object[key]
	return value, ok
}

// DecodeData converts Data into v through its JSON form.
func (e Envelope) DecodeData(v any) error {
	encoded, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, v)
}
