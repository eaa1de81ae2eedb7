package transport

import "encoding/json"

// Envelope is the uniform success/failure wrapper every API response goes
// through. It is a tagged type: the only ways to build one are the Ok and
// Fail constructors, so a failure can never carry a payload and a success can
// never carry an error message.
type Envelope[T any] struct {
	success  bool
	data     T
	errMsg   string
	errLoc   string
	fallback bool
}

// Ok wraps a successful payload.
func Ok[T any](data T) Envelope[T] {
	return Envelope[T]{success: true, data: data}
}

// OkFallback wraps a successful payload served from the in-memory sample set
// so callers can surface a degraded-mode warning.
func OkFallback[T any](data T, fallback bool) Envelope[T] {
	return Envelope[T]{success: true, data: data, fallback: fallback}
}

// Fail wraps an error message. The struct{} payload type makes it impossible
// to attach data to a failure.
func Fail(message string) Envelope[struct{}] {
	return Envelope[struct{}]{errMsg: message}
}

// FailAt is Fail with a diagnostic location hint.
func FailAt(message, location string) Envelope[struct{}] {
	return Envelope[struct{}]{errMsg: message, errLoc: location}
}

func (e Envelope[T]) MarshalJSON() ([]byte, error) {
	if !e.success {
		return json.Marshal(struct {
			Success       bool   `json:"success"`
			Error         string `json:"error"`
			ErrorLocation string `json:"error_location,omitempty"`
		}{Success: false, Error: e.errMsg, ErrorLocation: e.errLoc})
	}
	return json.Marshal(struct {
		Success  bool `json:"success"`
		Data     T    `json:"data"`
		Fallback bool `json:"fallback,omitempty"`
	}{Success: true, Data: e.data, Fallback: e.fallback})
}
