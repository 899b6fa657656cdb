// Package types holds the JSON shapes shared by the API surface.
package types

// HeaderRequestID carries the per request correlation id in both directions.
const HeaderRequestID = "X-Request-Id"

// SuccessEnvelope wraps every 2xx body except 204.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client facing error. Details is a field to message map
// for validation and conflict errors.
type APIError struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
