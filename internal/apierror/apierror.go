// Package apierror defines the JSON envelopes every 4xx/5xx response
// uses. Handlers never serialize raw errors: whatever the service layer
// returned is logged, and one of these goes over the wire.
package apierror

// APIError carries a single human-readable message.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError adds a per-field breakdown for 422 responses.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
