// Package apierror defines the error envelope every 4xx/5xx response of the
// sales API uses. Handlers map domain sentinels onto it (404 for missing
// rows, 409 for state-machine conflicts like an active venta blocking a
// unidad revert) so clients never see gorm errors or stack traces.
package apierror

import "fmt"

// APIError is the single-message envelope: {"detail": "..."}.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Newf builds the envelope with a formatted detail, handy for messages that
// carry the resource id.
func Newf(format string, args ...interface{}) *APIError {
	return &APIError{Detail: fmt.Sprintf(format, args...)}
}

// ValidationError carries per-field messages from the request validator in
// addition to the generic detail, so forms can highlight the failing fields.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Error de validacion", Fields: fields}
}
