package apperror

import "fmt"

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
	)
)

// RequiredField builds an INVALID_INPUT error for a missing field
func RequiredField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is required", field))
}

// InvalidField builds an INVALID_INPUT error for a malformed field
func InvalidField(field string) *AppError {
	return New(CodeInvalidInput, fmt.Sprintf("%s is invalid", field))
}
