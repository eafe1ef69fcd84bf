package apperror

const (
	// Caller errors
	CodeInvalidInput = "INVALID_INPUT"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Internal errors
	CodeInternalError = "INTERNAL_ERROR"
)
