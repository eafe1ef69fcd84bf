package attendanceerrors

import (
	"github.com/xkxksk1234/Attendance-Manager/internal/shared/apperror"
)

var (
	// ErrNoOpenShift is a business-rule error, distinct from input
	// validation: the request was well-formed but nothing matched.
	ErrNoOpenShift = apperror.New(
		apperror.CodeInvalidState,
		"No open shift for this employee on this date",
	)
	ErrRecordNotFound = apperror.New(
		apperror.CodeNotFound,
		"Attendance record not found",
	)
)
