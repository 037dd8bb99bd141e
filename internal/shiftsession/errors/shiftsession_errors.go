package shiftsessionerrors

import (
	"net/http"

	"milkroute/internal/shared/apperror"
)

var (
	// ErrNoSessionForDate is an expected outcome, not a fault: the staff
	// member simply has not selected a shift for that day yet.
	ErrNoSessionForDate = apperror.New(
		apperror.CodeNotFound,
		"No shift selected for this date",
		http.StatusNotFound,
	)
	ErrInvalidShift = apperror.New(
		apperror.CodeInvalidInput,
		"Shift is not one of the configured shifts",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
