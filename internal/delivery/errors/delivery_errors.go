package deliveryerrors

import (
	"net/http"

	"milkroute/internal/shared/apperror"
)

var (
	ErrClientNotAssigned = apperror.New(
		apperror.CodeConflict,
		"Client is not assigned to this staff member",
		http.StatusConflict,
	)
	ErrReasonRequired = apperror.New(
		apperror.CodeInvalidInput,
		"A reason is required when marking a delivery as not delivered",
		http.StatusBadRequest,
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
	ErrInvalidStatus = apperror.New(
		apperror.CodeInvalidInput,
		"Status is not one of the configured delivery statuses",
		http.StatusBadRequest,
	)
)
