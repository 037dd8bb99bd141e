package stafferrors

import (
	"net/http"

	"milkroute/internal/shared/apperror"
)

var (
	ErrStaffNotFound = apperror.New(
		apperror.CodeNotFound,
		"Staff member not found",
		http.StatusNotFound,
	)
	ErrAccountNotFound = apperror.New(
		apperror.CodeNotFound,
		"Account not found",
		http.StatusNotFound,
	)
	ErrNotStaffRole = apperror.New(
		apperror.CodeForbidden,
		"Account does not have the staff role",
		http.StatusForbidden,
	)
	ErrStaffAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"A staff profile already exists for this account",
		http.StatusConflict,
	)
	ErrInvalidStaffID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid staff ID",
		http.StatusBadRequest,
	)
)
