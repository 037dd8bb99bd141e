package clienterrors

import (
	"net/http"

	"milkroute/internal/shared/apperror"
)

var (
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"Client not found",
		http.StatusNotFound,
	)
	ErrClientNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Client number already exists",
		http.StatusConflict,
	)
	ErrInvalidClientID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid client ID",
		http.StatusBadRequest,
	)
	ErrInvalidShift = apperror.New(
		apperror.CodeInvalidInput,
		"Shift is not one of the configured shifts",
		http.StatusBadRequest,
	)
)
