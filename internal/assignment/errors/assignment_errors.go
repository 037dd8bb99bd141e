package assignmenterrors

import (
	"net/http"

	"milkroute/internal/shared/apperror"
)

var (
	ErrAlreadyAssigned = apperror.New(
		apperror.CodeConflict,
		"Client is already assigned to this staff member",
		http.StatusConflict,
	)
	ErrAssignedToOtherStaff = apperror.New(
		apperror.CodeConflict,
		"Client is already assigned to a different staff member",
		http.StatusConflict,
	)
	ErrNotAssigned = apperror.New(
		apperror.CodeConflict,
		"Client is not assigned to this staff member",
		http.StatusConflict,
	)
)
