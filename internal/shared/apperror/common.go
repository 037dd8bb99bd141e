package apperror

import (
	"fmt"
	"net/http"
)

var (
	ErrNotFound = New(
		CodeNotFound,
		"Resource not found",
		http.StatusNotFound,
	)

	ErrForbidden = New(
		CodeForbidden,
		"You do not have permission to access this resource",
		http.StatusForbidden,
	)

	ErrInternal = New(
		CodeInternalError,
		"An unexpected error occurred",
		http.StatusInternalServerError,
	)

	ErrUnauthorized = New(
		CodeUnauthorized,
		"Authentication is required",
		http.StatusUnauthorized,
	)

	ErrInvalidInput = New(
		CodeInvalidInput,
		"The provided input is invalid",
		http.StatusBadRequest,
	)
)

// RequiredField builds an InvalidInput error for a missing field.
func RequiredField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is required", field),
		http.StatusBadRequest,
	)
}

// InvalidField builds an InvalidInput error for a malformed field.
func InvalidField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is invalid", field),
		http.StatusBadRequest,
	)
}

// PartialFailureDetail identifies the two sides of a dual-entity write so an
// operator can reconcile by hand: one side completed, the other did not.
type PartialFailureDetail struct {
	Completed string `json:"completed"`
	Failed    string `json:"failed"`
}

// PartialFailure reports a dual-write that landed on exactly one side. It must
// never be downgraded to a plain success or a plain total failure.
func PartialFailure(completed, failed string, err error) *AppError {
	return &AppError{
		Code:       CodePartialFailure,
		Message:    "Operation partially completed; manual reconciliation required",
		HTTPStatus: http.StatusInternalServerError,
		Details:    PartialFailureDetail{Completed: completed, Failed: failed},
		Err:        err,
	}
}
