package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP_AppErrorPassthrough(t *testing.T) {
	appErr := New(CodeConflict, "Client number already in use", http.StatusConflict)

	got := ToHTTP(appErr)

	assert.Equal(t, http.StatusConflict, got.Status)
	assert.Equal(t, CodeConflict, got.Code)
	assert.Equal(t, "Client number already in use", got.Message)
	assert.Nil(t, got.Details)
}

func TestToHTTP_WrappedAppError(t *testing.T) {
	inner := Wrap(errors.New("pq: row missing"), CodeNotFound, "Staff not found", http.StatusNotFound)
	wrapped := fmt.Errorf("resolve profile: %w", inner)

	got := ToHTTP(wrapped)

	assert.Equal(t, http.StatusNotFound, got.Status)
	assert.Equal(t, CodeNotFound, got.Code)
	assert.Equal(t, "Staff not found", got.Message)
}

func TestToHTTP_PartialFailureCarriesDetail(t *testing.T) {
	err := PartialFailure("delivery record", "client mirror update", errors.New("connection reset"))

	got := ToHTTP(err)

	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, CodePartialFailure, got.Code)
	detail, ok := got.Details.(PartialFailureDetail)
	assert.True(t, ok)
	assert.Equal(t, "delivery record", detail.Completed)
	assert.Equal(t, "client mirror update", detail.Failed)
}

func TestToHTTP_UnknownErrorMasked(t *testing.T) {
	got := ToHTTP(errors.New("dial tcp 10.0.0.4:5432: i/o timeout"))

	assert.Equal(t, http.StatusInternalServerError, got.Status)
	assert.Equal(t, CodeInternalError, got.Code)
	assert.Equal(t, "An unexpected error occurred", got.Message)
	assert.Nil(t, got.Details)
}
