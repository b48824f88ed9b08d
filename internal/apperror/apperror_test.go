package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodes(t *testing.T) {
	tests := map[*AppError]int{
		NewAuthError("x", nil):       http.StatusUnauthorized,
		NewNotFoundError("x", nil):   http.StatusNotFound,
		NewBadRequestError("x", nil): http.StatusBadRequest,
		NewConflictError("x", nil):   http.StatusConflict,
		NewDatabaseError("x", nil):   http.StatusInternalServerError,
		NewInternalError("x", nil):   http.StatusInternalServerError,
	}
	for appErr, want := range tests {
		assert.Equal(t, want, appErr.StatusCode(), appErr.Message)
	}
}

func TestFromHidesCause(t *testing.T) {
	cause := errors.New("pq: relation does not exist")
	appErr := From(fmt.Errorf("select: %w", cause))

	assert.Equal(t, InternalError, appErr.Type)
	assert.ErrorIs(t, appErr, cause)
	assert.Equal(t, "internal server error", appErr.ToResponse().Message)
}

func TestFromKeepsWrappedAppError(t *testing.T) {
	original := NewConflictError("email already registered", nil)
	assert.Same(t, original, From(fmt.Errorf("create: %w", original)))
	assert.True(t, IsNotFound(fmt.Errorf("lookup: %w", NewNotFoundError("gone", nil))))
}

func TestWrite(t *testing.T) {
	rr := httptest.NewRecorder()
	Write(rr, NewBadRequestError("invalid JSON payload", errors.New("eof")))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"message":"invalid JSON payload"}`, rr.Body.String())
}
