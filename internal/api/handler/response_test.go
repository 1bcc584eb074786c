package handler

import (
	"churn-shield/internal/domain/session"
	"churn-shield/internal/domain/user"
	"churn-shield/internal/pkg/apperrors"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorDetail(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"missing columns", &apperrors.MissingColumnError{Missing: []string{"tenure"}}, http.StatusBadRequest, "MISSING_COLUMNS"},
		{"unmapped category", &apperrors.UnmappedCategoryError{Field: "Contract", Value: "x"}, http.StatusBadRequest, "UNMAPPED_CATEGORY"},
		{"validation", apperrors.NewValidationError("tenure", "row 1: \"\" is not a number"), http.StatusBadRequest, "VALIDATION"},
		{"invalid argument", fmt.Errorf("%w: bad json", apperrors.ErrInvalidArgument), http.StatusBadRequest, "INVALID_ARGUMENT"},
		{"invalid credentials", user.ErrInvalidCredentials, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"duplicate user", user.ErrDuplicateUser, http.StatusConflict, "ALREADY_EXISTS"},
		{"invalid transition", session.ErrInvalidTransition, http.StatusConflict, "CONFLICT"},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"store unavailable", apperrors.WrapStoreUnavailable(errors.New("refused"), "ping"), http.StatusServiceUnavailable, "STORE_UNAVAILABLE"},
		{"model unavailable", apperrors.ErrModelUnavailable, http.StatusServiceUnavailable, "MODEL_UNAVAILABLE"},
		{"database", apperrors.WrapDatabaseError(errors.New("syntax"), "insert"), http.StatusInternalServerError, "DB_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := errorDetail(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.code, detail.Code)
		})
	}
}

func TestRespondErrorRetryAfter(t *testing.T) {
	rec := httptest.NewRecorder()
	respondError(rec, apperrors.ErrModelUnavailable)
	assert.Equal(t, "5", rec.Header().Get("Retry-After"))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	respondError(rec, apperrors.ErrNotFound)
	assert.Empty(t, rec.Header().Get("Retry-After"))
}
