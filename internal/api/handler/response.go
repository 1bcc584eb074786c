package handler

import (
	"churn-shield/internal/api/handler/dto"
	"churn-shield/internal/pkg/apperrors"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

func decodeJSON(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return fmt.Errorf("no request body")
	}
	defer r.Body.Close()
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		slog.Default().Error("Failed to marshal JSON response", "error", err)
		http.Error(w, `{"error":{"message":"Internal server error"}}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(response)
}

func respondError(w http.ResponseWriter, err error) {
	status, detail := errorDetail(err)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "5")
	}
	respondJSON(w, status, dto.ErrorResponse{Error: detail})
}

func errorDetail(err error) (int, dto.ErrorDetail) {
	var (
		missing    *apperrors.MissingColumnError
		unmapped   *apperrors.UnmappedCategoryError
		validation *apperrors.ValidationError
		appErr     *apperrors.AppError
	)

	switch {
	case errors.As(err, &missing):
		return http.StatusBadRequest, dto.ErrorDetail{Code: "MISSING_COLUMNS", Message: missing.Error(), Missing: missing.Missing}
	case errors.As(err, &unmapped):
		return http.StatusBadRequest, dto.ErrorDetail{Code: "UNMAPPED_CATEGORY", Message: unmapped.Error(), Field: unmapped.Field}
	case errors.As(err, &validation):
		return http.StatusBadRequest, dto.ErrorDetail{Code: "VALIDATION", Message: validation.Message, Field: validation.Field}
	case errors.Is(err, apperrors.ErrInvalidArgument), errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest, dto.ErrorDetail{Code: "INVALID_ARGUMENT", Message: err.Error()}
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.ErrorDetail{Code: "UNAUTHORIZED", Message: err.Error()}
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden, dto.ErrorDetail{Code: "FORBIDDEN", Message: err.Error()}
	case errors.Is(err, apperrors.ErrAlreadyExists):
		return http.StatusConflict, dto.ErrorDetail{Code: "ALREADY_EXISTS", Message: err.Error()}
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.ErrorDetail{Code: "CONFLICT", Message: err.Error()}
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, dto.ErrorDetail{Code: "NOT_FOUND", Message: "Resource not found."}
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, dto.ErrorDetail{Code: "STORE_UNAVAILABLE", Message: "A backing store is unavailable, please retry."}
	case errors.Is(err, apperrors.ErrModelUnavailable):
		return http.StatusServiceUnavailable, dto.ErrorDetail{Code: "MODEL_UNAVAILABLE", Message: "The prediction model is not loaded."}
	case errors.As(err, &appErr):
		return http.StatusInternalServerError, dto.ErrorDetail{Code: appErr.Code, Message: "An unexpected error occurred."}
	}
	slog.Default().Error("Unhandled internal error", "error", err)
	return http.StatusInternalServerError, dto.ErrorDetail{Message: "An unexpected error occurred."}
}
