package handler

import (
	"bytes"
	"churn-shield/internal/api/handler/dto"
	"churn-shield/internal/api/middleware"
	"churn-shield/internal/domain/prediction"
	"churn-shield/internal/infrastructure/tabular"
	"churn-shield/internal/pkg/apperrors"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

const defaultMaxUploadBytes = 10 << 20

type PredictionHandler struct {
	service  prediction.Service
	maxBytes int64
	logger   *slog.Logger
}

func NewPredictionHandler(s prediction.Service, maxBytes int64, l *slog.Logger) *PredictionHandler {
	if s == nil {
		panic("prediction service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	return &PredictionHandler{
		service:  s,
		maxBytes: maxBytes,
		logger:   l.With("component", "PredictionHandler"),
	}
}

func getBatchIDFromURL(r *http.Request) (string, error) {
	id := strings.TrimSpace(chi.URLParam(r, "batchID"))
	if id == "" {
		return "", fmt.Errorf("%w: batchID not found in URL path", apperrors.ErrInvalidArgument)
	}
	return id, nil
}

func requestUsername(r *http.Request) string {
	if s, ok := middleware.SessionFromContext(r.Context()); ok {
		return s.Username
	}
	return ""
}

// PredictOnline handles POST /predictions/online
// @Summary Predict churn for one customer
// @Description Encodes the form values, scores them and reports the label with the confidence of that label.
// @Tags Predictions
// @Accept json
// @Produce json
// @Param request body dto.OnlinePredictionRequest true "Customer attributes"
// @Success 200 {object} dto.OnlinePredictionResponse "Prediction"
// @Failure 400 {object} dto.ErrorResponse "Unknown category value or malformed body"
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Failure 503 {object} dto.ErrorResponse "Model not loaded"
// @Router /predictions/online [post]
// @Security BearerAuth
func (h *PredictionHandler) PredictOnline(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req dto.OnlinePredictionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(ctx, "Failed to decode request body", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}

	res, err := h.service.PredictOnline(ctx, req.ToRecord())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewOnlinePredictionResponse(res))
}

// PredictBatch handles POST /predictions/batch
// @Summary Predict churn for an uploaded file
// @Description Accepts a CSV or XLSX file with a header row, scores every row and keeps the result for download.
// @Tags Predictions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV or XLSX upload"
// @Success 201 {object} dto.BatchPredictionResponse "Batch result"
// @Failure 400 {object} dto.ErrorResponse "Missing columns, unknown category value or unreadable file"
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Failure 503 {object} dto.ErrorResponse "Model or result store unavailable"
// @Router /predictions/batch [post]
// @Security BearerAuth
func (h *PredictionHandler) PredictBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, apperrors.NewValidationError("file", fmt.Sprintf("upload exceeds %d bytes", tooLarge.Limit)))
			return
		}
		respondError(w, fmt.Errorf("%w: %v", apperrors.ErrInvalidArgument, err))
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		respondError(w, apperrors.NewValidationError("file", "a CSV or XLSX file is required"))
		return
	}
	defer file.Close()

	logCtx := h.logger.With(slog.String("filename", header.Filename), slog.Int64("size", header.Size))
	batch, err := tabular.ParseUpload(header.Filename, file)
	if err != nil {
		logCtx.WarnContext(ctx, "Rejected upload", slog.Any("error", err))
		respondError(w, err)
		return
	}

	res, err := h.service.PredictBatch(ctx, requestUsername(r), batch)
	if err != nil {
		respondError(w, err)
		return
	}
	logCtx.InfoContext(ctx, "Batch scored", slog.String("batchID", res.ID), slog.Int("rows", len(res.Rows)))
	respondJSON(w, http.StatusCreated, dto.NewBatchPredictionResponse(res))
}

// batchForRequest loads a batch result. Results stored for another user
// are reported as not found.
func (h *PredictionHandler) batchForRequest(r *http.Request) (*prediction.BatchResult, error) {
	id, err := getBatchIDFromURL(r)
	if err != nil {
		return nil, err
	}
	res, err := h.service.GetBatch(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if username := requestUsername(r); res.Username != "" && username != "" && res.Username != username {
		return nil, fmt.Errorf("%w: batch %s", apperrors.ErrNotFound, id)
	}
	return res, nil
}

// GetBatch handles GET /predictions/batch/{batchID}
// @Summary Fetch a batch result
// @Tags Predictions
// @Produce json
// @Param batchID path string true "Batch ID"
// @Success 200 {object} dto.BatchPredictionResponse "Batch result"
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired batch"
// @Router /predictions/batch/{batchID} [get]
// @Security BearerAuth
func (h *PredictionHandler) GetBatch(w http.ResponseWriter, r *http.Request) {
	res, err := h.batchForRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, dto.NewBatchPredictionResponse(res))
}

// DownloadBatch handles GET /predictions/batch/{batchID}/download
// @Summary Download a batch result
// @Description Streams the result table as CSV (default) or XLSX.
// @Tags Predictions
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param batchID path string true "Batch ID"
// @Param format query string false "csv or xlsx" Enums(csv, xlsx)
// @Success 200 {file} file "Result table"
// @Failure 400 {object} dto.ErrorResponse "Unsupported format"
// @Failure 404 {object} dto.ErrorResponse "Unknown or expired batch"
// @Router /predictions/batch/{batchID}/download [get]
// @Security BearerAuth
func (h *PredictionHandler) DownloadBatch(w http.ResponseWriter, r *http.Request) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = tabular.FormatCSV
	}
	if format != tabular.FormatCSV && format != tabular.FormatXLSX {
		respondError(w, apperrors.NewValidationError("format", "expected csv or xlsx"))
		return
	}

	res, err := h.batchForRequest(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := tabular.Write(&buf, format, res.Rows); err != nil {
		h.logger.ErrorContext(r.Context(), "Failed to render export", slog.Any("error", err))
		respondError(w, fmt.Errorf("%w: %w", apperrors.ErrInternalServer, err))
		return
	}

	w.Header().Set("Content-Type", tabular.ContentType(format))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, tabular.FileName(format)))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
