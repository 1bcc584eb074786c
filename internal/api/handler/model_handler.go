package handler

import (
	"churn-shield/internal/infrastructure/model"
	"log/slog"
	"net/http"
)

// ModelInfoProvider reports the model currently serving predictions.
type ModelInfoProvider interface {
	Info() (model.Info, error)
}

type ModelHandler struct {
	models ModelInfoProvider
	logger *slog.Logger
}

func NewModelHandler(models ModelInfoProvider, l *slog.Logger) *ModelHandler {
	if models == nil {
		panic("model info provider cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &ModelHandler{models: models, logger: l.With("component", "ModelHandler")}
}

// GetModel handles GET /model
// @Summary Describe the loaded model
// @Tags Model
// @Produce json
// @Success 200 {object} model.Info "Loaded model"
// @Failure 401 {object} dto.ErrorResponse "Not logged in"
// @Failure 503 {object} dto.ErrorResponse "No model loaded"
// @Router /model [get]
// @Security BearerAuth
func (h *ModelHandler) GetModel(w http.ResponseWriter, r *http.Request) {
	info, err := h.models.Info()
	if err != nil {
		h.logger.WarnContext(r.Context(), "Model info unavailable", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}
