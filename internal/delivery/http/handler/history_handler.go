package handler

import (
	"net/http"

	"medical-appointments-api/internal/delivery/http/middleware"
	"medical-appointments-api/internal/usecase"
	"medical-appointments-api/pkg/response"
)

type HistoryHandler struct {
	historyUsecase usecase.HistoryUsecase
}

func NewHistoryHandler(historyUsecase usecase.HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{
		historyUsecase: historyUsecase,
	}
}

func (h *HistoryHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	records, err := h.historyUsecase.ListMine(r.Context(), user.ID)
	if err != nil {
		response.InternalServerError(w, "")
		return
	}

	response.Success(w, http.StatusOK, "History retrieved successfully", records)
}
