package handler

import (
	"context"
	"net/http"

	"medical-appointments-api/internal/delivery/dto"
	"medical-appointments-api/pkg/response"

	"github.com/sirupsen/logrus"
)

// HealthChecker reports per-dependency status.
type HealthChecker interface {
	Check(ctx context.Context) (map[string]string, error)
}

type HealthHandler struct {
	checker HealthChecker
	log     *logrus.Logger
}

func NewHealthHandler(checker HealthChecker, log *logrus.Logger) *HealthHandler {
	return &HealthHandler{
		checker: checker,
		log:     log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	checks, err := h.checker.Check(r.Context())
	if err != nil {
		h.log.Warnf("Health check failed: %+v", err)
		response.JSON(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Checks: checks})
		return
	}

	response.JSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Checks: checks})
}
