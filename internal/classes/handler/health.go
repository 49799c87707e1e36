package handler

import (
	"net/http"

	"fitbooker/internal/classes/repository"
	httputil "fitbooker/pkg/http"
	"fitbooker/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HealthResponse struct {
	Status  string `json:"status"`
	Catalog string `json:"catalog,omitempty"`
	Classes int    `json:"classes,omitempty"`
}

type HealthHandler struct {
	catalog repository.ClassRepository
	log     *logger.Logger
}

func NewHealthHandler(catalog repository.ClassRepository, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		catalog: catalog,
		log:     log,
	}
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Health", "operation", "WriteJSON", "error", err)
	}
}

// Ready reports readiness only once the class catalog has been seeded.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	count, err := h.catalog.Count(r.Context())
	if err != nil || count == 0 {
		if err != nil {
			h.log.Error("Catalog readiness check failed", "error", err, "path", r.URL.Path)
		}
		if writeErr := httputil.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:  "unavailable",
			Catalog: "empty",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteJSON(w, http.StatusOK, HealthResponse{
		Status:  "ready",
		Catalog: "ok",
		Classes: count,
	}); err != nil {
		h.log.Error("failed to write JSON response", "handler", "Ready", "operation", "WriteJSON", "error", err)
	}
}

func (h *HealthHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/health", h.Health)
	router.GET("/ready", h.Ready)
}
