package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"fitbooker/internal/classes/service"
	apperrors "fitbooker/pkg/errors"
	httputil "fitbooker/pkg/http"
	"fitbooker/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type ClassHandler struct {
	service service.ClassService
	log     *logger.Logger
}

func NewClassHandler(service service.ClassService, log *logger.Logger) *ClassHandler {
	return &ClassHandler{
		service: service,
		log:     log,
	}
}

func (h *ClassHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	classes, err := h.service.List(r.Context())
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, classes); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAll", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ClassHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := h.classID(w, ps, "GetByID")
	if !ok {
		return
	}

	class, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, class); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ClassHandler) GetAvailability(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id, ok := h.classID(w, ps, "GetAvailability")
	if !ok {
		return
	}

	availability, err := h.service.Availability(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAvailability", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, availability); err != nil {
		h.log.Error("failed to write success response", "handler", "GetAvailability", "operation", "WriteSuccess", "error", err)
	}
}

func (h *ClassHandler) classID(w http.ResponseWriter, ps httprouter.Params, handlerName string) (int64, bool) {
	raw := ps.ByName("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput(fmt.Sprintf("invalid class id: %s", raw))); writeErr != nil {
			h.log.Error("failed to write error response", "handler", handlerName, "operation", "WriteError", "error", writeErr)
		}
		return 0, false
	}
	return id, true
}

func (h *ClassHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/classes", h.GetAll)
	router.GET("/api/v1/classes/id/:id", h.GetByID)
	router.GET("/api/v1/classes/id/:id/availability", h.GetAvailability)
}
