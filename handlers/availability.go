package handlers

import (
	"net/http"

	"tutorly/models"
	"tutorly/services/availability"
	"tutorly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AvailabilityHandler struct {
	Service availability.AvailabilityService
	Logger  *zap.Logger
}

func NewAvailabilityHandler(svc availability.AvailabilityService, logger *zap.Logger) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc, Logger: logger}
}

func (h *AvailabilityHandler) CreateAvailabilityHandler(c *gin.Context) {
	tutorID, ok := tutorIDFrom(c)
	if !ok {
		return
	}

	var req models.AvailabilityPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Warn("Invalid availability payload", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "MISSING_FIELD", "Invalid request payload: "+err.Error())
		return
	}

	window, err := h.Service.CreateAvailability(c.Request.Context(), tutorID, req)
	if err != nil {
		writeServiceError(c, h.Logger, "create availability", err)
		return
	}
	utils.JSONSuccess(c, http.StatusCreated, "Availability created", window)
}

func (h *AvailabilityHandler) UpdateAvailabilityHandler(c *gin.Context) {
	tutorID, ok := tutorIDFrom(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if id == "" {
		utils.JSONError(c, http.StatusBadRequest, "MISSING_FIELD", "Missing availability ID in path")
		return
	}

	var req models.AvailabilityPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Logger.Warn("Invalid availability payload", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "MISSING_FIELD", "Invalid request payload: "+err.Error())
		return
	}

	window, err := h.Service.UpdateAvailability(c.Request.Context(), tutorID, id, req)
	if err != nil {
		writeServiceError(c, h.Logger, "update availability", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "Availability updated", window)
}

func (h *AvailabilityHandler) ListAvailabilityHandler(c *gin.Context) {
	tutorID, ok := tutorIDFrom(c)
	if !ok {
		return
	}

	windows, err := h.Service.ListAvailability(c.Request.Context(), tutorID)
	if err != nil {
		writeServiceError(c, h.Logger, "fetch availability", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", windows)
}
