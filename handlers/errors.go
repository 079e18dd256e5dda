package handlers

import (
	"errors"
	"net/http"

	availabilityRepo "tutorly/database/repository/availability"
	"tutorly/middleware"
	"tutorly/services/scheduling"
	"tutorly/services/sessions"
	"tutorly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// tutorIDFrom reads the tutor ID set by JWTAuthTutorMiddleware.
func tutorIDFrom(c *gin.Context) (string, bool) {
	v, exists := c.Get(middleware.TutorIDKey)
	if !exists {
		utils.JSONError(c, http.StatusUnauthorized, "AUTH_REQUIRED", "authentication required")
		return "", false
	}
	tutorID, ok := v.(string)
	if !ok || tutorID == "" {
		utils.JSONError(c, http.StatusUnauthorized, "AUTH_REQUIRED", "authentication required")
		return "", false
	}
	return tutorID, true
}

// writeServiceError maps a service failure to a status code and envelope.
func writeServiceError(c *gin.Context, logger *zap.Logger, action string, err error) {
	var ve *scheduling.ValidationError
	var qe *sessions.QueryError
	switch {
	case errors.As(err, &ve):
		utils.JSONError(c, http.StatusBadRequest, string(ve.Code), ve.Message)
	case errors.As(err, &qe):
		utils.JSONError(c, http.StatusBadRequest, "INVALID_QUERY", qe.Error())
	case errors.Is(err, availabilityRepo.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "NOT_FOUND", "availability window not found")
	default:
		logger.Error("Failed to "+action, zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "INTERNAL", "Failed to "+action)
	}
}
