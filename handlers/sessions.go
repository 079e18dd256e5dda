package handlers

import (
	"net/http"
	"time"

	"tutorly/models"
	"tutorly/services/sessions"
	"tutorly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SessionHandler struct {
	Service sessions.SessionService
	Logger  *zap.Logger
	Now     func() time.Time
}

func NewSessionHandler(svc sessions.SessionService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{Service: svc, Logger: logger, Now: time.Now}
}

func (h *SessionHandler) ListSessionsHandler(c *gin.Context) {
	tutorID, ok := tutorIDFrom(c)
	if !ok {
		return
	}

	var q models.SessionQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "INVALID_QUERY", "limit and offset must be integers")
		return
	}

	page, err := h.Service.ListSessions(c.Request.Context(), tutorID, q)
	if err != nil {
		writeServiceError(c, h.Logger, "fetch sessions", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", page)
}

// SessionBoardHandler classifies the tutor's sessions at request time.
func (h *SessionHandler) SessionBoardHandler(c *gin.Context) {
	tutorID, ok := tutorIDFrom(c)
	if !ok {
		return
	}

	board, err := h.Service.Board(c.Request.Context(), tutorID, c.Query("date"), h.Now())
	if err != nil {
		writeServiceError(c, h.Logger, "build session board", err)
		return
	}
	utils.JSONSuccess(c, http.StatusOK, "", board)
}
