// File: tutorly/handlers/bundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Availability endpoints
	CreateAvailabilityHandler gin.HandlerFunc
	UpdateAvailabilityHandler gin.HandlerFunc
	ListAvailabilityHandler   gin.HandlerFunc

	// Session endpoints
	ListSessionsHandler gin.HandlerFunc
	SessionBoardHandler gin.HandlerFunc

	MaxRequestsPerMin int
}

// NewHandlerBundle wires the availability and session handlers.
func NewHandlerBundle(av *AvailabilityHandler, ss *SessionHandler, maxPerMin int) *HandlerBundle {
	return &HandlerBundle{
		CreateAvailabilityHandler: av.CreateAvailabilityHandler,
		UpdateAvailabilityHandler: av.UpdateAvailabilityHandler,
		ListAvailabilityHandler:   av.ListAvailabilityHandler,
		ListSessionsHandler:       ss.ListSessionsHandler,
		SessionBoardHandler:       ss.SessionBoardHandler,
		MaxRequestsPerMin:         maxPerMin,
	}
}
