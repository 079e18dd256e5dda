package routes

import (
	"net/http"
	"time"

	"tutorly/handlers"
	"tutorly/middleware"
	"tutorly/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterTutorRoutes registers the signed-in tutor's availability and session endpoints.
func RegisterTutorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	me := r.Group("/api/tutors/me")
	{
		me.Use(middleware.JWTAuthTutorMiddleware())
		me.GET("/availability", hb.ListAvailabilityHandler)
		me.POST("/availability", hb.CreateAvailabilityHandler)
		me.PATCH("/availability/:id", hb.UpdateAvailabilityHandler)

		me.GET("/sessions", hb.ListSessionsHandler)
		me.GET("/sessions/board", hb.SessionBoardHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware(hb.MaxRequestsPerMin))

	RegisterHealthRoute(r)
	RegisterTutorRoutes(r, hb)
}
