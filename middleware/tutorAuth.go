package middleware

import (
	"net/http"
	"strings"

	"tutorly/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TutorIDKey is the gin context key holding the authenticated tutor's ID.
const TutorIDKey = "tutorID"

// JWTAuthTutorMiddleware validates the bearer token and sets the tutor ID in the context.
func JWTAuthTutorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := utils.GetLogger()

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.Envelope{
				Success: false, Code: "AUTH_REQUIRED", Message: "authentication required",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		tutorID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || tutorID == "" {
			logger.Warn("Rejected tutor token", zap.String("ip", getClientIP(c)), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.Envelope{
				Success: false, Code: "AUTH_REQUIRED", Message: "invalid or expired token",
			})
			return
		}

		c.Set(TutorIDKey, tutorID)
		c.Next()
	}
}
