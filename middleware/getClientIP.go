package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// clientIPHeaders are consulted in order before falling back to RemoteAddr.
var clientIPHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// getClientIP keys rate limiting and auth logs. Only the first hop of a
// forwarded chain is used, and values that do not parse as an IP are ignored.
func getClientIP(c *gin.Context) string {
	for _, h := range clientIPHeaders {
		first, _, _ := strings.Cut(c.GetHeader(h), ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}

	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
