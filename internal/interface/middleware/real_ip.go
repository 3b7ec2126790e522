package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

var defaultIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// RealIP sets the real client IP into Gin context (key: "real_ip").
// Headers are tried in order; for X-Forwarded-For the left-most entry is used.
// Falls back to c.ClientIP(). With no headers given, CF-Connecting-IP,
// X-Real-IP and X-Forwarded-For are tried.
func RealIP(headers ...string) gin.HandlerFunc {
	if len(headers) == 0 {
		headers = defaultIPHeaders
	}
	return func(c *gin.Context) {
		c.Set("real_ip", resolveIP(c, headers))
		c.Next()
	}
}

func resolveIP(c *gin.Context, headers []string) string {
	for _, h := range headers {
		v := c.GetHeader(h)
		if v == "" {
			continue
		}
		first := strings.TrimSpace(strings.Split(v, ",")[0])
		if ip := net.ParseIP(first); ip != nil {
			return ip.String()
		}
	}
	return c.ClientIP()
}
