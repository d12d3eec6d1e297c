package middleware

import (
	"time"

	"github.com/ariebrainware/pilates-studio/util"
	"github.com/gin-gonic/gin"
)

// EndpointCallLogger writes one access event per served request. Events are
// persisted to the access_logs table once util.SetAccessLoggerDB has been called.
func EndpointCallLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)
		status := c.Writer.Status()

		details := map[string]interface{}{
			"method":      c.Request.Method,
			"route":       c.FullPath(),
			"raw_path":    c.Request.URL.Path,
			"status":      status,
			"duration_ms": duration.Milliseconds(),
		}
		if q := c.Request.URL.RawQuery; q != "" {
			details["query"] = q
		}
		if role := c.GetString(RoleKey); role != "" {
			details["role"] = role
		}

		subject, _ := GetSubject(c)
		util.LogAccess(util.AccessEvent{
			RequestID: c.GetString(util.RequestIDKey),
			Subject:   subject,
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Status:    status,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
			Details:   details,
		})
	}
}
