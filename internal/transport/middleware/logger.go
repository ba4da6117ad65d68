package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader   = "X-Request-ID"
	RenderCacheHeader = "X-Render-Cache"

	// RenderWarningsKey holds the number of skipped overlays of a render.
	RenderWarningsKey = "render_warnings"
)

// Logger writes one entry per request. It tags the request with an id
// (taken from X-Request-ID when the caller sends one) and adds the creative
// id, render cache status and warning count when the handler produced them.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		fields := logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"route":      c.FullPath(),
			"path":       c.Request.URL.Path,
			"status":     status,
			"bytes":      c.Writer.Size(),
			"duration":   time.Since(start),
			"client_ip":  c.ClientIP(),
			"user_agent": c.Request.UserAgent(),
		}
		if id := c.Param("id"); id != "" {
			fields["creative_id"] = id
		}
		if cache := c.Writer.Header().Get(RenderCacheHeader); cache != "" {
			fields["render_cache"] = cache
		}
		if n, ok := c.Get(RenderWarningsKey); ok {
			fields[RenderWarningsKey] = n
		}
		if len(c.Errors) > 0 {
			fields["error"] = c.Errors.String()
		}

		entry := logrus.WithFields(fields)
		switch {
		case status >= 500:
			entry.Error("Request failed")
		case status >= 400:
			entry.Warn("Request rejected")
		default:
			entry.Info("Request processed")
		}
	}
}
