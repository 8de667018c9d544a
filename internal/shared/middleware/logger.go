package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Logger emits one event per request, tagged with the caller's role
// when AuthMiddleware has resolved one (driver/client traffic is the
// interesting split in this API).
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		evt := log.Info().
			Str("request_id", c.GetString("request_id")).
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", c.Writer.Status()).
			Int("bytes", c.Writer.Size()).
			Dur("latency_ms", time.Since(start)).
			Str("ip", c.ClientIP())

		if role := c.GetString(CtxRole); role != "" {
			evt = evt.Str("role", role)
		}

		evt.Msg("request served")
	}
}
