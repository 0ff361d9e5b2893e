package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	reqidmiddleware "github.com/noah-isme/ams-api/pkg/middleware/requestid"
)

// Audit writes an audit log line after a successful state-changing request.
func Audit(logger *zap.Logger, action string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		fields := []zap.Field{
			zap.String("action", action),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Int64("latency_ms", time.Since(start).Milliseconds()),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.GetHeader("User-Agent")),
		}
		if id := reqidmiddleware.Value(c); id != "" {
			fields = append(fields, zap.String("request_id", id))
		}
		if session, ok := SessionFrom(c); ok {
			fields = append(fields, zap.String("role", string(session.Role())), zap.String("subject_id", session.SubjectID()))
		}
		logger.Info("audit", fields...)
	}
}
