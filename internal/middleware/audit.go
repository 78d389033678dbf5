package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Audit writes one audit entry per successful request to the given logger,
// tagged with action and resource and the acting user when authenticated.
func Audit(logger *zap.Logger, action, resource string) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now().UTC()
		c.Next()

		if c.Writer.Status() >= 400 {
			return
		}

		fields := []zap.Field{
			zap.String("action", action),
			zap.String("resource", resource),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.String("ip", c.ClientIP()),
			zap.String("user_agent", c.GetHeader("User-Agent")),
			zap.Duration("latency", time.Since(start)),
		}
		if claims, ok := CurrentUser(c); ok {
			fields = append(fields, zap.Int64("user_id", claims.UserID), zap.String("role", string(claims.Role)))
		}
		if id, ok := c.Get(AuditResourceIDKey); ok {
			fields = append(fields, zap.Any("resource_id", id))
		}
		logger.Info("audit", fields...)
	}
}

// AuditResourceIDKey lets handlers attach the id of the record they produced.
const AuditResourceIDKey = "audit_resource_id"
