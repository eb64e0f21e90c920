package server

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"vidurl/internal/auth"
)

// requireKey rejects requests whose x-api-key (query or header) does not
// match the configured secret.
func (s *Server) requireKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.gate.Allow(c.Query(auth.KeyName), c.GetHeader(auth.KeyName)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "Could not validate credentials"})
			return
		}
		c.Next()
	}
}

// requestLogger logs one line per request. The query string is left out
// because it may carry the credential.
func requestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).Round(time.Millisecond),
			"client":   c.ClientIP(),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Error("request")
			return
		}
		entry.Info("request")
	}
}

func recovery(log *logrus.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, err any) {
		log.WithFields(logrus.Fields{
			"error": err,
			"stack": string(debug.Stack()),
		}).Error("panic recovered")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	})
}
