package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
	userIDKey       = "user_id"
)

// requestID tags every request with an id, reusing the caller's when present
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := log.WithFields(log.Fields{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"latency":    time.Since(start),
			"request_id": c.GetString(requestIDKey),
		})
		if c.Writer.Status() >= http.StatusInternalServerError {
			entry.Warn("request served")
			return
		}
		entry.Info("request served")
	}
}

func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithFields(log.Fields{
			"operation":  "api.recovery",
			"panic":      recovered,
			"request_id": c.GetString(requestIDKey),
		}).Error("handler panicked")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": unexpectedErrorMessage})
	})
}

// requireUser rejects requests without a valid session and records the caller
func requireUser(provider Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		const op = "api.requireUser"

		userID, ok, err := provider.CurrentUser(c.Request)
		if err != nil {
			respondError(c, op, err)
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		c.Set(userIDKey, userID)
		c.Next()
	}
}

// UserFromContext returns the authenticated caller set by requireUser
func UserFromContext(c *gin.Context) string {
	return c.GetString(userIDKey)
}
