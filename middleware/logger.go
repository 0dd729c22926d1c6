package middleware

import (
	"time"

	"ledgerapi/logging"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RequestIDHeader echoed back on every response
const RequestIDHeader = "X-Request-ID"

// RequestLogger logs one line per request through logrus. Clients may pass
// their own X-Request-ID; otherwise one is generated.
func RequestLogger() gin.HandlerFunc {
	log := logging.Component("http")

	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(logging.FieldRequestID, requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		status := c.Writer.Status()
		entry := log.WithFields(logrus.Fields{
			logging.FieldRequestID: requestID,
			logging.FieldMethod:    c.Request.Method,
			logging.FieldPath:      c.Request.URL.Path,
			logging.FieldStatus:    status,
			logging.FieldLatency:   time.Since(start).String(),
			logging.FieldClientIP:  c.ClientIP(),
		})
		if userID := GetCurrentUserID(c); userID != "" {
			entry = entry.WithField(logging.FieldUserID, userID)
		}
		if len(c.Errors) > 0 {
			entry = entry.WithField("errors", c.Errors.String())
		}

		switch {
		case status >= 500:
			entry.Error("request")
		case status >= 400:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
	}
}

// CORS permissive cross-origin headers for browser clients
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With, X-Request-ID")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		h.Set("Access-Control-Expose-Headers", "Content-Disposition, X-Request-ID, Retry-After")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
