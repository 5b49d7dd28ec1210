package middleware

import (
	"net/http"
	"runtime/debug"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Logger writes one structured entry per request and turns panics into 500s.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		defer func() {
			if recovered := recover(); recovered != nil {
				logrus.WithFields(fields(c, start)).
					WithField("stack", string(debug.Stack())).
					Errorf("panic: %v", recovered)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "Internal Server Error",
				})
				return
			}

			entry := logrus.WithFields(fields(c, start))
			if len(c.Errors) > 0 {
				entry = entry.WithField("errors", c.Errors.String())
			}
			switch status := c.Writer.Status(); {
			case status >= http.StatusInternalServerError:
				entry.Error("request failed")
			case status >= http.StatusBadRequest:
				entry.Warn("request rejected")
			default:
				entry.Info("request served")
			}
		}()

		c.Next()
	}
}

func fields(c *gin.Context, start time.Time) logrus.Fields {
	return logrus.Fields{
		"method":     c.Request.Method,
		"path":       c.Request.URL.Path,
		"status":     c.Writer.Status(),
		"latency":    time.Since(start).String(),
		"client_ip":  c.ClientIP(),
		"request_id": c.GetHeader("X-Request-ID"),
	}
}
