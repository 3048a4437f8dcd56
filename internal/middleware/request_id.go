package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	RequestIDHeader = "X-Request-ID"
	ctxRequestID    = "request_id"
)

// RequestID propagates or assigns a request ID and echoes it in the response.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Set(ctxRequestID, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Log returns a logrus entry tagged with the request ID and caller.
func Log(c *gin.Context) *logrus.Entry {
	fields := logrus.Fields{
		"request_id": c.GetString(ctxRequestID),
		"path":       c.FullPath(),
	}
	if uid := CurrentUserID(c); uid != 0 {
		fields["user_id"] = uid
	}
	return logrus.WithFields(fields)
}
