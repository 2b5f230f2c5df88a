package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDKey    = "request.id"
	RequestIDHeader = "X-Request-Id"
)

// GetRequestID returns the id assigned to the request by the request id middleware
func GetRequestID(c *gin.Context) string {
	requestID, ok := c.Get(requestIDKey)
	if ok {
		return requestID.(string)
	}
	return ""
}

func NewRequestIDMiddleware() gin.HandlerFunc {
	return requestIDMiddleware{}.build()
}

type requestIDMiddleware struct {
}

func (r requestIDMiddleware) build() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := r.getID(c)
		c.Set(requestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// getID keeps a caller supplied id when it is a valid uuid
func (r requestIDMiddleware) getID(c *gin.Context) string {
	if id, err := uuid.Parse(c.GetHeader(RequestIDHeader)); err == nil {
		return id.String()
	}
	return uuid.New().String()
}
