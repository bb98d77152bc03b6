package middleware

import (
	"net/http"

	"payment-portal/pkg/apperror"
	"payment-portal/pkg/response"

	"github.com/gin-gonic/gin"
)

// MaxBodySize caps the request body. Requests that declare a larger
// Content-Length are rejected up front; otherwise reads past the limit fail.
func MaxBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > maxBytes {
			response.Error(c, apperror.ErrPayloadTooLarge())
			c.Abort()
			return
		}
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
