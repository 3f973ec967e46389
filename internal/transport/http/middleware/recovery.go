package middleware

import (
	"github.com/gin-gonic/gin"

	resp "go-bookstore-api/internal/transport/http/response"
)

func SimpleRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				resp.Internal(c, "internal error")
			}
		}()
		c.Next()
	}
}
