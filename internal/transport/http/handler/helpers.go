package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"go-bookstore-api/internal/service"
	resp "go-bookstore-api/internal/transport/http/response"
)

// writeErr 把 service 层的错误分类翻译成状态码 + {"message": ...}
func writeErr(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		resp.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, service.ErrBadPassword):
		resp.Unauthorized(c, "invalid credentials")
	default:
		resp.Internal(c, err.Error())
	}
}
