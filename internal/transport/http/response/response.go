package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 约定：成功直接回实体文档本身，错误统一 {"message": ...} + 对应状态码

type ErrorBody struct {
	Message string `json:"message"`
}

func OK(c *gin.Context, data any) { c.JSON(http.StatusOK, data) }

func Err(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, ErrorBody{Message: msg})
}

func BadRequest(c *gin.Context, msg string) { Err(c, http.StatusBadRequest, msg) }

func Unauthorized(c *gin.Context, msg string) { Err(c, http.StatusUnauthorized, msg) }

func NotFound(c *gin.Context, msg string) { Err(c, http.StatusNotFound, msg) }

func Internal(c *gin.Context, msg string) { Err(c, http.StatusInternalServerError, msg) }
