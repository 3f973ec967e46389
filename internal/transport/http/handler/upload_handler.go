package handler

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"go-bookstore-api/internal/storage"
	resp "go-bookstore-api/internal/transport/http/response"
	"go-bookstore-api/pkg/utils"
)

type UploadHandler struct {
	store storage.ObjectStore
}

func NewUploadHandler(store storage.ObjectStore) *UploadHandler {
	return &UploadHandler{store: store}
}

// Image POST /upload/image，multipart 字段名 image；
// 返回的 url 可直接填进商品的 image 字段
func (h *UploadHandler) Image(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		resp.BadRequest(c, "image file is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	defer f.Close()

	key := utils.NewID() + filepath.Ext(fh.Filename)
	contentType := fh.Header.Get("Content-Type")
	url, err := h.store.Put(c.Request.Context(), key, f, fh.Size, contentType)
	if err != nil {
		resp.Internal(c, err.Error())
		return
	}
	resp.OK(c, gin.H{"url": url, "key": key})
}
