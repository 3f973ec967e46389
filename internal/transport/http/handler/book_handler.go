package handler

import (
	"github.com/gin-gonic/gin"

	"go-bookstore-api/internal/service"
	resp "go-bookstore-api/internal/transport/http/response"
)

type BookHandler struct {
	svc *service.BookService
}

func NewBookHandler(svc *service.BookService) *BookHandler { return &BookHandler{svc: svc} }

func (h *BookHandler) Create(c *gin.Context) {
	var in service.BookCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.Create(in)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, b)
}

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.svc.List()
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, books)
}

// ListWithCreator GET /books/list?user=<name>
// 联查创建者并按姓名过滤；不带 user 参数时过滤阶段为 no-op
func (h *BookHandler) ListWithCreator(c *gin.Context) {
	books, err := h.svc.ListWithCreator(c.Query("user"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, books)
}

func (h *BookHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, b)
}

func (h *BookHandler) Update(c *gin.Context) {
	var in service.BookPatch
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	b, err := h.svc.Update(c.Param("id"), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, b)
}

func (h *BookHandler) Delete(c *gin.Context) {
	n, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	// 没删到行也算成功（幂等删除）
	resp.OK(c, gin.H{"deletedCount": n})
}
