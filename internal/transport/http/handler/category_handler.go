package handler

import (
	"github.com/gin-gonic/gin"

	"go-bookstore-api/internal/service"
	resp "go-bookstore-api/internal/transport/http/response"
)

type CategoryHandler struct {
	svc *service.CategoryService
}

func NewCategoryHandler(svc *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: svc}
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var in service.CategoryCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Create(in)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, cat)
}

func (h *CategoryHandler) List(c *gin.Context) {
	cats, err := h.svc.List()
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, cats)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	cat, err := h.svc.Get(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	var in service.CategoryPatch
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := h.svc.Update(c.Param("id"), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	n, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deletedCount": n})
}
