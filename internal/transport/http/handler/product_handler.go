package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"go-bookstore-api/internal/service"
	resp "go-bookstore-api/internal/transport/http/response"
)

type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in service.ProductCreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Create(in)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, p)
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.svc.List()
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, products)
}

// ListWithCategory GET /products/list?category=<name>
func (h *ProductHandler) ListWithCategory(c *gin.Context) {
	products, err := h.svc.ListWithCategory(c.Query("category"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, products)
}

// Stats GET /products/stats?sort=desc&limit=N
// 按价格分组、数量求和，可选按总量倒序并截断
func (h *ProductHandler) Stats(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	groups, err := h.svc.Stats(c.Query("sort") == "desc", limit)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, groups)
}

func (h *ProductHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var in service.ProductPatch
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	p, err := h.svc.Update(c.Param("id"), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	n, err := h.svc.Delete(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, gin.H{"deletedCount": n})
}
