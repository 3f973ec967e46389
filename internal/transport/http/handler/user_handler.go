package handler

import (
	"github.com/gin-gonic/gin"

	"go-bookstore-api/internal/core/auth"
	"go-bookstore-api/internal/service"
	mdw "go-bookstore-api/internal/transport/http/middleware"
	resp "go-bookstore-api/internal/transport/http/response"
)

type UserHandler struct {
	svc   *service.UserService
	jwter *auth.JWTer
}

func NewUserHandler(svc *service.UserService, jwter *auth.JWTer) *UserHandler {
	return &UserHandler{svc: svc, jwter: jwter}
}

func (h *UserHandler) Register(c *gin.Context) {
	var in service.RegisterInput
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Register(c.Request.Context(), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, u)
}

func (h *UserHandler) Login(c *gin.Context) {
	var in struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Login(in.Email, in.Password)
	if err != nil {
		writeErr(c, err)
		return
	}
	tok, err := h.jwter.Issue(u.ID, u.Email)
	if err != nil {
		resp.Internal(c, "issue token failed")
		return
	}
	resp.OK(c, gin.H{"token": tok, "user": u})
}

func (h *UserHandler) Me(c *gin.Context) {
	claims, ok := c.Get(mdw.KeyClaims)
	if !ok {
		resp.Unauthorized(c, "unauthorized")
		return
	}
	u, err := h.svc.Get(claims.(*auth.Claims).UID)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, u)
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List()
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, users)
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Param("id"))
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, u)
}

func (h *UserHandler) Update(c *gin.Context) {
	var in service.UserPatch
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	u, err := h.svc.Update(c.Param("id"), in)
	if err != nil {
		writeErr(c, err)
		return
	}
	resp.OK(c, u)
}
