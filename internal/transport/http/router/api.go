package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"go-bookstore-api/internal/core/auth"
	"go-bookstore-api/internal/transport/http/handler"
	mdw "go-bookstore-api/internal/transport/http/middleware"
)

// Handlers 一次性把各资源的 handler 注入路由表
type Handlers struct {
	User     *handler.UserHandler
	Book     *handler.BookHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Upload   *handler.UploadHandler
}

// NewAPIEngine 静态路由表：动词 + 路径 → controller 操作，
// 写接口按需挂鉴权中间件。
func NewAPIEngine(l *zap.Logger, h Handlers, jwter *auth.JWTer) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		cors.Default(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		mdw.SimpleRecovery(),
		mdw.Metrics(),
		ginzap.Ginzap(l, time.RFC3339, true),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authed := mdw.AuthJWT(jwter)

	// 用户 / 认证
	r.POST("/auth/register", h.User.Register)
	r.POST("/auth/login", h.User.Login)
	r.GET("/me", authed, h.User.Me)
	users := r.Group("/users")
	{
		users.GET("/", h.User.List)
		users.GET("/:id", h.User.Get)
		users.PATCH("/:id", authed, h.User.Update)
		// 用户不提供删除
	}

	// 书
	books := r.Group("/books")
	{
		books.POST("/add", h.Book.Create)
		books.GET("/", h.Book.List)
		books.GET("/list", h.Book.ListWithCreator)
		books.GET("/:id", h.Book.Get)
		books.PATCH("/:id", h.Book.Update)
		books.DELETE("/:id", h.Book.Delete)
	}

	// 商品（写操作需要登录）
	products := r.Group("/products")
	{
		products.POST("/add", authed, h.Product.Create)
		products.GET("/", h.Product.List)
		products.GET("/list", h.Product.ListWithCategory)
		products.GET("/stats", h.Product.Stats)
		products.GET("/:id", h.Product.Get)
		products.PATCH("/:id", authed, h.Product.Update)
		products.DELETE("/:id", authed, h.Product.Delete)
	}

	// 分类（写操作需要登录）
	categories := r.Group("/categories")
	{
		categories.POST("/add", authed, h.Category.Create)
		categories.GET("/", h.Category.List)
		categories.GET("/:id", h.Category.Get)
		categories.PATCH("/:id", authed, h.Category.Update)
		categories.DELETE("/:id", authed, h.Category.Delete)
	}

	// 图片上传
	if h.Upload != nil {
		r.POST("/upload/image", authed, h.Upload.Image)
	}

	return r
}
