package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"go-bookstore-api/internal/core/auth"
	"go-bookstore-api/internal/domain"
	"go-bookstore-api/internal/repo"
	"go-bookstore-api/internal/service"
	"go-bookstore-api/internal/transport/http/handler"
)

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&domain.User{}, &domain.Book{}, &domain.Product{}, &domain.Category{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	jwter := &auth.JWTer{Secret: []byte("test-secret"), Issuer: "bookstore", TTL: time.Hour}
	userRepo := repo.NewUserRepo(db)
	categoryRepo := repo.NewCategoryRepo(db)

	h := Handlers{
		User:     handler.NewUserHandler(service.NewUserService(userRepo, nil, zap.NewNop()), jwter),
		Book:     handler.NewBookHandler(service.NewBookService(repo.NewBookRepo(db), userRepo, []string{"book1"})),
		Product:  handler.NewProductHandler(service.NewProductService(repo.NewProductRepo(db), categoryRepo)),
		Category: handler.NewCategoryHandler(service.NewCategoryService(categoryRepo)),
	}
	return NewAPIEngine(zap.NewNop(), h, jwter)
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func registerAndLogin(t *testing.T, r *gin.Engine) (userID, token string) {
	t.Helper()
	w, out := doJSON(t, r, http.MethodPost, "/auth/register", "", gin.H{
		"name": "alice", "username": "alice", "email": "alice@example.com", "password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register: %d %s", w.Code, w.Body.String())
	}
	userID, _ = out["id"].(string)

	w, out = doJSON(t, r, http.MethodPost, "/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "secret1",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login: %d %s", w.Code, w.Body.String())
	}
	token, _ = out["token"].(string)
	if userID == "" || token == "" {
		t.Fatalf("missing id/token: %v", out)
	}
	return userID, token
}

func TestBookLifecycleOverHTTP(t *testing.T) {
	r := newTestEngine(t)
	userID, _ := registerAndLogin(t, r)

	// 哨兵书名：400 + message
	w, out := doJSON(t, r, http.MethodPost, "/books/add", "", gin.H{"name": "book1", "createdBy": userID})
	if w.Code != http.StatusBadRequest || out["message"] == nil {
		t.Fatalf("sentinel create: %d %v", w.Code, out)
	}

	// 正常创建
	w, out = doJSON(t, r, http.MethodPost, "/books/add", "", gin.H{"name": "dune", "createdBy": userID})
	if w.Code != http.StatusOK {
		t.Fatalf("create: %d %s", w.Code, w.Body.String())
	}
	bookID, _ := out["id"].(string)
	if bookID == "" || out["name"] != "dune" {
		t.Fatalf("created doc mismatch: %v", out)
	}

	// 读单条：创建者内联为嵌套对象
	w, out = doJSON(t, r, http.MethodGet, "/books/"+bookID, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get: %d %s", w.Code, w.Body.String())
	}
	creator, _ := out["createdBy"].(map[string]any)
	if creator == nil || creator["name"] != "alice" {
		t.Fatalf("creator not inlined: %v", out)
	}

	// 联查过滤
	w, _ = doJSON(t, r, http.MethodGet, "/books/list?user=alice", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list filtered: %d", w.Code)
	}

	// 部分更新
	w, out = doJSON(t, r, http.MethodPatch, "/books/"+bookID, "", gin.H{"name": "dune 2"})
	if w.Code != http.StatusOK || out["name"] != "dune 2" {
		t.Fatalf("patch: %d %v", w.Code, out)
	}

	// 不存在的 id → 404
	w, _ = doJSON(t, r, http.MethodGet, "/books/nothere", "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get missing: %d", w.Code)
	}
	w, _ = doJSON(t, r, http.MethodPatch, "/books/nothere", "", gin.H{"name": "x"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("patch missing: %d", w.Code)
	}

	// 幂等删除：先 1 后 0，都算成功
	w, out = doJSON(t, r, http.MethodDelete, "/books/"+bookID, "", nil)
	if w.Code != http.StatusOK || out["deletedCount"] != float64(1) {
		t.Fatalf("first delete: %d %v", w.Code, out)
	}
	w, out = doJSON(t, r, http.MethodDelete, "/books/"+bookID, "", nil)
	if w.Code != http.StatusOK || out["deletedCount"] != float64(0) {
		t.Fatalf("second delete: %d %v", w.Code, out)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r := newTestEngine(t)
	_, token := registerAndLogin(t, r)

	w, _ := doJSON(t, r, http.MethodPost, "/categories/add", "", gin.H{"name": "fiction"})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauthenticated create: %d", w.Code)
	}
	w, out := doJSON(t, r, http.MethodPost, "/categories/add", token, gin.H{"name": "fiction"})
	if w.Code != http.StatusOK {
		t.Fatalf("authenticated create: %d %s", w.Code, w.Body.String())
	}
	catID, _ := out["id"].(string)

	// 商品写接口同样要 token；负数价格被挡
	w, _ = doJSON(t, r, http.MethodPost, "/products/add", token, gin.H{
		"title": "mug", "price": -1, "quantity": 3, "categoryId": catID,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("negative price: %d", w.Code)
	}
	w, out = doJSON(t, r, http.MethodPost, "/products/add", token, gin.H{
		"title": "mug", "price": 9.5, "quantity": 3, "categoryId": catID,
	})
	if w.Code != http.StatusOK || out["title"] != "mug" {
		t.Fatalf("product create: %d %v", w.Code, out)
	}

	// /me 带 token 返回当前用户
	w, out = doJSON(t, r, http.MethodGet, "/me", token, nil)
	if w.Code != http.StatusOK || out["email"] != "alice@example.com" {
		t.Fatalf("me: %d %v", w.Code, out)
	}
}

func TestProductStatsOverHTTP(t *testing.T) {
	r := newTestEngine(t)
	_, token := registerAndLogin(t, r)

	_, out := doJSON(t, r, http.MethodPost, "/categories/add", token, gin.H{"name": "misc"})
	catID, _ := out["id"].(string)
	for _, p := range []gin.H{
		{"title": "a", "price": 10, "quantity": 5, "categoryId": catID},
		{"title": "b", "price": 10, "quantity": 8, "categoryId": catID},
		{"title": "c", "price": 20, "quantity": 2, "categoryId": catID},
	} {
		if w, _ := doJSON(t, r, http.MethodPost, "/products/add", token, p); w.Code != http.StatusOK {
			t.Fatalf("seed product: %d", w.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/products/stats?sort=desc&limit=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("stats: %d %s", w.Code, w.Body.String())
	}
	var groups []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &groups); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(groups) != 1 || groups[0]["price"] != float64(10) || groups[0]["totalQuantity"] != float64(13) {
		t.Fatalf("expected only the price-10 group, got %v", groups)
	}
}
