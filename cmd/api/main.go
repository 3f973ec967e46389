package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-bookstore-api/internal/core/auth"
	"go-bookstore-api/internal/core/config"
	"go-bookstore-api/internal/core/database"
	"go-bookstore-api/internal/core/logger"
	"go-bookstore-api/internal/core/queue"
	"go-bookstore-api/internal/core/server"
	"go-bookstore-api/internal/domain"
	"go-bookstore-api/internal/repo"
	"go-bookstore-api/internal/service"
	"go-bookstore-api/internal/storage"
	"go-bookstore-api/internal/transport/http/handler"
	"go-bookstore-api/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 数据库（失败直接 Fatal，中止启动）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(
			&domain.User{}, &domain.Book{}, &domain.Product{}, &domain.Category{},
		); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// JWT（密钥只从配置/环境来）
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// 欢迎邮件队列（redis 未配置时跳过）
	var mq *queue.MailQueue
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		mq = queue.NewMailQueue(rdb, cfg.Queue.Stream, cfg.Queue.Group)
	}

	// 仓储 / 服务 / handler
	userRepo := repo.NewUserRepo(db)
	bookRepo := repo.NewBookRepo(db)
	productRepo := repo.NewProductRepo(db)
	categoryRepo := repo.NewCategoryRepo(db)

	userSvc := service.NewUserService(userRepo, mq, log)
	bookSvc := service.NewBookService(bookRepo, userRepo, cfg.Book.ForbiddenNames)
	productSvc := service.NewProductService(productRepo, categoryRepo)
	categorySvc := service.NewCategoryService(categoryRepo)

	handlers := router.Handlers{
		User:     handler.NewUserHandler(userSvc, jwter),
		Book:     handler.NewBookHandler(bookSvc),
		Product:  handler.NewProductHandler(productSvc),
		Category: handler.NewCategoryHandler(categorySvc),
	}

	// 对象存储（未配置则不开上传接口）
	if cfg.Storage.Endpoint != "" {
		store, err := storage.NewMinioStore(cfg.Storage)
		if err != nil {
			log.Fatal("object store init", zap.Error(err))
		}
		handlers.Upload = handler.NewUploadHandler(store)
	}

	r := router.NewAPIEngine(log, handlers, jwter)

	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
	)

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File != "" {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File,
			cfg.Log.MaxSizeMB, cfg.Log.MaxBackups, cfg.Log.MaxAgeDays, cfg.Log.Compress)
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
