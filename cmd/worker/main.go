package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-bookstore-api/internal/core/config"
	"go-bookstore-api/internal/core/logger"
	"go-bookstore-api/internal/core/queue"
	"go-bookstore-api/internal/mail"
)

// 邮件 worker：消费注册产生的欢迎邮件任务，渲染二维码并经 SMTP 发出。
// 和 api 进程分开部署，SMTP 慢不拖累请求路径。
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	if cfg.Redis.Addr == "" {
		log.Fatal("redis addr required for mail worker")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	mq := queue.NewMailQueue(rdb, cfg.Queue.Stream, cfg.Queue.Group)

	baseURL := fmt.Sprintf("http://%s:%d", cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	mailer := mail.New(cfg.Mail, baseURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mq.Start(ctx, cfg.Queue.Concurrency, log, func(ctx context.Context, job queue.WelcomeMailJob) error {
		log.Info("sending welcome mail", zap.String("email", job.Email))
		return mailer.SendWelcome(job.Name, job.Email, job.UserID)
	})
	log.Info("mail worker started", zap.String("stream", cfg.Queue.Stream))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	cancel()
	log.Info("mail worker stopped")
}
