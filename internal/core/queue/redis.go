package queue

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"go-bookstore-api/pkg/utils"
)

// WelcomeMailJob 注册成功后投递的欢迎邮件任务
type WelcomeMailJob struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

// MailQueue 基于 redis stream 的轻量任务队列（XADD + consumer group）
type MailQueue struct {
	rdb      *redis.Client
	stream   string
	group    string
	consumer string
	once     sync.Once
}

func NewMailQueue(rdb *redis.Client, stream, group string) *MailQueue {
	if group == "" {
		group = "mailer"
	}
	return &MailQueue{
		rdb:      rdb,
		stream:   stream,
		group:    group,
		consumer: utils.NewID(),
	}
}

func (q *MailQueue) Enqueue(ctx context.Context, job WelcomeMailJob) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return q.rdb.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		MaxLen: 10000,
		Approx: true,
		Values: map[string]any{"payload": string(payload)},
	}).Err()
}

// Start 启动 n 个消费协程；handler 返回错误只记日志，不重投
// （多步流程无回滚，失败直接暴露，见错误处理约定）
func (q *MailQueue) Start(ctx context.Context, n int, l *zap.Logger, handler func(context.Context, WelcomeMailJob) error) {
	if n <= 0 {
		n = 1
	}
	q.ensureGroup(ctx)
	for i := 0; i < n; i++ {
		go q.consumeLoop(ctx, l, handler)
	}
}

func (q *MailQueue) ensureGroup(ctx context.Context) {
	q.once.Do(func() {
		err := q.rdb.XGroupCreateMkStream(ctx, q.stream, q.group, "$").Err()
		if err != nil && !strings.Contains(err.Error(), "BUSYGROUP") {
			// 建组失败会在消费时再次暴露
		}
	})
}

func (q *MailQueue) consumeLoop(ctx context.Context, l *zap.Logger, handler func(context.Context, WelcomeMailJob) error) {
	for {
		if ctx.Err() != nil {
			return
		}
		streams, err := q.rdb.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    q.group,
			Consumer: q.consumer,
			Streams:  []string{q.stream, ">"},
			Count:    10,
			Block:    5 * time.Second,
		}).Result()
		if err != nil {
			if err == redis.Nil || ctx.Err() != nil {
				continue
			}
			l.Warn("mail queue read", zap.Error(err))
			time.Sleep(time.Second)
			continue
		}
		for _, s := range streams {
			for _, msg := range s.Messages {
				q.handleMessage(ctx, l, msg, handler)
			}
		}
	}
}

func (q *MailQueue) handleMessage(ctx context.Context, l *zap.Logger, msg redis.XMessage, handler func(context.Context, WelcomeMailJob) error) {
	defer func() {
		_ = q.rdb.XAck(ctx, q.stream, q.group, msg.ID).Err()
	}()
	raw, _ := msg.Values["payload"].(string)
	var job WelcomeMailJob
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		l.Warn("mail job decode", zap.String("id", msg.ID), zap.Error(err))
		return
	}
	if err := handler(ctx, job); err != nil {
		l.Error("mail job failed", zap.String("email", job.Email), zap.Error(err))
	}
}
