package service

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"go-bookstore-api/internal/core/queue"
	"go-bookstore-api/internal/domain"
	"go-bookstore-api/pkg/utils"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type UserService struct {
	repo domain.UserRepository
	mq   *queue.MailQueue // 可为 nil（未配置队列时注册不发欢迎邮件）
	log  *zap.Logger
}

func NewUserService(repo domain.UserRepository, mq *queue.MailQueue, log *zap.Logger) *UserService {
	return &UserService{repo: repo, mq: mq, log: log}
}

type RegisterInput struct {
	Name     string `json:"name" binding:"required,max=64"`
	Username string `json:"username" binding:"required,max=64"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// Register 建用户并异步投递欢迎邮件。
// 邮件入队失败只记日志：用户已经落库，这一步没有回滚。
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if !emailRe.MatchString(email) {
		return nil, Invalid("invalid email format")
	}
	u := &domain.User{
		ID:           utils.NewID(),
		Name:         strings.TrimSpace(in.Name),
		Username:     strings.TrimSpace(in.Username),
		Email:        email,
		PasswordHash: utils.HashPassword(in.Password),
	}
	if err := s.repo.Create(u); err != nil {
		if isDupKey(err) {
			return nil, Invalid("username or email already registered")
		}
		return nil, err
	}
	if s.mq != nil {
		job := queue.WelcomeMailJob{UserID: u.ID, Name: u.Name, Email: u.Email}
		if err := s.mq.Enqueue(ctx, job); err != nil {
			s.log.Warn("welcome mail enqueue", zap.String("email", u.Email), zap.Error(err))
		}
	}
	return u, nil
}

// Login 校验密码，成功返回用户（签发 token 在 handler 层）
func (s *UserService) Login(email, password string) (*domain.User, error) {
	u, err := s.repo.FindByEmail(strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		return nil, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return nil, ErrBadPassword
	}
	return u, nil
}

func (s *UserService) Get(id string) (*domain.User, error) {
	u, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func (s *UserService) List() ([]domain.User, error) { return s.repo.List() }

type UserPatch struct {
	Name     *string `json:"name"`
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// Update 部分字段替换；密码只在传了新值时才重新散列
func (s *UserService) Update(id string, in UserPatch) (*domain.User, error) {
	fields := map[string]any{}
	if in.Name != nil {
		fields["name"] = strings.TrimSpace(*in.Name)
	}
	if in.Username != nil {
		fields["username"] = strings.TrimSpace(*in.Username)
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if !emailRe.MatchString(email) {
			return nil, Invalid("invalid email format")
		}
		fields["email"] = email
	}
	if in.Password != nil {
		if len(*in.Password) < 6 {
			return nil, Invalid("password too short")
		}
		fields["password_hash"] = utils.HashPassword(*in.Password)
	}
	u, err := s.repo.Update(id, fields)
	if err != nil {
		if isDupKey(err) {
			return nil, Invalid("username or email already registered")
		}
		return nil, err
	}
	if u == nil {
		return nil, ErrNotFound
	}
	return u, nil
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免方言差异
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "unique failed") ||
		strings.Contains(msg, "constraint failed")
}
