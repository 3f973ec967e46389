package service

import (
	"strings"

	"go-bookstore-api/internal/domain"
	"go-bookstore-api/pkg/utils"
)

type BookService struct {
	repo  domain.BookRepository
	users domain.UserRepository

	// BeforeCreate 建书前的校验钩子；默认拒绝配置里的哨兵书名
	BeforeCreate func(b *domain.Book) error
}

func NewBookService(repo domain.BookRepository, users domain.UserRepository, forbiddenNames []string) *BookService {
	forbidden := make(map[string]struct{}, len(forbiddenNames))
	for _, n := range forbiddenNames {
		forbidden[n] = struct{}{}
	}
	return &BookService{
		repo:  repo,
		users: users,
		BeforeCreate: func(b *domain.Book) error {
			// 精确匹配，大小写敏感
			if _, bad := forbidden[b.Name]; bad {
				return Invalid("this book name is not allowed")
			}
			return nil
		},
	}
}

type BookCreateInput struct {
	Name      string `json:"name" binding:"required"`
	CreatedBy string `json:"createdBy" binding:"required"`
}

func (s *BookService) Create(in BookCreateInput) (*domain.Book, error) {
	b := &domain.Book{
		ID:        utils.NewID(),
		Name:      strings.TrimSpace(in.Name),
		CreatedBy: in.CreatedBy,
	}
	if b.Name == "" {
		return nil, Invalid("name is required")
	}
	if s.BeforeCreate != nil {
		if err := s.BeforeCreate(b); err != nil {
			return nil, err
		}
	}
	// 引用必须指向存在的用户；建完之后删用户不级联
	owner, err := s.users.FindByID(b.CreatedBy)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return nil, Invalid("createdBy does not resolve to a user")
	}
	if err := s.repo.Create(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *BookService) List() ([]domain.Book, error) { return s.repo.List() }

func (s *BookService) ListWithCreator(userName string) ([]domain.BookWithCreator, error) {
	return s.repo.ListWithCreator(userName)
}

func (s *BookService) Get(id string) (*domain.BookWithCreator, error) {
	b, err := s.repo.GetWithCreator(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

type BookPatch struct {
	Name *string `json:"name"`
}

func (s *BookService) Update(id string, in BookPatch) (*domain.Book, error) {
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, Invalid("name is required")
		}
		fields["name"] = name
	}
	b, err := s.repo.Update(id, fields)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *BookService) Delete(id string) (int64, error) { return s.repo.Delete(id) }
