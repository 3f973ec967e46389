package service

import (
	"strings"

	"go-bookstore-api/internal/domain"
	"go-bookstore-api/pkg/utils"
)

type CategoryService struct {
	repo domain.CategoryRepository
}

func NewCategoryService(repo domain.CategoryRepository) *CategoryService {
	return &CategoryService{repo: repo}
}

type CategoryCreateInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *CategoryService) Create(in CategoryCreateInput) (*domain.Category, error) {
	cat := &domain.Category{
		ID:          utils.NewID(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
	}
	if cat.Name == "" {
		return nil, Invalid("name is required")
	}
	if err := s.repo.Create(cat); err != nil {
		if isDupKey(err) {
			return nil, Invalid("category name already exists")
		}
		return nil, err
	}
	return cat, nil
}

func (s *CategoryService) List() ([]domain.Category, error) { return s.repo.List() }

func (s *CategoryService) Get(id string) (*domain.Category, error) {
	cat, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}
	return cat, nil
}

type CategoryPatch struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (s *CategoryService) Update(id string, in CategoryPatch) (*domain.Category, error) {
	fields := map[string]any{}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, Invalid("name is required")
		}
		fields["name"] = name
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	cat, err := s.repo.Update(id, fields)
	if err != nil {
		if isDupKey(err) {
			return nil, Invalid("category name already exists")
		}
		return nil, err
	}
	if cat == nil {
		return nil, ErrNotFound
	}
	return cat, nil
}

func (s *CategoryService) Delete(id string) (int64, error) { return s.repo.Delete(id) }
