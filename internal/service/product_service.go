package service

import (
	"strings"

	"go-bookstore-api/internal/domain"
	"go-bookstore-api/pkg/utils"
)

type ProductService struct {
	repo       domain.ProductRepository
	categories domain.CategoryRepository
}

func NewProductService(repo domain.ProductRepository, categories domain.CategoryRepository) *ProductService {
	return &ProductService{repo: repo, categories: categories}
}

type ProductCreateInput struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	Quantity    *int     `json:"quantity" binding:"required"`
	Image       string   `json:"image"`
	CategoryID  string   `json:"categoryId" binding:"required"`
}

func (s *ProductService) Create(in ProductCreateInput) (*domain.Product, error) {
	if *in.Price < 0 {
		return nil, Invalid("price must not be negative")
	}
	if *in.Quantity < 0 {
		return nil, Invalid("quantity must not be negative")
	}
	cat, err := s.categories.FindByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, Invalid("categoryId does not resolve to a category")
	}
	p := &domain.Product{
		ID:          utils.NewID(),
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       *in.Price,
		Quantity:    *in.Quantity,
		Image:       in.Image,
		CategoryID:  in.CategoryID,
	}
	if p.Title == "" {
		return nil, Invalid("title is required")
	}
	if err := s.repo.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProductService) List() ([]domain.Product, error) { return s.repo.List() }

func (s *ProductService) ListWithCategory(categoryName string) ([]domain.ProductWithCategory, error) {
	return s.repo.ListWithCategory(categoryName)
}

func (s *ProductService) Get(id string) (*domain.Product, error) {
	p, err := s.repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

// Stats 按价格分组汇总数量（group → sort → limit）
func (s *ProductService) Stats(sortDesc bool, limit int) ([]domain.PriceGroup, error) {
	return s.repo.GroupByPrice(sortDesc, limit)
}

type ProductPatch struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Image       *string  `json:"image"`
	CategoryID  *string  `json:"categoryId"`
}

func (s *ProductService) Update(id string, in ProductPatch) (*domain.Product, error) {
	fields := map[string]any{}
	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, Invalid("title is required")
		}
		fields["title"] = title
	}
	if in.Description != nil {
		fields["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return nil, Invalid("price must not be negative")
		}
		fields["price"] = *in.Price
	}
	if in.Quantity != nil {
		if *in.Quantity < 0 {
			return nil, Invalid("quantity must not be negative")
		}
		fields["quantity"] = *in.Quantity
	}
	if in.Image != nil {
		fields["image"] = *in.Image
	}
	if in.CategoryID != nil {
		cat, err := s.categories.FindByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat == nil {
			return nil, Invalid("categoryId does not resolve to a category")
		}
		fields["category_id"] = *in.CategoryID
	}
	p, err := s.repo.Update(id, fields)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrNotFound
	}
	return p, nil
}

func (s *ProductService) Delete(id string) (int64, error) { return s.repo.Delete(id) }
