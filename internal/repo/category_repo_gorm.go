package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-bookstore-api/internal/domain"
)

type CategoryRepo struct{ db *gorm.DB }

func NewCategoryRepo(db *gorm.DB) *CategoryRepo { return &CategoryRepo{db: db} }

func (r *CategoryRepo) Create(cat *domain.Category) error { return r.db.Create(cat).Error }

func (r *CategoryRepo) FindByID(id string) (*domain.Category, error) {
	var cat domain.Category
	err := r.db.First(&cat, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &cat, err
}

func (r *CategoryRepo) List() ([]domain.Category, error) {
	cats := make([]domain.Category, 0)
	err := r.db.Find(&cats).Error
	return cats, err
}

func (r *CategoryRepo) Update(id string, fields map[string]any) (*domain.Category, error) {
	existing, err := r.FindByID(id)
	if err != nil || existing == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.Model(&domain.Category{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(id)
}

func (r *CategoryRepo) Delete(id string) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.Category{})
	return res.RowsAffected, res.Error
}
