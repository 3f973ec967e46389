package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-bookstore-api/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

func (r *ProductRepo) Create(p *domain.Product) error { return r.db.Create(p).Error }

func (r *ProductRepo) FindByID(id string) (*domain.Product, error) {
	var p domain.Product
	err := r.db.First(&p, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

func (r *ProductRepo) List() ([]domain.Product, error) {
	products := make([]domain.Product, 0)
	err := r.db.Find(&products).Error
	return products, err
}

type productCategoryRow struct {
	domain.Product
	RefID      *string `gorm:"column:ref_id"`
	RefDisplay *string `gorm:"column:ref_display"`
}

func (r *ProductRepo) ListWithCategory(categoryName string) ([]domain.ProductWithCategory, error) {
	p := NewListPipeline(r.db, "products").Lookup("categories", "category_id", "name")
	if categoryName != "" {
		p = p.Match(&categoryName)
	}
	var rows []productCategoryRow
	if err := p.Find(&rows); err != nil {
		return nil, err
	}
	out := make([]domain.ProductWithCategory, 0, len(rows))
	for _, row := range rows {
		item := domain.ProductWithCategory{Product: row.Product}
		if row.RefID != nil {
			item.Category = &domain.CategoryRef{ID: *row.RefID}
			if row.RefDisplay != nil {
				item.Category.Name = *row.RefDisplay
			}
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *ProductRepo) GroupByPrice(sortDesc bool, limit int) ([]domain.PriceGroup, error) {
	p := NewListPipeline(r.db, "products").Group("price", "quantity")
	if sortDesc {
		p = p.Sort("total_quantity", true)
	}
	if limit > 0 {
		p = p.Limit(limit)
	}
	groups := make([]domain.PriceGroup, 0)
	err := p.Find(&groups)
	return groups, err
}

func (r *ProductRepo) Update(id string, fields map[string]any) (*domain.Product, error) {
	existing, err := r.FindByID(id)
	if err != nil || existing == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.Model(&domain.Product{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(id)
}

func (r *ProductRepo) Delete(id string) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.Product{})
	return res.RowsAffected, res.Error
}
