package repo

import (
	"errors"

	"gorm.io/gorm"

	"go-bookstore-api/internal/domain"
)

type BookRepo struct{ db *gorm.DB }

func NewBookRepo(db *gorm.DB) *BookRepo { return &BookRepo{db: db} }

func (r *BookRepo) Create(b *domain.Book) error { return r.db.Create(b).Error }

func (r *BookRepo) FindByID(id string) (*domain.Book, error) {
	var b domain.Book
	err := r.db.First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &b, err
}

func (r *BookRepo) List() ([]domain.Book, error) {
	books := make([]domain.Book, 0)
	err := r.db.Find(&books).Error
	return books, err
}

// 联查扫描用的平铺行；collapse 阶段在 Go 侧把 ref_* 折成嵌套对象
type bookCreatorRow struct {
	domain.Book
	RefID      *string `gorm:"column:ref_id"`
	RefDisplay *string `gorm:"column:ref_display"`
}

func collapseBookRows(rows []bookCreatorRow) []domain.BookWithCreator {
	out := make([]domain.BookWithCreator, 0, len(rows))
	for _, row := range rows {
		item := domain.BookWithCreator{Book: row.Book}
		if row.RefID != nil {
			item.Creator = &domain.UserRef{ID: *row.RefID}
			if row.RefDisplay != nil {
				item.Creator.Name = *row.RefDisplay
			}
		}
		out = append(out, item)
	}
	return out
}

func (r *BookRepo) ListWithCreator(userName string) ([]domain.BookWithCreator, error) {
	p := NewListPipeline(r.db, "books").Lookup("users", "created_by", "name")
	if userName != "" {
		p = p.Match(&userName)
	}
	var rows []bookCreatorRow
	if err := p.Find(&rows); err != nil {
		return nil, err
	}
	return collapseBookRows(rows), nil
}

func (r *BookRepo) GetWithCreator(id string) (*domain.BookWithCreator, error) {
	var rows []bookCreatorRow
	err := NewListPipeline(r.db.Where("books.id = ?", id), "books").
		Lookup("users", "created_by", "name").
		Find(&rows)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	one := collapseBookRows(rows[:1])[0]
	return &one, nil
}

func (r *BookRepo) Update(id string, fields map[string]any) (*domain.Book, error) {
	existing, err := r.FindByID(id)
	if err != nil || existing == nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := r.db.Model(&domain.Book{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(id)
}

// Delete 按 id 删除并返回删掉的行数；0 行不算错误（删除幂等）
func (r *BookRepo) Delete(id string) (int64, error) {
	res := r.db.Where("id = ?", id).Delete(&domain.Book{})
	return res.RowsAffected, res.Error
}
