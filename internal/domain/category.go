package domain

import "time"

type Category struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	Name        string    `gorm:"uniqueIndex;size:128;not null" json:"name"`
	Description string    `gorm:"size:512" json:"description,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Category) TableName() string { return "categories" }

type CategoryRepository interface {
	Create(cat *Category) error
	FindByID(id string) (*Category, error)
	List() ([]Category, error)
	Update(id string, fields map[string]any) (*Category, error)
	Delete(id string) (int64, error)
}
