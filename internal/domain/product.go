package domain

import "time"

type Product struct {
	ID          string    `gorm:"primaryKey;size:32" json:"id"`
	Title       string    `gorm:"size:191;not null" json:"title"`
	Description string    `gorm:"size:1024" json:"description,omitempty"`
	Price       float64   `gorm:"not null" json:"price"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Image       string    `gorm:"size:512" json:"image,omitempty"`
	CategoryID  string    `gorm:"column:category_id;size:32;not null;index" json:"categoryId"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Product) TableName() string { return "products" }

type ProductWithCategory struct {
	Product
	Category *CategoryRef `json:"category,omitempty"`
}

type CategoryRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PriceGroup 按价格聚合的统计行
type PriceGroup struct {
	Price         float64 `json:"price"`
	TotalQuantity int     `json:"totalQuantity"`
	Count         int     `json:"count"`
}

type ProductRepository interface {
	Create(p *Product) error
	FindByID(id string) (*Product, error)
	List() ([]Product, error)
	ListWithCategory(categoryName string) ([]ProductWithCategory, error)
	// GroupByPrice 按价格分组求和；sortDesc 按总量倒序，limit<=0 不限条数
	GroupByPrice(sortDesc bool, limit int) ([]PriceGroup, error)
	Update(id string, fields map[string]any) (*Product, error)
	Delete(id string) (int64, error)
}
