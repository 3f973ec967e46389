package domain

import "time"

// Book 的 created_by 只是一个指向 users.id 的普通引用列，
// 不建外键，也不级联（删用户不影响已有的书）。
type Book struct {
	ID        string    `gorm:"primaryKey;size:32" json:"id"`
	Name      string    `gorm:"size:191;not null" json:"name"`
	CreatedBy string    `gorm:"column:created_by;size:32;not null;index" json:"createdBy"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Book) TableName() string { return "books" }

// BookWithCreator 列表视图：创建者内联成单个嵌套对象
type BookWithCreator struct {
	Book
	Creator *UserRef `json:"createdBy,omitempty"`
}

// UserRef 联查时只投影展示字段
type UserRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BookRepository interface {
	Create(b *Book) error
	FindByID(id string) (*Book, error)
	List() ([]Book, error)
	// ListWithCreator 按创建者姓名过滤的联查视图；userName 为空则不过滤
	ListWithCreator(userName string) ([]BookWithCreator, error)
	GetWithCreator(id string) (*BookWithCreator, error)
	Update(id string, fields map[string]any) (*Book, error)
	Delete(id string) (int64, error)
}
