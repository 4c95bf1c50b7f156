package domain

import "time"

// BaseModel is embedded by every persisted entity. It replaces gorm.Model to
// avoid the implicit soft delete behavior of DeletedAt. The bun tags map the
// same columns for the secondary bun repositories.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" bun:"id,pk,autoincrement" json:"id"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull" json:"updated_at"`
}

// ListQuery carries the page number plus ordering and filtering of a list
// request. The page size is not a request parameter; it comes from
// configuration.
type ListQuery struct {
	Page   int
	Sort   string
	Filter map[string]string
}
