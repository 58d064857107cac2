package models

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a product in the catalog.
type Product struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"size:255;not null"`
	Description *string        `json:"description" gorm:"size:1000"`
	Price       int64          `json:"price" gorm:"not null"`
	Stock       int64          `json:"stock" gorm:"not null;default:0"`
	IsActive    bool           `json:"is_active" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

// TableName returns the table name for Product model.
func (Product) TableName() string {
	return "products"
}

// Trashed reports whether the product has been soft deleted.
func (p *Product) Trashed() bool {
	return p.DeletedAt.Valid
}

// Fill copies validated field values onto p. Keys are column names; unknown
// keys and values of the wrong type are ignored.
func (p *Product) Fill(fields map[string]any) {
	for column, value := range fields {
		switch column {
		case "name":
			if v, ok := value.(string); ok {
				p.Name = v
			}
		case "description":
			switch v := value.(type) {
			case nil:
				p.Description = nil
			case string:
				p.Description = &v
			}
		case "price":
			if v, ok := value.(int64); ok {
				p.Price = v
			}
		case "stock":
			if v, ok := value.(int64); ok {
				p.Stock = v
			}
		case "is_active":
			if v, ok := value.(bool); ok {
				p.IsActive = v
			}
		}
	}
}
