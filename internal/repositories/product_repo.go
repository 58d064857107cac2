package repositories

import (
	"context"

	"katalog/internal/models"
)

// ProductRepository defines the interface for product data access.
// FindByID, List and Update only see rows that are not soft deleted.
type ProductRepository interface {
	List(ctx context.Context, q ProductQuery) (*ProductPage, error)
	FindByID(ctx context.Context, id uint) (*models.Product, error)
	FindByIDWithTrashed(ctx context.Context, id uint) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product, fields map[string]any) error
	SoftDelete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	ForceDelete(ctx context.Context, id uint) error
}
