package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"katalog/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// List returns one page of non-deleted products matching q.
func (r *GORMProductRepository) List(ctx context.Context, q ProductQuery) (*ProductPage, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Product{}).Scopes(filterProducts(q)).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	items := make([]models.Product, 0, q.PerPage)
	err := r.db.WithContext(ctx).
		Scopes(filterProducts(q), orderProducts(q)).
		Offset(q.Offset()).
		Limit(q.PerPage).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return &ProductPage{Items: items, Total: total, Page: q.Page, PerPage: q.PerPage}, nil
}

func filterProducts(q ProductQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Name != "" {
			db = db.Where(`LOWER(name) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(q.Name))+"%")
		}
		if q.IsActive != nil {
			db = db.Where("is_active = ?", *q.IsActive)
		}
		return db
	}
}

// orderProducts sorts by the allowlisted column, then by id for stable pages.
func orderProducts(q ProductQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: q.SortBy}, Desc: q.Desc})
		if q.SortBy != "id" {
			db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}})
		}
		return db
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// FindByID retrieves a non-deleted product by its ID.
func (r *GORMProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	return r.first(r.db.WithContext(ctx), id)
}

// FindByIDWithTrashed retrieves a product by its ID, including soft deleted rows.
func (r *GORMProductRepository) FindByIDWithTrashed(ctx context.Context, id uint) (*models.Product, error) {
	return r.first(r.db.WithContext(ctx).Unscoped(), id)
}

func (r *GORMProductRepository) first(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product by ID %d: %w", id, err)
	}
	return &product, nil
}

// Create creates a new product in the database.
func (r *GORMProductRepository) Create(ctx context.Context, product *models.Product) error {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// Update writes only the given columns and reloads product from the database.
func (r *GORMProductRepository) Update(ctx context.Context, product *models.Product, fields map[string]any) error {
	db := r.db.WithContext(ctx)
	if len(fields) > 0 {
		res := db.Model(&models.Product{}).Where("id = ?", product.ID).Updates(fields)
		if res.Error != nil {
			return fmt.Errorf("failed to update product: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return models.ErrProductNotFound
		}
	}
	fresh, err := r.first(db, product.ID)
	if err != nil {
		return err
	}
	*product = *fresh
	return nil
}

// SoftDelete sets deleted_at on a non-deleted product.
func (r *GORMProductRepository) SoftDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// Restore clears deleted_at on a soft deleted product.
func (r *GORMProductRepository) Restore(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().
		Model(&models.Product{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if res.Error != nil {
		return fmt.Errorf("failed to restore product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}

// ForceDelete permanently removes a product row, deleted or not.
func (r *GORMProductRepository) ForceDelete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Unscoped().Delete(&models.Product{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to force delete product: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.ErrProductNotFound
	}
	return nil
}
