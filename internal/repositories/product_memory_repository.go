package repositories

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"katalog/internal/models"

	"gorm.io/gorm"
)

// MemoryProductRepository is an in-memory implementation of ProductRepository.
type MemoryProductRepository struct {
	products map[uint]models.Product
	nextID   uint
	now      func() time.Time
	mu       sync.RWMutex
}

// NewMemoryProductRepository creates a new instance of MemoryProductRepository.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[uint]models.Product),
		nextID:   1,
		now:      time.Now,
	}
}

// List returns one page of non-deleted products matching q.
func (r *MemoryProductRepository) List(_ context.Context, q ProductQuery) (*ProductPage, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(q.Name)
	matched := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		if p.Trashed() {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(p.Name), name) {
			continue
		}
		if q.IsActive != nil && p.IsActive != *q.IsActive {
			continue
		}
		matched = append(matched, p)
	}

	slices.SortFunc(matched, func(a, b models.Product) int {
		c := compareColumn(&a, &b, q.SortBy)
		if q.Desc {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.ID, b.ID)
		}
		return c
	})

	page := &ProductPage{Total: int64(len(matched)), Page: q.Page, PerPage: q.PerPage}
	start := min(q.Offset(), len(matched))
	end := min(start+q.PerPage, len(matched))
	page.Items = append(make([]models.Product, 0, end-start), matched[start:end]...)
	return page, nil
}

func compareColumn(a, b *models.Product, column string) int {
	switch column {
	case "name":
		return strings.Compare(a.Name, b.Name)
	case "price":
		return cmp.Compare(a.Price, b.Price)
	case "stock":
		return cmp.Compare(a.Stock, b.Stock)
	case "created_at":
		return a.CreatedAt.Compare(b.CreatedAt)
	case "updated_at":
		return a.UpdatedAt.Compare(b.UpdatedAt)
	default:
		return cmp.Compare(a.ID, b.ID)
	}
}

// FindByID returns a non-deleted product by its ID.
func (r *MemoryProductRepository) FindByID(_ context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok || product.Trashed() {
		return nil, models.ErrProductNotFound
	}
	return &product, nil
}

// FindByIDWithTrashed returns a product by its ID, including soft deleted ones.
func (r *MemoryProductRepository) FindByIDWithTrashed(_ context.Context, id uint) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	return &product, nil
}

// Create adds a new product and assigns its ID and timestamps.
func (r *MemoryProductRepository) Create(_ context.Context, product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == 0 {
		product.ID = r.nextID
	}
	if product.ID >= r.nextID {
		r.nextID = product.ID + 1
	}
	now := r.now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = now
	}
	r.products[product.ID] = *product
	return nil
}

// Update applies fields to a non-deleted product.
func (r *MemoryProductRepository) Update(_ context.Context, product *models.Product, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.products[product.ID]
	if !ok || stored.Trashed() {
		return models.ErrProductNotFound
	}
	if len(fields) > 0 {
		stored.Fill(fields)
		stored.UpdatedAt = r.now()
		r.products[stored.ID] = stored
	}
	*product = stored
	return nil
}

// SoftDelete marks a non-deleted product as deleted.
func (r *MemoryProductRepository) SoftDelete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok || product.Trashed() {
		return models.ErrProductNotFound
	}
	product.DeletedAt = gorm.DeletedAt{Time: r.now(), Valid: true}
	r.products[id] = product
	return nil
}

// Restore clears the deletion mark of a soft deleted product.
func (r *MemoryProductRepository) Restore(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok || !product.Trashed() {
		return models.ErrProductNotFound
	}
	product.DeletedAt = gorm.DeletedAt{}
	product.UpdatedAt = r.now()
	r.products[id] = product
	return nil
}

// ForceDelete removes a product permanently.
func (r *MemoryProductRepository) ForceDelete(_ context.Context, id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return models.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}
