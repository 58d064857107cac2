package services

import (
	"context"
	"errors"
	"log"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/pkg/rabbitmq"
)

// Product lifecycle event types.
const (
	EventProductCreated      = "product.created"
	EventProductUpdated      = "product.updated"
	EventProductDeleted      = "product.deleted"
	EventProductRestored     = "product.restored"
	EventProductForceDeleted = "product.force_deleted"
)

// EventPublisher publishes product lifecycle events.
type EventPublisher interface {
	Publish(ctx context.Context, event rabbitmq.Event) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo       repositories.ProductRepository
	publisher  EventPublisher
	pagination repositories.Pagination
}

// ProductServiceOption configures a ProductService.
type ProductServiceOption func(*ProductService)

// WithEventPublisher makes the service publish an event after each change.
func WithEventPublisher(p EventPublisher) ProductServiceOption {
	return func(s *ProductService) {
		s.publisher = p
	}
}

// WithPagination overrides the default page size bounds.
func WithPagination(pg repositories.Pagination) ProductServiceOption {
	return func(s *ProductService) {
		s.pagination = pg
	}
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, opts ...ProductServiceOption) *ProductService {
	s := &ProductService{
		repo:       repo,
		pagination: repositories.DefaultPagination,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListProducts validates the listing parameters and returns one page.
func (s *ProductService) ListProducts(ctx context.Context, params repositories.ListParams) (*repositories.ProductPage, error) {
	q, err := repositories.NewProductQuery(params, s.pagination)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, q)
}

// GetProduct retrieves a non-deleted product by its ID.
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return s.repo.FindByID(ctx, id)
}

// CreateProduct stores a product built from validated fields.
// Products are active unless is_active says otherwise.
func (s *ProductService) CreateProduct(ctx context.Context, fields map[string]any) (*models.Product, error) {
	product := &models.Product{IsActive: true}
	product.Fill(fields)

	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductCreated, product)
	return product, nil
}

// UpdateProduct applies validated fields to product. Fields not present are left unchanged.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product, fields map[string]any) (*models.Product, error) {
	if err := s.repo.Update(ctx, product, fields); err != nil {
		return nil, err
	}
	s.publish(ctx, EventProductUpdated, product)
	return product, nil
}

// DeleteProduct soft deletes an active product.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.transition(ctx, id, models.Lifecycle.SoftDelete)
	if err != nil {
		return err
	}
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, EventProductDeleted, product)
	return nil
}

// RestoreProduct clears the deletion mark of a soft deleted product.
func (s *ProductService) RestoreProduct(ctx context.Context, id uint) error {
	product, err := s.transition(ctx, id, models.Lifecycle.Restore)
	if err != nil {
		return err
	}
	if err := s.repo.Restore(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, EventProductRestored, product)
	return nil
}

// ForceDeleteProduct permanently removes a product, deleted or not.
func (s *ProductService) ForceDeleteProduct(ctx context.Context, id uint) error {
	product, err := s.transition(ctx, id, models.Lifecycle.ForceDelete)
	if err != nil {
		return err
	}
	if err := s.repo.ForceDelete(ctx, id); err != nil {
		return err
	}
	s.publish(ctx, EventProductForceDeleted, product)
	return nil
}

// transition loads the product including trashed rows and checks that the
// requested lifecycle transition is allowed from its current state.
func (s *ProductService) transition(ctx context.Context, id uint, check func(models.Lifecycle) error) (*models.Product, error) {
	product, err := s.repo.FindByIDWithTrashed(ctx, id)
	if err != nil && !errors.Is(err, models.ErrProductNotFound) {
		return nil, err
	}
	if err := check(models.LifecycleOf(product)); err != nil {
		return nil, err
	}
	return product, nil
}

func (s *ProductService) publish(ctx context.Context, eventType string, product *models.Product) {
	if s.publisher == nil {
		return
	}
	event, err := rabbitmq.NewEvent(eventType, product)
	if err != nil {
		log.Printf("Failed to build %s event for product %d: %v", eventType, product.ID, err)
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("Warning: failed to publish %s event for product %d: %v", eventType, product.ID, err)
	}
}
