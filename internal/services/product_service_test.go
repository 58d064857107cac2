package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, q repositories.ProductQuery) (*repositories.ProductPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.ProductPage), args.Error(1)
}

func (m *MockProductRepository) FindByID(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDWithTrashed(ctx context.Context, id uint) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, product *models.Product, fields map[string]any) error {
	args := m.Called(ctx, product, fields)
	return args.Error(0)
}

func (m *MockProductRepository) SoftDelete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) Restore(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockProductRepository) ForceDelete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

// MockEventPublisher records published events.
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, event rabbitmq.Event) error {
	return m.Called(ctx, event).Error(0)
}

func eventOfType(eventType string) interface{} {
	return mock.MatchedBy(func(e rabbitmq.Event) bool { return e.Type == eventType })
}

var ctx = context.Background()

func trashed(p *models.Product) *models.Product {
	p.DeletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	return p
}

func TestProductService_ListProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, services.WithPagination(repositories.Pagination{DefaultPerPage: 10, MaxPerPage: 20}))

	expected := &repositories.ProductPage{Items: []models.Product{{ID: 1, Name: "A"}}, Total: 1, Page: 1, PerPage: 10}
	mockRepo.On("List", ctx, mock.MatchedBy(func(q repositories.ProductQuery) bool {
		return q.SortBy == "price" && q.Desc && q.PerPage == 10
	})).Return(expected, nil).Once()

	page, err := service.ListProducts(ctx, repositories.ListParams{SortBy: "price", SortOrder: "desc"})
	require.NoError(t, err)
	assert.Equal(t, expected, page)
	mockRepo.AssertExpectations(t)
}

func TestProductService_ListProductsRejectsUnknownSortColumn(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	_, err := service.ListProducts(ctx, repositories.ListParams{SortBy: "invalid_column"})

	var sortErr *repositories.InvalidSortColumnError
	require.ErrorAs(t, err, &sortErr)
	assert.Equal(t, "invalid_column", sortErr.Column)
	mockRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, services.WithEventPublisher(publisher))

	mockRepo.On("Create", ctx, mock.MatchedBy(func(p *models.Product) bool {
		return p.Name == "New Product" && p.Price == 50 && p.Stock == 20 && p.IsActive
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).ID = 1
	}).Return(nil).Once()
	publisher.On("Publish", ctx, eventOfType(services.EventProductCreated)).Return(nil).Once()

	product, err := service.CreateProduct(ctx, map[string]any{"name": "New Product", "price": int64(50), "stock": int64(20)})
	require.NoError(t, err)
	assert.Equal(t, uint(1), product.ID)
	assert.True(t, product.IsActive)
	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateProductFailure(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, services.WithEventPublisher(publisher))

	mockRepo.On("Create", ctx, mock.Anything).Return(errors.New("database error")).Once()

	_, err := service.CreateProduct(ctx, map[string]any{"name": "x", "price": int64(1), "stock": int64(1), "is_active": false})
	assert.EqualError(t, err, "database error")
	publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestProductService_PublishFailureDoesNotFailRequest(t *testing.T) {
	mockRepo := new(MockProductRepository)
	publisher := new(MockEventPublisher)
	service := services.NewProductService(mockRepo, services.WithEventPublisher(publisher))

	mockRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	publisher.On("Publish", ctx, mock.Anything).Return(errors.New("broker down")).Once()

	_, err := service.CreateProduct(ctx, map[string]any{"name": "x", "price": int64(1), "stock": int64(1)})
	assert.NoError(t, err)
	publisher.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	product := &models.Product{ID: 1, Name: "Product A", Price: 10, Stock: 100}
	fields := map[string]any{"name": "Product A Updated"}
	mockRepo.On("Update", ctx, product, fields).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Product).Fill(fields)
	}).Return(nil).Once()

	updated, err := service.UpdateProduct(ctx, product, fields)
	require.NoError(t, err)
	assert.Equal(t, "Product A Updated", updated.Name)
	assert.Equal(t, int64(10), updated.Price)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expected := &models.Product{ID: 1, Name: "Product A"}
	mockRepo.On("FindByID", ctx, uint(1)).Return(expected, nil).Once()
	mockRepo.On("FindByID", ctx, uint(99)).Return(nil, models.ErrProductNotFound).Once()

	product, err := service.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, expected, product)

	_, err = service.GetProduct(ctx, 99)
	assert.ErrorIs(t, err, models.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	tests := []struct {
		name    string
		found   *models.Product
		findErr error
		wantErr error
	}{
		{"active", &models.Product{ID: 1}, nil, nil},
		{"already deleted", trashed(&models.Product{ID: 1}), nil, models.ErrProductAlreadyDeleted},
		{"missing", nil, models.ErrProductNotFound, models.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			publisher := new(MockEventPublisher)
			service := services.NewProductService(mockRepo, services.WithEventPublisher(publisher))

			mockRepo.On("FindByIDWithTrashed", ctx, uint(1)).Return(tt.found, tt.findErr).Once()
			if tt.wantErr == nil {
				mockRepo.On("SoftDelete", ctx, uint(1)).Return(nil).Once()
				publisher.On("Publish", ctx, eventOfType(services.EventProductDeleted)).Return(nil).Once()
			}

			err := service.DeleteProduct(ctx, 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mockRepo.AssertNotCalled(t, "SoftDelete", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
			publisher.AssertExpectations(t)
		})
	}
}

func TestProductService_RestoreProduct(t *testing.T) {
	tests := []struct {
		name    string
		found   *models.Product
		findErr error
		wantErr error
	}{
		{"deleted", trashed(&models.Product{ID: 1}), nil, nil},
		{"not deleted", &models.Product{ID: 1}, nil, models.ErrProductNotDeleted},
		{"missing", nil, models.ErrProductNotFound, models.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := services.NewProductService(mockRepo)

			mockRepo.On("FindByIDWithTrashed", ctx, uint(1)).Return(tt.found, tt.findErr).Once()
			if tt.wantErr == nil {
				mockRepo.On("Restore", ctx, uint(1)).Return(nil).Once()
			}

			err := service.RestoreProduct(ctx, 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				mockRepo.AssertNotCalled(t, "Restore", mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_ForceDeleteProduct(t *testing.T) {
	tests := []struct {
		name    string
		found   *models.Product
		findErr error
		wantErr error
	}{
		{"active", &models.Product{ID: 1}, nil, nil},
		{"deleted", trashed(&models.Product{ID: 1}), nil, nil},
		{"missing", nil, models.ErrProductNotFound, models.ErrProductNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := services.NewProductService(mockRepo)

			mockRepo.On("FindByIDWithTrashed", ctx, uint(1)).Return(tt.found, tt.findErr).Once()
			if tt.wantErr == nil {
				mockRepo.On("ForceDelete", ctx, uint(1)).Return(nil).Once()
			}

			err := service.ForceDeleteProduct(ctx, 1)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestProductService_StorageErrorPropagates(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	storageErr := errors.New("connection reset")
	mockRepo.On("FindByIDWithTrashed", ctx, uint(1)).Return(nil, storageErr).Once()

	err := service.DeleteProduct(ctx, 1)
	assert.ErrorIs(t, err, storageErr)
}
