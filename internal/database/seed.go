package database

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"katalog/internal/models"
)

var (
	seedAdjectives = []string{"Compact", "Wireless", "Ergonomic", "Premium", "Classic", "Portable", "Smart", "Heavy-duty"}
	seedNouns      = []string{"Laptop", "Keyboard", "Mouse", "Monitor", "Headset", "Webcam", "Speaker", "Charger"}
)

// ProductCreator stores new products.
type ProductCreator interface {
	Create(ctx context.Context, product *models.Product) error
}

// FakeProduct returns a product with random attributes: price 100-100000,
// stock 0-100, active 80% of the time, created within the past year.
func FakeProduct(r *rand.Rand, now time.Time) models.Product {
	name := fmt.Sprintf("%s %s", seedAdjectives[r.IntN(len(seedAdjectives))], seedNouns[r.IntN(len(seedNouns))])
	description := fmt.Sprintf("%s for everyday use.", name)
	created := now.Add(-time.Duration(r.Int64N(int64(365 * 24 * time.Hour))))
	updated := created.Add(time.Duration(r.Int64N(int64(now.Sub(created)) + 1)))

	return models.Product{
		Name:        name,
		Description: &description,
		Price:       100 + r.Int64N(100000-100+1),
		Stock:       r.Int64N(101),
		IsActive:    r.IntN(100) < 80,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}
}

// Seed creates n fake products.
func Seed(ctx context.Context, repo ProductCreator, n int) error {
	r := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	now := time.Now()
	for i := 0; i < n; i++ {
		product := FakeProduct(r, now)
		if err := repo.Create(ctx, &product); err != nil {
			return fmt.Errorf("failed to seed product %s: %w", product.Name, err)
		}
	}
	return nil
}
