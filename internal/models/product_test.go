package models_test

import (
	"testing"

	"katalog/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProductFill(t *testing.T) {
	desc := "old"
	p := &models.Product{Name: "A", Description: &desc, Price: 1, Stock: 2, IsActive: true}

	p.Fill(map[string]any{"name": "B", "price": int64(10), "is_active": false, "unknown": 1})
	assert.Equal(t, "B", p.Name)
	assert.Equal(t, int64(10), p.Price)
	assert.Equal(t, int64(2), p.Stock)
	assert.False(t, p.IsActive)
	assert.Equal(t, "old", *p.Description)

	p.Fill(map[string]any{"description": nil})
	assert.Nil(t, p.Description)
}
