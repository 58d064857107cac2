package models

import "errors"

var (
	// ErrProductNotFound is returned when no row exists for the requested product.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductAlreadyDeleted is returned when soft deleting a trashed product.
	ErrProductAlreadyDeleted = errors.New("product is already deleted")
	// ErrProductNotDeleted is returned when restoring a product that is not trashed.
	ErrProductNotDeleted = errors.New("product is not deleted")
)
