package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"katalog/internal/models"
	"katalog/internal/repositories"
	"katalog/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Literal response messages.
const (
	MsgValidationFailed      = "Validation failed"
	MsgProductNotFound       = "Product not found"
	MsgProductCreated        = "Product created successfully"
	MsgProductUpdated        = "Product updated successfully"
	MsgProductDeleted        = "Product deleted successfully"
	MsgProductForceDeleted   = "Product permanently deleted successfully"
	MsgProductRestored       = "Product restored successfully"
	MsgProductAlreadyDeleted = "Product is already deleted"
	MsgProductNotDeleted     = "Product is not deleted"
	MsgInvalidBody           = "Invalid request body"
	MsgInternalError         = "Internal Server Error"
)

var errInvalidBody = errors.New("invalid request body")

// errorResponse converts a service error into a JSON error envelope.
func errorResponse(c *fiber.Ctx, err error) error {
	var (
		verrs     *validation.Errors
		sortErr   *repositories.InvalidSortColumnError
		orderErr  *repositories.InvalidSortOrderError
		filterErr *repositories.InvalidFilterValueError
	)

	switch {
	case errors.As(err, &verrs):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": MsgValidationFailed,
			"errors":  verrs,
		})
	case errors.Is(err, errInvalidBody):
		return message(c, fiber.StatusBadRequest, MsgInvalidBody)
	case errors.Is(err, models.ErrProductNotFound):
		return message(c, fiber.StatusNotFound, MsgProductNotFound)
	case errors.Is(err, models.ErrProductAlreadyDeleted):
		return message(c, fiber.StatusBadRequest, MsgProductAlreadyDeleted)
	case errors.Is(err, models.ErrProductNotDeleted):
		return message(c, fiber.StatusBadRequest, MsgProductNotDeleted)
	case errors.As(err, &sortErr), errors.As(err, &orderErr), errors.As(err, &filterErr):
		return message(c, fiber.StatusBadRequest, err.Error())
	default:
		log.Printf("Error handling %s %s: %v", c.Method(), c.Path(), err)
		return message(c, fiber.StatusInternalServerError, MsgInternalError)
	}
}

func message(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"message": msg,
	})
}

// productID parses the :id route parameter. Malformed ids are reported as a
// missing product.
func productID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 0)
	if err != nil || id == 0 {
		return 0, models.ErrProductNotFound
	}
	return uint(id), nil
}

// decodeFields decodes a JSON request body into a field map. Numbers are kept
// as json.Number. An empty body or a non-object document yields an empty map.
func decodeFields(body []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(body)) == 0 {
		return fields, nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	if m, ok := doc.(map[string]any); ok {
		return m, nil
	}
	return fields, nil
}
