package handlers

import (
	"context"
	"log"
	"net/url"

	"katalog/internal/repositories"
	"katalog/internal/services"
	"katalog/internal/validation"

	ut "github.com/go-playground/universal-translator"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service  *services.ProductService
	validate *validation.Validator
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, validate *validation.Validator) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validate,
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/:id", h.HandleGetProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Patch("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Delete("/:id/force", h.HandleForceDeleteProduct)
	productRoutes.Patch("/:id/restore", h.HandleRestoreProduct)
}

// HandleListProducts returns a filtered, sorted page of products.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	page, err := h.service.ListProducts(c.UserContext(), repositories.ListParams{
		Name:      c.Query("name"),
		IsActive:  c.Query("is_active"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		PerPage:   c.Query("per_page"),
		Page:      c.Query("page"),
	})
	if err != nil {
		return errorResponse(c, err)
	}

	query, err := url.ParseQuery(string(c.Request().URI().QueryString()))
	if err != nil {
		query = url.Values{}
	}
	path := c.BaseURL() + c.Path()

	return c.JSON(fiber.Map{
		"data":  page.Items,
		"links": page.Links(path, query),
		"meta":  page.Meta(path),
	})
}

// HandleGetProduct retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"data": product,
	})
}

// HandleCreateProduct validates the body and creates a product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	fields, err := h.validateBody(c, validation.ProductCreateRules)
	if err != nil {
		return errorResponse(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), fields)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": MsgProductCreated,
		"data":    product,
	})
}

// HandleUpdateProduct applies the fields present in the body to an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := productID(c)
	if err != nil {
		return errorResponse(c, err)
	}

	product, err := h.service.GetProduct(c.UserContext(), id)
	if err != nil {
		return errorResponse(c, err)
	}

	fields, err := h.validateBody(c, validation.ProductUpdateRules)
	if err != nil {
		return errorResponse(c, err)
	}

	product, err = h.service.UpdateProduct(c.UserContext(), product, fields)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": MsgProductUpdated,
		"data":    product,
	})
}

// HandleDeleteProduct soft deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	return h.transition(c, h.service.DeleteProduct, MsgProductDeleted)
}

// HandleForceDeleteProduct permanently deletes a product.
func (h *ProductHandler) HandleForceDeleteProduct(c *fiber.Ctx) error {
	return h.transition(c, h.service.ForceDeleteProduct, MsgProductForceDeleted)
}

// HandleRestoreProduct restores a soft deleted product.
func (h *ProductHandler) HandleRestoreProduct(c *fiber.Ctx) error {
	return h.transition(c, h.service.RestoreProduct, MsgProductRestored)
}

func (h *ProductHandler) transition(c *fiber.Ctx, apply func(ctx context.Context, id uint) error, success string) error {
	id, err := productID(c)
	if err != nil {
		return errorResponse(c, err)
	}
	if err := apply(c.UserContext(), id); err != nil {
		return errorResponse(c, err)
	}
	return message(c, fiber.StatusOK, success)
}

// validateBody decodes the request body and checks it against rules.
func (h *ProductHandler) validateBody(c *fiber.Ctx, rules validation.RuleSet) (map[string]any, error) {
	input, err := decodeFields(c.Body())
	if err != nil {
		log.Printf("Error parsing request body: %v", err)
		return nil, errInvalidBody
	}
	return h.validate.Validate(rules, input, h.translator(c))
}

// translator picks the message locale from Accept-Language, falling back to
// the configured default.
func (h *ProductHandler) translator(c *fiber.Ctx) ut.Translator {
	if c.Get(fiber.HeaderAcceptLanguage) == "" {
		return h.validate.Translator()
	}
	return h.validate.Translator(c.AcceptsLanguages(validation.SupportedLocales...))
}
