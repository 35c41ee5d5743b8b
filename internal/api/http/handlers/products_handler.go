package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-service/internal/api/dto"
	"github.com/spec-kit/tenant-service/internal/auth"
	"github.com/spec-kit/tenant-service/internal/service"
	apperrors "github.com/spec-kit/tenant-service/pkg/util"
)

// ProductsHandler exposes product CRUD endpoints.
type ProductsHandler struct {
	products *service.ProductService
}

// NewProductsHandler constructs handler.
func NewProductsHandler(productService *service.ProductService) *ProductsHandler {
	return &ProductsHandler{products: productService}
}

// Create handles POST /organizations/:id/products.
func (h *ProductsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	orgID, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	product, err := h.products.Create(c.Context(), principal, orgID, service.ProductInput{
		Name:       req.Name,
		SKU:        req.SKU,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewProductResponse(*product))
}

// ListByOrganization handles GET /organizations/:id/products.
func (h *ProductsHandler) ListByOrganization(c *fiber.Ctx) error {
	orgID, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	products, err := h.products.ListByOrganization(c.Context(), orgID)
	if err != nil {
		return err
	}

	out := make([]dto.ProductResponse, 0, len(products))
	for _, product := range products {
		out = append(out, dto.NewProductResponse(product))
	}
	return c.JSON(out)
}

// Get handles GET /products/:id.
func (h *ProductsHandler) Get(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	product, err := h.products.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(*product))
}

// Update handles PUT /products/:id.
func (h *ProductsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.ProductRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	product, err := h.products.Update(c.Context(), principal, id, service.ProductInput{
		Name:       req.Name,
		SKU:        req.SKU,
		PriceCents: req.PriceCents,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewProductResponse(*product))
}

// Delete handles DELETE /products/:id.
func (h *ProductsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.products.Delete(c.Context(), principal, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
