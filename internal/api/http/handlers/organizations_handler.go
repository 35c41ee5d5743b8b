package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tenant-service/internal/api/dto"
	"github.com/spec-kit/tenant-service/internal/auth"
	"github.com/spec-kit/tenant-service/internal/service"
	apperrors "github.com/spec-kit/tenant-service/pkg/util"
)

// OrganizationsHandler exposes tenant CRUD endpoints.
type OrganizationsHandler struct {
	orgs *service.OrganizationService
}

// NewOrganizationsHandler constructs handler.
func NewOrganizationsHandler(orgService *service.OrganizationService) *OrganizationsHandler {
	return &OrganizationsHandler{orgs: orgService}
}

// Create handles POST /organizations. The caller becomes owner.
func (h *OrganizationsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.OrganizationCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	org, err := h.orgs.Create(c.Context(), principal, req.Name, req.Slug)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewOrganizationResponse(*org))
}

// List handles GET /organizations.
func (h *OrganizationsHandler) List(c *fiber.Ctx) error {
	orgs, err := h.orgs.List(c.Context())
	if err != nil {
		return err
	}

	out := make([]dto.OrganizationResponse, 0, len(orgs))
	for _, org := range orgs {
		out = append(out, dto.NewOrganizationResponse(org))
	}
	return c.JSON(out)
}

// Get handles GET /organizations/:id.
func (h *OrganizationsHandler) Get(c *fiber.Ctx) error {
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}
	org, err := h.orgs.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrganizationResponse(*org))
}

// Update handles PUT /organizations/:id.
func (h *OrganizationsHandler) Update(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req dto.OrganizationUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	org, err := h.orgs.Update(c.Context(), principal, id, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewOrganizationResponse(*org))
}

// Delete handles DELETE /organizations/:id. Admin only.
func (h *OrganizationsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("authentication required")
	}
	id, err := ParseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.orgs.Delete(c.Context(), principal, id); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// ParseIDParam reads a positive integer route parameter.
func ParseIDParam(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid " + name)
	}
	return id, nil
}
