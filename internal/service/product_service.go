package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tenant-service/internal/domain"
	"github.com/spec-kit/tenant-service/internal/events"
	"github.com/spec-kit/tenant-service/internal/repository"
	apperrors "github.com/spec-kit/tenant-service/pkg/util"
)

// ProductInput carries writable product fields.
type ProductInput struct {
	Name       string
	SKU        string
	PriceCents int64
}

// ProductService coordinates product CRUD within an organization.
type ProductService struct {
	products   repository.ProductRepository
	orgs       *OrganizationService
	dispatcher events.Dispatcher
}

// NewProductService builds the service.
func NewProductService(products repository.ProductRepository, orgs *OrganizationService, dispatcher events.Dispatcher) *ProductService {
	return &ProductService{products: products, orgs: orgs, dispatcher: dispatcher}
}

// Create adds a product to an organization. Only the organization owner or
// an admin may write.
func (s *ProductService) Create(ctx context.Context, actor *domain.User, orgID int64, input ProductInput) (*domain.Product, error) {
	org, err := s.orgs.Get(ctx, orgID)
	if err != nil {
		return nil, err
	}
	if err := s.orgs.authorizeOwner(actor, org); err != nil {
		return nil, err
	}
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	product := &domain.Product{
		OrganizationID: org.ID,
		Name:           input.Name,
		SKU:            input.SKU,
		PriceCents:     input.PriceCents,
	}
	if err := s.products.Create(ctx, product); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("SKU already in use")
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventProductCreated,
		EntityID: product.ID,
		ActorID:  &actor.ID,
		Payload: events.ProductCreatedPayload{
			OrganizationID: product.OrganizationID,
			Name:           product.Name,
			SKU:            product.SKU,
		},
	})
	return product, nil
}

// ListByOrganization returns products for an existing organization.
func (s *ProductService) ListByOrganization(ctx context.Context, orgID int64) ([]domain.Product, error) {
	if _, err := s.orgs.Get(ctx, orgID); err != nil {
		return nil, err
	}
	return s.products.ListByOrganization(ctx, orgID)
}

// Get loads one product by id.
func (s *ProductService) Get(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("product")
		}
		return nil, err
	}
	return product, nil
}

// Update rewrites product fields, gated on the owning organization.
func (s *ProductService) Update(ctx context.Context, actor *domain.User, id int64, input ProductInput) (*domain.Product, error) {
	product, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	org, err := s.orgs.Get(ctx, product.OrganizationID)
	if err != nil {
		return nil, err
	}
	if err := s.orgs.authorizeOwner(actor, org); err != nil {
		return nil, err
	}
	if err := validateProductInput(&input); err != nil {
		return nil, err
	}

	product.Name = input.Name
	product.SKU = input.SKU
	product.PriceCents = input.PriceCents
	if err := s.products.Update(ctx, product); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("SKU already in use")
		}
		return nil, err
	}
	return product, nil
}

// Delete removes a product, gated on the owning organization.
func (s *ProductService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	product, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	org, err := s.orgs.Get(ctx, product.OrganizationID)
	if err != nil {
		return err
	}
	if err := s.orgs.authorizeOwner(actor, org); err != nil {
		return err
	}
	return s.products.Delete(ctx, id)
}

func validateProductInput(input *ProductInput) error {
	input.Name = strings.TrimSpace(input.Name)
	input.SKU = strings.TrimSpace(input.SKU)
	if input.Name == "" {
		return apperrors.NewValidationError("name required")
	}
	if input.SKU == "" {
		return apperrors.NewValidationError("sku required")
	}
	if input.PriceCents < 0 {
		return apperrors.NewValidationError("price must not be negative")
	}
	return nil
}

func (s *ProductService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}
