package service

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tenant-service/internal/auth"
	"github.com/spec-kit/tenant-service/internal/domain"
	"github.com/spec-kit/tenant-service/internal/events"
	"github.com/spec-kit/tenant-service/internal/repository"
	apperrors "github.com/spec-kit/tenant-service/pkg/util"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// OrganizationService coordinates tenant lifecycle operations.
type OrganizationService struct {
	orgs       repository.OrganizationRepository
	dispatcher events.Dispatcher
}

// NewOrganizationService builds the service.
func NewOrganizationService(orgs repository.OrganizationRepository, dispatcher events.Dispatcher) *OrganizationService {
	return &OrganizationService{orgs: orgs, dispatcher: dispatcher}
}

// Create stores a new organization owned by the caller. An empty slug is
// derived from the name.
func (s *OrganizationService) Create(ctx context.Context, owner *domain.User, name, slug string) (*domain.Organization, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required")
	}
	if slug == "" {
		slug = Slugify(name)
	} else {
		slug = Slugify(slug)
	}
	if slug == "" {
		return nil, apperrors.NewValidationError("slug required")
	}

	org := &domain.Organization{Name: name, Slug: slug, OwnerID: owner.ID}
	if err := s.orgs.Create(ctx, org); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, apperrors.NewConflict("Slug already in use")
		}
		return nil, err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventOrganizationCreated,
		EntityID: org.ID,
		ActorID:  &owner.ID,
		Payload:  events.OrganizationCreatedPayload{Name: org.Name, Slug: org.Slug},
	})
	return org, nil
}

// List returns all organizations.
func (s *OrganizationService) List(ctx context.Context) ([]domain.Organization, error) {
	return s.orgs.List(ctx)
}

// Get loads one organization by id.
func (s *OrganizationService) Get(ctx context.Context, id int64) (*domain.Organization, error) {
	org, err := s.orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("organization")
		}
		return nil, err
	}
	return org, nil
}

// Update renames an organization. Only the owner or an admin may do so.
func (s *OrganizationService) Update(ctx context.Context, actor *domain.User, id int64, name string) (*domain.Organization, error) {
	org, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorizeOwner(actor, org); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name required")
	}
	org.Name = name
	if err := s.orgs.Update(ctx, org); err != nil {
		return nil, err
	}
	return org, nil
}

// Delete removes an organization and, via the schema cascade, its
// products. Admin only.
func (s *OrganizationService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if err := auth.CheckRole(actor, domain.RoleAdmin); err != nil {
		return err
	}
	org, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.orgs.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.Event{
		Type:     events.EventOrganizationDeleted,
		EntityID: org.ID,
		ActorID:  &actor.ID,
		Payload:  events.OrganizationDeletedPayload{Slug: org.Slug},
	})
	return nil
}

func (s *OrganizationService) authorizeOwner(actor *domain.User, org *domain.Organization) error {
	if actor == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	if actor.ID != org.OwnerID && !actor.IsAdmin() {
		return apperrors.NewForbidden("organization owner required")
	}
	return nil
}

func (s *OrganizationService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = time.Now()
	_ = s.dispatcher.Publish(ctx, event)
}

// Slugify reduces a name to a lowercase dash-separated identifier.
func Slugify(input string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(input), "-")
	return strings.Trim(slug, "-")
}
