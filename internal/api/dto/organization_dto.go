package dto

import (
	"time"

	"github.com/spec-kit/tenant-service/internal/domain"
)

// OrganizationCreateRequest payload. Slug is optional; it is derived from
// the name when omitted.
type OrganizationCreateRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// OrganizationUpdateRequest payload.
type OrganizationUpdateRequest struct {
	Name string `json:"name"`
}

// OrganizationResponse is the API shape for organizations.
type OrganizationResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	OwnerID   int64     `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOrganizationResponse maps a domain organization.
func NewOrganizationResponse(org domain.Organization) OrganizationResponse {
	return OrganizationResponse{
		ID:        org.ID,
		Name:      org.Name,
		Slug:      org.Slug,
		OwnerID:   org.OwnerID,
		CreatedAt: org.CreatedAt,
	}
}
