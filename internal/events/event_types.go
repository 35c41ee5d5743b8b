package events

import (
	"time"

	"github.com/spec-kit/tenant-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered         EventType = "user_registered"
	EventPasswordResetRequested EventType = "password_reset_requested"
	EventOrganizationCreated    EventType = "organization_created"
	EventOrganizationDeleted    EventType = "organization_deleted"
	EventProductCreated         EventType = "product_created"
)

// Event represents a domain event emitted by services. EntityID points at
// the record the event is about; ActorID is the user who caused it, when
// one is known.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	EntityID  int64       `json:"entity_id"`
	ActorID   *int64      `json:"actor_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
}

// PasswordResetRequestedPayload payload. The token is delivered to the
// notification channel only, never in the API response.
type PasswordResetRequestedPayload struct {
	Email     string    `json:"email"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// OrganizationCreatedPayload payload.
type OrganizationCreatedPayload struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// OrganizationDeletedPayload payload.
type OrganizationDeletedPayload struct {
	Slug string `json:"slug"`
}

// ProductCreatedPayload payload.
type ProductCreatedPayload struct {
	OrganizationID int64  `json:"organization_id"`
	Name           string `json:"name"`
	SKU            string `json:"sku"`
}
