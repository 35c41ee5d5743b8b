package domain

import "time"

// Product belongs to exactly one organization. PriceCents avoids
// floating-point money; the SKU is unique within its organization.
type Product struct {
	ID             int64
	OrganizationID int64
	Name           string
	SKU            string
	PriceCents     int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
