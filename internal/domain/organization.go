package domain

import "time"

// Organization is the tenant container that products belong to.
type Organization struct {
	ID        int64
	Name      string
	Slug      string
	OwnerID   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
