package dto

import (
	"time"

	"github.com/spec-kit/tenant-service/internal/domain"
)

// ProductRequest payload for create and update.
type ProductRequest struct {
	Name       string `json:"name"`
	SKU        string `json:"sku"`
	PriceCents int64  `json:"price_cents"`
}

// ProductResponse is the API shape for products.
type ProductResponse struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organization_id"`
	Name           string    `json:"name"`
	SKU            string    `json:"sku"`
	PriceCents     int64     `json:"price_cents"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewProductResponse maps a domain product.
func NewProductResponse(product domain.Product) ProductResponse {
	return ProductResponse{
		ID:             product.ID,
		OrganizationID: product.OrganizationID,
		Name:           product.Name,
		SKU:            product.SKU,
		PriceCents:     product.PriceCents,
		CreatedAt:      product.CreatedAt,
	}
}
