package model

import "time"

// ProductCategory is the catalog grouping: bottled water or gas cylinders.
type ProductCategory string

const (
	CategoryGalon ProductCategory = "galon"
	CategoryGas   ProductCategory = "gas"
)

// KV key prefix for product documents.
const ProductKeyPrefix = "product:"

// Product is a catalog entry stored as a JSON document under a
// "product:<uuid>" key.
type Product struct {
	ID          string          `json:"id"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description" validate:"required"`
	Price       int64           `json:"price" validate:"gte=0"`
	Image       string          `json:"image" validate:"required"`
	Category    ProductCategory `json:"category" validate:"required,oneof=galon gas"`
	InStock     bool            `json:"inStock"`
	Popular     bool            `json:"popular"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductUpdate carries a partial edit. Nil fields are left untouched;
// ID and CreatedAt are never writable.
type ProductUpdate struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *int64           `json:"price,omitempty"`
	Image       *string          `json:"image,omitempty"`
	Category    *ProductCategory `json:"category,omitempty"`
	InStock     *bool            `json:"inStock,omitempty"`
	Popular     *bool            `json:"popular,omitempty"`
}

// Apply merges the partial edit over p.
func (u *ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Description != nil {
		p.Description = *u.Description
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Image != nil {
		p.Image = *u.Image
	}
	if u.Category != nil {
		p.Category = *u.Category
	}
	if u.InStock != nil {
		p.InStock = *u.InStock
	}
	if u.Popular != nil {
		p.Popular = *u.Popular
	}
}
