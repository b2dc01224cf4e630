package model

import (
	"time"

	"github.com/google/uuid"
)

// OptionValue is a single selectable value of a product option, with the
// signed amount it adds to the base price when selected.
type OptionValue struct {
	Label      string  `json:"label"`
	PriceDelta float64 `json:"priceDelta"`
}

// ProductOption is a named customisation axis (e.g. "Color") with a closed
// set of selectable values.
type ProductOption struct {
	Name   string        `json:"name"`
	Values []OptionValue `json:"values"`
}

// SelectedOptions maps an option name to the chosen value label.
type SelectedOptions map[string]string

// Product represents a catalogue product with its option schema.
type Product struct {
	ID          uuid.UUID       `json:"id" db:"id"`
	Name        string          `json:"name" db:"name"`
	Description string          `json:"description" db:"description"`
	Price       float64         `json:"price" db:"price"`
	Category    string          `json:"category" db:"category"`
	Image       string          `json:"image,omitempty" db:"image"`
	Images      []string        `json:"images" db:"images"`
	Stock       int             `json:"stock" db:"stock"`
	Keywords    []string        `json:"keywords" db:"keywords"`
	Options     []ProductOption `json:"options" db:"options"`
	CreatedAt   time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time       `json:"updatedAt" db:"updated_at"`
}

// ProductListItem is a product as returned by the listing endpoint, with the
// precomputed price-range preview attached.
type ProductListItem struct {
	Product
	PriceFrom float64 `json:"priceFrom"`
	PriceTo   float64 `json:"priceTo"`
}

// CreateProductRequest is the admin payload for creating a product. Options
// arrive in whatever shape the caller has (legacy string values included) and
// are normalised at the ingestion boundary.
type CreateProductRequest struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       *float64    `json:"price"`
	Category    string      `json:"category"`
	Keywords    []string    `json:"keywords"`
	Image       string      `json:"image"`
	Images      []string    `json:"images"`
	Stock       *int        `json:"stock"`
	Options     []RawOption `json:"options"`
}

// UpdateProductRequest is the admin payload for a partial product update.
// Nil fields are left untouched.
type UpdateProductRequest struct {
	Name        *string     `json:"name"`
	Description *string     `json:"description"`
	Price       *float64    `json:"price"`
	Category    *string     `json:"category"`
	Keywords    []string    `json:"keywords"`
	Image       *string     `json:"image"`
	Images      []string    `json:"images"`
	Stock       *int        `json:"stock"`
	Options     []RawOption `json:"options"`
}
