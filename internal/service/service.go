package service

import (
	"context"

	"techstore/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves products with pagination, each with its price-range
	// preview.
	List(ctx context.Context, limit, offset int) ([]model.ProductListItem, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create creates a product, normalising its option schema.
	Create(ctx context.Context, req *model.CreateProductRequest) (*model.Product, error)

	// Update applies a partial update to a product.
	Update(ctx context.Context, id uuid.UUID, req *model.UpdateProductRequest) (*model.Product, error)

	// Delete removes a product and its stored images (best effort).
	Delete(ctx context.Context, id uuid.UUID) error

	// UploadImage stores image bytes and attaches the resulting URL as the
	// product's primary image.
	UploadImage(ctx context.Context, id uuid.UUID, filename, contentType string, data []byte) (*model.Product, error)

	// RemoveImage detaches an image URL from a product and removes the
	// stored object (best effort).
	RemoveImage(ctx context.Context, id uuid.UUID, url string) (*model.Product, error)
}

// OrderService defines operations for the checkout and fulfilment pipeline.
type OrderService interface {
	// Create freezes a checkout submission into a persisted order snapshot.
	Create(ctx context.Context, userID uuid.UUID, req *model.CreateOrderRequest) (*model.Order, error)

	// ListMine retrieves the user's orders, newest first.
	ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// CancelMine cancels the user's order if it is still cancellable.
	CancelMine(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error)

	// ListAll retrieves the newest orders across all users with customer
	// details, for the back office.
	ListAll(ctx context.Context) ([]model.AdminOrder, error)

	// GetAdmin retrieves one order with customer details.
	GetAdmin(ctx context.Context, orderID uuid.UUID) (*model.AdminOrder, error)

	// Summary returns the back-office headline figures.
	Summary(ctx context.Context) (model.OrderSummary, error)

	// Update applies an admin lifecycle update through the state machine.
	Update(ctx context.Context, orderID uuid.UUID, req *model.UpdateOrderRequest) (*model.Order, error)
}
