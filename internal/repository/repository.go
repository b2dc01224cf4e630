package repository

import (
	"context"

	"techstore/internal/model"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves products with pagination support, newest first.
	List(ctx context.Context, limit, offset int) ([]model.Product, error)

	// GetByID retrieves a single product by its ID. Returns nil, nil when
	// the product does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update rewrites all mutable product fields.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Returns false when no row matched.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// OrderRepository defines the interface for order data access operations.
// Orders are never deleted; cancellation is a status write.
type OrderRepository interface {
	// Create inserts a new order snapshot.
	Create(ctx context.Context, order *model.Order) error

	// GetByID retrieves an order by its ID. Returns nil, nil when the order
	// does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error)

	// GetByIDForUser retrieves an order only if it belongs to the given
	// user. Returns nil, nil otherwise.
	GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.Order, error)

	// ListByUser retrieves a user's orders, newest first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error)

	// ListAll retrieves up to limit orders across all users, newest first,
	// each joined with the customer's name and email.
	ListAll(ctx context.Context, limit int) ([]model.AdminOrder, error)

	// GetByIDWithUser retrieves one order joined with the customer's name
	// and email. Returns nil, nil when the order does not exist.
	GetByIDWithUser(ctx context.Context, id uuid.UUID) (*model.AdminOrder, error)

	// Summary returns the order count and the revenue sum over all orders.
	Summary(ctx context.Context) (model.OrderSummary, error)

	// UpdateLifecycle persists the mutable lifecycle fields of an order.
	UpdateLifecycle(ctx context.Context, order *model.Order) error
}

// UserRepository resolves authenticated identities and persists users.
type UserRepository interface {
	// GetByToken retrieves the user owning an auth token. Returns nil, nil
	// when no user holds the token.
	GetByToken(ctx context.Context, token string) (*model.User, error)

	// Create inserts a new user.
	Create(ctx context.Context, user *model.User) error
}
