package repository

import (
	"context"
	"fmt"

	"techstore/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

const orderColumns = `
	id, user_id, items, total, shipping_fee, shipping, status,
	payment_method, is_paid, paid_at, delivered_at, tracking_number,
	notes, created_at, updated_at
`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID,
		&o.UserID,
		&o.Items,
		&o.Total,
		&o.ShippingFee,
		&o.Shipping,
		&o.Status,
		&o.PaymentMethod,
		&o.IsPaid,
		&o.PaidAt,
		&o.DeliveredAt,
		&o.TrackingNumber,
		&o.Notes,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
}

// Create inserts a new order snapshot.
func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	query := `
		INSERT INTO orders (
			id, user_id, items, total, shipping_fee, shipping, status,
			payment_method, is_paid, paid_at, delivered_at, tracking_number,
			notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.pool.Exec(ctx, query,
		o.ID, o.UserID, o.Items, o.Total, o.ShippingFee, o.Shipping, o.Status,
		o.PaymentMethod, o.IsPaid, o.PaidAt, o.DeliveredAt, o.TrackingNumber,
		o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", o.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	r.logger.Debug().
		Str("order_id", o.ID.String()).
		Msg("order created successfully")

	return nil
}

// GetByID retrieves an order by its ID.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	var o model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, id), &o)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &o, nil
}

// GetByIDForUser retrieves an order only if it belongs to the given user.
func (r *orderRepository) GetByIDForUser(ctx context.Context, id, userID uuid.UUID) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`

	var o model.Order
	err := scanOrder(r.pool.QueryRow(ctx, query, id, userID), &o)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().
				Str("order_id", id.String()).
				Str("user_id", userID.String()).
				Msg("order not found for user")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &o, nil
}

// ListByUser retrieves a user's orders, newest first.
func (r *orderRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// ListAll retrieves up to limit orders across all users, newest first, each
// joined with the customer's name and email.
func (r *orderRepository) ListAll(ctx context.Context, limit int) ([]model.AdminOrder, error) {
	query := `
		SELECT o.id, o.user_id, o.items, o.total, o.shipping_fee, o.shipping,
			o.status, o.payment_method, o.is_paid, o.paid_at, o.delivered_at,
			o.tracking_number, o.notes, o.created_at, o.updated_at,
			u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		ORDER BY o.created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Int("limit", limit).Msg("failed to query all orders")
		return nil, fmt.Errorf("failed to query all orders: %w", err)
	}
	defer rows.Close()

	var orders []model.AdminOrder
	for rows.Next() {
		var o model.AdminOrder
		err := rows.Scan(
			&o.ID, &o.UserID, &o.Items, &o.Total, &o.ShippingFee, &o.Shipping,
			&o.Status, &o.PaymentMethod, &o.IsPaid, &o.PaidAt, &o.DeliveredAt,
			&o.TrackingNumber, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
			&o.UserName, &o.UserEmail,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan admin order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating admin order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// GetByIDWithUser retrieves one order joined with the customer's name and email.
func (r *orderRepository) GetByIDWithUser(ctx context.Context, id uuid.UUID) (*model.AdminOrder, error) {
	query := `
		SELECT o.id, o.user_id, o.items, o.total, o.shipping_fee, o.shipping,
			o.status, o.payment_method, o.is_paid, o.paid_at, o.delivered_at,
			o.tracking_number, o.notes, o.created_at, o.updated_at,
			u.name, u.email
		FROM orders o
		JOIN users u ON u.id = o.user_id
		WHERE o.id = $1
	`

	var o model.AdminOrder
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.Items, &o.Total, &o.ShippingFee, &o.Shipping,
		&o.Status, &o.PaymentMethod, &o.IsPaid, &o.PaidAt, &o.DeliveredAt,
		&o.TrackingNumber, &o.Notes, &o.CreatedAt, &o.UpdatedAt,
		&o.UserName, &o.UserEmail,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &o, nil
}

// Summary returns the order count and the revenue sum over all orders.
func (r *orderRepository) Summary(ctx context.Context) (model.OrderSummary, error) {
	query := `SELECT COUNT(*), COALESCE(SUM(total), 0) FROM orders`

	var s model.OrderSummary
	if err := r.pool.QueryRow(ctx, query).Scan(&s.Count, &s.Revenue); err != nil {
		r.logger.Error().Err(err).Msg("failed to query order summary")
		return model.OrderSummary{}, fmt.Errorf("failed to query order summary: %w", err)
	}

	return s, nil
}

// UpdateLifecycle persists the mutable lifecycle fields of an order. The
// snapshot fields (items, total, shipping) are deliberately not writable.
func (r *orderRepository) UpdateLifecycle(ctx context.Context, o *model.Order) error {
	query := `
		UPDATE orders
		SET status = $2, is_paid = $3, paid_at = $4, delivered_at = $5,
			tracking_number = $6, notes = $7, updated_at = $8
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		o.ID, o.Status, o.IsPaid, o.PaidAt, o.DeliveredAt,
		o.TrackingNumber, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to update order")
		return fmt.Errorf("failed to update order: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}
