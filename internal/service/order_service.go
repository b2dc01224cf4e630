package service

import (
	"context"
	"fmt"
	"time"

	"techstore/internal/model"
	"techstore/internal/order"
	"techstore/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// adminListLimit caps the back-office order listing.
const adminListLimit = 200

// orderService implements OrderService.
type orderService struct {
	orderRepo repository.OrderRepository
	logger    zerolog.Logger
	now       func() time.Time
}

// NewOrderService creates a new order service.
func NewOrderService(orderRepo repository.OrderRepository, logger zerolog.Logger) OrderService {
	return &orderService{
		orderRepo: orderRepo,
		logger:    logger.With().Str("service", "order").Logger(),
		now:       time.Now,
	}
}

// Create freezes a checkout submission into a persisted order snapshot.
func (s *orderService) Create(ctx context.Context, userID uuid.UUID, req *model.CreateOrderRequest) (*model.Order, error) {
	o, err := order.BuildSnapshot(userID, req, s.now())
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("user_id", userID.String()).
			Msg("order snapshot rejected")
		return nil, err
	}

	if err := s.orderRepo.Create(ctx, o); err != nil {
		s.logger.Error().Err(err).Str("order_id", o.ID.String()).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", o.ID.String()).
		Str("user_id", userID.String()).
		Int("item_count", len(o.Items)).
		Float64("total", o.Total).
		Msg("order created successfully")

	return o, nil
}

// ListMine retrieves the user's orders, newest first.
func (s *orderService) ListMine(ctx context.Context, userID uuid.UUID) ([]model.Order, error) {
	orders, err := s.orderRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID.String()).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// CancelMine cancels the user's order if it is still processing and unpaid.
// An order that does not exist or belongs to someone else is reported as not
// found, never as someone else's.
func (s *orderService) CancelMine(ctx context.Context, orderID, userID uuid.UUID) (*model.Order, error) {
	o, err := s.orderRepo.GetByIDForUser(ctx, orderID, userID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to load order")
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if o == nil {
		return nil, model.ErrOrderNotFound
	}

	if err := order.Cancel(o, s.now()); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", orderID.String()).
			Str("status", string(o.Status)).
			Bool("is_paid", o.IsPaid).
			Msg("cancellation rejected")
		return nil, err
	}

	if err := s.orderRepo.UpdateLifecycle(ctx, o); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to persist cancellation")
		return nil, fmt.Errorf("failed to cancel order: %w", err)
	}

	s.logger.Info().Str("order_id", orderID.String()).Msg("order cancelled")
	return o, nil
}

// ListAll retrieves the newest orders across all users for the back office.
func (s *orderService) ListAll(ctx context.Context) ([]model.AdminOrder, error) {
	orders, err := s.orderRepo.ListAll(ctx, adminListLimit)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list all orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	if orders == nil {
		orders = []model.AdminOrder{}
	}
	return orders, nil
}

// GetAdmin retrieves one order with customer details.
func (s *orderService) GetAdmin(ctx context.Context, orderID uuid.UUID) (*model.AdminOrder, error) {
	o, err := s.orderRepo.GetByIDWithUser(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to load order")
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if o == nil {
		return nil, model.ErrOrderNotFound
	}
	return o, nil
}

// Summary returns the back-office headline figures.
func (s *orderService) Summary(ctx context.Context) (model.OrderSummary, error) {
	summary, err := s.orderRepo.Summary(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to compute order summary")
		return model.OrderSummary{}, fmt.Errorf("failed to compute order summary: %w", err)
	}
	return summary, nil
}

// Update applies an admin lifecycle update through the state machine.
func (s *orderService) Update(ctx context.Context, orderID uuid.UUID, req *model.UpdateOrderRequest) (*model.Order, error) {
	o, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to load order")
		return nil, fmt.Errorf("failed to load order: %w", err)
	}
	if o == nil {
		return nil, model.ErrOrderNotFound
	}

	upd := order.Update{
		Status:         req.Status,
		TrackingNumber: req.TrackingNumber,
		Notes:          req.Notes,
		DeliveredAt:    req.DeliveredAt,
	}
	if err := order.ApplyUpdate(o, upd, s.now()); err != nil {
		s.logger.Warn().
			Err(err).
			Str("order_id", orderID.String()).
			Str("status", string(o.Status)).
			Msg("order update rejected")
		return nil, err
	}

	if err := s.orderRepo.UpdateLifecycle(ctx, o); err != nil {
		s.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to persist order update")
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID.String()).
		Str("status", string(o.Status)).
		Bool("is_paid", o.IsPaid).
		Msg("order updated")

	return o, nil
}
