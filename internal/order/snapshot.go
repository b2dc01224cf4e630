// Package order holds the pure checkout domain logic: freezing a submitted
// cart into an immutable order snapshot, and the lifecycle state machine
// that mutates it afterwards.
package order

import (
	"fmt"
	"math"
	"time"

	"techstore/internal/model"
	"techstore/internal/shipping"

	"github.com/google/uuid"
)

// BuildSnapshot freezes a checkout submission into an order document.
//
// Client-supplied numbers are advisory only: every quantity is coerced to an
// integer of at least one, every price to a non-negative amount, and the
// persisted total is recomputed here as the sum of qty*price. The shipping
// fee is derived from the destination city, never taken from the client.
func BuildSnapshot(userID uuid.UUID, req *model.CreateOrderRequest, now time.Time) (*model.Order, error) {
	if req == nil || len(req.Items) == 0 {
		return nil, model.ErrEmptyOrder
	}

	items := make([]model.OrderItem, 0, len(req.Items))
	var total float64
	for i, in := range req.Items {
		productID, err := uuid.Parse(in.ProductID)
		if err != nil {
			return nil, model.NewValidationError(
				fmt.Sprintf("Item %d: invalid product reference", i))
		}

		qty := in.Qty
		if qty < 1 {
			qty = 1
		}

		price := in.Price
		if price < 0 || math.IsNaN(price) || math.IsInf(price, 0) {
			price = 0
		}

		selected := in.SelectedOptions
		if selected == nil {
			selected = model.SelectedOptions{}
		}

		items = append(items, model.OrderItem{
			ProductID:       productID,
			Name:            in.Name,
			Qty:             qty,
			Price:           price,
			Image:           in.Image,
			SelectedOptions: selected,
		})
		total += float64(qty) * price
	}

	return &model.Order{
		ID:            uuid.New(),
		UserID:        userID,
		Items:         items,
		Total:         total,
		ShippingFee:   shipping.Fee(req.Shipping.City),
		Shipping:      req.Shipping,
		Status:        model.StatusProcessing,
		PaymentMethod: model.PaymentMethodCOD,
		IsPaid:        false,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}
