package order

import (
	"fmt"
	"time"

	"techstore/internal/model"
)

// transitions is the forward-only lifecycle graph. Writing the current
// status again is always allowed and is a no-op apart from the side effects
// below.
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.StatusProcessing: {model.StatusShipped, model.StatusDelivered, model.StatusCancelled},
	model.StatusShipped:    {model.StatusDelivered},
	model.StatusDelivered:  {},
	model.StatusCancelled:  {},
}

// CanTransition reports whether an order may move from one status to
// another.
func CanTransition(from, to model.OrderStatus) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Update is an admin-driven mutation of an order's lifecycle fields. Nil
// fields are untouched.
type Update struct {
	Status         *string
	TrackingNumber *string
	Notes          *string
	DeliveredAt    model.OptionalTime
}

// ApplyUpdate mutates o in place according to the state machine.
//
// Side effects of reaching delivered with payment method COD (or empty, for
// orders predating the field): isPaid flips to true and paidAt is stamped,
// both exactly once; deliveredAt is stamped if unset. An explicit
// deliveredAt in the update takes precedence over the auto-stamp and may
// also clear the field. Tracking number and notes are editable in any state.
func ApplyUpdate(o *model.Order, upd Update, now time.Time) error {
	if upd.Status != nil {
		status := model.OrderStatus(*upd.Status)
		if !status.IsValid() {
			return model.ErrInvalidStatus
		}
		if !CanTransition(o.Status, status) {
			return model.NewStateConflictError(
				fmt.Sprintf("Cannot change status from %s to %s", o.Status, status))
		}

		o.Status = status

		codOrLegacy := o.PaymentMethod == "" || o.PaymentMethod == model.PaymentMethodCOD
		if status == model.StatusDelivered && codOrLegacy {
			if !o.IsPaid {
				o.IsPaid = true
				paidAt := now
				o.PaidAt = &paidAt
			}
			if o.DeliveredAt == nil {
				deliveredAt := now
				o.DeliveredAt = &deliveredAt
			}
		}
	}

	if upd.TrackingNumber != nil {
		o.TrackingNumber = *upd.TrackingNumber
	}
	if upd.Notes != nil {
		o.Notes = *upd.Notes
	}
	if upd.DeliveredAt.Set {
		o.DeliveredAt = upd.DeliveredAt.Value
	}

	o.UpdatedAt = now
	return nil
}

// Cancel performs the user-driven cancellation. It succeeds only while the
// order is still processing and unpaid; there is no reversal path.
func Cancel(o *model.Order, now time.Time) error {
	if o.IsPaid {
		return model.NewStateConflictError("Order already paid")
	}
	if o.Status != model.StatusProcessing {
		return model.NewStateConflictError(
			fmt.Sprintf("Cannot cancel when status is %s", o.Status))
	}

	o.Status = model.StatusCancelled
	o.UpdatedAt = now
	return nil
}
