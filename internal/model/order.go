package model

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the fulfilment state of an order, distinct from its payment
// state.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// IsValid reports whether s is one of the four known statuses.
func (s OrderStatus) IsValid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// PaymentMethodCOD is the only supported payment method. Orders persisted
// before the field existed have it empty and are treated as COD.
const PaymentMethodCOD = "COD"

// OrderItem is an immutable line snapshot frozen at order-creation time. The
// price is the computed unit price at submission and is never recomputed.
type OrderItem struct {
	ProductID       uuid.UUID       `json:"product"`
	Name            string          `json:"name"`
	Qty             int             `json:"qty"`
	Price           float64         `json:"price"`
	Image           string          `json:"image,omitempty"`
	SelectedOptions SelectedOptions `json:"selectedOptions"`
}

// ShippingAddress is the frozen destination snapshot on an order.
type ShippingAddress struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
	Country string `json:"country"`
}

// Order is a persisted order document. Everything except the lifecycle
// fields (status, payment stamps, tracking, notes) is immutable after
// creation.
type Order struct {
	ID             uuid.UUID       `json:"id" db:"id"`
	UserID         uuid.UUID       `json:"user" db:"user_id"`
	Items          []OrderItem     `json:"items" db:"items"`
	Total          float64         `json:"total" db:"total"`
	ShippingFee    float64         `json:"shippingFee" db:"shipping_fee"`
	Shipping       ShippingAddress `json:"shipping" db:"shipping"`
	Status         OrderStatus     `json:"status" db:"status"`
	PaymentMethod  string          `json:"paymentMethod" db:"payment_method"`
	IsPaid         bool            `json:"isPaid" db:"is_paid"`
	PaidAt         *time.Time      `json:"paidAt,omitempty" db:"paid_at"`
	DeliveredAt    *time.Time      `json:"deliveredAt,omitempty" db:"delivered_at"`
	TrackingNumber string          `json:"trackingNumber,omitempty" db:"tracking_number"`
	Notes          string          `json:"notes,omitempty" db:"notes"`
	CreatedAt      time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}

// AdminOrder is an order joined with the customer's name and email for the
// back-office listing.
type AdminOrder struct {
	Order
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
}

// OrderSummary is the back-office headline figures.
type OrderSummary struct {
	Count   int64   `json:"count"`
	Revenue float64 `json:"revenue"`
}

// OrderItemInput is a client-submitted checkout line. Quantity and price are
// advisory; the snapshot builder sanitises both and recomputes the total.
type OrderItemInput struct {
	ProductID       string          `json:"product"`
	Name            string          `json:"name"`
	Qty             int             `json:"qty"`
	Price           float64         `json:"price"`
	Image           string          `json:"image"`
	SelectedOptions SelectedOptions `json:"selectedOptions"`
}

// CreateOrderRequest is the checkout submission payload. Any client-supplied
// grand total is ignored.
type CreateOrderRequest struct {
	Items    []OrderItemInput `json:"items"`
	Shipping ShippingAddress  `json:"shipping"`
}

// UpdateOrderRequest is the admin order-update payload. Nil fields are left
// untouched. DeliveredAt distinguishes absent from explicit null, because an
// explicit null clears the stamp.
type UpdateOrderRequest struct {
	Status         *string      `json:"status"`
	TrackingNumber *string      `json:"trackingNumber"`
	Notes          *string      `json:"notes"`
	DeliveredAt    OptionalTime `json:"deliveredAt"`
}

// OptionalTime is a tri-state timestamp field: absent, explicit null, or a
// value.
type OptionalTime struct {
	Set   bool
	Value *time.Time
}

// UnmarshalJSON records that the field was present; a JSON null leaves Value
// nil.
func (o *OptionalTime) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var t time.Time
	if err := json.Unmarshal(data, &t); err != nil {
		return err
	}
	o.Value = &t
	return nil
}

// MarshalJSON emits the wrapped value (null when unset or cleared).
func (o OptionalTime) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}
