package model

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// AcceptanceWindow is the fixed interval after creation during which a rider
// may claim a pending order.
const AcceptanceWindow = 10 * time.Minute

var (
	ErrNoItems         = errors.New("order has no items")
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	ErrInvalidPrice    = errors.New("item price must not be negative")
	ErrZeroTotal       = errors.New("order total must be positive")
)

type OrderItem struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type Order struct {
	ID        string          `json:"id"`
	ClientID  string          `json:"clientId"`
	Items     []OrderItem     `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Status    Status          `json:"status"`
	CreatedAt time.Time       `json:"createdAt"`
	ExpiresAt time.Time       `json:"expiresAt"`

	// AcceptedBy is nil until a rider claims the order, immutable afterwards.
	AcceptedBy *string `json:"acceptedBy,omitempty"`

	// EstimatedDeliveryTime is minutes, nil when no estimate could be produced.
	EstimatedDeliveryTime *float64   `json:"estimatedDeliveryTime,omitempty"`
	EtaCalculatedAt       *time.Time `json:"etaCalculatedAt,omitempty"`

	UpdatedAt time.Time `json:"updatedAt"`
}

// Acceptable reports whether a rider may still claim the order: it must be
// pending, unclaimed and inside the acceptance window.
func (o *Order) Acceptable(now time.Time) bool {
	claimed := o.AcceptedBy != nil && *o.AcceptedBy != ""
	return o.Status == StatusPending && !claimed && now.Before(o.ExpiresAt)
}

// DeadlineElapsed reports whether a still-pending order has outlived its
// acceptance window. The stored status may lag behind: expiry is observed by
// clients, not enforced by a server timer.
func (o *Order) DeadlineElapsed(now time.Time) bool {
	return o.Status == StatusPending && !now.Before(o.ExpiresAt)
}

// ComputeTotal sums price*quantity over the items.
func ComputeTotal(items []OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}

// ValidateItems enforces the creation invariants: at least one item, every
// quantity >= 1, no negative price, and a positive total.
func ValidateItems(items []OrderItem) error {
	if len(items) == 0 {
		return ErrNoItems
	}
	for _, it := range items {
		if it.Quantity < 1 {
			return ErrInvalidQuantity
		}
		if it.Price.IsNegative() {
			return ErrInvalidPrice
		}
	}
	if !ComputeTotal(items).IsPositive() {
		return ErrZeroTotal
	}
	return nil
}
