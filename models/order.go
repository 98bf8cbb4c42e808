package models

import "time"

const (
	OrderStatusPaid = "paid"

	PaymentMethodCard = "card"
)

type CheckoutStatus string

const (
	CheckoutPending   CheckoutStatus = "pending"
	CheckoutReceived  CheckoutStatus = "received"
	CheckoutCompleted CheckoutStatus = "completed"
)

var checkoutStatusRank = map[CheckoutStatus]int{
	CheckoutPending:   0,
	CheckoutReceived:  1,
	CheckoutCompleted: 2,
}

func (s CheckoutStatus) Valid() bool {
	_, ok := checkoutStatusRank[s]
	return ok
}

// CanTransitionTo allows only forward moves through pending, received,
// completed.
func (s CheckoutStatus) CanTransitionTo(next CheckoutStatus) bool {
	from, ok := checkoutStatusRank[s]
	if !ok {
		return false
	}
	to, ok := checkoutStatusRank[next]
	return ok && to > from
}

type Order struct {
	ID            int         `json:"id"`
	UserID        int         `json:"user_id"`
	SubtotalCents int64       `json:"subtotal_cents"`
	TotalCents    int64       `json:"total_cents"`
	Currency      string      `json:"currency"`
	Status        string      `json:"status"`
	Address       string      `json:"address"`
	City          string      `json:"city"`
	PostalCode    string      `json:"postal_code"`
	Country       string      `json:"country"`
	Lines         []OrderLine `json:"lines"`
	Checkout      *Checkout   `json:"checkout,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

// OrderLine snapshots the product name and price at purchase time.
type OrderLine struct {
	ID             int    `json:"id"`
	OrderID        int    `json:"order_id"`
	ProductID      *int   `json:"product_id,omitempty"`
	ProductName    string `json:"product_name"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	Quantity       int    `json:"quantity"`
}

type Checkout struct {
	ID            int            `json:"id"`
	PaymentMethod string         `json:"payment_method"`
	Status        CheckoutStatus `json:"status"`
	SessionID     string         `json:"session_id"`
	OrderID       int            `json:"order_id"`
	UserID        int            `json:"user_id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}
