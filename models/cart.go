package models

import "time"

// MaxCartQuantity bounds the quantity stored on a single cart row.
const MaxCartQuantity = 10000

type CartItem struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	CartID    *string   `json:"cart_id,omitempty"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CartLine is a cart row joined with the product's current catalog data.
// Available is false when the referenced product no longer exists.
type CartLine struct {
	CartItem
	ProductName       string `json:"product_name"`
	ProductPriceCents int64  `json:"product_price_cents"`
	Available         bool   `json:"available"`
}

func (l CartLine) LineTotalCents() int64 {
	return l.ProductPriceCents * int64(l.Quantity)
}

type Cart struct {
	Items         []CartLine `json:"items"`
	SubtotalCents int64      `json:"subtotal_cents"`
}

// NewCart totals the available lines.
func NewCart(lines []CartLine) Cart {
	cart := Cart{Items: lines}
	if cart.Items == nil {
		cart.Items = []CartLine{}
	}
	for _, l := range lines {
		if l.Available {
			cart.SubtotalCents += l.LineTotalCents()
		}
	}
	return cart
}

type Favorite struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	ProductID int       `json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
