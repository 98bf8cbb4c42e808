package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Img         string    `json:"img"`
	Brand       string    `json:"brand"`
	Type        string    `json:"type"`
	PriceCents  int64     `json:"price_cents"`
	Stock       int       `json:"stock"`
	UserID      *int      `json:"user_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Price is the catalog price in major currency units, derived from PriceCents.
func (p Product) Price() decimal.Decimal {
	return CentsToDecimal(p.PriceCents)
}

// OwnedBy reports whether userID may modify the product. Products without a
// seller belong to the shared catalog and are editable by any user.
func (p Product) OwnedBy(userID int) bool {
	return p.UserID == nil || *p.UserID == userID
}

type ProductFilter struct {
	Brand  string
	Type   string
	Search string
	Page   int
	Limit  int
}
