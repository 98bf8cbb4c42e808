package models

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecimalToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"19.99", 1999},
		{"0", 0},
		{"0.1", 10},
		{"1.005", 101},
		{"1234567.89", 123456789},
	}
	for _, tc := range cases {
		got, err := DecimalToCents(decimal.RequireFromString(tc.in))
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.want, got, tc.in)
	}
}

func TestDecimalToCentsRejectsNegative(t *testing.T) {
	_, err := DecimalToCents(decimal.RequireFromString("-0.01"))
	assert.ErrorIs(t, err, ErrNegativePrice)
}

func TestDecimalToCentsRejectsOversizedPrices(t *testing.T) {
	for _, in := range []string{"100000000", "200000000000000000", "92233720368547758.08", "1e30"} {
		_, err := DecimalToCents(decimal.RequireFromString(in))
		assert.ErrorIs(t, err, ErrPriceTooLarge, in)
	}

	cents, err := DecimalToCents(decimal.RequireFromString("99999999.99"))
	require.NoError(t, err)
	assert.Equal(t, MaxPriceCents, cents)
}

func TestPriceFromJSONNumber(t *testing.T) {
	var body struct {
		Price decimal.Decimal `json:"price"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"price": 0.29}`), &body))

	cents, err := DecimalToCents(body.Price)
	require.NoError(t, err)
	assert.Equal(t, int64(29), cents)
}

func TestProductPriceMarshalsAsNumber(t *testing.T) {
	out, err := json.Marshal(struct {
		Price decimal.Decimal `json:"price"`
	}{Price: Product{PriceCents: 1999}.Price()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"price": 19.99}`, string(out))
}

func TestCheckoutStatusTransitions(t *testing.T) {
	assert.True(t, CheckoutPending.CanTransitionTo(CheckoutReceived))
	assert.True(t, CheckoutReceived.CanTransitionTo(CheckoutCompleted))
	assert.True(t, CheckoutPending.CanTransitionTo(CheckoutCompleted))
	assert.False(t, CheckoutCompleted.CanTransitionTo(CheckoutReceived))
	assert.False(t, CheckoutReceived.CanTransitionTo(CheckoutReceived))
	assert.False(t, CheckoutReceived.CanTransitionTo("shipped"))
	assert.False(t, CheckoutStatus("").Valid())
}

func TestNewCartSkipsUnavailableLines(t *testing.T) {
	cart := NewCart([]CartLine{
		{CartItem: CartItem{ProductID: 1, Quantity: 2}, ProductPriceCents: 500, Available: true},
		{CartItem: CartItem{ProductID: 2, Quantity: 1}, Available: false},
	})
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, int64(1000), cart.SubtotalCents)

	assert.NotNil(t, NewCart(nil).Items)
}

func TestProductOwnedBy(t *testing.T) {
	seller := 7
	assert.True(t, Product{}.OwnedBy(3))
	assert.True(t, Product{UserID: &seller}.OwnedBy(7))
	assert.False(t, Product{UserID: &seller}.OwnedBy(3))
}
