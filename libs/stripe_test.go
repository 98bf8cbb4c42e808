package libs

import (
	"testing"
	"time"

	"storefront/models"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/webhook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSessionParams(t *testing.T) {
	params := buildSessionParams(models.PaymentSessionRequest{
		Currency: "eur",
		LineItems: []models.PaymentLineItem{
			{Name: "Shoe", UnitAmount: 1999, Quantity: 2},
		},
		SuccessURL:        "https://shop.example.com/success",
		CancelURL:         "https://shop.example.com/cancel",
		CustomerEmail:     "ana@example.com",
		ClientReferenceID: "7",
		Metadata:          map[string]string{"city": "Lisbon", "country": ""},
	})

	require.Len(t, params.LineItems, 1)
	item := params.LineItems[0]
	assert.Equal(t, "eur", *item.PriceData.Currency)
	assert.Equal(t, "Shoe", *item.PriceData.ProductData.Name)
	assert.Equal(t, int64(1999), *item.PriceData.UnitAmount)
	assert.Equal(t, int64(2), *item.Quantity)

	assert.Equal(t, string(stripe.CheckoutSessionModePayment), *params.Mode)
	assert.Equal(t, "7", *params.ClientReferenceID)
	assert.Equal(t, "ana@example.com", *params.CustomerEmail)
	assert.Equal(t, map[string]string{"city": "Lisbon"}, params.Metadata)
}

const completedEvent = `{
	"id": "evt_1",
	"object": "event",
	"type": "checkout.session.completed",
	"data": {
		"object": {
			"id": "cs_test_1",
			"object": "checkout.session",
			"client_reference_id": "7",
			"amount_total": 4085,
			"currency": "eur",
			"customer_details": {"email": "ana@example.com"},
			"payment_method_types": ["card"],
			"metadata": {"city": "Lisbon"}
		}
	}
}`

func TestParseWebhookVerifiesSignature(t *testing.T) {
	gateway := NewStripeGateway("sk_test", "whsec_test", time.Second)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(completedEvent),
		Secret:    "whsec_test",
		Timestamp: time.Now(),
	})

	event, err := gateway.ParseWebhook(signed.Payload, signed.Header)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentEventSessionCompleted, event.Type)
	assert.Equal(t, "cs_test_1", event.SessionID)
	assert.Equal(t, "7", event.ClientReferenceID)
	assert.Equal(t, int64(4085), event.AmountTotal)
	assert.Equal(t, "eur", event.Currency)
	assert.Equal(t, "ana@example.com", event.CustomerEmail)
	assert.Equal(t, "card", event.PaymentMethod)
	assert.Equal(t, "Lisbon", event.Metadata["city"])
}

func TestParseWebhookRejectsBadSignature(t *testing.T) {
	gateway := NewStripeGateway("sk_test", "whsec_test", time.Second)

	signed := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(completedEvent),
		Secret:    "whsec_other",
		Timestamp: time.Now(),
	})

	_, err := gateway.ParseWebhook(signed.Payload, signed.Header)
	assert.Error(t, err)
}
