package libs

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"storefront/models"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
	"github.com/stripe/stripe-go/v79/webhook"
)

// StripeGateway creates Stripe Checkout sessions. Network retries are
// disabled and every call is bounded by the HTTP client timeout.
type StripeGateway struct {
	sessions      session.Client
	webhookSecret string
}

func NewStripeGateway(secretKey, webhookSecret string, timeout time.Duration) *StripeGateway {
	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient:        &http.Client{Timeout: timeout},
		MaxNetworkRetries: stripe.Int64(0),
	})
	return &StripeGateway{
		sessions:      session.Client{B: backend, Key: secretKey},
		webhookSecret: webhookSecret,
	}
}

func (g *StripeGateway) CreateSession(ctx context.Context, req models.PaymentSessionRequest) (*models.PaymentSession, error) {
	params := buildSessionParams(req)
	params.Context = ctx

	s, err := g.sessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe create session: %w", err)
	}
	return &models.PaymentSession{ID: s.ID, URL: s.URL}, nil
}

func buildSessionParams(req models.PaymentSessionRequest) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(req.Currency),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(req.SuccessURL),
		CancelURL:          stripe.String(req.CancelURL),
		ClientReferenceID:  stripe.String(req.ClientReferenceID),
	}
	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}
	for k, v := range req.Metadata {
		if v != "" {
			params.AddMetadata(k, v)
		}
	}
	return params
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*models.PaymentEvent, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signature, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, err
	}
	return toPaymentEvent(event)
}

func toPaymentEvent(event stripe.Event) (*models.PaymentEvent, error) {
	out := &models.PaymentEvent{ID: event.ID, Type: string(event.Type)}
	if out.Type != models.PaymentEventSessionCompleted {
		return out, nil
	}

	var s stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &s); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}

	out.SessionID = s.ID
	out.ClientReferenceID = s.ClientReferenceID
	out.AmountTotal = s.AmountTotal
	out.Currency = string(s.Currency)
	out.CustomerEmail = s.CustomerEmail
	if out.CustomerEmail == "" && s.CustomerDetails != nil {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	if len(s.PaymentMethodTypes) > 0 {
		out.PaymentMethod = s.PaymentMethodTypes[0]
	}
	out.Metadata = s.Metadata
	return out, nil
}
