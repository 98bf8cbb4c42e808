package services

import (
	"context"
	"strconv"

	"storefront/apperror"
	"storefront/logger"
	"storefront/metrics"
	"storefront/models"
)

type CheckoutConfig struct {
	Currency   string
	SuccessURL string
	CancelURL  string
}

type CheckoutService struct {
	users    UserRepository
	products ProductRepository
	carts    CartRepository
	orders   OrderRepository
	tx       TxRunner
	gateway  PaymentGateway
	mailer   Mailer
	cfg      CheckoutConfig
}

// NewCheckoutService accepts a nil mailer; confirmations are then not sent.
func NewCheckoutService(users UserRepository, products ProductRepository, carts CartRepository, orders OrderRepository,
	tx TxRunner, gateway PaymentGateway, mailer Mailer, cfg CheckoutConfig) *CheckoutService {
	return &CheckoutService{
		users:    users,
		products: products,
		carts:    carts,
		orders:   orders,
		tx:       tx,
		gateway:  gateway,
		mailer:   mailer,
		cfg:      cfg,
	}
}

// CreateSession turns the user's cart into a hosted payment session. It
// writes nothing: the order is recorded once the gateway confirms payment,
// from the cart snapshot carried in the session metadata.
func (s *CheckoutService) CreateSession(ctx context.Context, userID int, shipping models.ShippingAddress) (*models.CheckoutSessionResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, err := s.carts.Lines(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.PaymentLineItem, 0, len(lines))
	paid := make([]models.PaidLine, 0, len(lines))
	for _, line := range lines {
		if !line.Available {
			continue
		}
		items = append(items, models.PaymentLineItem{
			Name:       line.ProductName,
			UnitAmount: line.ProductPriceCents,
			Quantity:   int64(line.Quantity),
		})
		paid = append(paid, models.PaidLine{
			ProductID:      line.ProductID,
			Quantity:       line.Quantity,
			UnitPriceCents: line.ProductPriceCents,
		})
	}
	if len(items) == 0 {
		metrics.CheckoutSessions.WithLabelValues("empty_cart").Inc()
		return nil, apperror.InvalidState("cart empty")
	}

	metadata, err := models.EncodePaidLines(paid)
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}
	metadata["user_id"] = strconv.Itoa(user.ID)
	metadata["address"] = shipping.Address
	metadata["city"] = shipping.City
	metadata["postal_code"] = shipping.PostalCode
	metadata["country"] = shipping.Country

	session, err := s.gateway.CreateSession(ctx, models.PaymentSessionRequest{
		Currency:          s.cfg.Currency,
		LineItems:         items,
		SuccessURL:        s.cfg.SuccessURL,
		CancelURL:         s.cfg.CancelURL,
		CustomerEmail:     user.Email,
		ClientReferenceID: strconv.Itoa(user.ID),
		Metadata:          metadata,
	})
	if err != nil {
		metrics.CheckoutSessions.WithLabelValues("gateway_error").Inc()
		logger.FromContext(ctx).Error("payment gateway rejected session", "user_id", userID, "error", err)
		return nil, apperror.External("payment gateway error", err)
	}

	metrics.CheckoutSessions.WithLabelValues("created").Inc()
	logger.FromContext(ctx).Info("checkout session created", "user_id", userID, "session_id", session.ID, "lines", len(items))
	return &models.CheckoutSessionResponse{SessionID: session.ID, CheckoutURL: session.URL}, nil
}

// HandleWebhook verifies a gateway notification and records the order for
// completed sessions. Other event types are acknowledged and ignored.
func (s *CheckoutService) HandleWebhook(ctx context.Context, payload []byte, signature string) (*models.Order, error) {
	event, err := s.gateway.ParseWebhook(payload, signature)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindValidation, "invalid webhook signature or payload", err)
	}
	if event.Type != models.PaymentEventSessionCompleted {
		logger.FromContext(ctx).Debug("ignoring payment event", "type", event.Type, "event_id", event.ID)
		return nil, nil
	}
	order, _, err := s.ConfirmPayment(ctx, event)
	return order, err
}

// ConfirmPayment records a paid session as an Order and a Checkout in one
// transaction. Order lines come from the cart snapshot taken when the session
// was created, and only those quantities leave the cart; items added after
// the session stay. Events without a snapshot fall back to the current cart,
// which is then emptied. Confirming the same session again returns the
// existing order with created=false.
func (s *CheckoutService) ConfirmPayment(ctx context.Context, event *models.PaymentEvent) (order *models.Order, created bool, err error) {
	if event.SessionID == "" {
		return nil, false, apperror.Validation("payment event has no session id")
	}
	userID, err := strconv.Atoi(event.ClientReferenceID)
	if err != nil || userID <= 0 {
		return nil, false, apperror.Validation("payment event has no valid client reference")
	}
	paid, snapshot, err := models.DecodePaidLines(event.Metadata)
	if err != nil {
		return nil, false, apperror.Wrap(apperror.KindValidation, "payment event carries a malformed cart snapshot", err)
	}

	var user *models.User
	err = s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, err := s.orders.FindCheckoutBySession(ctx, event.SessionID)
		if err == nil {
			order, err = s.orders.FindOrderByID(ctx, existing.OrderID)
			return err
		}
		if !apperror.Is(err, apperror.KindNotFound) {
			return err
		}

		user, err = s.users.FindByID(ctx, userID)
		if err != nil {
			return err
		}

		cartLines, err := s.carts.Lines(ctx, userID)
		if err != nil {
			return err
		}

		lines := cartOrderLines(cartLines)
		if snapshot {
			if lines, err = s.paidOrderLines(ctx, paid); err != nil {
				return err
			}
		}
		order = s.buildOrder(ctx, userID, event, lines)
		if err := s.orders.CreateOrder(ctx, order); err != nil {
			return err
		}

		paymentMethod := event.PaymentMethod
		if paymentMethod == "" {
			paymentMethod = models.PaymentMethodCard
		}
		checkout := &models.Checkout{
			PaymentMethod: paymentMethod,
			Status:        models.CheckoutReceived,
			SessionID:     event.SessionID,
			OrderID:       order.ID,
			UserID:        userID,
		}
		if err := s.orders.CreateCheckout(ctx, checkout); err != nil {
			return err
		}
		order.Checkout = checkout
		created = true

		if snapshot {
			return s.releasePaidLines(ctx, userID, paid, cartLines)
		}
		return s.carts.Clear(ctx, userID)
	})

	if apperror.Is(err, apperror.KindConflict) {
		// A concurrent delivery of the same event committed first.
		existing, findErr := s.orders.FindCheckoutBySession(ctx, event.SessionID)
		if findErr != nil {
			return nil, false, err
		}
		order, err = s.orders.FindOrderByID(ctx, existing.OrderID)
		return order, false, err
	}
	if err != nil {
		return nil, false, err
	}

	if created {
		metrics.OrdersCreated.Inc()
		logger.FromContext(ctx).Info("order created from payment",
			"order_id", order.ID, "user_id", userID, "session_id", event.SessionID, "total_cents", order.TotalCents)
		s.sendConfirmation(ctx, user, event, order)
	}
	return order, created, nil
}

func cartOrderLines(cart []models.CartLine) []models.OrderLine {
	lines := make([]models.OrderLine, 0, len(cart))
	for _, line := range cart {
		if !line.Available {
			continue
		}
		productID := line.ProductID
		lines = append(lines, models.OrderLine{
			ProductID:      &productID,
			ProductName:    line.ProductName,
			UnitPriceCents: line.ProductPriceCents,
			Quantity:       line.Quantity,
		})
	}
	return lines
}

// paidOrderLines prices lines at the amounts charged. Products deleted since
// the session was created keep their line without a product reference.
func (s *CheckoutService) paidOrderLines(ctx context.Context, paid []models.PaidLine) ([]models.OrderLine, error) {
	lines := make([]models.OrderLine, 0, len(paid))
	for _, p := range paid {
		line := models.OrderLine{
			ProductName:    "Unknown product",
			UnitPriceCents: p.UnitPriceCents,
			Quantity:       p.Quantity,
		}
		product, err := s.products.FindByID(ctx, p.ProductID)
		switch {
		case err == nil:
			productID := product.ID
			line.ProductID = &productID
			line.ProductName = product.Name
		case !apperror.Is(err, apperror.KindNotFound):
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// releasePaidLines takes the paid quantities out of the cart. A row whose
// quantity grew after the session keeps the difference.
func (s *CheckoutService) releasePaidLines(ctx context.Context, userID int, paid []models.PaidLine, cart []models.CartLine) error {
	held := make(map[int]int, len(cart))
	for _, line := range cart {
		held[line.ProductID] = line.Quantity
	}
	for _, p := range paid {
		quantity, ok := held[p.ProductID]
		if !ok {
			continue
		}
		if quantity > p.Quantity {
			if _, err := s.carts.SetQuantity(ctx, userID, p.ProductID, quantity-p.Quantity); err != nil {
				return err
			}
			continue
		}
		if err := s.carts.Delete(ctx, userID, p.ProductID); err != nil {
			return err
		}
	}
	return nil
}

func (s *CheckoutService) buildOrder(ctx context.Context, userID int, event *models.PaymentEvent, lines []models.OrderLine) *models.Order {
	order := &models.Order{
		UserID:     userID,
		Currency:   event.Currency,
		Status:     models.OrderStatusPaid,
		Address:    event.Metadata["address"],
		City:       event.Metadata["city"],
		PostalCode: event.Metadata["postal_code"],
		Country:    event.Metadata["country"],
		Lines:      lines,
	}
	if order.Currency == "" {
		order.Currency = s.cfg.Currency
	}

	for _, line := range lines {
		order.SubtotalCents += line.UnitPriceCents * int64(line.Quantity)
	}

	order.TotalCents = order.SubtotalCents
	if event.AmountTotal > 0 {
		order.TotalCents = event.AmountTotal
		if event.AmountTotal != order.SubtotalCents {
			logger.FromContext(ctx).Warn("charged amount differs from order subtotal",
				"user_id", userID, "session_id", event.SessionID,
				"amount_total", event.AmountTotal, "subtotal_cents", order.SubtotalCents)
		}
	}

	if len(order.Lines) == 0 {
		logger.FromContext(ctx).Warn("payment confirmed for an empty cart, recording order without lines",
			"user_id", userID, "session_id", event.SessionID)
	}
	return order
}

// sendConfirmation is best-effort: the order is already committed.
func (s *CheckoutService) sendConfirmation(ctx context.Context, user *models.User, event *models.PaymentEvent, order *models.Order) {
	if s.mailer == nil {
		return
	}
	to := event.CustomerEmail
	if to == "" && user != nil {
		to = user.Email
	}
	if to == "" {
		return
	}
	if err := s.mailer.SendOrderConfirmation(ctx, to, order); err != nil {
		logger.FromContext(ctx).Warn("order confirmation email failed", "order_id", order.ID, "error", err)
	}
}
