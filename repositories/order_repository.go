package repositories

import (
	"context"
	"errors"

	"storefront/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	orderColumns    = `id, user_id, subtotal_cents, total_cents, currency, status, address, city, postal_code, country, created_at, updated_at`
	checkoutColumns = `id, payment_method, status::text, session_id, order_id, user_id, created_at, updated_at`
)

type OrderRepository struct {
	pool *pgxpool.Pool
}

func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

func scanOrder(row rowScanner) (*models.Order, error) {
	o := &models.Order{}
	err := row.Scan(
		&o.ID,
		&o.UserID,
		&o.SubtotalCents,
		&o.TotalCents,
		&o.Currency,
		&o.Status,
		&o.Address,
		&o.City,
		&o.PostalCode,
		&o.Country,
		&o.CreatedAt,
		&o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func scanCheckout(row rowScanner) (*models.Checkout, error) {
	c := &models.Checkout{}
	err := row.Scan(
		&c.ID,
		&c.PaymentMethod,
		&c.Status,
		&c.SessionID,
		&c.OrderID,
		&c.UserID,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// CreateOrder inserts the order and its lines. Call it inside a transaction.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	db := conn(ctx, r.pool)

	query := `
		INSERT INTO orders (user_id, subtotal_cents, total_cents, currency, status, address, city, postal_code, country)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`
	err := db.QueryRow(ctx, query,
		order.UserID,
		order.SubtotalCents,
		order.TotalCents,
		order.Currency,
		order.Status,
		order.Address,
		order.City,
		order.PostalCode,
		order.Country,
	).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return translate(err, "order not found")
	}

	lineQuery := `
		INSERT INTO products_in_order (order_id, product_id, product_name, unit_price_cents, quantity)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for i := range order.Lines {
		line := &order.Lines[i]
		line.OrderID = order.ID
		err := db.QueryRow(ctx, lineQuery,
			line.OrderID,
			line.ProductID,
			line.ProductName,
			line.UnitPriceCents,
			line.Quantity,
		).Scan(&line.ID)
		if err != nil {
			return translate(err, "order not found")
		}
	}
	return nil
}

func (r *OrderRepository) CreateCheckout(ctx context.Context, checkout *models.Checkout) error {
	query := `
		INSERT INTO checkout (payment_method, status, session_id, order_id, user_id)
		VALUES ($1, $2::status_transaction, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		checkout.PaymentMethod,
		string(checkout.Status),
		checkout.SessionID,
		checkout.OrderID,
		checkout.UserID,
	).Scan(&checkout.ID, &checkout.CreatedAt, &checkout.UpdatedAt)

	return translate(err, "checkout not found")
}

func (r *OrderRepository) FindCheckoutBySession(ctx context.Context, sessionID string) (*models.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkout WHERE session_id = $1`
	c, err := scanCheckout(conn(ctx, r.pool).QueryRow(ctx, query, sessionID))
	if err != nil {
		return nil, translate(err, "checkout not found")
	}
	return c, nil
}

// FindCheckoutByID locks the row when called inside a transaction.
func (r *OrderRepository) FindCheckoutByID(ctx context.Context, id int) (*models.Checkout, error) {
	query := `SELECT ` + checkoutColumns + ` FROM checkout WHERE id = $1 FOR UPDATE`
	c, err := scanCheckout(conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, "checkout not found")
	}
	return c, nil
}

func (r *OrderRepository) UpdateCheckoutStatus(ctx context.Context, id int, status models.CheckoutStatus) error {
	query := `
		UPDATE checkout SET status = $1::status_transaction, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`
	var updated int
	err := conn(ctx, r.pool).QueryRow(ctx, query, string(status), id).Scan(&updated)
	return translate(err, "checkout not found")
}

func (r *OrderRepository) FindOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	db := conn(ctx, r.pool)

	rows, err := db.Query(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, translate(err, "")
	}

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, translate(err, "")
		}
		orders = append(orders, *o)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, translate(err, "")
	}

	for i := range orders {
		if err := r.loadDetails(ctx, db, &orders[i]); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

func (r *OrderRepository) FindOrderByID(ctx context.Context, id int) (*models.Order, error) {
	db := conn(ctx, r.pool)

	o, err := scanOrder(db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id))
	if err != nil {
		return nil, translate(err, "order not found")
	}
	if err := r.loadDetails(ctx, db, o); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepository) loadDetails(ctx context.Context, db DBTX, order *models.Order) error {
	rows, err := db.Query(ctx, `
		SELECT id, order_id, product_id, product_name, unit_price_cents, quantity
		FROM products_in_order WHERE order_id = $1 ORDER BY id`, order.ID)
	if err != nil {
		return translate(err, "")
	}
	defer rows.Close()

	order.Lines = []models.OrderLine{}
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.ProductName, &l.UnitPriceCents, &l.Quantity); err != nil {
			return translate(err, "")
		}
		order.Lines = append(order.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return translate(err, "")
	}

	c, err := scanCheckout(db.QueryRow(ctx, `SELECT `+checkoutColumns+` FROM checkout WHERE order_id = $1`, order.ID))
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return nil
	case err != nil:
		return translate(err, "")
	}
	order.Checkout = c
	return nil
}
