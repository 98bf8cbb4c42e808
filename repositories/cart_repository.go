package repositories

import (
	"context"

	"storefront/apperror"
	"storefront/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const cartColumns = `id, user_id, product_id, cart_id::text, quantity, created_at, updated_at`

type CartRepository struct {
	pool *pgxpool.Pool
}

func NewCartRepository(pool *pgxpool.Pool) *CartRepository {
	return &CartRepository{pool: pool}
}

func scanCartItem(row rowScanner) (*models.CartItem, error) {
	item := &models.CartItem{}
	err := row.Scan(
		&item.ID,
		&item.UserID,
		&item.ProductID,
		&item.CartID,
		&item.Quantity,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// AddQuantity inserts the (user, product) row or increments the stored
// quantity in a single statement. A new row joins the user's existing cart
// grouping id, falling back to newCartID.
func (r *CartRepository) AddQuantity(ctx context.Context, userID, productID, quantity int, newCartID string) (*models.CartItem, error) {
	query := `
		INSERT INTO shopping_cart (user_id, product_id, quantity, cart_id)
		VALUES ($1, $2, $3, COALESCE(
			(SELECT cart_id FROM shopping_cart WHERE user_id = $1 AND cart_id IS NOT NULL LIMIT 1),
			$4::uuid
		))
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = shopping_cart.quantity + EXCLUDED.quantity, updated_at = NOW()
		RETURNING ` + cartColumns

	item, err := scanCartItem(conn(ctx, r.pool).QueryRow(ctx, query, userID, productID, quantity, newCartID))
	if err != nil {
		return nil, translate(err, "cart item not found")
	}
	return item, nil
}

func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID, quantity int) (*models.CartItem, error) {
	query := `
		UPDATE shopping_cart SET quantity = $3, updated_at = NOW()
		WHERE user_id = $1 AND product_id = $2
		RETURNING ` + cartColumns

	item, err := scanCartItem(conn(ctx, r.pool).QueryRow(ctx, query, userID, productID, quantity))
	if err != nil {
		return nil, translate(err, "cart item not found")
	}
	return item, nil
}

func (r *CartRepository) Delete(ctx context.Context, userID, productID int) error {
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM shopping_cart WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return translate(err, "cart item not found")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("cart item not found")
	}
	return nil
}

func (r *CartRepository) Clear(ctx context.Context, userID int) error {
	_, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM shopping_cart WHERE user_id = $1`, userID)
	return translate(err, "")
}

// Lines returns the user's cart joined with current product data. Rows whose
// product is gone come back with Available set to false.
func (r *CartRepository) Lines(ctx context.Context, userID int) ([]models.CartLine, error) {
	query := `
		SELECT c.id, c.user_id, c.product_id, c.cart_id::text, c.quantity, c.created_at, c.updated_at,
			COALESCE(p.name, ''), COALESCE(p.price_cents, 0), p.id IS NOT NULL
		FROM shopping_cart c
		LEFT JOIN products p ON p.id = c.product_id
		WHERE c.user_id = $1
		ORDER BY c.id
	`
	rows, err := conn(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, translate(err, "")
	}
	defer rows.Close()

	lines := []models.CartLine{}
	for rows.Next() {
		var l models.CartLine
		err := rows.Scan(
			&l.ID,
			&l.UserID,
			&l.ProductID,
			&l.CartID,
			&l.Quantity,
			&l.CreatedAt,
			&l.UpdatedAt,
			&l.ProductName,
			&l.ProductPriceCents,
			&l.Available,
		)
		if err != nil {
			return nil, translate(err, "")
		}
		lines = append(lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "")
	}
	return lines, nil
}
