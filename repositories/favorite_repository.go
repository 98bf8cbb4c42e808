package repositories

import (
	"context"

	"storefront/apperror"
	"storefront/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type FavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewFavoriteRepository(pool *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{pool: pool}
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, productID int) (bool, error) {
	var exists bool
	err := conn(ctx, r.pool).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND product_id = $2)`,
		userID, productID,
	).Scan(&exists)
	if err != nil {
		return false, translate(err, "")
	}
	return exists, nil
}

func (r *FavoriteRepository) Create(ctx context.Context, userID, productID int) error {
	_, err := conn(ctx, r.pool).Exec(ctx,
		`INSERT INTO favorites (user_id, product_id) VALUES ($1, $2) ON CONFLICT (user_id, product_id) DO NOTHING`,
		userID, productID)
	return translate(err, "")
}

func (r *FavoriteRepository) Delete(ctx context.Context, userID, productID int) error {
	tag, err := conn(ctx, r.pool).Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		return translate(err, "favorite not found")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("favorite not found")
	}
	return nil
}

func (r *FavoriteRepository) ProductIDs(ctx context.Context, userID int) ([]int, error) {
	rows, err := conn(ctx, r.pool).Query(ctx,
		`SELECT product_id FROM favorites WHERE user_id = $1 ORDER BY product_id`, userID)
	if err != nil {
		return nil, translate(err, "")
	}
	defer rows.Close()

	ids := []int{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, translate(err, "")
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "")
	}
	return ids, nil
}

func (r *FavoriteRepository) Products(ctx context.Context, userID int) ([]models.Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.img, p.brand, p.type, p.price_cents, p.stock, p.user_id, p.created_at, p.updated_at
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		WHERE f.user_id = $1
		ORDER BY p.id
	`
	rows, err := conn(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, translate(err, "")
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, translate(err, "")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "")
	}
	return products, nil
}
