package repositories

import (
	"context"
	"fmt"

	"storefront/apperror"
	"storefront/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const productColumns = `id, name, description, img, brand, type, price_cents, stock, user_id, created_at, updated_at`

type ProductRepository struct {
	pool *pgxpool.Pool
}

func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

func scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Img,
		&p.Brand,
		&p.Type,
		&p.PriceCents,
		&p.Stock,
		&p.UserID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, description, img, brand, type, price_cents, stock, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Img,
		product.Brand,
		product.Type,
		product.PriceCents,
		product.Stock,
		product.UserID,
	).Scan(&product.ID, &product.CreatedAt, &product.UpdatedAt)

	return translate(err, "product not found")
}

func (r *ProductRepository) FindByID(ctx context.Context, id int) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, "product not found")
	}
	return p, nil
}

func (r *ProductRepository) FindByName(ctx context.Context, name string) (*models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1`
	p, err := scanProduct(conn(ctx, r.pool).QueryRow(ctx, query, name))
	if err != nil {
		return nil, translate(err, "product not found")
	}
	return p, nil
}

// FindAll returns one page of products matching filter plus the total match
// count.
func (r *ProductRepository) FindAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	paramIndex := 1

	if filter.Brand != "" {
		where += fmt.Sprintf(" AND LOWER(brand) = LOWER($%d)", paramIndex)
		args = append(args, filter.Brand)
		paramIndex++
	}
	if filter.Type != "" {
		where += fmt.Sprintf(" AND LOWER(type) = LOWER($%d)", paramIndex)
		args = append(args, filter.Type)
		paramIndex++
	}
	if filter.Search != "" {
		where += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", paramIndex, paramIndex)
		args = append(args, "%"+filter.Search+"%")
		paramIndex++
	}

	db := conn(ctx, r.pool)

	var total int
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM products`+where, args...).Scan(&total); err != nil {
		return nil, 0, translate(err, "")
	}

	query := `SELECT ` + productColumns + ` FROM products` + where +
		fmt.Sprintf(" ORDER BY id LIMIT $%d OFFSET $%d", paramIndex, paramIndex+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, translate(err, "")
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, translate(err, "")
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, translate(err, "")
	}
	return products, total, nil
}

func (r *ProductRepository) Update(ctx context.Context, product *models.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, img = $3, brand = $4, type = $5,
			price_cents = $6, stock = $7, updated_at = NOW()
		WHERE id = $8
		RETURNING updated_at
	`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		product.Name,
		product.Description,
		product.Img,
		product.Brand,
		product.Type,
		product.PriceCents,
		product.Stock,
		product.ID,
	).Scan(&product.UpdatedAt)

	return translate(err, "product not found")
}

func (r *ProductRepository) Delete(ctx context.Context, id int) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return translate(err, "product not found")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("product not found")
	}
	return nil
}
