package repositories

import (
	"context"

	"storefront/apperror"
	"storefront/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, user_name, email, password, is_active, first_name, last_name, phone, address, created_at, updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(
		&user.ID,
		&user.UserName,
		&user.Email,
		&user.Password,
		&user.IsActive,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.Address,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (user_name, email, password, is_active, first_name, last_name, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		user.UserName,
		user.Email,
		user.Password,
		user.IsActive,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Address,
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	return translate(err, "user not found")
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(conn(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		return nil, translate(err, "user not found")
	}
	return user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	user, err := scanUser(conn(ctx, r.pool).QueryRow(ctx, query, email))
	if err != nil {
		return nil, translate(err, "user not found")
	}
	return user, nil
}


func (r *UserRepository) FindAll(ctx context.Context) ([]models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`

	rows, err := conn(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, translate(err, "")
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, translate(err, "")
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "")
	}
	return users, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	query := `
		UPDATE users
		SET user_name = $1, email = $2, password = $3, is_active = $4,
			first_name = $5, last_name = $6, phone = $7, address = $8, updated_at = NOW()
		WHERE id = $9
		RETURNING updated_at
	`
	err := conn(ctx, r.pool).QueryRow(ctx, query,
		user.UserName,
		user.Email,
		user.Password,
		user.IsActive,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.Address,
		user.ID,
	).Scan(&user.UpdatedAt)

	return translate(err, "user not found")
}

func (r *UserRepository) Delete(ctx context.Context, id int) error {
	tag, err := conn(ctx, r.pool).Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return translate(err, "user not found")
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("user not found")
	}
	return nil
}
