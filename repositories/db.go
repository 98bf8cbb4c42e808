package repositories

import (
	"context"
	"errors"
	"fmt"

	"storefront/apperror"
	"storefront/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txKey struct{}

// TxManager runs a unit of work against the pool.
type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// RunInTransaction begins a transaction, hands fn a context carrying it and
// commits when fn returns nil. Any error or panic rolls back. Nested calls
// join the outer transaction.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return apperror.Internal(fmt.Errorf("begin transaction: %w", err))
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
		}
	}()

	if err = fn(context.WithValue(ctx, txKey{}, tx)); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		return apperror.Internal(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}

// conn returns the transaction stored in ctx, or the pool.
func conn(ctx context.Context, pool *pgxpool.Pool) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
	pgNumericOutOfRange   = "22003"
)

// translate maps driver errors onto application error kinds. notFound is the
// message used when the query matched no row.
func translate(err error, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperror.NotFound(notFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return apperror.Wrap(apperror.KindConflict, conflictMessage(pgErr.ConstraintName), err)
		case pgForeignKeyViolation:
			return apperror.Wrap(apperror.KindConflict, "referenced record is missing or still in use", err)
		case pgCheckViolation:
			return apperror.Wrap(apperror.KindValidation, checkMessage(pgErr.ConstraintName), err)
		case pgNumericOutOfRange:
			return apperror.Wrap(apperror.KindValidation, "numeric value out of range", err)
		}
	}
	return apperror.Internal(err)
}

func checkMessage(constraint string) string {
	switch constraint {
	case "shopping_cart_quantity_max":
		return fmt.Sprintf("cart quantity must not exceed %d", models.MaxCartQuantity)
	default:
		return "value violates constraint " + constraint
	}
}

func conflictMessage(constraint string) string {
	switch constraint {
	case "users_email_key":
		return "email already registered"
	case "users_user_name_key":
		return "user name already taken"
	case "products_name_key":
		return "product name already exists"
	case "checkout_session_id_key":
		return "checkout session already recorded"
	default:
		return "record already exists"
	}
}
