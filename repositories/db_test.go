package repositories

import (
	"errors"
	"fmt"
	"testing"

	"storefront/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestTranslateNoRows(t *testing.T) {
	err := translate(fmt.Errorf("scan: %w", pgx.ErrNoRows), "user not found")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Equal(t, "user not found", apperror.MessageOf(err))
}

func TestTranslateUniqueViolation(t *testing.T) {
	err := translate(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, "")
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, "email already registered", apperror.MessageOf(err))

	err = translate(&pgconn.PgError{Code: "23505", ConstraintName: "something_else"}, "")
	assert.Equal(t, "record already exists", apperror.MessageOf(err))
}

func TestTranslateForeignKeyAndCheck(t *testing.T) {
	assert.Equal(t, apperror.KindConflict,
		apperror.KindOf(translate(&pgconn.PgError{Code: "23503"}, "")))
	assert.Equal(t, apperror.KindValidation,
		apperror.KindOf(translate(&pgconn.PgError{Code: "23514", ConstraintName: "products_price_cents_check"}, "")))
}

func TestTranslateCartQuantityLimits(t *testing.T) {
	err := translate(&pgconn.PgError{Code: "23514", ConstraintName: "shopping_cart_quantity_max"}, "")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, "cart quantity must not exceed 10000", apperror.MessageOf(err))

	err = translate(&pgconn.PgError{Code: "22003", Message: "integer out of range"}, "")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t, "numeric value out of range", apperror.MessageOf(err))
}

func TestTranslateUnknownIsInternal(t *testing.T) {
	cause := errors.New("connection reset")
	err := translate(cause, "")
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.ErrorIs(t, err, cause)
	assert.Nil(t, translate(nil, "x"))
}
