package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"storefront/apperror"
)

func TestKindOfWrappedError(t *testing.T) {
	err := fmt.Errorf("loading cart: %w", apperror.NotFound("item not found in shopping cart"))

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.True(t, apperror.Is(err, apperror.KindNotFound))
	assert.Equal(t, "item not found in shopping cart", apperror.MessageOf(err))
}

func TestForeignErrorsAreInternal(t *testing.T) {
	err := errors.New("connection reset by peer")

	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	assert.Equal(t, "internal server error", apperror.MessageOf(err))
	assert.False(t, apperror.Is(nil, apperror.KindInternal))
}

func TestInternalHidesCause(t *testing.T) {
	err := apperror.Internal(errors.New("pq: relation does not exist"))

	assert.Equal(t, "internal server error", apperror.MessageOf(err))
	assert.ErrorContains(t, err, "relation does not exist")
}

func TestHTTPStatus(t *testing.T) {
	cases := map[apperror.Kind]int{
		apperror.KindValidation:         http.StatusBadRequest,
		apperror.KindInvalidCredentials: http.StatusBadRequest,
		apperror.KindInvalidState:       http.StatusBadRequest,
		apperror.KindUnauthorized:       http.StatusUnauthorized,
		apperror.KindForbidden:          http.StatusForbidden,
		apperror.KindNotFound:           http.StatusNotFound,
		apperror.KindConflict:           http.StatusConflict,
		apperror.KindRateLimited:        http.StatusTooManyRequests,
		apperror.KindExternalService:    http.StatusBadGateway,
		apperror.KindInternal:           http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, apperror.HTTPStatus(kind), kind)
	}
}
