package services

import (
	"context"
	"testing"
	"time"

	"storefront/apperror"
	"storefront/models"
	"storefront/testkit"
	"storefront/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testJWT = utils.NewJWT("test-secret", time.Hour)

func registerRequest(email, userName string) models.RegisterRequest {
	return models.RegisterRequest{Email: email, UserName: userName, Password: "secret123"}
}

func TestRegisterCreatesUserAndToken(t *testing.T) {
	store := testkit.NewStore()
	svc := NewAuthService(store.Users(), testJWT, nil)

	resp, err := svc.Register(context.Background(), registerRequest("Ana@Example.com", "ana"))
	require.NoError(t, err)

	assert.Equal(t, "ana@example.com", resp.User.Email)
	assert.True(t, resp.User.IsActive)
	assert.NotEqual(t, "secret123", resp.User.Password)

	claims, err := testJWT.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
}

func TestRegisterDuplicateEmailIsConflict(t *testing.T) {
	store := testkit.NewStore()
	svc := NewAuthService(store.Users(), testJWT, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("ana@example.com", "ana"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerRequest("ana@example.com", "ana2"))
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, 1, store.UserCount())
}

func TestLoginWithCorrectPassword(t *testing.T) {
	store := testkit.NewStore()
	limiter := testkit.NewLoginLimiter(3)
	svc := NewAuthService(store.Users(), testJWT, limiter)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("ana@example.com", "ana"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, 1, limiter.Failures("ana@example.com"))

	resp, err := svc.Login(ctx, models.LoginRequest{Email: "ANA@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, 0, limiter.Failures("ana@example.com"))
}

func TestLoginUnknownEmailIsNotFound(t *testing.T) {
	store := testkit.NewStore()
	svc := NewAuthService(store.Users(), testJWT, nil)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestLoginWrongPasswordNeverSucceeds(t *testing.T) {
	store := testkit.NewStore()
	limiter := testkit.NewLoginLimiter(3)
	svc := NewAuthService(store.Users(), testJWT, limiter)
	ctx := context.Background()

	_, err := svc.Register(ctx, registerRequest("ana@example.com", "ana"))
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		resp, err := svc.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "guess"})
		require.Error(t, err, "attempt %d", i)
		assert.Nil(t, resp)

		if i < 3 {
			assert.Equal(t, apperror.KindInvalidCredentials, apperror.KindOf(err))
		} else {
			assert.Equal(t, apperror.KindRateLimited, apperror.KindOf(err))
		}
	}

	_, err = svc.Login(ctx, models.LoginRequest{Email: "ana@example.com", Password: "secret123"})
	assert.Equal(t, apperror.KindRateLimited, apperror.KindOf(err), "locked account rejects the right password too")
}

func TestLoginInactiveUserIsForbidden(t *testing.T) {
	store := testkit.NewStore()
	hash, err := utils.HashPassword("secret123")
	require.NoError(t, err)
	store.AddUser(models.User{UserName: "old", Email: "old@example.com", Password: hash, IsActive: false})

	svc := NewAuthService(store.Users(), testJWT, nil)
	_, err = svc.Login(context.Background(), models.LoginRequest{Email: "old@example.com", Password: "secret123"})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}
