package services

import (
	"context"
	"testing"

	"storefront/apperror"
	"storefront/models"
	"storefront/testkit"
	"storefront/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestUpdateUserRequiresOwnership(t *testing.T) {
	store := testkit.NewStore()
	ana := store.AddUser(models.User{UserName: "ana", Email: "ana@example.com"})
	svc := NewUserService(store.Users(), store)

	_, err := svc.Update(context.Background(), ana.ID+1, ana.ID, models.UpdateUserRequest{Phone: strPtr("1")})
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
}

func TestUpdateUserRejectsEmptyBody(t *testing.T) {
	store := testkit.NewStore()
	ana := store.AddUser(models.User{UserName: "ana", Email: "ana@example.com"})
	svc := NewUserService(store.Users(), store)

	_, err := svc.Update(context.Background(), ana.ID, ana.ID, models.UpdateUserRequest{})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdateUserIsPartial(t *testing.T) {
	store := testkit.NewStore()
	ana := store.AddUser(models.User{UserName: "ana", Email: "ana@example.com", Phone: "555", Address: "Main St"})
	svc := NewUserService(store.Users(), store)

	updated, err := svc.Update(context.Background(), ana.ID, ana.ID, models.UpdateUserRequest{
		Phone:    strPtr("777"),
		Password: strPtr("newsecret"),
	})
	require.NoError(t, err)

	assert.Equal(t, "777", updated.Phone)
	assert.Equal(t, "Main St", updated.Address)
	assert.Equal(t, "ana", updated.UserName)

	ok, err := utils.VerifyPassword(updated.Password, "newsecret")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateUserDuplicateEmailRollsBack(t *testing.T) {
	store := testkit.NewStore()
	ana := store.AddUser(models.User{UserName: "ana", Email: "ana@example.com"})
	store.AddUser(models.User{UserName: "bob", Email: "bob@example.com"})
	svc := NewUserService(store.Users(), store)

	_, err := svc.Update(context.Background(), ana.ID, ana.ID, models.UpdateUserRequest{Email: strPtr("bob@example.com")})
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, 1, store.Rollbacks)

	stored, err := store.Users().FindByID(context.Background(), ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", stored.Email)
}

func TestDeleteUser(t *testing.T) {
	store := testkit.NewStore()
	ana := store.AddUser(models.User{UserName: "ana", Email: "ana@example.com"})
	svc := NewUserService(store.Users(), store)
	ctx := context.Background()

	err := svc.Delete(ctx, ana.ID+1, ana.ID)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	require.NoError(t, svc.Delete(ctx, ana.ID, ana.ID))
	_, err = svc.GetByID(ctx, ana.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	err = svc.Delete(ctx, ana.ID, ana.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeleteUserWithOrdersIsConflict(t *testing.T) {
	store := testkit.NewStore()
	ana := store.AddUser(models.User{UserName: "ana", Email: "ana@example.com"})
	require.NoError(t, store.Orders().CreateOrder(context.Background(), &models.Order{UserID: ana.ID}))

	err := NewUserService(store.Users(), store).Delete(context.Background(), ana.ID, ana.ID)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, "user has orders and cannot be deleted", apperror.MessageOf(err))
}
