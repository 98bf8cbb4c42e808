//go:build integration

package repositories

import (
	"context"
	"os"
	"testing"

	"storefront/apperror"
	"storefront/config"
	"storefront/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: DATABASE_URL=postgres://... go test -tags integration ./repositories/

func openTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}
	cfg := &config.Config{DatabaseURL: dsn, DBMaxConns: 4, MigrationsDir: "../database/migration"}
	require.NoError(t, config.MigrateUp(cfg))

	pool, err := config.ConnectDB(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	return pool
}

func seedBuyer(t *testing.T, pool *pgxpool.Pool) (*models.User, *models.Product) {
	t.Helper()
	ctx := context.Background()
	suffix := uuid.NewString()[:8]

	user := &models.User{UserName: "buyer-" + suffix, Email: "buyer-" + suffix + "@example.com", Password: "x", IsActive: true}
	require.NoError(t, NewUserRepository(pool).Create(ctx, user))
	product := &models.Product{Name: "Runner " + suffix, PriceCents: 1999, Stock: 5}
	require.NoError(t, NewProductRepository(pool).Create(ctx, product))

	t.Cleanup(func() {
		_ = NewUserRepository(pool).Delete(ctx, user.ID)
		_ = NewProductRepository(pool).Delete(ctx, product.ID)
	})
	return user, product
}

func TestCartUpsertIntegration(t *testing.T) {
	pool := openTestDB(t)
	user, product := seedBuyer(t, pool)
	carts := NewCartRepository(pool)
	ctx := context.Background()

	first, err := carts.AddQuantity(ctx, user.ID, product.ID, 2, uuid.NewString())
	require.NoError(t, err)
	second, err := carts.AddQuantity(ctx, user.ID, product.ID, 3, uuid.NewString())
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)
	require.NotNil(t, first.CartID)
	assert.Equal(t, *first.CartID, *second.CartID)

	_, err = carts.AddQuantity(ctx, user.ID, product.ID, models.MaxCartQuantity, uuid.NewString())
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	lines, err := carts.Lines(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
	assert.True(t, lines[0].Available)
}

func TestCheckoutSessionUniqueIntegration(t *testing.T) {
	pool := openTestDB(t)
	user, product := seedBuyer(t, pool)
	orders := NewOrderRepository(pool)
	tx := NewTxManager(pool)
	ctx := context.Background()
	sessionID := "cs_" + uuid.NewString()

	record := func() error {
		return tx.RunInTransaction(ctx, func(ctx context.Context) error {
			productID := product.ID
			order := &models.Order{
				UserID: user.ID, SubtotalCents: 1999, TotalCents: 1999, Currency: "eur", Status: models.OrderStatusPaid,
				Lines: []models.OrderLine{{ProductID: &productID, ProductName: product.Name, UnitPriceCents: 1999, Quantity: 1}},
			}
			if err := orders.CreateOrder(ctx, order); err != nil {
				return err
			}
			return orders.CreateCheckout(ctx, &models.Checkout{
				PaymentMethod: models.PaymentMethodCard,
				Status:        models.CheckoutReceived,
				SessionID:     sessionID,
				OrderID:       order.ID,
				UserID:        user.ID,
			})
		})
	}

	require.NoError(t, record())
	err := record()
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.Equal(t, "checkout session already recorded", apperror.MessageOf(err))

	existing, err := orders.FindCheckoutBySession(ctx, sessionID)
	require.NoError(t, err)
	placed, err := orders.FindOrdersByUser(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, placed, 1, "the losing transaction rolled back its order")
	assert.Equal(t, existing.OrderID, placed[0].ID)
}
