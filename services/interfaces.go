package services

import (
	"context"
	"mime/multipart"

	"storefront/models"
)

type TxRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int) error
}

type ProductRepository interface {
	Create(ctx context.Context, product *models.Product) error
	FindByID(ctx context.Context, id int) (*models.Product, error)
	FindByName(ctx context.Context, name string) (*models.Product, error)
	FindAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int) error
}

type CartRepository interface {
	AddQuantity(ctx context.Context, userID, productID, quantity int, newCartID string) (*models.CartItem, error)
	SetQuantity(ctx context.Context, userID, productID, quantity int) (*models.CartItem, error)
	Delete(ctx context.Context, userID, productID int) error
	Clear(ctx context.Context, userID int) error
	Lines(ctx context.Context, userID int) ([]models.CartLine, error)
}

type FavoriteRepository interface {
	Exists(ctx context.Context, userID, productID int) (bool, error)
	Create(ctx context.Context, userID, productID int) error
	Delete(ctx context.Context, userID, productID int) error
	ProductIDs(ctx context.Context, userID int) ([]int, error)
	Products(ctx context.Context, userID int) ([]models.Product, error)
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateCheckout(ctx context.Context, checkout *models.Checkout) error
	FindCheckoutBySession(ctx context.Context, sessionID string) (*models.Checkout, error)
	FindCheckoutByID(ctx context.Context, id int) (*models.Checkout, error)
	UpdateCheckoutStatus(ctx context.Context, id int, status models.CheckoutStatus) error
	FindOrdersByUser(ctx context.Context, userID int) ([]models.Order, error)
	FindOrderByID(ctx context.Context, id int) (*models.Order, error)
}

type TokenIssuer interface {
	GenerateToken(userID int, email string) (string, error)
}

// PaymentGateway creates hosted payment sessions and verifies the gateway's
// webhook notifications.
type PaymentGateway interface {
	CreateSession(ctx context.Context, req models.PaymentSessionRequest) (*models.PaymentSession, error)
	ParseWebhook(payload []byte, signature string) (*models.PaymentEvent, error)
}

type Mailer interface {
	SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error
}

// LoginLimiter counts failed logins per key.
type LoginLimiter interface {
	Locked(ctx context.Context, key string) (bool, error)
	RecordFailure(ctx context.Context, key string) error
	Reset(ctx context.Context, key string) error
}

type ImageStore interface {
	Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error)
}
