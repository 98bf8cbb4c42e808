package models

import "github.com/shopspring/decimal"

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=120"`
	UserName  string `json:"user_name" binding:"required,min=3,max=100"`
	Password  string `json:"password" binding:"required,min=6"`
	FirstName string `json:"first_name" binding:"omitempty,max=50"`
	LastName  string `json:"last_name" binding:"omitempty,max=120"`
	Phone     string `json:"phone" binding:"omitempty,max=30"`
	Address   string `json:"address" binding:"omitempty,max=120"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// UpdateUserRequest is a partial update: nil fields are left untouched.
type UpdateUserRequest struct {
	Email     *string `json:"email" binding:"omitempty,email,max=120"`
	UserName  *string `json:"user_name" binding:"omitempty,min=3,max=100"`
	Password  *string `json:"password" binding:"omitempty,min=6"`
	FirstName *string `json:"first_name" binding:"omitempty,max=50"`
	LastName  *string `json:"last_name" binding:"omitempty,max=120"`
	Phone     *string `json:"phone" binding:"omitempty,max=30"`
	Address   *string `json:"address" binding:"omitempty,max=120"`
	IsActive  *bool   `json:"is_active"`
}

func (r UpdateUserRequest) Empty() bool {
	return r.Email == nil && r.UserName == nil && r.Password == nil &&
		r.FirstName == nil && r.LastName == nil && r.Phone == nil &&
		r.Address == nil && r.IsActive == nil
}

type CreateProductRequest struct {
	Name        string           `json:"name" binding:"required,max=120"`
	Description string           `json:"description" binding:"required,max=400"`
	Img         string           `json:"img" binding:"omitempty,max=500"`
	Brand       string           `json:"brand" binding:"required,max=120"`
	Type        string           `json:"type" binding:"required,max=120"`
	Price       *decimal.Decimal `json:"price" binding:"required" swaggertype:"number"`
	Stock       *int             `json:"stock" binding:"required,min=0"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,max=120"`
	Description *string          `json:"description" binding:"omitempty,max=400"`
	Img         *string          `json:"img" binding:"omitempty,max=500"`
	Brand       *string          `json:"brand" binding:"omitempty,max=120"`
	Type        *string          `json:"type" binding:"omitempty,max=120"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number"`
	Stock       *int             `json:"stock" binding:"omitempty,min=0"`
}

func (r UpdateProductRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Img == nil &&
		r.Brand == nil && r.Type == nil && r.Price == nil && r.Stock == nil
}

type FavoriteRequest struct {
	ProductID *int `json:"product_id" binding:"required,min=1"`
}

type FavoriteToggleResponse struct {
	Result     string `json:"result"`
	ProductIDs []int  `json:"product_ids"`
}

const (
	FavoriteCreated = "created"
	FavoriteRemoved = "removed"
)

// AddToCartRequest leaves Quantity nil when the client omits it; the service
// then defaults to 1.
type AddToCartRequest struct {
	ProductID *int `json:"product_id" binding:"required,min=1"`
	Quantity  *int `json:"quantity"`
}

type UpdateCartRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

type CheckoutSessionRequest struct {
	Address    string `json:"address" binding:"omitempty,max=120"`
	City       string `json:"city" binding:"omitempty,max=120"`
	PostalCode string `json:"postal_code" binding:"omitempty,max=20"`
	Country    string `json:"country" binding:"omitempty,max=120"`
}

func (r CheckoutSessionRequest) Shipping() ShippingAddress {
	return ShippingAddress(r)
}

type CheckoutSessionResponse struct {
	SessionID   string `json:"session_id"`
	CheckoutURL string `json:"checkout_url"`
}

type UpdateCheckoutStatusRequest struct {
	Status CheckoutStatus `json:"status" binding:"required,oneof=pending received completed"`
}
