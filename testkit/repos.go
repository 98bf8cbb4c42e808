package testkit

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"storefront/apperror"
	"storefront/models"
)

type UserRepo struct{ s *Store }

func (r *UserRepo) Create(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("users.Create"); err != nil {
		return err
	}
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, user.Email) {
			return apperror.Conflict("email already registered")
		}
		if u.UserName == user.UserName {
			return apperror.Conflict("user name already taken")
		}
	}
	user.ID = r.s.id()
	user.CreatedAt, user.UpdatedAt = time.Now(), time.Now()
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id int) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.data.users[id]
	if !ok {
		return nil, apperror.NotFound("user not found")
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.data.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user not found")
}

func (r *UserRepo) FindAll(ctx context.Context) ([]models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	users := []models.User{}
	for _, u := range r.s.data.users {
		users = append(users, u)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

func (r *UserRepo) Update(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[user.ID]; !ok {
		return apperror.NotFound("user not found")
	}
	for id, u := range r.s.data.users {
		if id == user.ID {
			continue
		}
		if strings.EqualFold(u.Email, user.Email) {
			return apperror.Conflict("email already registered")
		}
		if u.UserName == user.UserName {
			return apperror.Conflict("user name already taken")
		}
	}
	user.UpdatedAt = time.Now()
	r.s.data.users[user.ID] = *user
	return nil
}

func (r *UserRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.users[id]; !ok {
		return apperror.NotFound("user not found")
	}
	for _, o := range r.s.data.orders {
		if o.UserID == id {
			return apperror.Conflict("referenced record is missing or still in use")
		}
	}
	delete(r.s.data.users, id)
	for k, item := range r.s.data.cart {
		if item.UserID == id {
			delete(r.s.data.cart, k)
		}
	}
	for k := range r.s.data.favorites {
		if k[0] == id {
			delete(r.s.data.favorites, k)
		}
	}
	for k, p := range r.s.data.products {
		if p.UserID != nil && *p.UserID == id {
			p.UserID = nil
			r.s.data.products[k] = p
		}
	}
	return nil
}

type ProductRepo struct{ s *Store }

func (r *ProductRepo) nameTaken(name string, except int) bool {
	for id, p := range r.s.data.products {
		if id != except && p.Name == name {
			return true
		}
	}
	return false
}

func (r *ProductRepo) Create(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("products.Create"); err != nil {
		return err
	}
	if r.nameTaken(product.Name, 0) {
		return apperror.Conflict("product name already exists")
	}
	product.ID = r.s.id()
	product.CreatedAt, product.UpdatedAt = time.Now(), time.Now()
	r.s.data.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id int) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products[id]
	if !ok {
		return nil, apperror.NotFound("product not found")
	}
	return &p, nil
}

func (r *ProductRepo) FindByName(ctx context.Context, name string) (*models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.data.products {
		if p.Name == name {
			return &p, nil
		}
	}
	return nil, apperror.NotFound("product not found")
}

func (r *ProductRepo) FindAll(ctx context.Context, filter models.ProductFilter) ([]models.Product, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	matched := []models.Product{}
	search := strings.ToLower(filter.Search)
	for _, p := range r.s.data.products {
		if filter.Brand != "" && !strings.EqualFold(p.Brand, filter.Brand) {
			continue
		}
		if filter.Type != "" && !strings.EqualFold(p.Type, filter.Type) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Description), search) {
			continue
		}
		matched = append(matched, p)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := (filter.Page - 1) * filter.Limit
	if start > total {
		start = total
	}
	end := start + filter.Limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *ProductRepo) Update(ctx context.Context, product *models.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("products.Update"); err != nil {
		return err
	}
	if _, ok := r.s.data.products[product.ID]; !ok {
		return apperror.NotFound("product not found")
	}
	if r.nameTaken(product.Name, product.ID) {
		return apperror.Conflict("product name already exists")
	}
	product.UpdatedAt = time.Now()
	r.s.data.products[product.ID] = *product
	return nil
}

func (r *ProductRepo) Delete(ctx context.Context, id int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.products[id]; !ok {
		return apperror.NotFound("product not found")
	}
	delete(r.s.data.products, id)
	for k, item := range r.s.data.cart {
		if item.ProductID == id {
			delete(r.s.data.cart, k)
		}
	}
	for k := range r.s.data.favorites {
		if k[1] == id {
			delete(r.s.data.favorites, k)
		}
	}
	return nil
}

type CartRepo struct{ s *Store }

// quantityLimit mirrors the shopping_cart_quantity_max check constraint.
func quantityLimit() error {
	return apperror.Validation(fmt.Sprintf("cart quantity must not exceed %d", models.MaxCartQuantity))
}

func (r *CartRepo) find(userID, productID int) (models.CartItem, bool) {
	for _, item := range r.s.data.cart {
		if item.UserID == userID && item.ProductID == productID {
			return item, true
		}
	}
	return models.CartItem{}, false
}

func (r *CartRepo) AddQuantity(ctx context.Context, userID, productID, quantity int, newCartID string) (*models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("carts.AddQuantity"); err != nil {
		return nil, err
	}

	if item, ok := r.find(userID, productID); ok {
		if item.Quantity+quantity > models.MaxCartQuantity {
			return nil, quantityLimit()
		}
		item.Quantity += quantity
		item.UpdatedAt = time.Now()
		r.s.data.cart[item.ID] = item
		return &item, nil
	}

	cartID := newCartID
	for _, item := range r.s.data.cart {
		if item.UserID == userID && item.CartID != nil {
			cartID = *item.CartID
			break
		}
	}
	item := models.CartItem{
		ID:        r.s.id(),
		UserID:    userID,
		ProductID: productID,
		CartID:    &cartID,
		Quantity:  quantity,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	r.s.data.cart[item.ID] = item
	return &item, nil
}

func (r *CartRepo) SetQuantity(ctx context.Context, userID, productID, quantity int) (*models.CartItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.find(userID, productID)
	if !ok {
		return nil, apperror.NotFound("cart item not found")
	}
	if quantity > models.MaxCartQuantity {
		return nil, quantityLimit()
	}
	item.Quantity = quantity
	item.UpdatedAt = time.Now()
	r.s.data.cart[item.ID] = item
	return &item, nil
}

func (r *CartRepo) Delete(ctx context.Context, userID, productID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	item, ok := r.find(userID, productID)
	if !ok {
		return apperror.NotFound("cart item not found")
	}
	delete(r.s.data.cart, item.ID)
	return nil
}

func (r *CartRepo) Clear(ctx context.Context, userID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("carts.Clear"); err != nil {
		return err
	}
	for k, item := range r.s.data.cart {
		if item.UserID == userID {
			delete(r.s.data.cart, k)
		}
	}
	return nil
}

func (r *CartRepo) Lines(ctx context.Context, userID int) ([]models.CartLine, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lines := []models.CartLine{}
	for _, item := range r.s.data.cart {
		if item.UserID != userID {
			continue
		}
		line := models.CartLine{CartItem: item}
		if p, ok := r.s.data.products[item.ProductID]; ok {
			line.ProductName = p.Name
			line.ProductPriceCents = p.PriceCents
			line.Available = true
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

type FavoriteRepo struct{ s *Store }

func (r *FavoriteRepo) Exists(ctx context.Context, userID, productID int) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	_, ok := r.s.data.favorites[[2]int{userID, productID}]
	return ok, nil
}

func (r *FavoriteRepo) Create(ctx context.Context, userID, productID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int{userID, productID}
	if _, ok := r.s.data.favorites[key]; ok {
		return nil
	}
	r.s.data.favorites[key] = models.Favorite{ID: r.s.id(), UserID: userID, ProductID: productID, CreatedAt: time.Now()}
	return nil
}

func (r *FavoriteRepo) Delete(ctx context.Context, userID, productID int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := [2]int{userID, productID}
	if _, ok := r.s.data.favorites[key]; !ok {
		return apperror.NotFound("favorite not found")
	}
	delete(r.s.data.favorites, key)
	return nil
}

func (r *FavoriteRepo) ProductIDs(ctx context.Context, userID int) ([]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	ids := []int{}
	for k := range r.s.data.favorites {
		if k[0] == userID {
			ids = append(ids, k[1])
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *FavoriteRepo) Products(ctx context.Context, userID int) ([]models.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	products := []models.Product{}
	for k := range r.s.data.favorites {
		if k[0] != userID {
			continue
		}
		if p, ok := r.s.data.products[k[1]]; ok {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

type OrderRepo struct{ s *Store }

func (r *OrderRepo) CreateOrder(ctx context.Context, order *models.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("orders.CreateOrder"); err != nil {
		return err
	}
	order.ID = r.s.id()
	order.CreatedAt, order.UpdatedAt = time.Now(), time.Now()
	for i := range order.Lines {
		order.Lines[i].ID = r.s.id()
		order.Lines[i].OrderID = order.ID
	}
	stored := *order
	stored.Lines = append([]models.OrderLine(nil), order.Lines...)
	stored.Checkout = nil
	r.s.data.orders[order.ID] = stored
	return nil
}

func (r *OrderRepo) CreateCheckout(ctx context.Context, checkout *models.Checkout) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.failure("orders.CreateCheckout"); err != nil {
		return err
	}
	for _, c := range r.s.data.checkouts {
		if c.SessionID == checkout.SessionID {
			return apperror.Conflict("checkout session already recorded")
		}
	}
	checkout.ID = r.s.id()
	checkout.CreatedAt, checkout.UpdatedAt = time.Now(), time.Now()
	r.s.data.checkouts[checkout.ID] = *checkout
	return nil
}

func (r *OrderRepo) FindCheckoutBySession(ctx context.Context, sessionID string) (*models.Checkout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.data.checkouts {
		if c.SessionID == sessionID {
			return &c, nil
		}
	}
	return nil, apperror.NotFound("checkout not found")
}

func (r *OrderRepo) FindCheckoutByID(ctx context.Context, id int) (*models.Checkout, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.checkouts[id]
	if !ok {
		return nil, apperror.NotFound("checkout not found")
	}
	return &c, nil
}

func (r *OrderRepo) UpdateCheckoutStatus(ctx context.Context, id int, status models.CheckoutStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.data.checkouts[id]
	if !ok {
		return apperror.NotFound("checkout not found")
	}
	c.Status = status
	c.UpdatedAt = time.Now()
	r.s.data.checkouts[id] = c
	return nil
}

// withDetails must be called with mu held.
func (r *OrderRepo) withDetails(o models.Order) models.Order {
	o.Lines = append([]models.OrderLine{}, o.Lines...)
	for _, c := range r.s.data.checkouts {
		if c.OrderID == o.ID {
			checkout := c
			o.Checkout = &checkout
			break
		}
	}
	return o
}

func (r *OrderRepo) FindOrdersByUser(ctx context.Context, userID int) ([]models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	orders := []models.Order{}
	for _, o := range r.s.data.orders {
		if o.UserID == userID {
			orders = append(orders, r.withDetails(o))
		}
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID > orders[j].ID })
	return orders, nil
}

func (r *OrderRepo) FindOrderByID(ctx context.Context, id int) (*models.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.data.orders[id]
	if !ok {
		return nil, apperror.NotFound("order not found")
	}
	o = r.withDetails(o)
	return &o, nil
}
