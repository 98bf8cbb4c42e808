// Package testkit provides in-memory repositories and collaborator fakes for
// service and controller tests. Store mirrors the PostgreSQL constraints the
// services rely on: unique keys, cascades and transactional rollback.
package testkit

import (
	"context"
	"sync"
	"time"

	"storefront/models"
)

type state struct {
	nextID    int
	users     map[int]models.User
	products  map[int]models.Product
	cart      map[int]models.CartItem
	favorites map[[2]int]models.Favorite
	orders    map[int]models.Order
	checkouts map[int]models.Checkout
}

func newState() *state {
	return &state{
		users:     map[int]models.User{},
		products:  map[int]models.Product{},
		cart:      map[int]models.CartItem{},
		favorites: map[[2]int]models.Favorite{},
		orders:    map[int]models.Order{},
		checkouts: map[int]models.Checkout{},
	}
}

func (s *state) clone() *state {
	c := &state{
		nextID:    s.nextID,
		users:     make(map[int]models.User, len(s.users)),
		products:  make(map[int]models.Product, len(s.products)),
		cart:      make(map[int]models.CartItem, len(s.cart)),
		favorites: make(map[[2]int]models.Favorite, len(s.favorites)),
		orders:    make(map[int]models.Order, len(s.orders)),
		checkouts: make(map[int]models.Checkout, len(s.checkouts)),
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.cart {
		c.cart[k] = v
	}
	for k, v := range s.favorites {
		c.favorites[k] = v
	}
	for k, v := range s.orders {
		v.Lines = append([]models.OrderLine(nil), v.Lines...)
		c.orders[k] = v
	}
	for k, v := range s.checkouts {
		c.checkouts[k] = v
	}
	return c
}

type Store struct {
	mu       sync.Mutex
	data     *state
	failures map[string]error
	onRevert func()

	Commits   int
	Rollbacks int
}

func NewStore() *Store {
	return &Store{data: newState(), failures: map[string]error{}}
}

// FailOn makes the named operation (e.g. "orders.CreateCheckout") return err
// until cleared with a nil err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.failures, op)
		return
	}
	s.failures[op] = err
}

// AfterRollback runs fn once, after the next rollback has restored the
// store. Tests use it to commit a competing write between a failed
// transaction and the caller's retry.
func (s *Store) AfterRollback(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onRevert = fn
}

// failure must be called with mu held.
func (s *Store) failure(op string) error {
	return s.failures[op]
}

func (s *Store) id() int {
	s.data.nextID++
	return s.data.nextID
}

type txKey struct{}

// RunInTransaction snapshots the store and restores it when fn fails.
func (s *Store) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s.mu.Lock()
	snapshot := s.data.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.Rollbacks++
		hook := s.onRevert
		s.onRevert = nil
		s.mu.Unlock()
		if hook != nil {
			hook()
		}
		return err
	}

	s.mu.Lock()
	s.Commits++
	s.mu.Unlock()
	return nil
}

func (s *Store) Users() *UserRepo         { return &UserRepo{s} }
func (s *Store) Products() *ProductRepo   { return &ProductRepo{s} }
func (s *Store) Carts() *CartRepo         { return &CartRepo{s} }
func (s *Store) Favorites() *FavoriteRepo { return &FavoriteRepo{s} }
func (s *Store) Orders() *OrderRepo       { return &OrderRepo{s} }

// AddUser inserts a user directly, bypassing constraints.
func (s *Store) AddUser(u models.User) models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == 0 {
		u.ID = s.id()
	}
	u.CreatedAt, u.UpdatedAt = time.Now(), time.Now()
	s.data.users[u.ID] = u
	return u
}

func (s *Store) AddProduct(p models.Product) models.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.id()
	}
	p.CreatedAt, p.UpdatedAt = time.Now(), time.Now()
	s.data.products[p.ID] = p
	return p
}

// PutCartItem inserts a cart row without checking the product exists.
func (s *Store) PutCartItem(item models.CartItem) models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.ID == 0 {
		item.ID = s.id()
	}
	s.data.cart[item.ID] = item
	return item
}

func (s *Store) UserCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.users)
}

func (s *Store) OrderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.orders)
}

func (s *Store) CheckoutCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.checkouts)
}

func (s *Store) CartQuantity(userID, productID int) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, item := range s.data.cart {
		if item.UserID == userID && item.ProductID == productID {
			return item.Quantity, true
		}
	}
	return 0, false
}

func (s *Store) CartSize(userID int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, item := range s.data.cart {
		if item.UserID == userID {
			n++
		}
	}
	return n
}
