package testkit

import (
	"context"
	"mime/multipart"
	"sync"

	"storefront/models"

	"github.com/stretchr/testify/mock"
)

type PaymentGatewayMock struct {
	mock.Mock
}

func (m *PaymentGatewayMock) CreateSession(ctx context.Context, req models.PaymentSessionRequest) (*models.PaymentSession, error) {
	args := m.Called(ctx, req)
	session, _ := args.Get(0).(*models.PaymentSession)
	return session, args.Error(1)
}

func (m *PaymentGatewayMock) ParseWebhook(payload []byte, signature string) (*models.PaymentEvent, error) {
	args := m.Called(payload, signature)
	event, _ := args.Get(0).(*models.PaymentEvent)
	return event, args.Error(1)
}

type SentMail struct {
	To      string
	OrderID int
}

type Mailer struct {
	mu   sync.Mutex
	Sent []SentMail
	Err  error
}

func (m *Mailer) SendOrderConfirmation(ctx context.Context, to string, order *models.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Sent = append(m.Sent, SentMail{To: to, OrderID: order.ID})
	return nil
}

// LoginLimiter locks a key after Max recorded failures.
type LoginLimiter struct {
	mu       sync.Mutex
	Max      int
	failures map[string]int
}

func NewLoginLimiter(max int) *LoginLimiter {
	return &LoginLimiter{Max: max, failures: map[string]int{}}
}

func (l *LoginLimiter) Locked(ctx context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures[key] >= l.Max, nil
}

func (l *LoginLimiter) RecordFailure(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[key]++
	return nil
}

func (l *LoginLimiter) Reset(ctx context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, key)
	return nil
}

func (l *LoginLimiter) Failures(key string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures[key]
}

// ImageStore returns URL for every upload, or Err when set.
type ImageStore struct {
	URL   string
	Err   error
	Saved []string
}

func (s *ImageStore) Save(ctx context.Context, file *multipart.FileHeader, folder string) (string, error) {
	if s.Err != nil {
		return "", s.Err
	}
	s.Saved = append(s.Saved, folder+"/"+file.Filename)
	return s.URL, nil
}
