package services

import (
	"context"
	"strings"

	"storefront/apperror"
	"storefront/logger"
	"storefront/metrics"
	"storefront/models"
	"storefront/utils"
)

type AuthService struct {
	users   UserRepository
	tokens  TokenIssuer
	limiter LoginLimiter
}

// NewAuthService accepts a nil limiter, which disables login throttling.
func NewAuthService(users UserRepository, tokens TokenIssuer, limiter LoginLimiter) *AuthService {
	return &AuthService{users: users, tokens: tokens, limiter: limiter}
}

func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.LoginResponse, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	user := &models.User{
		UserName:  strings.TrimSpace(req.UserName),
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Password:  hashedPassword,
		IsActive:  true,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Address:   req.Address,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	logger.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return &models.LoginResponse{Token: token, User: *user}, nil
}

// Login checks the lockout before the password, so a locked account is
// rejected even when the password is right.
func (s *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	key := strings.ToLower(strings.TrimSpace(req.Email))

	if s.locked(ctx, key) {
		metrics.LoginFailures.WithLabelValues("locked").Inc()
		return nil, apperror.New(apperror.KindRateLimited, "too many failed login attempts, try again later")
	}

	user, err := s.users.FindByEmail(ctx, key)
	if err != nil {
		if apperror.Is(err, apperror.KindNotFound) {
			s.recordFailure(ctx, key)
			metrics.LoginFailures.WithLabelValues("unknown_email").Inc()
			return nil, apperror.NotFound("user not found")
		}
		return nil, err
	}

	valid, err := utils.VerifyPassword(user.Password, req.Password)
	if err != nil || !valid {
		s.recordFailure(ctx, key)
		metrics.LoginFailures.WithLabelValues("bad_password").Inc()
		return nil, apperror.New(apperror.KindInvalidCredentials, "incorrect password")
	}

	if !user.IsActive {
		return nil, apperror.Forbidden("account is disabled")
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, key); err != nil {
			logger.FromContext(ctx).Warn("failed to reset login attempts", "error", err)
		}
	}

	return &models.LoginResponse{Token: token, User: *user}, nil
}

// locked reports false when the limiter is unavailable.
func (s *AuthService) locked(ctx context.Context, key string) bool {
	if s.limiter == nil {
		return false
	}
	locked, err := s.limiter.Locked(ctx, key)
	if err != nil {
		logger.FromContext(ctx).Warn("login limiter unavailable", "error", err)
		return false
	}
	return locked
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.RecordFailure(ctx, key); err != nil {
		logger.FromContext(ctx).Warn("failed to record login attempt", "error", err)
	}
}
