package services

import (
	"context"
	"strings"

	"storefront/apperror"
	"storefront/logger"
	"storefront/models"
	"storefront/utils"
)

type UserService struct {
	users UserRepository
	tx    TxRunner
}

func NewUserService(users UserRepository, tx TxRunner) *UserService {
	return &UserService{users: users, tx: tx}
}

func (s *UserService) GetAll(ctx context.Context) ([]models.User, error) {
	return s.users.FindAll(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id int) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}

// Update applies a partial update. Only the account owner may change it.
func (s *UserService) Update(ctx context.Context, actorID, id int, req models.UpdateUserRequest) (*models.User, error) {
	if actorID != id {
		return nil, apperror.Forbidden("you can only modify your own account")
	}
	if req.Empty() {
		return nil, apperror.Validation("at least one field is required")
	}

	var hashedPassword string
	if req.Password != nil {
		hash, err := utils.HashPassword(*req.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		hashedPassword = hash
	}

	var user *models.User
	err := s.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		user, err = s.users.FindByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Email != nil {
			user.Email = strings.ToLower(strings.TrimSpace(*req.Email))
		}
		if req.UserName != nil {
			user.UserName = strings.TrimSpace(*req.UserName)
		}
		if req.Password != nil {
			user.Password = hashedPassword
		}
		if req.FirstName != nil {
			user.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			user.LastName = *req.LastName
		}
		if req.Phone != nil {
			user.Phone = *req.Phone
		}
		if req.Address != nil {
			user.Address = *req.Address
		}
		if req.IsActive != nil {
			user.IsActive = *req.IsActive
		}

		return s.users.Update(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Delete(ctx context.Context, actorID, id int) error {
	if actorID != id {
		return apperror.Forbidden("you can only delete your own account")
	}
	if err := s.users.Delete(ctx, id); err != nil {
		if apperror.Is(err, apperror.KindConflict) {
			return apperror.Conflict("user has orders and cannot be deleted")
		}
		return err
	}
	logger.FromContext(ctx).Info("user deleted", "user_id", id)
	return nil
}
