// File: internal/services/user_services/user_service.go
package user_services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/repository/user"
)

// UserService serves profile reads and edits.
type UserService struct {
	userRepo user.UserRepository
	logger   Logger
	now      func() time.Time
}

func NewUserService(userRepo user.UserRepository, logger Logger) *UserService {
	return &UserService{userRepo: userRepo, logger: logger, now: time.Now}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindByID(ctx, userID)
}

// UpdateProfile applies the provided fields and always stamps UpdatedAt.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	if update.Name != nil && strings.TrimSpace(*update.Name) == "" {
		return nil, domain.NewValidationError("name cannot be empty")
	}
	if update.Email != nil {
		if err := validateEmail(*update.Email); err != nil {
			return nil, err
		}
	}

	u, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Email != nil {
		u.Email = *update.Email
	}
	now := s.now().UTC()
	u.UpdatedAt = &now

	if err := s.userRepo.Update(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			s.logger.Warn("profile update rejected - email taken",
				"user_id", userID,
				"email", domain.MaskEmail(u.Email))
		} else {
			s.logger.Error("profile update failed", "error", err, "user_id", userID)
		}
		return nil, err
	}

	s.logger.Info("profile updated",
		"user_id", userID,
		"name_changed", update.Name != nil,
		"email_changed", update.Email != nil)
	return u, nil
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.userRepo.Count(ctx)
}
