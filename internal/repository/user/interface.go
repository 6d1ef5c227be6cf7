package user

import (
	"context"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

// UserRepository is the credential store. Implementations must enforce email uniqueness
// atomically: of two concurrent Creates with the same email exactly one succeeds.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Update saves name, email and updatedAt; an email held by another user is ErrDuplicateEmail.
	Update(ctx context.Context, user *domain.User) error
	Count(ctx context.Context) (int64, error)
}
