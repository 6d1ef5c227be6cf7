package user

import (
	"context"
	"errors"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/iyunix/go-habitcoach/internal/domain"
)

var ErrUserNotFound = domain.Wrap(domain.KindNotFound, "user not found", nil)

type gormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create relies on the unique email index, so concurrent registrations cannot both win.
func (r *gormUserRepository) Create(ctx context.Context, user *domain.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		log.Printf("[UserRepository] Database error during user creation: %v", err)
		return domain.Wrap(domain.KindInternal, "database error creating user", err)
	}
	return nil
}

func (r *gormUserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	return r.handleFindError(err, &user, "FindByID")
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return r.handleFindError(err, &user, "FindByEmail")
}

func (r *gormUserRepository) Update(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":       user.Name,
		"email":      user.Email,
		"updated_at": user.UpdatedAt,
	})
	if result.Error != nil {
		if isUniqueViolation(result.Error) {
			return domain.ErrDuplicateEmail
		}
		log.Printf("[UserRepository] Database error during user update for ID %s: %v", user.ID, result.Error)
		return domain.Wrap(domain.KindInternal, "database error updating user", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *gormUserRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return 0, domain.Wrap(domain.KindInternal, "database error counting users", err)
	}
	return total, nil
}

func (r *gormUserRepository) handleFindError(err error, user *domain.User, methodName string) (*domain.User, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.Printf("[UserRepository] %s error: %v", methodName, err)
		return nil, domain.Wrap(domain.KindInternal, "database error finding user", err)
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
