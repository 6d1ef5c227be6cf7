// File: internal/services/user_services/auth_service.go
package user_services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/idgen"
	"github.com/iyunix/go-habitcoach/internal/repository/user"
)

// AuthService is the credential store front: registration, password checks and session tokens.
type AuthService struct {
	userRepo   user.UserRepository
	tokens     *TokenService
	ids        *idgen.Generator
	bcryptCost int
	logger     Logger

	dummyOnce sync.Once
	dummyHash []byte
	now       func() time.Time
}

func NewAuthService(userRepo user.UserRepository, tokens *TokenService, ids *idgen.Generator, bcryptCost int, logger Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tokens:     tokens,
		ids:        ids,
		bcryptCost: bcryptCost,
		logger:     logger,
		now:        time.Now,
	}
}

// Register creates the user and issues its first token.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if err := validateRegistrationInput(name, email, password); err != nil {
		s.logger.Warn("registration validation failed",
			"email", domain.MaskEmail(email),
			"error", err.Error())
		return nil, "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err, "email", domain.MaskEmail(email))
		return nil, "", domain.Wrap(domain.KindInternal, "failed to hash password", err)
	}

	now := s.now().UTC()
	u := &domain.User{
		ID:           s.ids.NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hashed),
		JoinDate:     now.Format(domain.JoinDateLayout),
		CreatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			s.logger.Warn("registration failed - email already exists", "email", domain.MaskEmail(email))
			return nil, "", err
		}
		s.logger.Error("user creation failed", "error", err, "email", domain.MaskEmail(email))
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("user registered successfully",
		"email", domain.MaskEmail(email),
		"user_id", u.ID)
	return u, token, nil
}

// Authenticate checks email and password. Unknown email and wrong password are the same error.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	u, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			s.logger.Error("user lookup failed", "error", err, "email", domain.MaskEmail(email))
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}
		// Burn the same bcrypt time as a real check.
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		s.logger.Warn("login failed", "email", domain.MaskEmail(email), "reason", "user_not_found")
		return nil, domain.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.Warn("login failed", "email", domain.MaskEmail(email), "user_id", u.ID, "reason", "invalid_password")
		return nil, domain.ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a new token; existing tokens of the user are untouched.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	u, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	token, err := s.tokens.Issue(ctx, u.ID)
	if err != nil {
		return nil, "", err
	}
	s.logger.Info("login successful", "email", domain.MaskEmail(email), "user_id", u.ID)
	return u, token, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) {
	s.tokens.Revoke(ctx, token)
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.bcryptCost)
	})
	return s.dummyHash
}

func validateRegistrationInput(name, email, password string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("name is required")
	}
	if err := validateEmail(email); err != nil {
		return err
	}
	if password == "" {
		return domain.NewValidationError("password is required")
	}
	if len(password) > 72 {
		return domain.NewValidationError("password must be at most 72 bytes")
	}
	return nil
}

// validateEmail accepts a bare address only; the stored value is compared byte for byte.
func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return domain.NewValidationError("email is not a valid address")
	}
	return nil
}
