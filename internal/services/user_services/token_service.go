// File: internal/services/user_services/token_service.go
package user_services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/repository/user"
)

// tokenBytes gives 256 bits of entropy (43 chars base64url).
const tokenBytes = 32

type session struct {
	userID    string
	expiresAt time.Time // zero means no expiry
}

// TokenService is the token authority: it issues opaque bearer tokens and resolves them back to
// users. Only SHA-256 fingerprints are kept, so a dump of the table cannot be replayed.
type TokenService struct {
	mu       sync.RWMutex
	sessions map[string]session

	userRepo user.UserRepository
	ttl      time.Duration
	now      func() time.Time
	logger   Logger
}

// NewTokenService creates the authority. ttl <= 0 disables expiry.
func NewTokenService(userRepo user.UserRepository, ttl time.Duration, logger Logger) *TokenService {
	return &TokenService{
		sessions: make(map[string]session),
		userRepo: userRepo,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// Issue creates a new token for userID. Earlier tokens of the same user stay valid.
func (s *TokenService) Issue(ctx context.Context, userID string) (string, error) {
	token, err := generateToken(tokenBytes)
	if err != nil {
		s.logger.Error("token generation failed", "error", err, "user_id", userID)
		return "", domain.Wrap(domain.KindInternal, "could not issue token", err)
	}

	sess := session{userID: userID}
	if s.ttl > 0 {
		sess.expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	s.sessions[fingerprintToken(token)] = sess
	s.mu.Unlock()

	s.logger.Debug("token issued", "user_id", userID, "expires", !sess.expiresAt.IsZero())
	return token, nil
}

// Resolve maps a token to its user. Unknown, expired and orphaned tokens are ErrInvalidToken.
func (s *TokenService) Resolve(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	fp := fingerprintToken(token)

	s.mu.RLock()
	sess, ok := s.sessions[fp]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrInvalidToken
	}

	if s.expired(sess) {
		s.mu.Lock()
		delete(s.sessions, fp)
		s.mu.Unlock()
		s.logger.Debug("expired token purged", "user_id", sess.userID)
		return nil, domain.ErrInvalidToken
	}

	u, err := s.userRepo.FindByID(ctx, sess.userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.Warn("token references missing user", "user_id", sess.userID)
			return nil, domain.ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to load token owner: %w", err)
	}
	return u, nil
}

// ResolveOptional never fails: a missing or unusable token yields nil.
func (s *TokenService) ResolveOptional(ctx context.Context, token string) *domain.User {
	if token == "" {
		return nil
	}
	u, err := s.Resolve(ctx, token)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidToken) {
			s.logger.Warn("optional token resolution failed", "error", err)
		}
		return nil
	}
	return u
}

// Revoke is idempotent.
func (s *TokenService) Revoke(ctx context.Context, token string) {
	if token == "" {
		return
	}
	s.mu.Lock()
	sess, ok := s.sessions[fingerprintToken(token)]
	delete(s.sessions, fingerprintToken(token))
	s.mu.Unlock()

	if ok {
		s.logger.Info("token revoked", "user_id", sess.userID)
	}
}

// ActiveCount reports tokens that would currently resolve, ignoring owner existence.
func (s *TokenService) ActiveCount(ctx context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, sess := range s.sessions {
		if !s.expired(sess) {
			n++
		}
	}
	return n
}

// RunSweeper removes expired sessions every period until ctx is done.
// Resolve already purges lazily; the sweeper bounds memory held by tokens nobody presents again.
func (s *TokenService) RunSweeper(ctx context.Context, period time.Duration) {
	if s.ttl <= 0 || period <= 0 {
		return
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				s.logger.Debug("expired tokens swept", "count", n)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Sweep deletes expired sessions and reports how many were removed.
func (s *TokenService) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for fp, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, fp)
			removed++
		}
	}
	return removed
}

func (s *TokenService) expired(sess session) bool {
	return !sess.expiresAt.IsZero() && !s.now().Before(sess.expiresAt)
}

func generateToken(size int) (string, error) {
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func fingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
