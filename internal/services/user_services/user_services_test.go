package user_services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/iyunix/go-habitcoach/internal/domain"
	"github.com/iyunix/go-habitcoach/internal/idgen"
	"github.com/iyunix/go-habitcoach/internal/repository/user"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type fixture struct {
	repo   user.UserRepository
	tokens *TokenService
	auth   *AuthService
	users  *UserService
}

func newFixture(t *testing.T, ttl time.Duration) *fixture {
	t.Helper()
	repo := user.NewMemoryUserRepository()
	tokens := NewTokenService(repo, ttl, nopLogger{})
	return &fixture{
		repo:   repo,
		tokens: tokens,
		auth:   NewAuthService(repo, tokens, idgen.New(), bcrypt.MinCost, nopLogger{}),
		users:  NewUserService(repo, nopLogger{}),
	}
}

func TestRegisterIssuesResolvableToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	u, token, err := f.auth.Register(ctx, "A", "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.NotEqual(t, "pw1", u.PasswordHash)
	require.Equal(t, u.CreatedAt.Format(domain.JoinDateLayout), u.JoinDate)
	require.Len(t, token, 43)

	resolved, err := f.tokens.Resolve(ctx, token)
	require.NoError(t, err)
	require.Equal(t, u.ID, resolved.ID)

	_, _, err = f.auth.Register(ctx, "B", "a@x.com", "pw2")
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t, 0)
	cases := map[string][3]string{
		"blank name":     {" ", "a@x.com", "pw"},
		"bad email":      {"A", "not-an-email", "pw"},
		"display name":   {"A", "A <a@x.com>", "pw"},
		"empty password": {"A", "a@x.com", ""},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, _, err := f.auth.Register(context.Background(), in[0], in[1], in[2])
			require.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
}

func TestLoginScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	_, first, err := f.auth.Register(ctx, "A", "a@x.com", "pw1")
	require.NoError(t, err)

	u, second, err := f.auth.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	// Both sessions stay valid.
	for _, tok := range []string{first, second} {
		got, err := f.tokens.Resolve(ctx, tok)
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
	}
	require.Equal(t, 2, f.tokens.ActiveCount(ctx))

	_, _, wrongPw := f.auth.Login(ctx, "a@x.com", "nope")
	_, _, unknown := f.auth.Login(ctx, "b@x.com", "pw1")
	_, _, caseDiff := f.auth.Login(ctx, "A@x.com", "pw1")
	require.ErrorIs(t, wrongPw, domain.ErrInvalidCredentials)
	require.ErrorIs(t, unknown, domain.ErrInvalidCredentials)
	require.ErrorIs(t, caseDiff, domain.ErrInvalidCredentials)
	require.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestLogoutRevokes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	_, token, err := f.auth.Register(ctx, "A", "a@x.com", "pw1")
	require.NoError(t, err)

	f.auth.Logout(ctx, token)
	_, err = f.tokens.Resolve(ctx, token)
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	// Revoking twice, or revoking garbage, is a no-op.
	f.auth.Logout(ctx, token)
	f.tokens.Revoke(ctx, "garbage")
	require.Zero(t, f.tokens.ActiveCount(ctx))
}

func TestResolveOptional(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	u, token, err := f.auth.Register(ctx, "A", "a@x.com", "pw1")
	require.NoError(t, err)

	require.Nil(t, f.tokens.ResolveOptional(ctx, ""))
	require.Nil(t, f.tokens.ResolveOptional(ctx, "unknown"))
	got := f.tokens.ResolveOptional(ctx, token)
	require.NotNil(t, got)
	require.Equal(t, u.ID, got.ID)
}

func TestResolveOrphanedToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	token, err := f.tokens.Issue(ctx, "ghost")
	require.NoError(t, err)

	_, err = f.tokens.Resolve(ctx, token)
	require.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestTokenExpiry(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Hour)

	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f.tokens.now = func() time.Time { return clock }

	_, token, err := f.auth.Register(ctx, "A", "a@x.com", "pw1")
	require.NoError(t, err)

	_, err = f.tokens.Resolve(ctx, token)
	require.NoError(t, err)

	clock = clock.Add(time.Hour)
	require.Zero(t, f.tokens.ActiveCount(ctx))
	_, err = f.tokens.Resolve(ctx, token)
	require.ErrorIs(t, err, domain.ErrInvalidToken)

	f.tokens.mu.RLock()
	require.Empty(t, f.tokens.sessions)
	f.tokens.mu.RUnlock()
}

func TestSweepRemovesOnlyExpired(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, time.Hour)

	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f.tokens.now = func() time.Time { return clock }

	old, err := f.tokens.Issue(ctx, "u1")
	require.NoError(t, err)
	clock = clock.Add(30 * time.Minute)
	fresh, err := f.tokens.Issue(ctx, "u1")
	require.NoError(t, err)

	clock = clock.Add(45 * time.Minute)
	require.Equal(t, 1, f.tokens.Sweep())
	require.Zero(t, f.tokens.Sweep())

	f.tokens.mu.RLock()
	_, oldKept := f.tokens.sessions[fingerprintToken(old)]
	_, freshKept := f.tokens.sessions[fingerprintToken(fresh)]
	f.tokens.mu.RUnlock()
	require.False(t, oldKept)
	require.True(t, freshKept)
}

func TestRunSweeperStopsWithContext(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newFixture(t, time.Minute)
	clock := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	f.tokens.now = func() time.Time { return clock }

	_, err := f.tokens.Issue(context.Background(), "u1")
	require.NoError(t, err)
	clock = clock.Add(time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.tokens.RunSweeper(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool {
		f.tokens.mu.RLock()
		defer f.tokens.mu.RUnlock()
		return len(f.tokens.sessions) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestRunSweeperWithoutTTLReturns(t *testing.T) {
	f := newFixture(t, 0)
	f.tokens.RunSweeper(context.Background(), time.Millisecond)
}

func TestTokensStoredByFingerprint(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	token, err := f.tokens.Issue(ctx, "u1")
	require.NoError(t, err)

	f.tokens.mu.RLock()
	defer f.tokens.mu.RUnlock()
	_, raw := f.tokens.sessions[token]
	_, hashed := f.tokens.sessions[fingerprintToken(token)]
	require.False(t, raw)
	require.True(t, hashed)
}

func TestConcurrentRegistrationSameEmail(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	var (
		mu   sync.Mutex
		wins int
		dups int
	)
	var g errgroup.Group
	for i := 0; i < 8; i++ {
		g.Go(func() error {
			_, _, err := f.auth.Register(ctx, "racer", "race@x.com", "pw")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				wins++
			case domain.KindOf(err) == domain.KindDuplicateEmail:
				dups++
			default:
				return err
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, 1, wins)
	require.Equal(t, 7, dups)
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, 0)

	a, _, err := f.auth.Register(ctx, "A", "a@x.com", "pw1")
	require.NoError(t, err)
	_, _, err = f.auth.Register(ctx, "B", "b@x.com", "pw2")
	require.NoError(t, err)
	require.Nil(t, a.UpdatedAt)

	name := "Alice"
	updated, err := f.users.UpdateProfile(ctx, a.ID, domain.ProfileUpdate{Name: &name})
	require.NoError(t, err)
	require.Equal(t, "Alice", updated.Name)
	require.Equal(t, "a@x.com", updated.Email)
	require.NotNil(t, updated.UpdatedAt)

	taken := "b@x.com"
	_, err = f.users.UpdateProfile(ctx, a.ID, domain.ProfileUpdate{Email: &taken})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	same := "a@x.com"
	_, err = f.users.UpdateProfile(ctx, a.ID, domain.ProfileUpdate{Email: &same})
	require.NoError(t, err)

	fresh := "alice@x.com"
	_, err = f.users.UpdateProfile(ctx, a.ID, domain.ProfileUpdate{Email: &fresh})
	require.NoError(t, err)

	_, err = f.auth.Authenticate(ctx, "alice@x.com", "pw1")
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, "a@x.com", "pw1")
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	// Empty update still stamps.
	before, err := f.users.GetProfile(ctx, a.ID)
	require.NoError(t, err)
	after, err := f.users.UpdateProfile(ctx, a.ID, domain.ProfileUpdate{})
	require.NoError(t, err)
	require.False(t, after.UpdatedAt.Before(*before.UpdatedAt))

	_, err = f.users.UpdateProfile(ctx, "missing", domain.ProfileUpdate{Name: &name})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
