package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/shiftline/workforce/internal/onboard/directory"
	"github.com/shiftline/workforce/internal/onboard/domain"
	"github.com/shiftline/workforce/internal/onboard/store"
	"github.com/shiftline/workforce/internal/onboard/store/drivers/sqlite"
	"github.com/shiftline/workforce/pkg/cryptox"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "workforce-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)

	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

type testEnv struct {
	store store.Store
	dir   directory.Directory
	svc   *InviteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	dir := directory.NewLocal(st)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewInviteService(st, dir, nil, logger, DefaultInviteTTL, "https://app.example")

	return &testEnv{store: st, dir: dir, svc: svc}
}

// seedRequestor creates an active account with the given role and returns
// its id.
func (e *testEnv) seedRequestor(t *testing.T, email string, role domain.Role) string {
	t.Helper()

	ctx := context.Background()
	account, err := e.dir.CreatePendingAccount(ctx, email, role)
	require.NoError(t, err)

	hash, err := cryptox.HashPassword("requestor-password")
	require.NoError(t, err)
	require.NoError(t, e.store.Accounts().SetPasswordHash(ctx, account.ID, hash))
	return account.ID
}

func validRequest() IssueRequest {
	return IssueRequest{
		Email:         "newbie@example.com",
		FullName:      "New Worker",
		Role:          "user",
		MobileNumber:  "0400000000",
		StationID:     "STN-7",
		CenterAddress: "1 Depot Rd",
		Registrar:     "admin@example.com",
	}
}

func TestIssueInvite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedRequestor(t, "admin@example.com", domain.RoleAdmin)

	issued, err := env.svc.IssueInvite(ctx, admin, validRequest())
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
	require.Contains(t, issued.InviteLink, issued.Token)
	require.WithinDuration(t, time.Now().Add(DefaultInviteTTL), issued.ExpiresAt, time.Minute)

	inv, err := env.store.Invites().GetInviteByToken(ctx, issued.Token)
	require.NoError(t, err)
	require.False(t, inv.Used)
	require.Equal(t, "newbie@example.com", inv.Email)
	require.Equal(t, domain.RoleUser, inv.Role)
	require.Equal(t, issued.AccountID, inv.AccountID)

	account, err := env.store.Accounts().GetAccountByID(ctx, issued.AccountID)
	require.NoError(t, err)
	require.False(t, account.Active())

	profile, err := env.store.Profiles().GetProfileByAccountID(ctx, issued.AccountID)
	require.NoError(t, err)
	require.False(t, profile.PasswordSet)
	require.Equal(t, "New Worker", profile.FullName)
}

func TestIssueInviteValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedRequestor(t, "admin@example.com", domain.RoleAdmin)

	cases := []struct {
		name   string
		mutate func(*IssueRequest)
		field  string
	}{
		{"missing email", func(r *IssueRequest) { r.Email = "" }, "email"},
		{"malformed email", func(r *IssueRequest) { r.Email = "not-an-email" }, "email"},
		{"short full name", func(r *IssueRequest) { r.FullName = "x" }, "full_name"},
		{"unknown role", func(r *IssueRequest) { r.Role = "superuser" }, "role"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			tc.mutate(&req)

			_, err := env.svc.IssueInvite(ctx, admin, req)
			ve, ok := AsValidation(err)
			require.True(t, ok, "expected validation error, got %v", err)
			require.Equal(t, tc.field, ve.Field)
		})
	}
}

func TestIssueInviteRoleGate(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	manager := env.seedRequestor(t, "manager@example.com", domain.RoleManager)
	user := env.seedRequestor(t, "user@example.com", domain.RoleUser)

	t.Run("manager cannot invite admin", func(t *testing.T) {
		req := validRequest()
		req.Role = "admin"
		_, err := env.svc.IssueInvite(ctx, manager, req)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("manager can invite user", func(t *testing.T) {
		req := validRequest()
		req.Email = "worker2@example.com"
		_, err := env.svc.IssueInvite(ctx, manager, req)
		require.NoError(t, err)
	})

	t.Run("plain user cannot invite", func(t *testing.T) {
		req := validRequest()
		req.Email = "worker3@example.com"
		_, err := env.svc.IssueInvite(ctx, user, req)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("unknown requestor is forbidden", func(t *testing.T) {
		_, err := env.svc.IssueInvite(ctx, "no-such-account", validRequest())
		require.ErrorIs(t, err, ErrForbidden)
	})
}

func TestIssueInviteDuplicateActiveAccount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedRequestor(t, "admin@example.com", domain.RoleAdmin)

	req := validRequest()
	issued, err := env.svc.IssueInvite(ctx, admin, req)
	require.NoError(t, err)

	_, err = env.svc.ConsumeToken(ctx, issued.Token, "brand-new-password")
	require.NoError(t, err)

	_, err = env.svc.IssueInvite(ctx, admin, req)
	require.ErrorIs(t, err, ErrDuplicateAccount)
}

func TestIssueInviteReinvitesAbandonedEmail(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedRequestor(t, "admin@example.com", domain.RoleAdmin)

	first, err := env.svc.IssueInvite(ctx, admin, validRequest())
	require.NoError(t, err)

	// Recipient never set a password; a second invite replaces the first.
	second, err := env.svc.IssueInvite(ctx, admin, validRequest())
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)
	require.NotEqual(t, first.AccountID, second.AccountID)

	_, err = env.svc.ValidateToken(ctx, first.Token)
	require.ErrorIs(t, err, ErrInviteNotFound)

	_, err = env.svc.ValidateToken(ctx, second.Token)
	require.NoError(t, err)

	// The stale pending account is gone.
	_, err = env.store.Accounts().GetAccountByID(ctx, first.AccountID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

// profileFailStore wraps a real store and fails profile creation so the
// compensating deletes can be observed.
type profileFailStore struct {
	store.Store
}

func (s *profileFailStore) Profiles() store.Profiles {
	return &failingProfiles{inner: s.Store.Profiles()}
}

type failingProfiles struct {
	inner store.Profiles
}

var errProfileBoom = errors.New("profile write refused")

func (p *failingProfiles) CreateProfile(ctx context.Context, pr domain.Profile) error {
	return errProfileBoom
}

func (p *failingProfiles) GetProfileByAccountID(ctx context.Context, accountID string) (domain.Profile, error) {
	return p.inner.GetProfileByAccountID(ctx, accountID)
}

func (p *failingProfiles) MarkPasswordSet(ctx context.Context, accountID string) error {
	return p.inner.MarkPasswordSet(ctx, accountID)
}

func (p *failingProfiles) DeleteProfilesByEmail(ctx context.Context, email, accountID string) error {
	return p.inner.DeleteProfilesByEmail(ctx, email, accountID)
}

func TestIssueInviteRollsBackOnProfileFailure(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedRequestor(t, "admin@example.com", domain.RoleAdmin)

	wrapped := &profileFailStore{Store: env.store}
	svc := NewInviteService(wrapped, env.dir, nil, env.svc.Log, DefaultInviteTTL, "https://app.example")

	req := validRequest()
	_, err := svc.IssueInvite(ctx, admin, req)
	require.ErrorIs(t, err, errProfileBoom)

	// Compensating deletes removed both the invite and the account, so a
	// later invite for the same email starts clean.
	_, err = env.dir.FindByEmail(ctx, req.Email)
	require.ErrorIs(t, err, directory.ErrNotFound)

	issued, err := env.svc.IssueInvite(ctx, admin, req)
	require.NoError(t, err)
	require.NotEmpty(t, issued.Token)
}

func TestValidateToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedRequestor(t, "admin@example.com", domain.RoleAdmin)

	issued, err := env.svc.IssueInvite(ctx, admin, validRequest())
	require.NoError(t, err)

	t.Run("valid token", func(t *testing.T) {
		inv, err := env.svc.ValidateToken(ctx, issued.Token)
		require.NoError(t, err)
		require.Equal(t, "newbie@example.com", inv.Email)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := env.svc.ValidateToken(ctx, "00000000-0000-0000-0000-000000000000")
		require.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := env.svc.ValidateToken(ctx, "")
		require.ErrorIs(t, err, ErrInviteNotFound)
	})

	t.Run("expired at the exact boundary", func(t *testing.T) {
		inv, err := env.store.Invites().GetInviteByToken(ctx, issued.Token)
		require.NoError(t, err)

		env.svc.now = func() time.Time { return inv.ExpiresAt }
		defer func() { env.svc.now = time.Now }()

		_, err = env.svc.ValidateToken(ctx, issued.Token)
		require.ErrorIs(t, err, ErrInviteExpired)

		// One instant earlier it is still good.
		env.svc.now = func() time.Time { return inv.ExpiresAt.Add(-time.Millisecond) }
		_, err = env.svc.ValidateToken(ctx, issued.Token)
		require.NoError(t, err)
	})
}

func TestConsumeToken(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedRequestor(t, "admin@example.com", domain.RoleAdmin)

	issued, err := env.svc.IssueInvite(ctx, admin, validRequest())
	require.NoError(t, err)

	t.Run("rejects short password without touching the invite", func(t *testing.T) {
		_, err := env.svc.ConsumeToken(ctx, issued.Token, "short")
		ve, ok := AsValidation(err)
		require.True(t, ok)
		require.Equal(t, "password", ve.Field)

		_, err = env.svc.ValidateToken(ctx, issued.Token)
		require.NoError(t, err)
	})

	t.Run("happy path activates the account", func(t *testing.T) {
		profile, err := env.svc.ConsumeToken(ctx, issued.Token, "brand-new-password")
		require.NoError(t, err)
		require.True(t, profile.PasswordSet)
		require.Equal(t, "newbie@example.com", profile.Email)

		account, err := env.store.Accounts().GetAccountByID(ctx, issued.AccountID)
		require.NoError(t, err)
		require.True(t, account.Active())
		require.NoError(t, cryptox.VerifyPassword("brand-new-password", account.PasswordHash))

		inv, err := env.store.Invites().GetInviteByToken(ctx, issued.Token)
		require.NoError(t, err)
		require.True(t, inv.Used)
		require.NotNil(t, inv.UsedAt)

		stored, err := env.store.Profiles().GetProfileByAccountID(ctx, issued.AccountID)
		require.NoError(t, err)
		require.True(t, stored.PasswordSet)

		// The new credential actually logs in.
		_, err = env.dir.Authenticate(ctx, "newbie@example.com", "brand-new-password")
		require.NoError(t, err)
	})

	t.Run("second consume fails", func(t *testing.T) {
		_, err := env.svc.ConsumeToken(ctx, issued.Token, "another-password")
		require.ErrorIs(t, err, ErrInviteAlreadyUsed)

		// The loser's password write did not stick.
		account, err := env.store.Accounts().GetAccountByID(ctx, issued.AccountID)
		require.NoError(t, err)
		require.NoError(t, cryptox.VerifyPassword("brand-new-password", account.PasswordHash))
	})
}

func TestConsumeTokenExpired(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedRequestor(t, "admin@example.com", domain.RoleAdmin)

	issued, err := env.svc.IssueInvite(ctx, admin, validRequest())
	require.NoError(t, err)

	env.svc.now = func() time.Time { return issued.ExpiresAt.Add(time.Second) }

	_, err = env.svc.ConsumeToken(ctx, issued.Token, "brand-new-password")
	require.ErrorIs(t, err, ErrInviteExpired)

	// Password never landed on the pending account.
	account, err := env.store.Accounts().GetAccountByID(ctx, issued.AccountID)
	require.NoError(t, err)
	require.False(t, account.Active())
}

func TestConsumeTokenConcurrent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	admin := env.seedRequestor(t, "admin@example.com", domain.RoleAdmin)

	issued, err := env.svc.IssueInvite(ctx, admin, validRequest())
	require.NoError(t, err)

	passwords := []string{"first-racer-password", "second-racer-password"}
	results := make([]error, len(passwords))

	var wg sync.WaitGroup
	for i, pw := range passwords {
		wg.Add(1)
		go func(i int, pw string) {
			defer wg.Done()
			_, results[i] = env.svc.ConsumeToken(ctx, issued.Token, pw)
		}(i, pw)
	}
	wg.Wait()

	var wins, losses int
	var winner string
	for i, err := range results {
		switch {
		case err == nil:
			wins++
			winner = passwords[i]
		case errors.Is(err, ErrInviteAlreadyUsed):
			losses++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, wins, "exactly one consumer must win")
	require.Equal(t, 1, losses)

	// The surviving credential is the winner's; the loser's transaction
	// rolled back its password write.
	account, err := env.store.Accounts().GetAccountByID(ctx, issued.AccountID)
	require.NoError(t, err)
	require.NoError(t, cryptox.VerifyPassword(winner, account.PasswordHash))
}
