package store

import (
	"context"
	"errors"
	"time"

	"github.com/shiftline/workforce/internal/onboard/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers implement it.
// Sub-repositories keep concerns tidy; every cross-row mutation goes through
// WithTx so the invite lifecycle stays atomic.
type Store interface {
	Invites() Invites
	Accounts() Accounts
	Profiles() Profiles
	Settings() Settings

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction, committing on nil and
	// rolling back on error. Preferred over Tx for most call sites.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Invites interface {
	// CreateInvite writes a new invite row with used=false.
	CreateInvite(ctx context.Context, inv domain.Invite) error

	// GetInviteByToken returns the invite for the exact token string,
	// used or not; callers distinguish the taxonomy themselves so the
	// distinct cases can be logged.
	GetInviteByToken(ctx context.Context, token string) (domain.Invite, error)

	// ConsumeInvite flips used false→true for the token, conditioned on
	// the row still being unused. Returns true when this caller won the
	// flip; false means another consumer got there first.
	ConsumeInvite(ctx context.Context, token string, usedAt time.Time) (bool, error)

	// DeleteInvitesByEmail removes all historical invites for an email,
	// part of the cleanup-then-recreate re-invite path.
	DeleteInvitesByEmail(ctx context.Context, email string) error

	// DeleteExpiredInvites removes expired unused invites (housekeeping).
	DeleteExpiredInvites(ctx context.Context) error
}

type Accounts interface {
	// CreateAccount inserts a new account (id is provided by app via ULID).
	CreateAccount(ctx context.Context, a domain.Account) error

	GetAccountByID(ctx context.Context, id string) (domain.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// SetPasswordHash sets the password_hash and bumps updated_at.
	SetPasswordHash(ctx context.Context, accountID, hash string) error

	// DeleteAccount removes the account row. Invite/profile rows are the
	// issuer's responsibility.
	DeleteAccount(ctx context.Context, accountID string) error
}

type Profiles interface {
	CreateProfile(ctx context.Context, p domain.Profile) error

	GetProfileByAccountID(ctx context.Context, accountID string) (domain.Profile, error)

	// MarkPasswordSet flips password_set to true for the account's profile.
	MarkPasswordSet(ctx context.Context, accountID string) error

	// DeleteProfilesByEmail removes profile rows for an email or its
	// account id, part of the re-invite cleanup.
	DeleteProfilesByEmail(ctx context.Context, email, accountID string) error
}

// Settings is the remote-configuration key/value store consulted for the
// session timeout policy.
type Settings interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}
