// Package directory is the account directory the invite lifecycle talks
// to: the authoritative mapping from account to email, credential and role.
// The service ships with a store-backed implementation. Lookup, lifecycle
// and authentication go through this interface; invite consumption writes
// the password hash inside the store transaction instead, so redeeming a
// token and burning the invite stay atomic. A non-store directory would
// need its own compensation there.
package directory

import (
	"context"
	"errors"

	"github.com/shiftline/workforce/internal/onboard/domain"
)

var (
	// ErrNotFound mirrors store.ErrNotFound at the directory boundary.
	ErrNotFound = errors.New("directory: account not found")

	// ErrInvalidCredentials covers both unknown-email and wrong-password so
	// callers cannot probe which one failed.
	ErrInvalidCredentials = errors.New("directory: invalid credentials")
)

// Directory manages accounts on behalf of the invite issuer and the token
// service. Roles MUST be resolved here; client-supplied role claims are
// never trusted.
type Directory interface {
	// CreatePendingAccount creates an account in the invited/unconfirmed
	// state (no password). The returned account carries the generated id.
	CreatePendingAccount(ctx context.Context, email string, role domain.Role) (domain.Account, error)

	// FindByEmail returns the account for an email, or ErrNotFound.
	FindByEmail(ctx context.Context, email string) (domain.Account, error)

	// DeleteAccount removes an account. Used by issuer-side cleanup and
	// compensating rollbacks.
	DeleteAccount(ctx context.Context, accountID string) error

	// ResolveRole returns the authoritative role for an account.
	ResolveRole(ctx context.Context, accountID string) (domain.Role, error)

	// Authenticate verifies email+password and returns the account.
	// Pending accounts (no password yet) always fail.
	Authenticate(ctx context.Context, email, password string) (domain.Account, error)
}
