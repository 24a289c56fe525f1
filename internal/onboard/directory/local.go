package directory

import (
	"context"
	"errors"

	"github.com/shiftline/workforce/internal/onboard/domain"
	"github.com/shiftline/workforce/internal/onboard/store"
	"github.com/shiftline/workforce/pkg/cryptox"
	"github.com/shiftline/workforce/pkg/idx"
)

// Local is the store-backed Directory used when the service owns its
// accounts table directly.
type Local struct {
	Store store.Store
}

func NewLocal(st store.Store) *Local {
	return &Local{Store: st}
}

func (d *Local) CreatePendingAccount(ctx context.Context, email string, role domain.Role) (domain.Account, error) {
	account := domain.Account{
		ID:    idx.New().String(),
		Email: email,
		Role:  role,
	}
	if err := d.Store.Accounts().CreateAccount(ctx, account); err != nil {
		return domain.Account{}, err
	}
	return account, nil
}

func (d *Local) FindByEmail(ctx context.Context, email string) (domain.Account, error) {
	account, err := d.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrNotFound
		}
		return domain.Account{}, err
	}
	return account, nil
}

func (d *Local) DeleteAccount(ctx context.Context, accountID string) error {
	return d.Store.Accounts().DeleteAccount(ctx, accountID)
}

func (d *Local) ResolveRole(ctx context.Context, accountID string) (domain.Role, error) {
	account, err := d.Store.Accounts().GetAccountByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}
	return account.Role, nil
}

func (d *Local) Authenticate(ctx context.Context, email, password string) (domain.Account, error) {
	account, err := d.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Account{}, ErrInvalidCredentials
		}
		return domain.Account{}, err
	}

	// Pending accounts have no credential yet.
	if !account.Active() {
		return domain.Account{}, ErrInvalidCredentials
	}

	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.Account{}, ErrInvalidCredentials
		}
		return domain.Account{}, err
	}

	return account, nil
}
