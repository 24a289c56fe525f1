package sqlite

import (
	"context"

	"github.com/shiftline/workforce/internal/onboard/domain"
	"github.com/shiftline/workforce/internal/onboard/store"
)

type profilesRepo struct {
	db dbtx
}

func (r *profilesRepo) CreateProfile(ctx context.Context, p domain.Profile) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO profiles (
			id, account_id, email, full_name, role,
			mobile_number, station_id, center_address, registrar,
			password_set, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		p.ID, p.AccountID, p.Email, p.FullName, string(p.Role),
		p.MobileNumber, p.StationID, p.CenterAddress, p.Registrar,
		p.PasswordSet,
	)
	return err
}

func (r *profilesRepo) GetProfileByAccountID(ctx context.Context, accountID string) (domain.Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, account_id, email, full_name, role,
		       mobile_number, station_id, center_address, registrar,
		       password_set, created_at, updated_at
		FROM profiles WHERE account_id = ?`, accountID)

	var (
		p    domain.Profile
		role string
	)
	err := row.Scan(
		&p.ID, &p.AccountID, &p.Email, &p.FullName, &role,
		&p.MobileNumber, &p.StationID, &p.CenterAddress, &p.Registrar,
		&p.PasswordSet, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return domain.Profile{}, mapNotFound(err)
	}
	p.Role = domain.Role(role)
	return p, nil
}

func (r *profilesRepo) MarkPasswordSet(ctx context.Context, accountID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET password_set = 1, updated_at = CURRENT_TIMESTAMP
		WHERE account_id = ?`,
		accountID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *profilesRepo) DeleteProfilesByEmail(ctx context.Context, email, accountID string) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM profiles WHERE email = ? OR account_id = ?`,
		email, accountID,
	)
	return err
}
