package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/shiftline/workforce/internal/onboard/domain"
)

type invitesRepo struct {
	db dbtx
}

func (r *invitesRepo) CreateInvite(ctx context.Context, inv domain.Invite) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO invites (
			id, token, email, account_id, expires_at, used,
			full_name, role, mobile_number, station_id, center_address, registrar,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, 0, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)`,
		inv.ID, inv.Token, inv.Email, inv.AccountID, inv.ExpiresAt,
		inv.FullName, string(inv.Role), inv.MobileNumber, inv.StationID,
		inv.CenterAddress, inv.Registrar,
	)
	return err
}

func (r *invitesRepo) GetInviteByToken(ctx context.Context, token string) (domain.Invite, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, token, email, account_id, expires_at, used, used_at,
		       full_name, role, mobile_number, station_id, center_address, registrar,
		       created_at, updated_at
		FROM invites
		WHERE token = ?`, token)

	var (
		inv    domain.Invite
		role   string
		usedAt sql.NullTime
	)
	err := row.Scan(
		&inv.ID, &inv.Token, &inv.Email, &inv.AccountID, &inv.ExpiresAt,
		&inv.Used, &usedAt,
		&inv.FullName, &role, &inv.MobileNumber, &inv.StationID,
		&inv.CenterAddress, &inv.Registrar,
		&inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		return domain.Invite{}, mapNotFound(err)
	}
	inv.Role = domain.Role(role)
	inv.UsedAt = mapNullTimePtr(usedAt)
	return inv, nil
}

// ConsumeInvite is the race guard for double consumption: the UPDATE is
// conditioned on used=0 and the affected-row count decides the winner.
func (r *invitesRepo) ConsumeInvite(ctx context.Context, token string, usedAt time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE invites
		SET used = 1, used_at = ?, updated_at = CURRENT_TIMESTAMP
		WHERE token = ? AND used = 0`,
		usedAt, token,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *invitesRepo) DeleteInvitesByEmail(ctx context.Context, email string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM invites WHERE email = ?`, email)
	return err
}

func (r *invitesRepo) DeleteExpiredInvites(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM invites WHERE used = 0 AND expires_at <= CURRENT_TIMESTAMP`)
	return err
}
