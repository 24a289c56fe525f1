package domain

import "time"

// Invite is a single-use, time-limited credential-setup token. The token
// column is the opaque UUID handed to the recipient; the remaining fields
// snapshot the profile-to-be at issue time so consumption never has to
// re-derive it.
//
// Lifecycle: created by the issuer, mutated exactly once (used false→true)
// by the consumer, deleted only by issuer-side cleanup when re-inviting an
// abandoned email or by housekeeping once expired.
type Invite struct {
	ID        string
	Token     string // random UUID, primary lookup key
	Email     string
	AccountID string // directory account created in pending state at issue time
	ExpiresAt time.Time
	Used      bool
	UsedAt    *time.Time

	// Pending profile snapshot.
	FullName      string
	Role          Role
	MobileNumber  string
	StationID     string
	CenterAddress string
	Registrar     string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Expired reports whether the invite is no longer valid at t. The boundary
// instant itself counts as expired.
func (i Invite) Expired(t time.Time) bool {
	return !t.Before(i.ExpiresAt)
}
