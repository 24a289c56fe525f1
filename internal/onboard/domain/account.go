package domain

import "time"

// Account is a directory record. Accounts are created in a pending state
// (empty password hash) by the invite issuer and become active exactly when
// their invite is consumed.
type Account struct {
	ID           string
	Email        string
	PasswordHash string // argon2 PHC string, empty while pending
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Active reports whether the account has completed password setup.
func (a Account) Active() bool { return a.PasswordHash != "" }

// Profile is the workforce profile row paired with an account. PasswordSet
// mirrors the account's activation for dashboard queries and flips to true
// when the paired invite is consumed.
type Profile struct {
	ID            string
	AccountID     string
	Email         string
	FullName      string
	Role          Role
	MobileNumber  string
	StationID     string
	CenterAddress string
	Registrar     string
	PasswordSet   bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
