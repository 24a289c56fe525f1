package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInviteNotFound means no invite row matches the presented token.
	ErrInviteNotFound = errors.New("invite not found")

	// ErrInviteExpired means the invite exists but its deadline has passed.
	ErrInviteExpired = errors.New("invite expired")

	// ErrInviteAlreadyUsed means the invite was consumed by an earlier
	// request, possibly a concurrent one that won the conditional update.
	ErrInviteAlreadyUsed = errors.New("invite already used")

	// ErrDuplicateAccount means the target email already belongs to an
	// account that completed onboarding.
	ErrDuplicateAccount = errors.New("account already exists")

	// ErrInvalidCredentials is returned by the password grant when the
	// email or password does not check out.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// ValidationError carries field-level detail for rejected input. Unlike the
// invite token taxonomy, these are safe to surface verbatim to the caller.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AsValidation unwraps err into a *ValidationError if one is in the chain.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
