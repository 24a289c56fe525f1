package service

import (
	"errors"

	"github.com/shiftline/workforce/internal/onboard/domain"
)

// ErrForbidden is returned when the requestor's role does not permit the
// attempted action. Handlers must keep the outward message generic.
var ErrForbidden = errors.New("forbidden")

// AuthorizeInvite is the single role-gate for invite issuance, shared by
// every entry point instead of re-deriving the matrix per handler.
//
// Admins may invite any role. Managers may invite managers and users but
// never admins. Plain users may not invite at all.
func AuthorizeInvite(requestor, target domain.Role) error {
	switch requestor {
	case domain.RoleAdmin:
		return nil
	case domain.RoleManager:
		if target == domain.RoleAdmin {
			return ErrForbidden
		}
		return nil
	default:
		return ErrForbidden
	}
}
