package service

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shiftline/workforce/internal/onboard/domain"
)

func TestAuthorizeInvite(t *testing.T) {
	cases := []struct {
		name      string
		requestor domain.Role
		target    domain.Role
		allowed   bool
	}{
		{"admin invites admin", domain.RoleAdmin, domain.RoleAdmin, true},
		{"admin invites manager", domain.RoleAdmin, domain.RoleManager, true},
		{"admin invites user", domain.RoleAdmin, domain.RoleUser, true},
		{"manager invites admin", domain.RoleManager, domain.RoleAdmin, false},
		{"manager invites manager", domain.RoleManager, domain.RoleManager, true},
		{"manager invites user", domain.RoleManager, domain.RoleUser, true},
		{"user invites user", domain.RoleUser, domain.RoleUser, false},
		{"user invites admin", domain.RoleUser, domain.RoleAdmin, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := AuthorizeInvite(tc.requestor, tc.target)
			if tc.allowed {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrForbidden)
			}
		})
	}
}
