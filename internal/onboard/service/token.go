package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shiftline/workforce/internal/onboard/directory"
	"github.com/shiftline/workforce/internal/onboard/store"
	"github.com/shiftline/workforce/pkg/jwtx"
)

// AccessToken is the password-grant result.
type AccessToken struct {
	Token     string
	TokenType string
	ExpiresIn int // seconds
}

// TokenService exchanges email+password for a signed access token. Roles
// are mapped to scopes server-side; the client never supplies them.
type TokenService struct {
	Dir    directory.Directory
	Store  store.Store
	Signer *jwtx.Signer
	Log    *slog.Logger
	Issuer string
	TTL    time.Duration
}

func NewTokenService(dir directory.Directory, st store.Store, signer *jwtx.Signer, logger *slog.Logger, issuer string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = jwtx.DefaultAccessTokenTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenService{
		Dir:    dir,
		Store:  st,
		Signer: signer,
		Log:    logger,
		Issuer: issuer,
		TTL:    ttl,
	}
}

// PasswordGrant authenticates the credentials and mints an access token.
// All credential failures collapse into ErrInvalidCredentials.
func (s *TokenService) PasswordGrant(ctx context.Context, email, password string) (AccessToken, error) {
	account, err := s.Dir.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, directory.ErrInvalidCredentials) {
			return AccessToken{}, ErrInvalidCredentials
		}
		return AccessToken{}, fmt.Errorf("authenticate: %w", err)
	}

	fullName := ""
	if profile, err := s.Store.Profiles().GetProfileByAccountID(ctx, account.ID); err == nil {
		fullName = profile.FullName
	}

	claims := jwtx.NewAccessClaims(
		account.ID, s.Issuer,
		account.Role.Scopes(),
		account.Email, fullName,
		s.TTL, time.Now(),
	)
	token, err := s.Signer.Sign(claims)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign access token: %w", err)
	}

	s.Log.InfoContext(ctx, "access token issued",
		"account_id", account.ID, "role", string(account.Role))

	return AccessToken{
		Token:     token,
		TokenType: "Bearer",
		ExpiresIn: int(s.TTL.Seconds()),
	}, nil
}
