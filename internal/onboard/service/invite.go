package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/shiftline/workforce/internal/onboard/directory"
	"github.com/shiftline/workforce/internal/onboard/domain"
	mailer "github.com/shiftline/workforce/internal/onboard/mail"
	"github.com/shiftline/workforce/internal/onboard/store"
	"github.com/shiftline/workforce/pkg/cryptox"
	"github.com/shiftline/workforce/pkg/idx"
)

// DefaultInviteTTL is how long an invite stays redeemable unless
// configuration overrides it.
const DefaultInviteTTL = 24 * time.Hour

const (
	minFullNameLen = 2
	maxFullNameLen = 100
	minPasswordLen = 8
	maxPasswordLen = 128
)

// IssueRequest is the issuer-side input. Registrar is attribution only and
// is filled in by the transport layer from the caller's identity.
type IssueRequest struct {
	Email         string
	FullName      string
	Role          string
	MobileNumber  string
	StationID     string
	CenterAddress string
	Registrar     string
}

// IssuedInvite is what a successful issuance hands back to the caller.
type IssuedInvite struct {
	Token      string
	InviteLink string
	ExpiresAt  time.Time
	AccountID  string
}

// InviteService owns the invite lifecycle: issuing (with cleanup of
// abandoned prior invites), read-only validation, and exactly-once
// consumption.
type InviteService struct {
	Store   store.Store
	Dir     directory.Directory
	Mail    mailer.Sender
	Log     *slog.Logger
	TTL     time.Duration
	BaseURL string

	// now is swappable for expiry-boundary tests.
	now func() time.Time
}

func NewInviteService(st store.Store, dir directory.Directory, sender mailer.Sender, logger *slog.Logger, ttl time.Duration, baseURL string) *InviteService {
	if ttl <= 0 {
		ttl = DefaultInviteTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &InviteService{
		Store:   st,
		Dir:     dir,
		Mail:    sender,
		Log:     logger,
		TTL:     ttl,
		BaseURL: baseURL,
		now:     time.Now,
	}
}

// IssueInvite mints an invite for req.Email on behalf of requestorID.
//
// If the email already has an active account the call fails with
// ErrDuplicateAccount. If it has only an abandoned pending account, the
// stale profile, invites and account are deleted first and the invite is
// issued fresh, so re-inviting is idempotent from the operator's view.
//
// The side effects happen in dependency order with compensating deletes on
// failure, so a failed issuance never leaves a partial pending identity.
func (s *InviteService) IssueInvite(ctx context.Context, requestorID string, req IssueRequest) (IssuedInvite, error) {
	requestorRole, err := s.Dir.ResolveRole(ctx, requestorID)
	if err != nil {
		if errors.Is(err, directory.ErrNotFound) {
			return IssuedInvite{}, ErrForbidden
		}
		return IssuedInvite{}, fmt.Errorf("resolve requestor role: %w", err)
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)

	role, err := s.validate(req)
	if err != nil {
		return IssuedInvite{}, err
	}

	if err := AuthorizeInvite(requestorRole, role); err != nil {
		return IssuedInvite{}, err
	}

	// Reject or clean up any existing identity for this email before
	// creating the new one.
	existing, err := s.Dir.FindByEmail(ctx, req.Email)
	switch {
	case err == nil && existing.Active():
		return IssuedInvite{}, ErrDuplicateAccount
	case err == nil:
		if err := s.cleanupPending(ctx, req.Email, existing.ID); err != nil {
			return IssuedInvite{}, fmt.Errorf("cleanup pending identity: %w", err)
		}
	case errors.Is(err, directory.ErrNotFound):
		// fresh email, nothing to clean up
	default:
		return IssuedInvite{}, fmt.Errorf("lookup existing account: %w", err)
	}

	account, err := s.Dir.CreatePendingAccount(ctx, req.Email, role)
	if err != nil {
		return IssuedInvite{}, fmt.Errorf("create pending account: %w", err)
	}

	now := s.now().UTC()
	inv := domain.Invite{
		ID:            idx.New().String(),
		Token:         uuid.NewString(),
		Email:         req.Email,
		AccountID:     account.ID,
		ExpiresAt:     now.Add(s.TTL),
		FullName:      req.FullName,
		Role:          role,
		MobileNumber:  req.MobileNumber,
		StationID:     req.StationID,
		CenterAddress: req.CenterAddress,
		Registrar:     req.Registrar,
	}
	if err := s.Store.Invites().CreateInvite(ctx, inv); err != nil {
		s.compensate(ctx, "delete pending account", func() error {
			return s.Dir.DeleteAccount(ctx, account.ID)
		})
		return IssuedInvite{}, fmt.Errorf("persist invite: %w", err)
	}

	profile := domain.Profile{
		ID:            idx.New().String(),
		AccountID:     account.ID,
		Email:         req.Email,
		FullName:      req.FullName,
		Role:          role,
		MobileNumber:  req.MobileNumber,
		StationID:     req.StationID,
		CenterAddress: req.CenterAddress,
		Registrar:     req.Registrar,
	}
	if err := s.Store.Profiles().CreateProfile(ctx, profile); err != nil {
		s.compensate(ctx, "delete invite", func() error {
			return s.Store.Invites().DeleteInvitesByEmail(ctx, req.Email)
		})
		s.compensate(ctx, "delete pending account", func() error {
			return s.Dir.DeleteAccount(ctx, account.ID)
		})
		return IssuedInvite{}, fmt.Errorf("persist profile: %w", err)
	}

	// Mail is best-effort. The invite is committed either way and the
	// token is returned to the operator who can pass the link on manually.
	if s.Mail != nil {
		if err := s.Mail.SendInvite(ctx, req.Email, req.FullName, inv.Token); err != nil {
			s.Log.WarnContext(ctx, "invite email delivery failed",
				"email", req.Email, "error", err)
		}
	}

	s.Log.InfoContext(ctx, "invite issued",
		"email", req.Email, "role", string(role), "account_id", account.ID,
		"expires_at", inv.ExpiresAt)

	return IssuedInvite{
		Token:      inv.Token,
		InviteLink: mailer.InviteLink(s.BaseURL, inv.Token),
		ExpiresAt:  inv.ExpiresAt,
		AccountID:  account.ID,
	}, nil
}

// ValidateToken checks a token without consuming it, mapping the row state
// to the not-found / already-used / expired taxonomy. Used by the
// validate-only probe the set-password page fires on load.
func (s *InviteService) ValidateToken(ctx context.Context, token string) (domain.Invite, error) {
	if token == "" {
		return domain.Invite{}, ErrInviteNotFound
	}
	inv, err := s.Store.Invites().GetInviteByToken(ctx, token)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Invite{}, ErrInviteNotFound
		}
		return domain.Invite{}, fmt.Errorf("lookup invite: %w", err)
	}
	if inv.Used {
		return domain.Invite{}, ErrInviteAlreadyUsed
	}
	if inv.Expired(s.now()) {
		return domain.Invite{}, ErrInviteExpired
	}
	return inv, nil
}

// ConsumeToken redeems the invite: it sets the account password and flips
// the invite to used, atomically. Under concurrent redemption of the same
// token exactly one caller wins; the loser's transaction rolls back,
// including its password write, and it gets ErrInviteAlreadyUsed.
func (s *InviteService) ConsumeToken(ctx context.Context, token, password string) (domain.Profile, error) {
	if n := utf8.RuneCountInString(password); n < minPasswordLen || n > maxPasswordLen {
		return domain.Profile{}, &ValidationError{
			Field:  "password",
			Reason: fmt.Sprintf("must be between %d and %d characters", minPasswordLen, maxPasswordLen),
		}
	}

	inv, err := s.ValidateToken(ctx, token)
	if err != nil {
		return domain.Profile{}, err
	}

	// Hashing is deliberately outside the transaction; argon2 work should
	// not hold a write transaction open.
	hash, err := s.hashPassword(password)
	if err != nil {
		return domain.Profile{}, fmt.Errorf("hash password: %w", err)
	}

	usedAt := s.now().UTC()
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Accounts().SetPasswordHash(ctx, inv.AccountID, hash); err != nil {
			return fmt.Errorf("set password hash: %w", err)
		}
		won, err := tx.Invites().ConsumeInvite(ctx, token, usedAt)
		if err != nil {
			return fmt.Errorf("consume invite: %w", err)
		}
		if !won {
			// A concurrent consumer flipped the row first. Failing here
			// rolls the whole transaction back, password write included.
			return ErrInviteAlreadyUsed
		}
		return nil
	})
	if err != nil {
		return domain.Profile{}, err
	}

	// The invite is consumed and the password is live; the profile flag is
	// a read-model convenience, so a failure here is logged, not fatal.
	if err := s.Store.Profiles().MarkPasswordSet(ctx, inv.AccountID); err != nil {
		s.Log.WarnContext(ctx, "failed to mark profile password_set",
			"account_id", inv.AccountID, "error", err)
	}

	s.Log.InfoContext(ctx, "invite consumed",
		"email", inv.Email, "account_id", inv.AccountID)

	profile, err := s.Store.Profiles().GetProfileByAccountID(ctx, inv.AccountID)
	if err != nil {
		// Consumption already succeeded; synthesize the response from the
		// invite snapshot rather than failing the whole redemption.
		s.Log.WarnContext(ctx, "profile lookup after consume failed",
			"account_id", inv.AccountID, "error", err)
		return domain.Profile{
			AccountID:     inv.AccountID,
			Email:         inv.Email,
			FullName:      inv.FullName,
			Role:          inv.Role,
			MobileNumber:  inv.MobileNumber,
			StationID:     inv.StationID,
			CenterAddress: inv.CenterAddress,
			Registrar:     inv.Registrar,
			PasswordSet:   true,
		}, nil
	}
	profile.PasswordSet = true
	return profile, nil
}

func (s *InviteService) hashPassword(password string) (string, error) {
	return cryptox.HashPassword(password)
}

func (s *InviteService) validate(req IssueRequest) (domain.Role, error) {
	if req.Email == "" {
		return "", &ValidationError{Field: "email", Reason: "is required"}
	}
	addr, err := mail.ParseAddress(req.Email)
	if err != nil || addr.Address != req.Email {
		return "", &ValidationError{Field: "email", Reason: "is not a valid email address"}
	}

	if n := utf8.RuneCountInString(req.FullName); n < minFullNameLen || n > maxFullNameLen {
		return "", &ValidationError{
			Field:  "full_name",
			Reason: fmt.Sprintf("must be between %d and %d characters", minFullNameLen, maxFullNameLen),
		}
	}

	role, err := domain.ParseRole(req.Role)
	if err != nil {
		return "", &ValidationError{Field: "role", Reason: "must be one of admin, manager, user"}
	}
	return role, nil
}

// cleanupPending removes the leftovers of an abandoned invite flow in
// dependency order: profile rows, invite tokens, then the account itself.
func (s *InviteService) cleanupPending(ctx context.Context, email, accountID string) error {
	if err := s.Store.Profiles().DeleteProfilesByEmail(ctx, email, accountID); err != nil {
		return fmt.Errorf("delete profiles: %w", err)
	}
	if err := s.Store.Invites().DeleteInvitesByEmail(ctx, email); err != nil {
		return fmt.Errorf("delete invites: %w", err)
	}
	if err := s.Dir.DeleteAccount(ctx, accountID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	s.Log.InfoContext(ctx, "cleaned up abandoned pending identity",
		"email", email, "account_id", accountID)
	return nil
}

func (s *InviteService) compensate(ctx context.Context, action string, fn func() error) {
	if err := fn(); err != nil {
		s.Log.ErrorContext(ctx, "compensating rollback failed",
			"action", action, "error", err)
	}
}
