package onboardsdk

import (
	"context"
	"net/http"
	"time"

	"github.com/shiftline/workforce/pkg/sessionx"
)

// Session is an authenticated client for operator-side endpoints. It does
// not auto-refresh; access tokens are short-lived and callers re-run the
// password grant once Expired reports true.
type Session struct {
	client      *SDKClient
	accessToken string
	expiresAt   time.Time
}

func newSession(c *SDKClient, tok *TokenResponse) *Session {
	// 30 second buffer so a token is not used at the edge of its life.
	expiresAt := time.Now().Add(time.Duration(tok.ExpiresIn) * time.Second).Add(-30 * time.Second)
	return &Session{
		client:      c,
		accessToken: tok.AccessToken,
		expiresAt:   expiresAt,
	}
}

// AccessToken returns the raw bearer token, for callers that pipe it into
// other clients.
func (s *Session) AccessToken() string { return s.accessToken }

// Expired reports whether the session's token is past its useful life.
func (s *Session) Expired() bool { return time.Now().After(s.expiresAt) }

// IssueInvite issues an invitation for a new workforce member.
func (s *Session) IssueInvite(ctx context.Context, req InviteRequest) (*InviteResponse, error) {
	var out InviteResponse
	if err := s.client.doJSON(ctx, http.MethodPost, "/v1/invites", s.accessToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SessionPolicy fetches the effective idle-timeout policy.
func (s *Session) SessionPolicy(ctx context.Context) (*SessionPolicyResponse, error) {
	var out SessionPolicyResponse
	if err := s.client.doJSON(ctx, http.MethodGet, "/v1/session/policy", s.accessToken, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateSessionPolicy persists a new idle-timeout policy (admin only).
// The returned policy reflects server-side clamping.
func (s *Session) UpdateSessionPolicy(ctx context.Context, timeoutMinutes, warningMinutes int) (*SessionPolicyResponse, error) {
	var out SessionPolicyResponse
	req := SessionPolicyResponse{TimeoutMinutes: timeoutMinutes, WarningMinutes: warningMinutes}
	if err := s.client.doJSON(ctx, http.MethodPut, "/v1/session/policy", s.accessToken, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// StartIdleMonitor fetches the server's policy and arms an inactivity
// monitor with it. onWarning fires warningMinutes before the deadline with
// the time left, onExpire when the idle timeout lapses; the caller feeds
// user activity to the returned monitor via Activity() and must Stop() it
// on sign-out.
//
// If the policy endpoint is unreachable the monitor is armed with the
// built-in defaults rather than failing, matching the server's own
// degrade-to-default behavior.
func (s *Session) StartIdleMonitor(ctx context.Context, onWarning func(time.Duration), onExpire func()) *sessionx.Monitor {
	policy := sessionx.DefaultPolicy()
	if resp, err := s.SessionPolicy(ctx); err == nil {
		policy = sessionx.Policy{
			TimeoutMinutes: resp.TimeoutMinutes,
			WarningMinutes: resp.WarningMinutes,
		}
	}

	m := sessionx.NewMonitor(policy, onWarning, onExpire)
	m.Start()
	return m
}
