// Package sessionx implements the idle-session timeout state machine used
// by workforce clients: it watches activity, warns shortly before the idle
// deadline and forces a sign-out when the deadline passes. The timeout and
// warning durations come from the remotely configurable session policy and
// are normalized before any timer is armed.
package sessionx

import "time"

// Default policy applied when the settings store is unreachable or holds
// no values.
const (
	DefaultTimeoutMinutes = 15
	DefaultWarningMinutes = 2
)

// Policy holds the session timeout configuration in whole minutes.
type Policy struct {
	TimeoutMinutes int `json:"timeout_minutes"`
	WarningMinutes int `json:"warning_minutes"`
}

// DefaultPolicy returns the built-in fallback policy.
func DefaultPolicy() Policy {
	return Policy{
		TimeoutMinutes: DefaultTimeoutMinutes,
		WarningMinutes: DefaultWarningMinutes,
	}
}

// Normalize clamps the policy so that 0 <= warning < timeout and the
// timeout is at least one minute. Misconfigured remote settings must never
// disable the timeout or produce a negative delay.
func (p Policy) Normalize() Policy {
	if p.TimeoutMinutes < 1 {
		p.TimeoutMinutes = 1
	}
	if p.WarningMinutes < 0 {
		p.WarningMinutes = 0
	}
	if p.WarningMinutes > p.TimeoutMinutes-1 {
		p.WarningMinutes = p.TimeoutMinutes - 1
	}
	return p
}

// Timeout is the idle duration after which the session expires.
func (p Policy) Timeout() time.Duration {
	return time.Duration(p.TimeoutMinutes) * time.Minute
}

// WarningAfter is the idle duration after which the pre-expiry warning is
// surfaced. It is always strictly less than Timeout for a normalized
// policy.
func (p Policy) WarningAfter() time.Duration {
	return time.Duration(p.TimeoutMinutes-p.WarningMinutes) * time.Minute
}
