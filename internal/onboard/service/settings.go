package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/shiftline/workforce/internal/onboard/store"
	"github.com/shiftline/workforce/pkg/sessionx"
)

const (
	settingSessionTimeout = "session_timeout_minutes"
	settingSessionWarning = "session_warning_minutes"

	// settingsCacheTTL bounds how stale a served policy can be after an
	// admin changes it. Clients re-fetch on login anyway.
	settingsCacheTTL = 30 * time.Second
)

// SettingsService serves the remote session policy with a small read
// cache. Missing or malformed values degrade to the built-in defaults;
// serving a policy never fails.
type SettingsService struct {
	Store store.Store
	Log   *slog.Logger

	mu        sync.Mutex
	cached    sessionx.Policy
	fetchedAt time.Time
}

func NewSettingsService(st store.Store, logger *slog.Logger) *SettingsService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SettingsService{Store: st, Log: logger}
}

// SessionPolicy returns the effective idle-timeout policy, clamped to sane
// bounds.
func (s *SettingsService) SessionPolicy(ctx context.Context) sessionx.Policy {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.fetchedAt.IsZero() && time.Since(s.fetchedAt) < settingsCacheTTL {
		return s.cached
	}

	policy := sessionx.DefaultPolicy()
	if v, ok := s.readInt(ctx, settingSessionTimeout); ok {
		policy.TimeoutMinutes = v
	}
	if v, ok := s.readInt(ctx, settingSessionWarning); ok {
		policy.WarningMinutes = v
	}
	policy = policy.Normalize()

	s.cached = policy
	s.fetchedAt = time.Now()
	return policy
}

// SetSessionPolicy persists a new policy and refreshes the cache. The
// stored values are the normalized ones so reads and writes agree.
func (s *SettingsService) SetSessionPolicy(ctx context.Context, p sessionx.Policy) (sessionx.Policy, error) {
	p = p.Normalize()

	if err := s.Store.Settings().Set(ctx, settingSessionTimeout, strconv.Itoa(p.TimeoutMinutes)); err != nil {
		return sessionx.Policy{}, fmt.Errorf("persist %s: %w", settingSessionTimeout, err)
	}
	if err := s.Store.Settings().Set(ctx, settingSessionWarning, strconv.Itoa(p.WarningMinutes)); err != nil {
		return sessionx.Policy{}, fmt.Errorf("persist %s: %w", settingSessionWarning, err)
	}

	s.mu.Lock()
	s.cached = p
	s.fetchedAt = time.Now()
	s.mu.Unlock()

	s.Log.InfoContext(ctx, "session policy updated",
		"timeout_minutes", p.TimeoutMinutes, "warning_minutes", p.WarningMinutes)
	return p, nil
}

func (s *SettingsService) readInt(ctx context.Context, key string) (int, bool) {
	raw, err := s.Store.Settings().Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.Log.WarnContext(ctx, "settings read failed, using default",
				"key", key, "error", err)
		}
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		s.Log.WarnContext(ctx, "settings value is not an integer, using default",
			"key", key, "value", raw)
		return 0, false
	}
	return v, true
}
