package sessionx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNormalizeClampsWarningBelowTimeout(t *testing.T) {
	t.Parallel()

	// Warning configured above the timeout must clamp to timeout-1, never
	// go negative or overflow.
	p := Policy{TimeoutMinutes: 15, WarningMinutes: 20}.Normalize()
	require.Equal(t, 15, p.TimeoutMinutes)
	require.Equal(t, 14, p.WarningMinutes)
}

func TestNormalizeFloorsTimeout(t *testing.T) {
	t.Parallel()

	for _, timeout := range []int{0, -5} {
		p := Policy{TimeoutMinutes: timeout, WarningMinutes: 2}.Normalize()
		require.Equal(t, 1, p.TimeoutMinutes)
		require.Equal(t, 0, p.WarningMinutes)
	}
}

func TestNormalizeFloorsWarningAtZero(t *testing.T) {
	t.Parallel()

	p := Policy{TimeoutMinutes: 10, WarningMinutes: -3}.Normalize()
	require.Equal(t, 0, p.WarningMinutes)
}

func TestNormalizeKeepsValidPolicy(t *testing.T) {
	t.Parallel()

	p := Policy{TimeoutMinutes: 30, WarningMinutes: 5}.Normalize()
	require.Equal(t, Policy{TimeoutMinutes: 30, WarningMinutes: 5}, p)
}

func TestDelays(t *testing.T) {
	t.Parallel()

	p := Policy{TimeoutMinutes: 15, WarningMinutes: 2}
	require.Equal(t, 15*time.Minute, p.Timeout())
	// Warning fires 2 minutes before the deadline, i.e. at 13 minutes idle.
	require.Equal(t, 13*time.Minute, p.WarningAfter())
}

func TestDefaultPolicyIsAlreadyNormalized(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultPolicy(), DefaultPolicy().Normalize())
}
