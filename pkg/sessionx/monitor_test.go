package sessionx

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Short delays keep these tests fast; generous assertion windows keep them
// stable on loaded CI machines.
const (
	testWarnAfter   = 40 * time.Millisecond
	testExpireAfter = 80 * time.Millisecond
	testWait        = 400 * time.Millisecond
	testTick        = 2 * time.Millisecond
)

func TestWarningFiresBeforeExpiry(t *testing.T) {
	t.Parallel()

	var warned, expired atomic.Int32
	var remaining atomic.Int64

	m := newMonitorWithDelays(testWarnAfter, testExpireAfter,
		func(r time.Duration) {
			remaining.Store(int64(r))
			warned.Add(1)
		},
		func() { expired.Add(1) },
	)
	m.Start()
	defer m.Stop()

	require.Eventually(t, func() bool { return warned.Load() == 1 }, testWait, testTick)
	require.Equal(t, int32(0), expired.Load(), "warning must precede expiry")
	require.Equal(t, StateWarning, m.State())
	require.Equal(t, int64(testExpireAfter-testWarnAfter), remaining.Load())

	require.Eventually(t, func() bool { return expired.Load() == 1 }, testWait, testTick)
	require.Equal(t, StateExpired, m.State())
}

func TestActivityResetsBothTimers(t *testing.T) {
	t.Parallel()

	var warned, expired atomic.Int32

	m := newMonitorWithDelays(testWarnAfter, testExpireAfter,
		func(time.Duration) { warned.Add(1) },
		func() { expired.Add(1) },
	)
	m.Start()
	defer m.Stop()

	// Keep poking before the warning would fire; nothing may trigger.
	for range 5 {
		time.Sleep(testWarnAfter / 2)
		m.Activity()
	}
	require.Equal(t, int32(0), warned.Load())
	require.Equal(t, int32(0), expired.Load())
	require.Equal(t, StateActive, m.State())

	// Then go idle and let the full sequence play out.
	require.Eventually(t, func() bool { return expired.Load() == 1 }, testWait, testTick)
	require.Equal(t, int32(1), warned.Load())
}

func TestActivityDuringWarningReturnsToActive(t *testing.T) {
	t.Parallel()

	var warned atomic.Int32

	m := newMonitorWithDelays(testWarnAfter, testExpireAfter,
		func(time.Duration) { warned.Add(1) },
		nil,
	)
	m.Start()
	defer m.Stop()

	require.Eventually(t, func() bool { return warned.Load() == 1 }, testWait, testTick)
	require.Equal(t, StateWarning, m.State())

	m.Activity()
	require.Equal(t, StateActive, m.State())

	// The clock restarted, so the warning fires a second time.
	require.Eventually(t, func() bool { return warned.Load() == 2 }, testWait, testTick)
}

func TestExpiryIsTerminalAndFiresOnce(t *testing.T) {
	t.Parallel()

	var expired atomic.Int32

	m := newMonitorWithDelays(testWarnAfter, testExpireAfter,
		nil,
		func() { expired.Add(1) },
	)
	m.Start()
	defer m.Stop()

	require.Eventually(t, func() bool { return expired.Load() == 1 }, testWait, testTick)

	// Late activity cannot resurrect the session.
	m.Activity()
	require.Equal(t, StateExpired, m.State())
	require.Equal(t, time.Duration(0), m.TimeRemaining())

	time.Sleep(2 * testExpireAfter)
	require.Equal(t, int32(1), expired.Load())
}

func TestStopPreventsLateCallbacks(t *testing.T) {
	t.Parallel()

	var warned, expired atomic.Int32

	m := newMonitorWithDelays(testWarnAfter, testExpireAfter,
		func(time.Duration) { warned.Add(1) },
		func() { expired.Add(1) },
	)
	m.Start()
	m.Stop()

	time.Sleep(2 * testExpireAfter)
	require.Equal(t, int32(0), warned.Load())
	require.Equal(t, int32(0), expired.Load())
	require.Equal(t, StateIdle, m.State())
}

func TestStartIsIdempotentWhileRunning(t *testing.T) {
	t.Parallel()

	m := newMonitorWithDelays(testWarnAfter, testExpireAfter, nil, nil)
	m.Start()
	defer m.Stop()

	before := m.State()
	m.Start()
	require.Equal(t, before, m.State())
}

func TestTimeRemainingCountsDown(t *testing.T) {
	t.Parallel()

	m := newMonitorWithDelays(time.Minute, 2*time.Minute, nil, nil)
	m.Start()
	defer m.Stop()

	r := m.TimeRemaining()
	require.Greater(t, r, time.Duration(0))
	require.LessOrEqual(t, r, 2*time.Minute)
}

func TestNewMonitorNormalizesPolicy(t *testing.T) {
	t.Parallel()

	// warning > timeout clamps rather than producing a negative delay
	m := NewMonitor(Policy{TimeoutMinutes: 15, WarningMinutes: 20}, nil, nil)
	require.Equal(t, 15*time.Minute, m.expireAfter)
	require.Equal(t, time.Minute, m.warnAfter)
}
