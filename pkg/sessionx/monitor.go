package sessionx

import (
	"sync"
	"time"
)

// State is the monitor's position in the idle-timeout lifecycle.
type State int

const (
	// StateIdle means no session is being watched (never started, or
	// stopped).
	StateIdle State = iota
	// StateActive means timers are armed and no warning has fired since
	// the last activity.
	StateActive
	// StateWarning means the pre-expiry warning has fired; activity still
	// rescues the session.
	StateWarning
	// StateExpired means the deadline passed and the sign-out callback has
	// run. Terminal until Stop.
	StateExpired
)

// Monitor watches a single authenticated session for inactivity. Any
// activity event resets both the warning and the expiry timers; once the
// expiry timer has fired no activity can undo the sign-out.
//
// Callbacks are invoked on timer goroutines without the monitor lock held,
// so they may call back into the Monitor.
type Monitor struct {
	warnAfter   time.Duration
	expireAfter time.Duration

	// onWarning receives the time remaining until expiry.
	onWarning func(remaining time.Duration)
	// onExpire performs the forced sign-out. Called at most once per
	// Start.
	onExpire func()

	mu           sync.Mutex
	state        State
	gen          uint64 // bumped on every (re)arm; stale timers check it
	lastActivity time.Time
	warnTimer    *time.Timer
	expireTimer  *time.Timer
}

// NewMonitor builds a monitor for the given policy. The policy is
// normalized before use. Either callback may be nil.
func NewMonitor(p Policy, onWarning func(remaining time.Duration), onExpire func()) *Monitor {
	p = p.Normalize()
	return newMonitorWithDelays(p.WarningAfter(), p.Timeout(), onWarning, onExpire)
}

// newMonitorWithDelays is the raw constructor; tests use it with
// millisecond-scale delays.
func newMonitorWithDelays(
	warnAfter, expireAfter time.Duration,
	onWarning func(remaining time.Duration),
	onExpire func(),
) *Monitor {
	return &Monitor{
		warnAfter:   warnAfter,
		expireAfter: expireAfter,
		onWarning:   onWarning,
		onExpire:    onExpire,
		state:       StateIdle,
	}
}

// Start arms the timers for a fresh session. No-op if already running.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateIdle {
		return
	}
	m.state = StateActive
	m.rearmLocked()
}

// Activity records a user-interaction event. It resets both timers from
// now. Events arriving after expiry or before Start are ignored.
func (m *Monitor) Activity() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateActive && m.state != StateWarning {
		return
	}
	m.state = StateActive
	m.rearmLocked()
}

// Stop tears the monitor down: timers are cancelled and no callback will
// fire afterwards. Safe to call at any time, including from callbacks.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gen++
	m.cancelTimersLocked()
	m.state = StateIdle
}

// State returns the current lifecycle state.
func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// TimeRemaining reports how long until forced sign-out, zero once expired
// or when not running.
func (m *Monitor) TimeRemaining() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateActive && m.state != StateWarning {
		return 0
	}
	remaining := m.expireAfter - time.Since(m.lastActivity)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// rearmLocked cancels pending timers and schedules both from now. Caller
// holds m.mu.
func (m *Monitor) rearmLocked() {
	m.gen++
	gen := m.gen
	m.cancelTimersLocked()
	m.lastActivity = time.Now()

	if m.warnAfter < m.expireAfter {
		m.warnTimer = time.AfterFunc(m.warnAfter, func() { m.warningFired(gen) })
	}
	m.expireTimer = time.AfterFunc(m.expireAfter, func() { m.expireFired(gen) })
}

func (m *Monitor) cancelTimersLocked() {
	if m.warnTimer != nil {
		m.warnTimer.Stop()
		m.warnTimer = nil
	}
	if m.expireTimer != nil {
		m.expireTimer.Stop()
		m.expireTimer = nil
	}
}

func (m *Monitor) warningFired(gen uint64) {
	m.mu.Lock()
	// A reset or Stop between firing and acquiring the lock makes this
	// timer stale.
	if gen != m.gen || m.state != StateActive {
		m.mu.Unlock()
		return
	}
	m.state = StateWarning
	remaining := m.expireAfter - m.warnAfter
	cb := m.onWarning
	m.mu.Unlock()

	if cb != nil {
		cb(remaining)
	}
}

func (m *Monitor) expireFired(gen uint64) {
	m.mu.Lock()
	if gen != m.gen || (m.state != StateActive && m.state != StateWarning) {
		m.mu.Unlock()
		return
	}
	m.state = StateExpired
	m.cancelTimersLocked()
	cb := m.onExpire
	m.mu.Unlock()

	if cb != nil {
		cb()
	}
}
