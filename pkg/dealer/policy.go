package dealer

import (
	"setmatch-server/pkg/display"
	"time"
)

// refreshInterval is how often the dealer wakes to redisplay the round timer
const refreshInterval = time.Second

// warningRefreshInterval is used once the countdown is in its warning window
const warningRefreshInterval = time.Millisecond * 100

// Policy decides when the dealer wakes, what it displays, and when a round is over
type Policy interface {
	// Name identifies the policy in logs and state
	Name() string

	// Begin starts a new round
	Begin(now time.Time)

	// NextWake is the longest the dealer may sleep before it must refresh the display
	NextWake(now time.Time) time.Duration

	// Refresh updates the timer display
	Refresh(now time.Time)

	// Reset restarts the round timer after a winning claim
	Reset(now time.Time)

	// RoundOver returns true when the board should be drained
	// hasMatch reports whether the board holds a match; it is only called if needed
	RoundOver(now time.Time, hasMatch func() bool) bool

	// EnsureSolvable returns true if every deal must leave a match on the board
	EnsureSolvable() bool
}

// NewPolicy selects a policy from the turn timeout
// positive: Countdown, zero: Elapsed, negative: Presence
func NewPolicy(turnTimeout, warning time.Duration, d display.Display) Policy {
	switch {
	case turnTimeout > 0:
		return &Countdown{timeout: turnTimeout, warning: warning, display: d}
	case turnTimeout == 0:
		return &Elapsed{display: d}
	default:
		return Presence{}
	}
}

// Countdown ends a round a fixed time after it started or after the last winning claim
type Countdown struct {
	timeout  time.Duration
	warning  time.Duration
	deadline time.Time
	display  display.Display
}

// Name returns "countdown"
func (c *Countdown) Name() string {
	return "countdown"
}

// Begin sets the deadline
func (c *Countdown) Begin(now time.Time) {
	c.Reset(now)
}

// Remaining returns the time left in the round
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if remaining := c.deadline.Sub(now); remaining > 0 {
		return remaining
	}

	return 0
}

// NextWake refreshes every second, and often once the warning is shown
func (c *Countdown) NextWake(now time.Time) time.Duration {
	remaining := c.Remaining(now)
	if remaining < c.warning {
		return min(warningRefreshInterval, remaining)
	}

	return min(refreshInterval, remaining)
}

// Refresh shows the remaining time
func (c *Countdown) Refresh(now time.Time) {
	remaining := c.Remaining(now)
	c.display.SetCountdown(remaining, remaining < c.warning)
}

// Reset pushes the deadline out by a full timeout
func (c *Countdown) Reset(now time.Time) {
	c.deadline = now.Add(c.timeout)
	c.display.SetCountdown(c.timeout, false)
}

// RoundOver returns true once the deadline has passed
func (c *Countdown) RoundOver(now time.Time, _ func() bool) bool {
	return !now.Before(c.deadline)
}

// EnsureSolvable returns false
func (c *Countdown) EnsureSolvable() bool {
	return false
}

// Elapsed shows how long the round has been going and ends it when no match is left
type Elapsed struct {
	start   time.Time
	display display.Display
}

// Name returns "elapsed"
func (e *Elapsed) Name() string {
	return "elapsed"
}

// Begin starts the counter at zero
func (e *Elapsed) Begin(now time.Time) {
	e.Reset(now)
}

// NextWake refreshes every second
func (e *Elapsed) NextWake(time.Time) time.Duration {
	return refreshInterval
}

// Refresh shows the elapsed time
func (e *Elapsed) Refresh(now time.Time) {
	e.display.SetElapsed(now.Sub(e.start))
}

// Reset restarts the counter
func (e *Elapsed) Reset(now time.Time) {
	e.start = now
	e.display.SetElapsed(0)
}

// RoundOver returns true when the board has no match
func (e *Elapsed) RoundOver(_ time.Time, hasMatch func() bool) bool {
	return !hasMatch()
}

// EnsureSolvable returns false
func (e *Elapsed) EnsureSolvable() bool {
	return false
}

// Presence shows no timer and only deals boards that hold a match
type Presence struct{}

// Name returns "presence"
func (Presence) Name() string {
	return "presence"
}

// Begin does nothing
func (Presence) Begin(time.Time) {}

// NextWake bounds the wait so cancellation is noticed
func (Presence) NextWake(time.Time) time.Duration {
	return refreshInterval
}

// Refresh does nothing
func (Presence) Refresh(time.Time) {}

// Reset does nothing
func (Presence) Reset(time.Time) {}

// RoundOver returns true when the board has no match
func (Presence) RoundOver(_ time.Time, hasMatch func() bool) bool {
	return !hasMatch()
}

// EnsureSolvable returns true
func (Presence) EnsureSolvable() bool {
	return true
}
