package dealer

import (
	"setmatch-server/pkg/display"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type timerDisplay struct {
	display.Nop
	countdowns []time.Duration
	warnings   []bool
	elapsed    []time.Duration
}

func (t *timerDisplay) SetCountdown(remaining time.Duration, warn bool) {
	t.countdowns = append(t.countdowns, remaining)
	t.warnings = append(t.warnings, warn)
}

func (t *timerDisplay) SetElapsed(elapsed time.Duration) {
	t.elapsed = append(t.elapsed, elapsed)
}

func noMatch() bool  { return false }
func hasMatch() bool { return true }

func TestNewPolicy(t *testing.T) {
	assert.Equal(t, "countdown", NewPolicy(time.Second, 0, display.Nop{}).Name())
	assert.Equal(t, "elapsed", NewPolicy(0, 0, display.Nop{}).Name())
	assert.Equal(t, "presence", NewPolicy(-1, 0, display.Nop{}).Name())
}

func TestCountdown(t *testing.T) {
	a := assert.New(t)
	rec := &timerDisplay{}
	c := NewPolicy(time.Millisecond*5000, time.Millisecond*1000, rec).(*Countdown)
	start := time.Unix(1000, 0)

	c.Begin(start)
	a.Equal([]time.Duration{time.Millisecond * 5000}, rec.countdowns)
	a.False(c.EnsureSolvable())

	a.Equal(time.Second, c.NextWake(start))
	a.False(c.RoundOver(start.Add(time.Millisecond*4999), hasMatch))
	a.True(c.RoundOver(start.Add(time.Millisecond*5000), hasMatch))
	a.True(c.RoundOver(start.Add(time.Millisecond*6000), noMatch))

	now := start.Add(time.Millisecond * 4500)
	a.Equal(time.Millisecond*500, c.Remaining(now))
	a.Equal(time.Millisecond*100, c.NextWake(now), "ten refreshes a second while warning")
	a.Equal(time.Millisecond*5, c.NextWake(start.Add(time.Millisecond*4995)))
	a.Equal(time.Second, c.NextWake(start.Add(time.Millisecond*3300)))

	c.Refresh(now)
	a.Equal(time.Millisecond*500, rec.countdowns[1])
	a.True(rec.warnings[1])

	c.Refresh(start.Add(time.Second))
	a.False(rec.warnings[2])

	c.Reset(now)
	a.False(c.RoundOver(start.Add(time.Millisecond*6000), hasMatch), "a winning claim restarts the clock")
	a.Equal(time.Millisecond*5000, c.Remaining(now))
	a.Equal(time.Duration(0), c.Remaining(now.Add(time.Hour)))
}

func TestCountdown_IgnoresBoard(t *testing.T) {
	c := NewPolicy(time.Minute, 0, display.Nop{})
	now := time.Now()
	c.Begin(now)

	assert.False(t, c.RoundOver(now, noMatch))
}

func TestElapsed(t *testing.T) {
	a := assert.New(t)
	rec := &timerDisplay{}
	e := NewPolicy(0, 0, rec)
	start := time.Unix(1000, 0)

	e.Begin(start)
	e.Refresh(start.Add(time.Millisecond * 2500))
	e.Reset(start.Add(time.Second * 3))
	e.Refresh(start.Add(time.Second * 4))

	a.Equal([]time.Duration{0, time.Millisecond * 2500, 0, time.Second}, rec.elapsed)
	a.Equal(time.Second, e.NextWake(start))
	a.False(e.RoundOver(start, hasMatch))
	a.True(e.RoundOver(start, noMatch))
	a.False(e.EnsureSolvable())
	a.Empty(rec.countdowns)
}

func TestPresence(t *testing.T) {
	a := assert.New(t)
	p := NewPolicy(-1, 0, display.Nop{})
	now := time.Now()

	p.Begin(now)
	p.Refresh(now)
	p.Reset(now)

	a.True(p.EnsureSolvable())
	a.Equal(time.Second, p.NextWake(now))
	a.False(p.RoundOver(now, hasMatch))
	a.True(p.RoundOver(now, noMatch))
}
