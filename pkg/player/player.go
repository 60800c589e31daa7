package player

import (
	"context"
	"fmt"
	"setmatch-server/internal/rng"
	"setmatch-server/pkg/board"
	"setmatch-server/pkg/display"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"
)

// Outcome is the dealer's verdict on a claim
type Outcome int32

// outcomes
const (
	OutcomeNone Outcome = iota
	OutcomePoint
	OutcomePenalty
)

func (o Outcome) String() string {
	switch o {
	case OutcomePoint:
		return "point"
	case OutcomePenalty:
		return "penalty"
	default:
		return "none"
	}
}

// maxWait bounds every wait so a missed signal only delays a player, never strands it
const maxWait = time.Second

// freezeTick is how often the remaining freeze is displayed
const freezeTick = time.Second

// Options configures a Player
type Options struct {
	ID    int
	Name  string
	Human bool

	PointFreeze   time.Duration
	PenaltyFreeze time.Duration

	// ComputerDelay is the pause after each automated key press
	ComputerDelay time.Duration

	Display display.Display

	// Random picks the slots of an automated player
	Random rng.Generator
}

// Player is one seat at the board
// A human player receives key presses through RequestToggle; an automated player
// runs a driver goroutine that generates them.
type Player struct {
	opts  Options
	board *board.Board

	score     atomic.Int64
	outcome   atomic.Int32
	resetting atomic.Bool

	// keys buffers the automated player's presses, capacity is the claim size
	keys chan int

	lock    sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// New returns a player seated at the board
// The player starts out blocked as if the board were being reset; the dealer releases it after the first deal.
func New(opts Options, b *board.Board) *Player {
	if opts.Display == nil {
		opts.Display = display.Nop{}
	}

	if opts.Random == nil {
		opts.Random = rng.Crypto{}
	}

	p := &Player{
		opts:  opts,
		board: b,
		done:  make(chan struct{}),
	}

	if !opts.Human {
		p.keys = make(chan int, b.ClaimSize())
	}

	p.resetting.Store(true)
	return p
}

// ID returns the player id
func (p *Player) ID() int {
	return p.opts.ID
}

// Name returns the display name
func (p *Player) Name() string {
	return p.opts.Name
}

// IsHuman returns true if the player receives key presses from a person
func (p *Player) IsHuman() bool {
	return p.opts.Human
}

// Score returns the number of points
func (p *Player) Score() int {
	return int(p.score.Load())
}

// PendingOutcome returns the outcome the player has not finished serving
func (p *Player) PendingOutcome() Outcome {
	return Outcome(p.outcome.Load())
}

// String returns a traceable identifier for the player
func (p *Player) String() string {
	return fmt.Sprintf("%d:%s", p.opts.ID, p.opts.Name)
}

// SetOutcome records the dealer's verdict
// The dealer must call this before it changes the board and wakes the player.
func (p *Player) SetOutcome(o Outcome) {
	p.outcome.Store(int32(o))
}

// SetResetting blocks (true) or releases (false) the player while the board is rebuilt
func (p *Player) SetResetting(resetting bool) {
	p.resetting.Store(resetting)
	if !resetting {
		p.Wake()
	}
}

// IsResetting returns true while the dealer is rebuilding the board
func (p *Player) IsResetting() bool {
	return p.resetting.Load()
}

// Wake notifies the player's goroutine
func (p *Player) Wake() {
	p.board.Wake(p.opts.ID)
}

// RequestToggle places or removes a token on a slot
// The request is dropped while the claim is complete, an outcome is pending, or the board is resetting.
// Returns true if the board changed.
func (p *Player) RequestToggle(slot int) bool {
	log := logrus.WithFields(logrus.Fields{"player": p.opts.ID, "slot": slot})

	if slot < 0 || slot >= p.board.Size() {
		log.Trace("toggle dropped: slot out of range")
		return false
	}

	if p.blocked() || p.PendingOutcome() != OutcomeNone {
		log.Trace("toggle dropped: player is blocked")
		return false
	}

	if p.board.ToggleToken(p.opts.ID, slot) == board.TokenIgnored {
		log.Trace("toggle ignored by the board")
		return false
	}

	return true
}

// blocked is the predicate the player waits on: a complete claim, or a board reset
func (p *Player) blocked() bool {
	return p.resetting.Load() || p.board.TokenCount(p.opts.ID) >= p.board.ClaimSize()
}

// Start runs the player's goroutine (and driver, for an automated player)
// ctx is the player's own cancellation; Terminate cancels it.
func (p *Player) Start(ctx context.Context) {
	p.lock.Lock()
	defer p.lock.Unlock()

	if p.started {
		return
	}

	ctx, p.cancel = context.WithCancel(ctx)
	p.started = true
	go p.run(ctx)
}

// Terminate stops the player and waits for its goroutines to exit
func (p *Player) Terminate() {
	p.lock.Lock()
	started := p.started
	cancel := p.cancel
	p.lock.Unlock()

	if !started {
		return
	}

	cancel()
	<-p.done
}

// Done is closed once the player's goroutine has exited
func (p *Player) Done() <-chan struct{} {
	return p.done
}

func (p *Player) run(ctx context.Context) {
	defer close(p.done)

	log := logrus.WithField("player", p.String())
	log.Debug("player starting")

	var driver sync.WaitGroup
	if !p.opts.Human {
		driver.Add(1)
		go func() {
			defer driver.Done()
			p.drive(ctx)
		}()
	}

	defer func() {
		driver.Wait()
		p.settle()
		log.WithField("score", p.Score()).Debug("player terminated")
	}()

	for ctx.Err() == nil {
		if o := p.PendingOutcome(); o != OutcomeNone {
			p.serve(ctx, o)
			continue
		}

		if p.blocked() {
			p.wait(ctx, nil)
			continue
		}

		if slot, ok := p.wait(ctx, p.keys); ok {
			if p.RequestToggle(slot) {
				log.WithField("slot", slot).Trace("computer toggled a token")
			}

			sleep(ctx, p.opts.ComputerDelay)
		}
	}
}

// wait suspends until the player is woken, a key arrives, the context is done or maxWait passes
// keys is nil while blocked so presses stay buffered in the driver's queue
func (p *Player) wait(ctx context.Context, keys <-chan int) (int, bool) {
	timer := time.NewTimer(maxWait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
	case <-p.board.Signal(p.opts.ID):
	case <-timer.C:
	case slot := <-keys:
		return slot, true
	}

	return -1, false
}

// serve applies a point or penalty and sits out the freeze
func (p *Player) serve(ctx context.Context, o Outcome) {
	freeze := p.opts.PenaltyFreeze
	if o == OutcomePoint {
		p.award()
		freeze = p.opts.PointFreeze
	}

	logrus.WithFields(logrus.Fields{
		"player":  p.String(),
		"outcome": o.String(),
		"score":   p.Score(),
	}).Debug("serving outcome")

	p.freeze(ctx, freeze)
	p.outcome.Store(int32(OutcomeNone))
}

func (p *Player) award() {
	score := p.score.Add(1)
	p.opts.Display.SetScore(p.opts.ID, int(score))
}

func (p *Player) freeze(ctx context.Context, d time.Duration) {
	for remaining := d; remaining > 0; remaining -= freezeTick {
		p.opts.Display.SetFreeze(p.opts.ID, remaining)
		if !sleep(ctx, min(freezeTick, remaining)) {
			break
		}
	}

	p.opts.Display.SetFreeze(p.opts.ID, 0)
}

// settle credits a point the player was awarded but did not get to serve before termination
func (p *Player) settle() {
	if p.outcome.CompareAndSwap(int32(OutcomePoint), int32(OutcomeNone)) {
		p.award()
	}

	p.outcome.Store(int32(OutcomeNone))
}

// sleep pauses for d, returning false if the context ended first
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
