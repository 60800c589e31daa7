package dealer

import (
	"context"
	"setmatch-server/internal/rng"
	"setmatch-server/pkg/board"
	"setmatch-server/pkg/deck"
	"setmatch-server/pkg/display"
	"setmatch-server/pkg/match"
	"setmatch-server/pkg/player"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// maxShuffleAttempts caps the reshuffles spent looking for a solvable deal
const maxShuffleAttempts = 10000

// Options configures a Dealer
type Options struct {
	// TurnTimeout selects the policy, see NewPolicy
	TurnTimeout        time.Duration
	TurnTimeoutWarning time.Duration

	// Hints logs every match on the board after each deal
	Hints bool

	Display display.Display

	// Random chooses the deal order
	Random rng.Generator
}

// Result describes a finished game
type Result struct {
	GameID  string `json:"gameId"`
	Winners []int  `json:"winners"`
	Scores  []int  `json:"scores"`
	Rounds  int    `json:"rounds"`
}

// Dealer owns the deck, arbitrates claims and runs the rounds
//
// Run must be called once. Apart from Run, only the read-only accessors may be called
// from other goroutines.
type Dealer struct {
	id      string
	board   *board.Board
	deck    *deck.Deck
	players []*player.Player
	oracle  match.Oracle
	policy  Policy
	display display.Display
	hints   bool

	// order is the fixed random order empty slots are filled in
	order []int

	cardsLeft atomic.Int64
	rounds    atomic.Int64

	// terminated records the order players were stopped in
	terminated []int

	log *logrus.Entry
}

// New creates a dealer for the board, deck and players
// The deck is shuffled here; players[i] must have id i.
func New(opts Options, b *board.Board, d *deck.Deck, players []*player.Player, oracle match.Oracle) *Dealer {
	if opts.Display == nil {
		opts.Display = display.Nop{}
	}

	if opts.Random == nil {
		opts.Random = rng.Crypto{}
	}

	id := uuid.New().String()
	dl := &Dealer{
		id:      id,
		board:   b,
		deck:    d,
		players: players,
		oracle:  oracle,
		policy:  NewPolicy(opts.TurnTimeout, opts.TurnTimeoutWarning, opts.Display),
		display: opts.Display,
		hints:   opts.Hints,
		order:   rng.Perm(opts.Random, b.Size()),
		log:     logrus.WithField("game", id),
	}

	dl.deck.Shuffle()
	dl.cardsLeft.Store(int64(d.CardsLeft()))

	return dl
}

// ID returns the game id
func (d *Dealer) ID() string {
	return d.id
}

// Policy returns the round policy
func (d *Dealer) Policy() Policy {
	return d.policy
}

// Board returns the board
func (d *Dealer) Board() *board.Board {
	return d.board
}

// Player returns the player with the given id
func (d *Dealer) Player(id int) (*player.Player, bool) {
	if id < 0 || id >= len(d.players) {
		return nil, false
	}

	return d.players[id], true
}

// Players returns every player in id order
func (d *Dealer) Players() []*player.Player {
	return d.players
}

// CardsLeft returns the number of cards in the deck
func (d *Dealer) CardsLeft() int {
	return int(d.cardsLeft.Load())
}

// Rounds returns the number of rounds started
func (d *Dealer) Rounds() int {
	return int(d.rounds.Load())
}

// Run plays rounds until the context is cancelled or no match is left in the game
// Players are started here and have all exited by the time Run returns.
func (d *Dealer) Run(ctx context.Context) Result {
	d.log.WithFields(logrus.Fields{
		"policy":  d.policy.Name(),
		"players": len(d.players),
		"cards":   d.deck.CardsLeft(),
	}).Info("dealer starting")

	// players are cancelled one at a time by terminate, not by the parent context
	playerCtx := context.WithoutCancel(ctx)
	for _, p := range d.players {
		p.Start(playerCtx)
	}

	for !d.shouldFinish(ctx) {
		round := d.rounds.Add(1)
		log := d.log.WithField("round", round)
		log.Debug("round starting")

		d.deal()
		d.release()
		d.policy.Begin(time.Now())
		d.play(ctx)
		d.drain()

		log.WithField("cardsLeft", d.CardsLeft()).Debug("round over")
	}

	d.terminate()

	result := Result{
		GameID:  d.id,
		Winners: d.winners(),
		Scores:  d.scores(),
		Rounds:  d.Rounds(),
	}

	d.display.AnnounceWinners(result.Winners)
	d.log.WithFields(logrus.Fields{
		"winners": result.Winners,
		"scores":  result.Scores,
		"rounds":  result.Rounds,
	}).Info("dealer terminated")

	return result
}

// shouldFinish returns true once the game is cancelled or the cards left cannot form a match
// It is called between rounds, when every card is back in the deck.
func (d *Dealer) shouldFinish(ctx context.Context) bool {
	if ctx.Err() != nil {
		return true
	}

	cards := append(d.board.Cards(), d.deck.Cards()...)
	return !match.HasMatch(d.oracle, cards)
}

// play runs one round: wait for claims or a timer refresh, arbitrate, refill
func (d *Dealer) play(ctx context.Context) {
	for ctx.Err() == nil {
		now := time.Now()
		if d.policy.RoundOver(now, d.boardHasMatch) || d.exhausted() {
			return
		}

		d.board.Queue().Wait(ctx, d.policy.NextWake(now))
		d.policy.Refresh(time.Now())
		d.arbitrate()
		d.deal()
	}
}

func (d *Dealer) boardHasMatch() bool {
	return match.HasMatch(d.oracle, d.board.Cards())
}

// exhausted is true when nothing can change the board any more
func (d *Dealer) exhausted() bool {
	return d.deck.CardsLeft() == 0 && !d.boardHasMatch()
}

// release lets the players act on the freshly dealt board
func (d *Dealer) release() {
	for _, p := range d.players {
		p.SetResetting(false)
	}
}

// terminate stops the players in reverse id order, waiting for each
func (d *Dealer) terminate() {
	for i := len(d.players) - 1; i >= 0; i-- {
		p := d.players[i]
		d.log.WithField("player", p.String()).Debug("terminating player")
		p.Terminate()
		d.terminated = append(d.terminated, p.ID())
	}
}

func (d *Dealer) scores() []int {
	scores := make([]int, len(d.players))
	for i, p := range d.players {
		scores[i] = p.Score()
	}

	return scores
}

// winners returns the ids of every player with the highest score
func (d *Dealer) winners() []int {
	var winners []int
	best := -1
	for _, p := range d.players {
		score := p.Score()
		switch {
		case score > best:
			best = score
			winners = []int{p.ID()}
		case score == best:
			winners = append(winners, p.ID())
		}
	}

	return winners
}
