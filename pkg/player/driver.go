package player

import (
	"context"

	"github.com/sirupsen/logrus"
)

// drive generates uniformly random key presses for an automated player
// The send blocks once claim-size presses are queued; the player loop frees room by consuming them.
func (p *Player) drive(ctx context.Context) {
	log := logrus.WithField("player", p.String())
	log.Debug("computer driver starting")
	defer log.Debug("computer driver terminated")

	slots := p.board.Size()
	for {
		slot := p.opts.Random.Intn(slots)

		select {
		case p.keys <- slot:
		case <-ctx.Done():
			return
		}
	}
}

// Queued returns the number of generated key presses waiting to be consumed
func (p *Player) Queued() int {
	return len(p.keys)
}
