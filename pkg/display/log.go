package display

import (
	"time"

	"github.com/sirupsen/logrus"
)

// Log writes notifications to logrus
// Card and token movement is logged at trace, timers at debug, scores and winners at info.
type Log struct {
	entry *logrus.Entry
	names map[int]string
}

var _ Display = (*Log)(nil)

// NewLog returns a display that writes to the given log entry
// names maps player ids to display names; missing names are logged by id only
func NewLog(entry *logrus.Entry, names map[int]string) *Log {
	return &Log{
		entry: entry,
		names: names,
	}
}

func (l *Log) player(id int) *logrus.Entry {
	e := l.entry.WithField("player", id)
	if name, ok := l.names[id]; ok {
		e = e.WithField("name", name)
	}

	return e
}

// PlaceCard logs the placement
func (l *Log) PlaceCard(card, slot int) {
	l.entry.WithFields(logrus.Fields{"card": card, "slot": slot}).Trace("card placed")
}

// RemoveCard logs the removal
func (l *Log) RemoveCard(slot int) {
	l.entry.WithField("slot", slot).Trace("card removed")
}

// PlaceToken logs the token
func (l *Log) PlaceToken(player, slot int) {
	l.player(player).WithField("slot", slot).Trace("token placed")
}

// RemoveToken logs the token removal
func (l *Log) RemoveToken(player, slot int) {
	l.player(player).WithField("slot", slot).Trace("token removed")
}

// SetScore logs the new score
func (l *Log) SetScore(player, score int) {
	l.player(player).WithField("score", score).Info("score")
}

// SetFreeze logs the remaining freeze
func (l *Log) SetFreeze(player int, remaining time.Duration) {
	l.player(player).WithField("remaining", remaining.String()).Trace("freeze")
}

// SetCountdown logs the countdown
func (l *Log) SetCountdown(remaining time.Duration, warn bool) {
	e := l.entry.WithField("remaining", remaining.Truncate(time.Millisecond).String())
	if warn {
		e.Debug("countdown (warning)")
		return
	}

	e.Trace("countdown")
}

// SetElapsed logs the elapsed round time
func (l *Log) SetElapsed(elapsed time.Duration) {
	l.entry.WithField("elapsed", elapsed.Truncate(time.Second).String()).Trace("elapsed")
}

// AnnounceWinners logs the winners
func (l *Log) AnnounceWinners(players []int) {
	names := make([]string, 0, len(players))
	for _, id := range players {
		names = append(names, l.names[id])
	}

	l.entry.WithFields(logrus.Fields{"winners": players, "names": names}).Info("game over")
}
