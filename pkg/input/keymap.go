package input

import (
	"errors"
	"fmt"
	"unicode"

	"github.com/sirupsen/logrus"
)

// ErrDuplicateKey is returned when one key is bound to two slots
var ErrDuplicateKey = errors.New("key is bound twice")

// Binding is the player and slot a key toggles
type Binding struct {
	Player int
	Slot   int
}

// Keymap maps a key to the toggle it performs
type Keymap map[rune]Binding

// NewKeymap binds the n-th key of rows[p] to slot n of player p, for the first humans players
// Letters are bound in both cases unless the other case is taken explicitly.
func NewKeymap(rows []string, humans, slots int) (Keymap, error) {
	km := make(Keymap)
	for player := 0; player < humans; player++ {
		if player >= len(rows) {
			logrus.WithField("player", player).Warn("no keys configured for human player")
			continue
		}

		slot := 0
		for _, key := range rows[player] {
			if slot >= slots {
				break
			}

			if b, found := km[key]; found {
				return nil, fmt.Errorf("%w: %q (player %d slot %d, player %d slot %d)", ErrDuplicateKey, key, b.Player, b.Slot, player, slot)
			}

			km[key] = Binding{Player: player, Slot: slot}
			slot++
		}

		if slot < slots {
			logrus.WithFields(logrus.Fields{"player": player, "bound": slot, "slots": slots}).Warn("not every slot has a key")
		}
	}

	cased := make(Keymap, len(km))
	for key, b := range km {
		for _, alt := range []rune{unicode.ToUpper(key), unicode.ToLower(key)} {
			if _, found := km[alt]; !found {
				cased[alt] = b
			}
		}
	}

	for key, b := range cased {
		km[key] = b
	}

	return km, nil
}
