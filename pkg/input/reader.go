package input

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
)

// ErrInterrupt is returned by ReadKeys when ctrl-c is read from a raw terminal
var ErrInterrupt = errors.New("interrupted")

// ctrlC is what a raw terminal sends instead of raising SIGINT
const ctrlC = '\x03'

// ReadKeys reads key presses from r and calls press for every bound key
// It returns nil at EOF, ErrInterrupt on ctrl-c, or the context error once ctx is done.
// A blocked read is only noticed after the next key arrives.
func ReadKeys(ctx context.Context, r io.Reader, km Keymap, press func(player, slot int)) error {
	reader := bufio.NewReader(r)
	for {
		key, _, err := reader.ReadRune()
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if errors.Is(err, io.EOF) {
			return nil
		} else if err != nil {
			return err
		}

		if key == ctrlC {
			return ErrInterrupt
		}

		b, ok := km[key]
		if !ok {
			logrus.WithField("key", string(key)).Trace("unbound key")
			continue
		}

		press(b.Player, b.Slot)
	}
}
