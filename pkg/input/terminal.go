package input

import (
	"golang.org/x/term"
)

// MakeRaw puts the terminal on fd into raw mode so single key presses are read immediately
// If fd is not a terminal nothing changes. The returned function restores the previous state.
func MakeRaw(fd int) (restore func(), err error) {
	if !term.IsTerminal(fd) {
		return func() {}, nil
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	return func() {
		_ = term.Restore(fd, state)
	}, nil
}
