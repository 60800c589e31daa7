package dealer

// UserError is an error that is safe to return in a response
type UserError string

func (u UserError) Error() string {
	return string(u)
}

// errors returned by Toggle
var (
	ErrUnknownPlayer = UserError("player not found")
	ErrNotHuman      = UserError("player is controlled by the computer")
	ErrSlotRange     = UserError("slot is out of range")
)

// Toggle forwards a key press from outside the game to a human player
// false with a nil error means the press was valid but dropped (frozen, claim complete, board resetting).
func (d *Dealer) Toggle(player, slot int) (bool, error) {
	p, ok := d.Player(player)
	if !ok {
		return false, ErrUnknownPlayer
	}

	if !p.IsHuman() {
		return false, ErrNotHuman
	}

	if slot < 0 || slot >= d.board.Size() {
		return false, ErrSlotRange
	}

	return p.RequestToggle(slot), nil
}
