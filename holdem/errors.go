package holdem

import "errors"

var (
	ErrRoundOver           = errors.New("round already over")
	ErrInsufficientFunds   = errors.New("bet exceeds available funds")
	ErrInsufficientPlayers = errors.New("at least 2 players required")
	ErrGameOver            = errors.New("no more opponents are left")
	ErrInvalidHandSize     = errors.New("hand evaluation needs 5 to 7 cards")
)

type InvalidStateError string

func (e InvalidStateError) Error() string { return "invalid state: " + string(e) }

func ErrInvalidState(msg string) error { return InvalidStateError(msg) }
