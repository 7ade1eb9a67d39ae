package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNoActiveGames    = errors.New("no active games")
	ErrInvalidMove      = errors.New("invalid move")
	ErrNoAvailableMoves = errors.New("no available moves")
	ErrUnknownGameType  = errors.New("unknown game type")
)
