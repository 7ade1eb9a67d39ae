package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/squaregame-backend/internal/apperror"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"
)

const (
	WithBotType = "bot"
	HotseatType = "hotseat"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID      string    `json:"id"`
	Board   *Board    `json:"board"`
	Winner  Mark      `json:"winner,omitempty"`
	Status  string    `json:"status"`
	Players []*Player `json:"players,omitempty"`
	Type    string    `json:"type,omitempty"`
}

func NewGame(id, gameType string, board *Board) *Game {
	return &Game{
		ID:     id,
		Board:  board,
		Status: StatusOngoing,
		Type:   gameType,
	}
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

func (that *Game) IsHotseat() bool {
	return that.Type == HotseatType
}

// BotPlayer - returns the computer opponent, or nil if the game has none.
func (that *Game) BotPlayer() *Player {
	for _, player := range that.Players {
		if player.IsBot() {
			return player
		}
	}

	return nil
}

func IsKnownGameType(gameType string) bool {
	return gameType == WithBotType || gameType == HotseatType
}
