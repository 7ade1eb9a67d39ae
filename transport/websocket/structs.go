package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/rocketscienceinc/squaregame-backend/internal/entity"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	Player *entity.Player `json:"player,omitempty"`
	Game   *GameView      `json:"game,omitempty"`
	Move   *entity.Move   `json:"move,omitempty"`
	Square *SquarePick    `json:"square,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// SquarePick - a click on a square; everything from the first uneaten square up to it is eaten.
type SquarePick struct {
	Row    int `json:"row"`
	Square int `json:"square"`
}

type GameView struct {
	ID     string      `json:"id,omitempty"`
	Type   string      `json:"type,omitempty"`
	Status string      `json:"status,omitempty"`
	Turn   entity.Mark `json:"turn,omitempty"`
	Winner entity.Mark `json:"winner,omitempty"`
	Rows   []RowView   `json:"rows,omitempty"`
}

type RowView struct {
	Length    int    `json:"length"`
	Remaining int    `json:"remaining"`
	Binary    string `json:"binary"`
	// Squares holds the owner of each square from the left, NoMark for squares still on the board.
	Squares []entity.Mark `json:"squares"`
}

func newGameView(game *entity.Game) *GameView {
	view := &GameView{
		ID:     game.ID,
		Type:   game.Type,
		Status: game.Status,
		Winner: game.Winner,
	}

	if game.Board == nil {
		return view
	}

	view.Turn = game.Board.Turn
	view.Rows = make([]RowView, 0, len(game.Board.Rows))

	for _, row := range game.Board.Rows {
		squares := make([]entity.Mark, row.Length)
		copy(squares, row.Consumed)

		view.Rows = append(view.Rows, RowView{
			Length:    int(row.Length),
			Remaining: row.Remaining(),
			Binary:    binaryDigits(row.Remaining()),
			Squares:   squares,
		})
	}

	return view
}

// binaryDigits - the low four bits of n, most significant first.
func binaryDigits(n int) string {
	return fmt.Sprintf("%08b", uint8(n))[4:]
}
