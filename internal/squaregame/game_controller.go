package squaregame

import (
	"fmt"

	"github.com/rocketscienceinc/squaregame-backend/internal/apperror"
	"github.com/rocketscienceinc/squaregame-backend/internal/entity"
)

func MakeTurn(gameInstance *entity.Game, player entity.Mark, move entity.Move) error {
	if gameInstance.IsFinished() {
		return apperror.ErrGameFinished
	}

	if gameInstance.Board.Turn != player {
		return apperror.ErrNotYourTurn
	}

	if err := gameInstance.Board.Apply(move); err != nil {
		return fmt.Errorf("invalid turn: %w", err)
	}

	EndTurn(gameInstance, player)

	return nil
}

// EndTurn - settles the game after player has eaten; whoever eats the last square wins.
func EndTurn(gameInstance *entity.Game, player entity.Mark) {
	if gameInstance.Board.IsEmpty() {
		gameInstance.Winner = player
		gameInstance.Status = entity.StatusFinished
	}

	gameInstance.Board.NextTurn()
}

// MoveToSquare - translates a pick of the given square into a move that eats every
// square of the row up to and including it.
func MoveToSquare(board *entity.Board, row, square int) (entity.Move, error) {
	if row < 0 || row >= len(board.Rows) {
		return entity.Move{}, fmt.Errorf("%w: row %d", apperror.ErrInvalidMove, row)
	}

	if square < 0 || square >= int(board.Rows[row].Length) {
		return entity.Move{}, fmt.Errorf("%w: square %d of row %d", apperror.ErrInvalidMove, square, row)
	}

	amount := square + 1 - len(board.Rows[row].Consumed)
	if amount <= 0 {
		return entity.Move{}, fmt.Errorf("%w: square %d of row %d is already eaten", apperror.ErrInvalidMove, square, row)
	}

	return entity.Move{Row: row, Amount: amount}, nil
}
