// Package strategist plays the square game optimally.
//
// A position is lost for the player about to move iff the nim-sum (bitwise XOR
// of every row's remaining count) is zero. A winning move is one that leaves
// the opponent facing a zero nim-sum.
package strategist

import (
	"fmt"

	"github.com/rocketscienceinc/squaregame-backend/internal/apperror"
	"github.com/rocketscienceinc/squaregame-backend/internal/entity"
)

// NimSum - XOR of the remaining counts of all rows.
func NimSum(board *entity.Board) int {
	sum := 0
	for i := range board.Rows {
		sum ^= board.Rows[i].Remaining()
	}

	return sum
}

// IsWinningMove - reports whether eating move.Amount squares from move.Row would leave a zero nim-sum.
// The board is not modified.
func IsWinningMove(board *entity.Board, move entity.Move) (bool, error) {
	if err := board.ValidateMove(move); err != nil {
		return false, fmt.Errorf("can't test move: %w", err)
	}

	return isWinning(board, move), nil
}

func isWinning(board *entity.Board, move entity.Move) bool {
	sum := 0
	for i := range board.Rows {
		remaining := board.Rows[i].Remaining()
		if i == move.Row {
			remaining -= move.Amount
		}
		sum ^= remaining
	}

	return sum == 0
}

// FindOptimalMove - returns the first winning move, scanning rows in order and amounts upwards.
// The second result is false when the position is already lost.
func FindOptimalMove(board *entity.Board) (entity.Move, bool) {
	for i := range board.Rows {
		for amount := 1; amount <= board.Rows[i].Remaining(); amount++ {
			move := entity.Move{Row: i, Amount: amount}
			if isWinning(board, move) {
				return move, true
			}
		}
	}

	return entity.Move{}, false
}

// FindAnyLegalMove - eats a single square from a random non-empty row.
// The second result is false only on an empty board.
func FindAnyLegalMove(board *entity.Board, rng entity.Rand) (entity.Move, bool) {
	available := make([]int, 0, len(board.Rows))
	for i := range board.Rows {
		if board.Rows[i].Remaining() > 0 {
			available = append(available, i)
		}
	}

	if len(available) == 0 {
		return entity.Move{}, false
	}

	return entity.Move{Row: available[rng.Intn(len(available))], Amount: 1}, true
}

// BestMove - an optimal move if one exists, otherwise any legal move.
func BestMove(board *entity.Board, rng entity.Rand) (entity.Move, error) {
	if move, ok := FindOptimalMove(board); ok {
		return move, nil
	}

	if move, ok := FindAnyLegalMove(board, rng); ok {
		return move, nil
	}

	return entity.Move{}, apperror.ErrNoAvailableMoves
}

// TakeBestMove - picks BestMove and applies it for the player on turn.
// The caller advances the turn.
func TakeBestMove(board *entity.Board, rng entity.Rand) (entity.Move, error) {
	move, err := BestMove(board, rng)
	if err != nil {
		return entity.Move{}, err
	}

	if err = board.Apply(move); err != nil {
		return entity.Move{}, fmt.Errorf("failed to apply best move: %w", err)
	}

	return move, nil
}
