package entity

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/squaregame-backend/internal/apperror"
)

type Mark string

const (
	PlayerFirst  Mark = "first"
	PlayerSecond Mark = "second"

	NoMark Mark = ""
)

var ErrInvalidBoardSize = errors.New("invalid board size")

// Opponent - returns the other player mark.
func (that Mark) Opponent() Mark {
	if that == PlayerFirst {
		return PlayerSecond
	}
	return PlayerFirst
}

// Rand is the randomness a board or a strategy draws from. *rand.Rand from
// golang.org/x/exp/rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Row is one pile of squares. Consumed holds the mark of whoever ate each
// square, in the order they were eaten.
type Row struct {
	Length   uint8  `json:"length"`
	Consumed []Mark `json:"consumed"`
}

func (that *Row) Remaining() int {
	return int(that.Length) - len(that.Consumed)
}

// Move eats Amount squares from the row at index Row.
type Move struct {
	Row    int `json:"row"`
	Amount int `json:"amount"`
}

type Board struct {
	Rows []Row `json:"rows"`
	Turn Mark  `json:"turn"`
}

// NewBoard - creates a board with one untouched row per length, in the given order.
func NewBoard(lengths []uint8, startingTurn Mark) *Board {
	rows := make([]Row, 0, len(lengths))
	for _, length := range lengths {
		rows = append(rows, Row{Length: length, Consumed: []Mark{}})
	}

	return &Board{
		Rows: rows,
		Turn: startingTurn,
	}
}

// RandomBoard - creates numRows rows, each holding between one and maxRowLength squares.
func RandomBoard(rng Rand, numRows int, maxRowLength uint8, startingTurn Mark) (*Board, error) {
	if numRows < 0 || maxRowLength == 0 {
		return nil, fmt.Errorf("%w: %d rows of at most %d squares", ErrInvalidBoardSize, numRows, maxRowLength)
	}

	lengths := make([]uint8, numRows)
	for i := range lengths {
		lengths[i] = uint8(1 + rng.Intn(int(maxRowLength))) //nolint: gosec // bounded by maxRowLength
	}

	return NewBoard(lengths, startingTurn), nil
}

// Apply - eats move.Amount squares from the chosen row on behalf of the player on turn.
// The turn is not advanced.
func (that *Board) Apply(move Move) error {
	if err := that.ValidateMove(move); err != nil {
		return err
	}

	row := &that.Rows[move.Row]
	for range move.Amount {
		row.Consumed = append(row.Consumed, that.Turn)
	}

	return nil
}

// ValidateMove - checks the row index and that the amount lies in [1, remaining].
func (that *Board) ValidateMove(move Move) error {
	remaining, err := that.Remaining(move.Row)
	if err != nil {
		return err
	}

	if move.Amount < 1 || move.Amount > remaining {
		return fmt.Errorf("%w: amount %d, row %d has %d squares left", apperror.ErrInvalidMove, move.Amount, move.Row, remaining)
	}

	return nil
}

func (that *Board) Remaining(row int) (int, error) {
	if row < 0 || row >= len(that.Rows) {
		return 0, fmt.Errorf("%w: row %d", apperror.ErrInvalidMove, row)
	}

	return that.Rows[row].Remaining(), nil
}

// IsEmpty - reports whether every square on the board has been eaten.
func (that *Board) IsEmpty() bool {
	for i := range that.Rows {
		if that.Rows[i].Remaining() != 0 {
			return false
		}
	}

	return true
}

func (that *Board) NextTurn() {
	that.Turn = that.Turn.Opponent()
}

func (that *Board) Lengths() []int {
	lengths := make([]int, len(that.Rows))
	for i := range that.Rows {
		lengths[i] = int(that.Rows[i].Length)
	}

	return lengths
}

func (that *Board) RemainingCounts() []int {
	counts := make([]int, len(that.Rows))
	for i := range that.Rows {
		counts[i] = that.Rows[i].Remaining()
	}

	return counts
}
