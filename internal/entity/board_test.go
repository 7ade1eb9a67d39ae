package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/squaregame-backend/internal/apperror"
)

func TestNewBoard(t *testing.T) {
	// Given: a list of row lengths
	lengths := []uint8{3, 0, 5}

	// When: a board is created from them
	board := NewBoard(lengths, PlayerFirst)

	// Then: every row keeps its length and order, nothing is eaten yet
	require.Len(t, board.Rows, 3)
	assert.Equal(t, []int{3, 0, 5}, board.Lengths())
	assert.Equal(t, []int{3, 0, 5}, board.RemainingCounts())
	assert.Equal(t, PlayerFirst, board.Turn)
	for _, row := range board.Rows {
		assert.Empty(t, row.Consumed)
	}
}

func TestRandomBoard(t *testing.T) {
	t.Run("Rows lie between one and the max length", func(t *testing.T) {
		// Given: a seeded source
		rng := rand.New(rand.NewSource(42))

		// When: a random board is generated many times
		for range 50 {
			board, err := RandomBoard(rng, 6, 8, PlayerFirst)
			require.NoError(t, err)

			// Then: the board has the requested rows, each within bounds
			require.Len(t, board.Rows, 6)
			for _, length := range board.Lengths() {
				assert.GreaterOrEqual(t, length, 1)
				assert.LessOrEqual(t, length, 8)
			}
		}
	})

	t.Run("Same seed gives the same board", func(t *testing.T) {
		first, err := RandomBoard(rand.New(rand.NewSource(7)), 6, 8, PlayerFirst)
		require.NoError(t, err)

		second, err := RandomBoard(rand.New(rand.NewSource(7)), 6, 8, PlayerFirst)
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})

	t.Run("Zero max length is rejected", func(t *testing.T) {
		_, err := RandomBoard(rand.New(rand.NewSource(1)), 6, 0, PlayerFirst)

		assert.ErrorIs(t, err, ErrInvalidBoardSize)
	})

	t.Run("Negative row count is rejected", func(t *testing.T) {
		_, err := RandomBoard(rand.New(rand.NewSource(1)), -1, 8, PlayerFirst)

		assert.ErrorIs(t, err, ErrInvalidBoardSize)
	})
}

func TestBoard_Apply(t *testing.T) {
	t.Run("Eats squares for the player on turn", func(t *testing.T) {
		// Given: a [2, 1] board with the first player on turn
		board := NewBoard([]uint8{2, 1}, PlayerFirst)

		// When: the first player eats one square from row 0 and the turn passes
		err := board.Apply(Move{Row: 0, Amount: 1})
		require.NoError(t, err)
		board.NextTurn()

		// Then: row 0 has one left, attributed to the first player, and the second player is on turn
		remaining, err := board.Remaining(0)
		require.NoError(t, err)
		assert.Equal(t, 1, remaining)
		assert.Equal(t, []Mark{PlayerFirst}, board.Rows[0].Consumed)
		assert.Equal(t, PlayerSecond, board.Turn)
	})

	t.Run("Apply does not advance the turn", func(t *testing.T) {
		board := NewBoard([]uint8{4}, PlayerSecond)

		require.NoError(t, board.Apply(Move{Row: 0, Amount: 3}))

		assert.Equal(t, PlayerSecond, board.Turn)
		assert.Equal(t, []Mark{PlayerSecond, PlayerSecond, PlayerSecond}, board.Rows[0].Consumed)
	})

	t.Run("Invalid moves leave the board untouched", func(t *testing.T) {
		invalid := []Move{
			{Row: -1, Amount: 1},
			{Row: 2, Amount: 1},
			{Row: 0, Amount: 0},
			{Row: 0, Amount: -2},
			{Row: 0, Amount: 3},
			{Row: 1, Amount: 1},
		}

		for _, move := range invalid {
			// Given: a [2, 0] board
			board := NewBoard([]uint8{2, 0}, PlayerFirst)

			// When: an illegal move is applied
			err := board.Apply(move)

			// Then: ErrInvalidMove is returned and nothing changed
			require.ErrorIs(t, err, apperror.ErrInvalidMove, "move %+v", move)
			assert.Equal(t, NewBoard([]uint8{2, 0}, PlayerFirst), board)
		}
	})
}

func TestBoard_Remaining(t *testing.T) {
	board := NewBoard([]uint8{5}, PlayerFirst)
	require.NoError(t, board.Apply(Move{Row: 0, Amount: 2}))

	remaining, err := board.Remaining(0)
	require.NoError(t, err)
	assert.Equal(t, 3, remaining)

	_, err = board.Remaining(1)
	assert.ErrorIs(t, err, apperror.ErrInvalidMove)
}

func TestBoard_IsEmpty(t *testing.T) {
	t.Run("All rows at zero", func(t *testing.T) {
		board := NewBoard([]uint8{0, 0, 0, 0, 0}, PlayerFirst)

		assert.True(t, board.IsEmpty())
	})

	t.Run("No rows at all", func(t *testing.T) {
		board := NewBoard(nil, PlayerFirst)

		assert.True(t, board.IsEmpty())
	})

	t.Run("Any square left", func(t *testing.T) {
		board := NewBoard([]uint8{0, 1}, PlayerFirst)

		assert.False(t, board.IsEmpty())
	})

	t.Run("Eaten down to nothing", func(t *testing.T) {
		board := NewBoard([]uint8{2, 1}, PlayerFirst)
		require.NoError(t, board.Apply(Move{Row: 0, Amount: 2}))
		board.NextTurn()
		require.False(t, board.IsEmpty())

		require.NoError(t, board.Apply(Move{Row: 1, Amount: 1}))

		assert.True(t, board.IsEmpty())
		assert.Equal(t, []Mark{PlayerFirst, PlayerFirst}, board.Rows[0].Consumed)
		assert.Equal(t, []Mark{PlayerSecond}, board.Rows[1].Consumed)
	})
}

func TestBoard_NextTurn(t *testing.T) {
	board := NewBoard([]uint8{1}, PlayerFirst)

	board.NextTurn()
	assert.Equal(t, PlayerSecond, board.Turn)

	board.NextTurn()
	assert.Equal(t, PlayerFirst, board.Turn)
}
