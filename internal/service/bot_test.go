package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/squaregame-backend/internal/apperror"
	"github.com/rocketscienceinc/squaregame-backend/internal/entity"
)

func newBotGame(turn entity.Mark, lengths ...uint8) *entity.Game {
	game := entity.NewGame("g1", entity.WithBotType, entity.NewBoard(lengths, turn))
	game.Players = []*entity.Player{
		{ID: "human", Mark: entity.PlayerFirst, GameID: "g1"},
		entity.NewBotPlayer("g1", entity.PlayerSecond),
	}

	return game
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Plays the optimal move and passes the turn", func(t *testing.T) {
		// Given: a [2, 1] game with the bot on turn
		bot := NewBotService(NewRand(1))
		game := newBotGame(entity.PlayerSecond, 2, 1)

		// When: the bot moves
		move, err := bot.MakeTurn(game)

		// Then: it leaves [1, 1] and hands the turn back
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Amount: 1}, move)
		assert.Equal(t, []entity.Mark{entity.PlayerSecond}, game.Board.Rows[0].Consumed)
		assert.Equal(t, entity.PlayerFirst, game.Board.Turn)
		assert.True(t, game.IsOngoing())
	})

	t.Run("Wins by eating the last square", func(t *testing.T) {
		bot := NewBotService(NewRand(1))
		game := newBotGame(entity.PlayerSecond, 0, 3)

		move, err := bot.MakeTurn(game)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Amount: 3}, move)
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerSecond, game.Winner)
	})

	t.Run("Not the bot's turn", func(t *testing.T) {
		bot := NewBotService(NewRand(1))
		game := newBotGame(entity.PlayerFirst, 2, 1)

		_, err := bot.MakeTurn(game)

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
		assert.Equal(t, []int{2, 1}, game.Board.RemainingCounts())
	})

	t.Run("Game without a bot", func(t *testing.T) {
		bot := NewBotService(NewRand(1))
		game := entity.NewGame("g1", entity.HotseatType, entity.NewBoard([]uint8{2}, entity.PlayerSecond))

		_, err := bot.MakeTurn(game)

		assert.ErrorIs(t, err, ErrBotNotFound)
	})

	t.Run("Finished game", func(t *testing.T) {
		bot := NewBotService(NewRand(1))
		game := newBotGame(entity.PlayerSecond, 0)
		game.Status = entity.StatusFinished

		_, err := bot.MakeTurn(game)

		assert.ErrorIs(t, err, apperror.ErrGameFinished)
	})
}
