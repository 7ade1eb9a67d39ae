package service

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/squaregame-backend/internal/apperror"
	"github.com/rocketscienceinc/squaregame-backend/internal/entity"
	"github.com/rocketscienceinc/squaregame-backend/internal/squaregame"
	"github.com/rocketscienceinc/squaregame-backend/internal/strategist"
)

var ErrBotNotFound = errors.New("bot player not found")

type BotService interface {
	MakeTurn(game *entity.Game) (entity.Move, error)
}

type botService struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewBotService(rng *rand.Rand) BotService {
	return &botService{
		rng: rng,
	}
}

// MakeTurn - plays the best move for the bot and passes the turn.
func (that *botService) MakeTurn(game *entity.Game) (entity.Move, error) {
	if err := game.ConfirmOngoingState(); err != nil {
		return entity.Move{}, err
	}

	botPlayer := game.BotPlayer()
	if botPlayer == nil {
		return entity.Move{}, ErrBotNotFound
	}

	if game.Board.Turn != botPlayer.Mark {
		return entity.Move{}, apperror.ErrNotYourTurn
	}

	that.mu.Lock()
	move, err := strategist.TakeBestMove(game.Board, that.rng)
	that.mu.Unlock()

	if err != nil {
		return entity.Move{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	squaregame.EndTurn(game, botPlayer.Mark)

	return move, nil
}
