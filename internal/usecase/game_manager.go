package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/squaregame-backend/internal/apperror"
	"github.com/rocketscienceinc/squaregame-backend/internal/entity"
	"github.com/rocketscienceinc/squaregame-backend/internal/pkg"
	"github.com/rocketscienceinc/squaregame-backend/internal/repository"
	"github.com/rocketscienceinc/squaregame-backend/internal/squaregame"
)

type playerRepo interface {
	CreateOrUpdate(ctx context.Context, player *entity.Player) error
	GetByID(ctx context.Context, id string) (*entity.Player, error)
}

type gameRepo interface {
	CreateOrUpdate(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(game *entity.Game) (entity.Move, error)
}

type boardService interface {
	NewBoard() (*entity.Board, error)
}

type GameManager struct {
	logger *slog.Logger

	playerRepo playerRepo
	gameRepo   gameRepo

	bot    botService
	boards boardService

	// players serializes read-modify-write of a player and the game they own.
	// It covers one process only; several replicas on one redis are not coordinated.
	players keyedMutex
}

func NewGameManager(logger *slog.Logger, playerRepo playerRepo, gameRepo gameRepo, bot botService, boards boardService) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		playerRepo: playerRepo,
		gameRepo:   gameRepo,

		bot:    bot,
		boards: boards,
	}
}

// GetOrCreatePlayer - returns the stored player, or a new one when id is empty or unknown.
func (that *GameManager) GetOrCreatePlayer(ctx context.Context, id string) (*entity.Player, error) {
	if id == "" {
		return that.createPlayer(ctx)
	}

	player, err := that.playerRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrPlayerNotFound) {
		return that.createPlayer(ctx)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get player by id: %w", err)
	}

	return player, nil
}

func (that *GameManager) GetGameByPlayerID(ctx context.Context, playerID string) (*entity.Game, error) {
	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	return that.getGameByID(ctx, player.GameID)
}

// GetOrCreateGame - returns the player's current game or starts a new one of gameType.
func (that *GameManager) GetOrCreateGame(ctx context.Context, playerID, gameType string) (*entity.Game, error) {
	if !entity.IsKnownGameType(gameType) {
		return nil, fmt.Errorf("%w: %s", apperror.ErrUnknownGameType, gameType)
	}

	unlock := that.players.Lock(playerID)
	defer unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	if player.GameID != "" {
		existingGame, err := that.getGameByID(ctx, player.GameID)
		if err == nil {
			return existingGame, nil
		}

		if !errors.Is(err, repository.ErrGameNotFound) {
			return nil, err
		}
	}

	return that.createGame(ctx, player, gameType)
}

// MakeTurn - plays move for the player; in bot games the bot answers straight away.
// A game that ends is removed and returned together with apperror.ErrGameFinished.
func (that *GameManager) MakeTurn(ctx context.Context, playerID string, move entity.Move) (*entity.Game, error) {
	unlock := that.players.Lock(playerID)
	defer unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game, err := that.getPlayerGame(ctx, player)
	if err != nil {
		return nil, err
	}

	return that.playTurn(ctx, player, game, move)
}

// EatTo - eats every square of row up to and including square.
func (that *GameManager) EatTo(ctx context.Context, playerID string, row, square int) (*entity.Game, error) {
	unlock := that.players.Lock(playerID)
	defer unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	game, err := that.getPlayerGame(ctx, player)
	if err != nil {
		return nil, err
	}

	move, err := squaregame.MoveToSquare(game.Board, row, square)
	if err != nil {
		return nil, fmt.Errorf("failed to pick square: %w", err)
	}

	return that.playTurn(ctx, player, game, move)
}

// RestartGame - drops the player's current game and starts a fresh one of the same type.
func (that *GameManager) RestartGame(ctx context.Context, playerID string) (*entity.Game, error) {
	unlock := that.players.Lock(playerID)
	defer unlock()

	player, err := that.getPlayerByID(ctx, playerID)
	if err != nil {
		return nil, err
	}

	gameType := entity.WithBotType

	if player.GameID != "" {
		oldGame, err := that.getGameByID(ctx, player.GameID)

		switch {
		case err == nil:
			gameType = oldGame.Type
			that.deleteGame(ctx, oldGame)
		case !errors.Is(err, repository.ErrGameNotFound):
			return nil, err
		}
	}

	return that.createGame(ctx, player, gameType)
}

// EndGame - removes the game and detaches its players.
func (that *GameManager) EndGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		return fmt.Errorf("failed to end game: %w", err)
	}

	that.detachPlayers(ctx, game)

	return nil
}

func (that *GameManager) playTurn(ctx context.Context, player *entity.Player, game *entity.Game, move entity.Move) (*entity.Game, error) {
	log := that.logger.With("method", "playTurn", "gameID", game.ID)

	mark := player.Mark
	if game.IsHotseat() {
		mark = game.Board.Turn
	}

	err := squaregame.MakeTurn(game, mark, move)
	if errors.Is(err, apperror.ErrGameFinished) {
		that.deleteGame(ctx, game)

		return game, apperror.ErrGameFinished
	}

	if err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	log.Debug("player made a turn", "mark", mark, "row", move.Row, "amount", move.Amount)

	if game.IsWithBot() && game.IsOngoing() {
		botMove, err := that.bot.MakeTurn(game)
		if err != nil {
			return nil, fmt.Errorf("failed bot turn: %w", err)
		}

		log.Debug("bot made a turn", "row", botMove.Row, "amount", botMove.Amount)
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
		that.deleteGame(ctx, game)

		return game, apperror.ErrGameFinished
	}

	if err = that.updateGame(ctx, game); err != nil {
		return nil, err
	}

	return game, nil
}

func (that *GameManager) createGame(ctx context.Context, player *entity.Player, gameType string) (*entity.Game, error) {
	board, err := that.boards.NewBoard()
	if err != nil {
		return nil, fmt.Errorf("failed to create board: %w", err)
	}

	gameID := pkg.GenerateGameID()
	player.GameID = gameID
	player.Mark = entity.PlayerFirst

	newGame := entity.NewGame(gameID, gameType, board)
	newGame.Players = []*entity.Player{player}

	if newGame.IsWithBot() {
		newGame.Players = append(newGame.Players, entity.NewBotPlayer(gameID, entity.PlayerSecond))
	}

	if err = that.updatePlayer(ctx, player); err != nil {
		return nil, err
	}

	if err = that.gameRepo.CreateOrUpdate(ctx, newGame); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", gameID, "type", gameType, "rows", board.Lengths())

	return newGame, nil
}

func (that *GameManager) getPlayerGame(ctx context.Context, player *entity.Player) (*entity.Game, error) {
	if player.GameID == "" {
		return nil, apperror.ErrNoActiveGames
	}

	return that.getGameByID(ctx, player.GameID)
}

func (that *GameManager) getGameByID(ctx context.Context, id string) (*entity.Game, error) {
	existingGame, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return existingGame, nil
}

func (that *GameManager) updateGame(ctx context.Context, game *entity.Game) error {
	if err := that.gameRepo.CreateOrUpdate(ctx, game); err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}

	return nil
}

func (that *GameManager) deleteGame(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "deleteGame", "gameID", game.ID)

	if err := that.gameRepo.DeleteByID(ctx, game.ID); err != nil {
		log.Error("failed to delete game", "error", err)
	}

	that.detachPlayers(ctx, game)

	log.Info("game deleted")
}

func (that *GameManager) detachPlayers(ctx context.Context, game *entity.Game) {
	log := that.logger.With("method", "detachPlayers", "gameID", game.ID)

	for _, player := range game.Players {
		if player.IsBot() {
			continue
		}

		detached := &entity.Player{ID: player.ID}
		if err := that.playerRepo.CreateOrUpdate(ctx, detached); err != nil {
			log.Error("failed to update player", "error", err)
		}
	}
}

func (that *GameManager) createPlayer(ctx context.Context) (*entity.Player, error) {
	player := &entity.Player{
		ID: pkg.GenerateNewSessionID(),
	}

	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (that *GameManager) getPlayerByID(ctx context.Context, id string) (*entity.Player, error) {
	player, err := that.playerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get player: %w", err)
	}

	return player, nil
}

func (that *GameManager) updatePlayer(ctx context.Context, player *entity.Player) error {
	if err := that.playerRepo.CreateOrUpdate(ctx, player); err != nil {
		return fmt.Errorf("failed to update player: %w", err)
	}

	return nil
}
