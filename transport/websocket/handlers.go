package websocket

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/squaregame-backend/internal/apperror"
	"github.com/rocketscienceinc/squaregame-backend/internal/entity"
)

const (
	payloadActionGameLeave = "game:leave"
	gameStatusLeave        = "leave"
)

// errors a client can act on are passed through as is.
var clientErrors = []error{
	apperror.ErrGameFinished,
	apperror.ErrNotYourTurn,
	apperror.ErrNoActiveGames,
	apperror.ErrInvalidMove,
	apperror.ErrUnknownGameType,
}

func (that *Server) handleConnect(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleConnect")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	var playerID string
	if payloadReq.Player != nil {
		playerID = payloadReq.Player.ID
	}

	player, err := that.gameUseCase.GetOrCreatePlayer(ctx, playerID)
	if err != nil {
		log.Error("failed to create or get player", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "failed to create a new player")
	}

	payloadResp := Payload{Player: player}

	if player.GameID != "" {
		game, err := that.gameUseCase.GetGameByPlayerID(ctx, player.ID)
		if err != nil {
			log.Warn("failed to get game of connected player", "gameID", player.GameID, "error", err)
		} else {
			payloadResp.Game = newGameView(game)
		}
	}

	if err = that.sendMessage(bufrw, msg.Action, payloadResp); err != nil {
		return fmt.Errorf("failed to send response: %w", err)
	}

	log.Info("successfully connected player", "playerID", player.ID)

	return nil
}

func (that *Server) handleNewGame(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleNewGame")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	gameType := entity.WithBotType
	if payloadReq.Game != nil && payloadReq.Game.Type != "" {
		gameType = payloadReq.Game.Type
	}

	game, err := that.gameUseCase.GetOrCreateGame(ctx, payloadReq.Player.ID, gameType)
	if err != nil {
		log.Error("failed to create or get game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, clientMessage(err, "failed to create a new game"))
	}

	log.Info("player is in game", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return that.sendGame(bufrw, msg.Action, payloadReq.Player.ID, game)
}

func (that *Server) handleGameTurn(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.Move == nil {
		return that.sendErrorResponse(bufrw, msg.Action, "Move is required")
	}

	game, err := that.gameUseCase.MakeTurn(ctx, payloadReq.Player.ID, *payloadReq.Move)

	return that.sendTurnResult(bufrw, msg.Action, payloadReq.Player.ID, game, err)
}

func (that *Server) handleGameEat(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	if payloadReq.Square == nil {
		return that.sendErrorResponse(bufrw, msg.Action, "Square is required")
	}

	game, err := that.gameUseCase.EatTo(ctx, payloadReq.Player.ID, payloadReq.Square.Row, payloadReq.Square.Square)

	return that.sendTurnResult(bufrw, msg.Action, payloadReq.Player.ID, game, err)
}

func (that *Server) handleGameRestart(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameRestart")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	game, err := that.gameUseCase.RestartGame(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to restart game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, clientMessage(err, "failed to restart game"))
	}

	log.Info("game restarted", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return that.sendGame(bufrw, msg.Action, payloadReq.Player.ID, game)
}

func (that *Server) handleGameLeave(ctx context.Context, msg *Message, bufrw *bufio.ReadWriter) error {
	log := that.logger.With("method", "handleGameLeave")

	payloadReq, err := decodePayload(msg)
	if err != nil {
		return err
	}

	if payloadReq.Player == nil {
		return that.sendErrorResponse(bufrw, msg.Action, "Player is required")
	}

	game, err := that.gameUseCase.GetGameByPlayerID(ctx, payloadReq.Player.ID)
	if err != nil {
		log.Error("failed to find game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "game doesn't exist")
	}

	if err = that.gameUseCase.EndGame(ctx, game); err != nil {
		log.Error("failed to end game", "error", err)
		return that.sendErrorResponse(bufrw, msg.Action, "game doesn't exist")
	}

	view := newGameView(game)
	view.Status = gameStatusLeave

	payloadResp := Payload{
		Player: &entity.Player{ID: payloadReq.Player.ID},
		Game:   view,
	}

	log.Info("player left the game", "playerID", payloadReq.Player.ID, "gameID", game.ID)

	return that.sendMessage(bufrw, payloadActionGameLeave, payloadResp)
}

// sendTurnResult - answers a move; a finished game is a normal outcome, not an error.
func (that *Server) sendTurnResult(bufrw *bufio.ReadWriter, action, playerID string, game *entity.Game, err error) error {
	log := that.logger.With("method", "sendTurnResult", "playerID", playerID)

	switch {
	case errors.Is(err, apperror.ErrGameFinished) && game != nil:
		log.Info("game finished", "gameID", game.ID, "winner", game.Winner)
	case err != nil:
		log.Warn("failed to make turn", "error", err)
		return that.sendErrorResponse(bufrw, action, clientMessage(err, "failed to make turn"))
	}

	return that.sendGame(bufrw, action, playerID, game)
}

func (that *Server) sendGame(bufrw *bufio.ReadWriter, action, playerID string, game *entity.Game) error {
	player := &entity.Player{ID: playerID}

	for _, p := range game.Players {
		if p.ID == playerID {
			player = p
			break
		}
	}

	if game.IsFinished() {
		player = &entity.Player{ID: playerID}
	}

	return that.sendMessage(bufrw, action, Payload{
		Player: player,
		Game:   newGameView(game),
	})
}

func (that *Server) sendErrorResponse(bufrw *bufio.ReadWriter, action, errorMsg string) error {
	payload := Payload{Error: errorMsg}
	if err := that.sendMessage(bufrw, action, payload); err != nil {
		return fmt.Errorf("failed to send error response: %w", err)
	}

	return nil
}

func decodePayload(msg *Message) (Payload, error) {
	var payload Payload

	if len(msg.Payload) == 0 {
		return payload, nil
	}

	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		return payload, fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	return payload, nil
}

func clientMessage(err error, fallback string) string {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return fallback
}
