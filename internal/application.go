package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rocketscienceinc/squaregame-backend/internal/config"
	"github.com/rocketscienceinc/squaregame-backend/internal/layout"
	"github.com/rocketscienceinc/squaregame-backend/internal/repository"
	"github.com/rocketscienceinc/squaregame-backend/internal/repository/storage"
	"github.com/rocketscienceinc/squaregame-backend/internal/service"
	"github.com/rocketscienceinc/squaregame-backend/internal/usecase"
	"github.com/rocketscienceinc/squaregame-backend/transport/rest"
	"github.com/rocketscienceinc/squaregame-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the application.
func RunApp(logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info("Received signal, shutting down", "signal", sig)
		cancel()
	}()

	boardLayout, err := loadLayout(conf.Board.LayoutPath)
	if err != nil {
		return err
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.New(ctx, redisAddrString)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	playerRepo := repository.NewPlayerRepository(redisStorage, conf.Redis.TTL)
	gameRepo := repository.NewGameRepository(redisStorage, conf.Redis.TTL)

	botRand, boardRand := service.NewRandPair(conf.Bot.Seed)
	botService := service.NewBotService(botRand)
	boardService := service.NewBoardService(boardRand, boardLayout, conf.Board.Rows, conf.Board.MaxRowLength)

	gameUseCase := usecase.NewGameManager(logger, playerRepo, gameRepo, botService, boardService)

	// run HTTP server
	httpErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.Start(ctx, logger, conf.HTTPPort); httpErr != nil {
			log.Error("HTTP server error", "error", httpErr)
			httpErrCh <- httpErr
		}
	}()

	// run Websocket server
	wsErrCh := make(chan error, 1)
	go func() {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		wsServer := websocket.New(logger, gameUseCase)
		if wsErr := wsServer.Start(ctx, conf.SocketPort); wsErr != nil {
			log.Error("WebSocket server error", "error", wsErr)
			wsErrCh <- wsErr
		}
	}()

	select {
	case err = <-httpErrCh:
		return fmt.Errorf("HTTP server error: %w", err)
	case err = <-wsErrCh:
		return fmt.Errorf("WebSocket server error: %w", err)
	case <-ctx.Done():
		log.Info("Application context canceled, shutting down")
		return nil
	}
}

// loadLayout - fixed row lengths for every new board, nil means random boards.
func loadLayout(path string) ([]uint8, error) {
	if path == "" {
		return nil, nil
	}

	lengths, err := layout.Load(path)
	if err != nil {
		return nil, fmt.Errorf("could not load board layout: %w", err)
	}

	return lengths, nil
}
