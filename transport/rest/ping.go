package rest

import (
	"io"
	"log/slog"
	"net/http"
)

type PingHandler interface {
	PingHandler(w http.ResponseWriter, r *http.Request)
}

type pingHandler struct {
	logger *slog.Logger
}

func NewPingHandler(logger *slog.Logger) PingHandler {
	return &pingHandler{
		logger: logger.With("component", "ping"),
	}
}

// PingHandler - liveness check, answers "pong".
func (that *pingHandler) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)

	// the status line is already sent, a failed write can only be logged
	if _, err := io.WriteString(w, "pong"); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
