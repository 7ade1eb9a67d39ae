package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/rocketscienceinc/squaregame-backend/internal/entity"
	"github.com/rocketscienceinc/squaregame-backend/internal/strategist"
)

const maxAnalyzeBody = 1 << 16

var errRowsRequired = errors.New("rows are required")

type AnalyzeRequest struct {
	// Rows are the squares left in each row.
	Rows []int `json:"rows"`
}

type AnalyzeResponse struct {
	NimSum      int          `json:"nim_sum"`
	Losing      bool         `json:"losing"`
	OptimalMove *entity.Move `json:"optimal_move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type AnalyzeHandler interface {
	AnalyzeHandler(w http.ResponseWriter, r *http.Request)
}

type analyzeHandler struct {
	logger *slog.Logger
}

func NewAnalyzeHandler(logger *slog.Logger) AnalyzeHandler {
	return &analyzeHandler{
		logger: logger.With("component", "analyze"),
	}
}

// AnalyzeHandler - evaluates a position for the player about to move.
func (that *analyzeHandler) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAnalyzeBody))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	board, err := boardFromCounts(req.Rows)
	if err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	resp := AnalyzeResponse{
		NimSum: strategist.NimSum(board),
	}
	resp.Losing = resp.NimSum == 0

	if move, ok := strategist.FindOptimalMove(board); ok {
		resp.OptimalMove = &move
	}

	that.writeJSON(w, http.StatusOK, resp)
}

func (that *analyzeHandler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func boardFromCounts(counts []int) (*entity.Board, error) {
	if len(counts) == 0 {
		return nil, errRowsRequired
	}

	lengths := make([]uint8, 0, len(counts))
	for i, count := range counts {
		if count < 0 || count > math.MaxUint8 {
			return nil, fmt.Errorf("row %d: %d squares is out of range", i, count)
		}
		lengths = append(lengths, uint8(count))
	}

	return entity.NewBoard(lengths, entity.PlayerFirst), nil
}
