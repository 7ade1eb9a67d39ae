package service

import (
	"fmt"
	"sync"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/squaregame-backend/internal/entity"
)

type BoardService interface {
	NewBoard() (*entity.Board, error)
}

type boardService struct {
	mu  sync.Mutex
	rng *rand.Rand

	layout       []uint8
	rows         int
	maxRowLength uint8
}

// NewBoardService - boards come from layout when it is not empty, otherwise they are random.
func NewBoardService(rng *rand.Rand, layout []uint8, rows int, maxRowLength uint8) BoardService {
	return &boardService{
		rng:          rng,
		layout:       layout,
		rows:         rows,
		maxRowLength: maxRowLength,
	}
}

// NewBoard - the first player is always on turn. A board without squares is rejected.
func (that *boardService) NewBoard() (*entity.Board, error) {
	board, err := that.newBoard()
	if err != nil {
		return nil, err
	}

	if board.IsEmpty() {
		return nil, fmt.Errorf("%w: no squares to play", entity.ErrInvalidBoardSize)
	}

	return board, nil
}

func (that *boardService) newBoard() (*entity.Board, error) {
	if len(that.layout) > 0 {
		return entity.NewBoard(that.layout, entity.PlayerFirst), nil
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	board, err := entity.RandomBoard(that.rng, that.rows, that.maxRowLength, entity.PlayerFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to generate board: %w", err)
	}

	return board, nil
}

// NewRand - seeded source; a zero seed means seed from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = clockSeed()
	}

	return rand.New(rand.NewSource(seed))
}

// NewRandPair - two sources that never share a sequence: the second one is seeded with seed+1.
func NewRandPair(seed uint64) (*rand.Rand, *rand.Rand) {
	if seed == 0 {
		seed = clockSeed()
	}

	next := seed + 1
	if next == 0 {
		next = 1
	}

	return NewRand(seed), NewRand(next)
}

func clockSeed() uint64 {
	return uint64(time.Now().UnixNano()) //nolint: gosec // not security sensitive
}
