package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// AnalysisUseCase answers stateless questions about a board sent by a client.
type AnalysisUseCase interface {
	Evaluate(board entity.Board, movesRemaining int) (entity.Outcome, error)
	BestMove(board entity.Board, movesRemaining int, computer entity.Mark) (entity.Cell, int, error)
}

type analysisUseCase struct {
	engines map[entity.Mark]*tictactoe.Engine
}

func NewAnalysisUseCase(opts ...tictactoe.Option) AnalysisUseCase {
	return &analysisUseCase{
		engines: map[entity.Mark]*tictactoe.Engine{
			entity.PlayerOne: tictactoe.NewEngine(entity.PlayerOne, opts...),
			entity.PlayerTwo: tictactoe.NewEngine(entity.PlayerTwo, opts...),
		},
	}
}

func (that *analysisUseCase) Evaluate(board entity.Board, movesRemaining int) (entity.Outcome, error) {
	if err := validatePosition(&board, movesRemaining); err != nil {
		return entity.Outcome{}, err
	}

	return tictactoe.Evaluate(board, movesRemaining), nil
}

// BestMove returns the engine's move for computer together with its minimax
// score. Boards that are not in progress are rejected instead of reaching the
// engine.
func (that *analysisUseCase) BestMove(board entity.Board, movesRemaining int, computer entity.Mark) (entity.Cell, int, error) {
	engine, ok := that.engines[computer]
	if !ok {
		return entity.Cell{}, 0, fmt.Errorf("%w: computer must be %s or %s", entity.ErrInvalidMark, entity.PlayerOne, entity.PlayerTwo)
	}

	if err := validatePosition(&board, movesRemaining); err != nil {
		return entity.Cell{}, 0, err
	}

	if outcome := tictactoe.Evaluate(board, movesRemaining); outcome.IsTerminal() {
		return entity.Cell{}, 0, fmt.Errorf("%w: %s", apperror.ErrGameNotInProgress, outcome.Status)
	}

	cell, score := engine.Analyze(&board, movesRemaining)

	return cell, score, nil
}

// validatePosition checks what the engine takes for granted: known marks and a
// move counter that matches the free cells.
func validatePosition(board *entity.Board, movesRemaining int) error {
	if err := board.Validate(); err != nil {
		return fmt.Errorf("invalid board: %w", err)
	}

	if empty := board.EmptyCount(); movesRemaining != empty {
		return fmt.Errorf("%w: moves remaining %d, empty cells %d", apperror.ErrInconsistentBoard, movesRemaining, empty)
	}

	return nil
}
