package tictactoe

import (
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const (
	winScore  = 100
	lossScore = -100
	tieScore  = 0
)

// ErrPrecondition is the panic value of BestMove when it is asked to move on a
// board that is already decided or has no free cell.
var ErrPrecondition = errors.New("best move precondition violated")

type Option func(*Engine)

// WithDepthPreference discounts outcomes by the ply at which they occur, so
// the engine takes the quickest win and delays a loss for as long as possible.
func WithDepthPreference() Option {
	return func(engine *Engine) {
		engine.preferFaster = true
	}
}

// Engine picks moves for the computer-controlled mark with a full minimax
// search. It keeps no state between calls.
type Engine struct {
	computer     entity.Mark
	opponent     entity.Mark
	preferFaster bool
}

func NewEngine(computer entity.Mark, opts ...Option) *Engine {
	if computer != entity.PlayerOne && computer != entity.PlayerTwo {
		panic(fmt.Errorf("%w: computer mark %q", ErrPrecondition, computer))
	}

	engine := &Engine{
		computer: computer,
		opponent: computer.Opponent(),
	}

	for _, opt := range opts {
		opt(engine)
	}

	return engine
}

func (that *Engine) Computer() entity.Mark {
	return that.computer
}

// BestMove returns the optimal cell for the computer. Candidates are tried in
// row-major order and only a strictly better score replaces the current best,
// so ties go to the first cell found.
//
// The board is mutated while searching and restored before returning. It must
// be in progress for movesRemaining; otherwise BestMove panics with
// ErrPrecondition.
func (that *Engine) BestMove(board *entity.Board, movesRemaining int) entity.Cell {
	cell, _ := that.Analyze(board, movesRemaining)
	return cell
}

// Score returns the minimax value of the computer's best move.
func (that *Engine) Score(board *entity.Board, movesRemaining int) int {
	_, value := that.Analyze(board, movesRemaining)
	return value
}

// Analyze returns the best move together with its minimax value. Same
// preconditions as BestMove.
func (that *Engine) Analyze(board *entity.Board, movesRemaining int) (entity.Cell, int) {
	if outcome := evaluate(board, movesRemaining); outcome.IsTerminal() {
		panic(fmt.Errorf("%w: game is already over (%s)", ErrPrecondition, outcome.Status))
	}

	best, bestValue, found := entity.Cell{}, math.MinInt, false
	for cell := range emptyCells(board) {
		value := that.try(board, cell, that.computer, movesRemaining, false, 1)
		if !found || value > bestValue {
			best, bestValue, found = cell, value, true
		}
	}

	if !found {
		panic(fmt.Errorf("%w: no empty cells", ErrPrecondition))
	}

	return best, bestValue
}

// try places mark on cell, scores the resulting position and empties the cell
// again on the way out.
func (that *Engine) try(board *entity.Board, cell entity.Cell, mark entity.Mark, movesRemaining int, maximizing bool, depth int) int {
	board.Set(cell, mark)
	defer board.Set(cell, entity.Empty)

	return that.score(board, movesRemaining-1, maximizing, depth)
}

func (that *Engine) score(board *entity.Board, movesRemaining int, maximizing bool, depth int) int {
	if outcome := evaluate(board, movesRemaining); outcome.IsTerminal() {
		return that.terminalScore(outcome, depth)
	}

	if maximizing {
		best := math.MinInt
		for cell := range emptyCells(board) {
			best = max(best, that.try(board, cell, that.computer, movesRemaining, false, depth+1))
		}
		return orTie(best, math.MinInt)
	}

	best := math.MaxInt
	for cell := range emptyCells(board) {
		best = min(best, that.try(board, cell, that.opponent, movesRemaining, true, depth+1))
	}
	return orTie(best, math.MaxInt)
}

func (that *Engine) terminalScore(outcome entity.Outcome, depth int) int {
	penalty := 0
	if that.preferFaster {
		penalty = depth
	}

	switch {
	case outcome.IsWin() && outcome.Winner == that.computer:
		return winScore - penalty
	case outcome.IsWin():
		return lossScore + penalty
	default:
		return tieScore
	}
}

// orTie maps an untouched accumulator to a tie. It only triggers when the move
// counter claims moves are left on a full board.
func orTie(value, untouched int) int {
	if value == untouched {
		return tieScore
	}
	return value
}

// emptyCells yields free cells in row-major order.
func emptyCells(board *entity.Board) iter.Seq[entity.Cell] {
	return func(yield func(entity.Cell) bool) {
		for row := range entity.BoardSize {
			for col := range entity.BoardSize {
				cell := entity.Cell{Row: row, Col: col}
				if board.IsEmpty(cell) && !yield(cell) {
					return
				}
			}
		}
	}
}
