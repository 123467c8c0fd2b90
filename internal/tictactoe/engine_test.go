package tictactoe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

func recoverPanic(fn func()) (recovered any) {
	defer func() {
		recovered = recover()
	}()

	fn()

	return nil
}

func TestEngine_BestMove(t *testing.T) {
	t.Run("Empty board opens in the first row-major cell", func(t *testing.T) {
		// Given: an empty board and the computer to move
		engine := NewEngine(entity.PlayerOne)
		board := entity.Board{}

		// When: asking for the best move
		cell := engine.BestMove(&board, entity.TotalMoves)

		// Then: every opening scores a tie, so the first cell wins the tie-break
		require.Equal(t, entity.Cell{Row: 0, Col: 0}, cell)
		assert.Equal(t, entity.Board{}, board)
	})

	t.Run("Takes a forced win in row-major order", func(t *testing.T) {
		// Given: O can win at (1,2) and also forces a win with a double threat at (0,2)
		engine := NewEngine(entity.PlayerTwo)
		board := parseBoard(t,
			"XX_",
			"OO_",
			"___",
		)

		// When: asking for the best move
		cell := engine.BestMove(&board, 5)

		// Then: both moves score a win and the first one in row-major order is kept
		require.Equal(t, entity.Cell{Row: 0, Col: 2}, cell)
		assert.Equal(t, winScore, engine.Score(&board, 5))
	})

	t.Run("Depth preference takes the immediate win", func(t *testing.T) {
		// Given: the same position and an engine that prefers faster wins
		engine := NewEngine(entity.PlayerTwo, WithDepthPreference())
		board := parseBoard(t,
			"XX_",
			"OO_",
			"___",
		)

		// When: asking for the best move
		cell := engine.BestMove(&board, 5)

		// Then: O completes its row right away
		require.Equal(t, entity.Cell{Row: 1, Col: 2}, cell)
		assert.Equal(t, winScore-1, engine.Score(&board, 5))
	})

	t.Run("Blocks a forced loss", func(t *testing.T) {
		// Given: X threatens the main diagonal and O has no win of its own
		engine := NewEngine(entity.PlayerTwo)
		board := parseBoard(t,
			"X__",
			"_X_",
			"O__",
		)

		// When: asking for the best move
		cell := engine.BestMove(&board, 6)

		// Then: O blocks the diagonal
		require.Equal(t, entity.Cell{Row: 2, Col: 2}, cell)
		assert.Equal(t, tieScore, engine.Score(&board, 6))
	})

	t.Run("Board is restored after the search", func(t *testing.T) {
		// Given: a mid-game position
		engine := NewEngine(entity.PlayerTwo)
		board := parseBoard(t,
			"X_O",
			"_X_",
			"___",
		)
		before := board

		// When: asking for the best move
		cell := engine.BestMove(&board, 6)

		// Then: the board is untouched and the chosen cell is free
		require.Equal(t, before, board)
		assert.True(t, board.IsEmpty(cell))
	})

	t.Run("Panics on a tied board", func(t *testing.T) {
		// Given: a full board without a line
		engine := NewEngine(entity.PlayerTwo)
		board := parseBoard(t,
			"OXO",
			"OXX",
			"XOX",
		)
		require.Equal(t, entity.Tie(), Evaluate(board, 0))

		// When: asking for a move anyway
		recovered := recoverPanic(func() {
			engine.BestMove(&board, 0)
		})

		// Then: the precondition violation is reported as a panic
		err, ok := recovered.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrPrecondition)
	})

	t.Run("Panics on a won board", func(t *testing.T) {
		// Given: X has already won
		engine := NewEngine(entity.PlayerTwo)
		board := parseBoard(t,
			"XXX",
			"OO_",
			"___",
		)

		// When: asking for a move anyway
		recovered := recoverPanic(func() {
			engine.BestMove(&board, 4)
		})

		// Then: the precondition violation is reported as a panic
		err, ok := recovered.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrPrecondition)
	})

	t.Run("Panics when the counter disagrees with a full board", func(t *testing.T) {
		// Given: a full board while the counter still claims a move is left
		engine := NewEngine(entity.PlayerTwo)
		board := parseBoard(t,
			"OXO",
			"OXX",
			"XOX",
		)

		// When: asking for a move
		recovered := recoverPanic(func() {
			engine.BestMove(&board, 1)
		})

		// Then: there is no cell to choose
		err, ok := recovered.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrPrecondition)
	})
}

func TestNewEngine(t *testing.T) {
	t.Run("Rejects the empty mark", func(t *testing.T) {
		recovered := recoverPanic(func() {
			NewEngine(entity.Empty)
		})

		err, ok := recovered.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrPrecondition)
	})

	t.Run("Computer and opponent", func(t *testing.T) {
		engine := NewEngine(entity.PlayerTwo)

		assert.Equal(t, entity.PlayerTwo, engine.Computer())
		assert.Equal(t, entity.PlayerOne, engine.opponent)
	})
}

func TestEngine_Score(t *testing.T) {
	t.Run("Empty board is a draw for either side", func(t *testing.T) {
		for _, mark := range []entity.Mark{entity.PlayerOne, entity.PlayerTwo} {
			board := entity.Board{}
			assert.Equal(t, tieScore, NewEngine(mark).Score(&board, entity.TotalMoves))
		}
	})

	t.Run("Lost position scores a loss", func(t *testing.T) {
		// Given: X has two open threats and O cannot block both
		engine := NewEngine(entity.PlayerTwo)
		board := parseBoard(t,
			"X_X",
			"_O_",
			"X_O",
		)

		// When: scoring the position
		score := engine.Score(&board, 4)

		// Then: the engine sees the loss
		assert.Equal(t, lossScore, score)
	})
}

// TestEngine_NeverLoses plays the engine against every possible sequence of
// opponent moves.
func TestEngine_NeverLoses(t *testing.T) {
	t.Run("Engine moves second", func(t *testing.T) {
		board := entity.Board{}
		playAll(t, NewEngine(entity.PlayerTwo), &board, entity.TotalMoves, false)
	})

	t.Run("Engine moves first", func(t *testing.T) {
		board := entity.Board{}
		playAll(t, NewEngine(entity.PlayerOne), &board, entity.TotalMoves, true)
	})

	t.Run("Depth-preferring engine moves second", func(t *testing.T) {
		board := entity.Board{}
		playAll(t, NewEngine(entity.PlayerTwo, WithDepthPreference()), &board, entity.TotalMoves, false)
	})
}

func playAll(t *testing.T, engine *Engine, board *entity.Board, movesRemaining int, engineTurn bool) {
	t.Helper()

	outcome := Evaluate(*board, movesRemaining)
	if outcome.IsTerminal() {
		require.False(t, outcome.IsWin() && outcome.Winner != engine.Computer(), "engine lost on board %v", *board)
		return
	}

	if engineTurn {
		before := *board
		cell := engine.BestMove(board, movesRemaining)
		require.Equal(t, before, *board, "search left marks on the board")
		require.True(t, board.IsEmpty(cell), "engine picked occupied cell %s", cell)

		board.Set(cell, engine.Computer())
		playAll(t, engine, board, movesRemaining-1, false)
		board.Set(cell, entity.Empty)
		return
	}

	for _, cell := range board.EmptyCells() {
		board.Set(cell, engine.Computer().Opponent())
		playAll(t, engine, board, movesRemaining-1, true)
		board.Set(cell, entity.Empty)
	}
}
