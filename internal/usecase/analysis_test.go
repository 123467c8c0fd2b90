package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

func TestAnalysisUseCase_Evaluate(t *testing.T) {
	analysis := NewAnalysisUseCase()

	t.Run("Reports the winner", func(t *testing.T) {
		board := boardOf(
			[3]entity.Mark{x, o, e},
			[3]entity.Mark{x, o, e},
			[3]entity.Mark{x, e, e},
		)

		outcome, err := analysis.Evaluate(board, 4)

		require.NoError(t, err)
		assert.Equal(t, entity.Win(x), outcome)
	})

	t.Run("Rejects a counter that disagrees with the board", func(t *testing.T) {
		_, err := analysis.Evaluate(entity.Board{}, 3)

		require.ErrorIs(t, err, apperror.ErrInconsistentBoard)
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		board := entity.Board{}
		board[0][0] = entity.Mark("Z")

		_, err := analysis.Evaluate(board, 8)

		require.ErrorIs(t, err, entity.ErrInvalidMark)
	})
}

func TestAnalysisUseCase_BestMove(t *testing.T) {
	t.Run("Double threat comes first in row-major order", func(t *testing.T) {
		// Given: both players hold two cells of a row and O is to move
		analysis := NewAnalysisUseCase()
		board := boardOf(
			[3]entity.Mark{x, x, e},
			[3]entity.Mark{o, o, e},
			[3]entity.Mark{e, e, e},
		)

		// When: asking for O's move
		cell, score, err := analysis.BestMove(board, 5, o)

		// Then: blocking at (0,2) also wins by force and is found first
		require.NoError(t, err)
		assert.Equal(t, entity.Cell{Row: 0, Col: 2}, cell)
		assert.Equal(t, 100, score)
	})

	t.Run("Depth preference takes the immediate win", func(t *testing.T) {
		analysis := NewAnalysisUseCase(tictactoe.WithDepthPreference())
		board := boardOf(
			[3]entity.Mark{x, x, e},
			[3]entity.Mark{o, o, e},
			[3]entity.Mark{e, e, e},
		)

		cell, score, err := analysis.BestMove(board, 5, o)

		require.NoError(t, err)
		assert.Equal(t, entity.Cell{Row: 1, Col: 2}, cell)
		assert.Equal(t, 99, score)
	})

	t.Run("Plays for X as well", func(t *testing.T) {
		analysis := NewAnalysisUseCase()
		board := boardOf(
			[3]entity.Mark{o, o, e},
			[3]entity.Mark{x, x, e},
			[3]entity.Mark{x, e, e},
		)

		cell, _, err := analysis.BestMove(board, 4, x)

		require.NoError(t, err)
		assert.Equal(t, entity.Cell{Row: 0, Col: 2}, cell)
	})

	t.Run("Finished board is not in progress", func(t *testing.T) {
		analysis := NewAnalysisUseCase()
		board := boardOf(
			[3]entity.Mark{x, x, x},
			[3]entity.Mark{o, o, e},
			[3]entity.Mark{e, e, e},
		)

		_, _, err := analysis.BestMove(board, 4, o)

		require.ErrorIs(t, err, apperror.ErrGameNotInProgress)
	})

	t.Run("Computer must be a player", func(t *testing.T) {
		analysis := NewAnalysisUseCase()

		_, _, err := analysis.BestMove(entity.Board{}, entity.TotalMoves, entity.Empty)

		require.ErrorIs(t, err, entity.ErrInvalidMark)
	})
}
