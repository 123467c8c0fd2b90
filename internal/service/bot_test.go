package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

func newTestBot() BotService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewBotService(logger, tictactoe.NewEngine(entity.PlayerTwo))
}

func TestBotService_MakeTurn(t *testing.T) {
	t.Run("Blocks the opponent's line", func(t *testing.T) {
		// Given: X threatens the top row
		bot := newTestBot()
		session := entity.NewSession("123")
		require.NoError(t, session.Place(entity.Cell{Row: 0, Col: 0}, entity.PlayerOne))
		require.NoError(t, session.Place(entity.Cell{Row: 1, Col: 1}, entity.PlayerTwo))
		require.NoError(t, session.Place(entity.Cell{Row: 0, Col: 1}, entity.PlayerOne))

		// When: the bot makes its turn
		cell, err := bot.MakeTurn(session)

		// Then: O blocks at the end of the row and a turn is consumed
		require.NoError(t, err)
		assert.Equal(t, entity.Cell{Row: 0, Col: 2}, cell)
		assert.Equal(t, entity.PlayerTwo, session.Board[0][2])
		assert.Equal(t, entity.TotalMoves-4, session.TurnsLeft)
	})

	t.Run("Error when the game is already won", func(t *testing.T) {
		// Given: X owns the top row
		bot := newTestBot()
		session := entity.NewSession("123")
		session.Board[0] = [entity.BoardSize]entity.Mark{entity.PlayerOne, entity.PlayerOne, entity.PlayerOne}
		session.TurnsLeft = 6
		before := session.Board

		// When: the bot is asked to move
		_, err := bot.MakeTurn(session)

		// Then: ErrNoAvailableMoves is returned and the board is unchanged
		require.ErrorIs(t, err, ErrNoAvailableMoves)
		assert.Equal(t, before, session.Board)
	})

	t.Run("Error when the board is full", func(t *testing.T) {
		// Given: a full board while the counter is out of sync
		bot := newTestBot()
		session := entity.NewSession("123")
		session.Board = entity.Board{
			{entity.PlayerTwo, entity.PlayerOne, entity.PlayerTwo},
			{entity.PlayerTwo, entity.PlayerOne, entity.PlayerOne},
			{entity.PlayerOne, entity.PlayerTwo, entity.PlayerOne},
		}
		session.TurnsLeft = 1

		// When: the bot is asked to move
		_, err := bot.MakeTurn(session)

		// Then: ErrNoAvailableMoves is returned
		require.ErrorIs(t, err, ErrNoAvailableMoves)
	})

	t.Run("Mark", func(t *testing.T) {
		assert.Equal(t, entity.PlayerTwo, newTestBot().Mark())
	})
}
