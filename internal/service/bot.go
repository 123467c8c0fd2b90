package service

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var ErrNoAvailableMoves = errors.New("no available moves")

type BotService interface {
	// MakeTurn plays the computer's reply on the session board and returns the
	// chosen cell.
	MakeTurn(session *entity.Session) (entity.Cell, error)
	Mark() entity.Mark
}

type botService struct {
	logger *slog.Logger
	engine *tictactoe.Engine
}

func NewBotService(logger *slog.Logger, engine *tictactoe.Engine) BotService {
	return &botService{
		logger: logger.With("component", "bot", "mark", engine.Computer()),
		engine: engine,
	}
}

func (that *botService) Mark() entity.Mark {
	return that.engine.Computer()
}

func (that *botService) MakeTurn(session *entity.Session) (entity.Cell, error) {
	log := that.logger.With("method", "MakeTurn", "sessionID", session.ID)

	// the engine panics on a decided board, so the check happens here
	if outcome := tictactoe.Evaluate(session.Board, session.TurnsLeft); outcome.IsTerminal() {
		return entity.Cell{}, fmt.Errorf("%w: game is %s", ErrNoAvailableMoves, outcome.Status)
	}

	if session.Board.EmptyCount() == 0 {
		return entity.Cell{}, ErrNoAvailableMoves
	}

	cell := that.engine.BestMove(&session.Board, session.TurnsLeft)

	if err := session.Place(cell, that.engine.Computer()); err != nil {
		return entity.Cell{}, fmt.Errorf("bot failed to make turn: %w", err)
	}

	log.Debug("bot played", "cell", cell.String(), "turnsLeft", session.TurnsLeft)

	return cell, nil
}
