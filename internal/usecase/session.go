package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

type SessionUseCase interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	DeleteSession(ctx context.Context, id string) error

	MakeTurn(ctx context.Context, id string, cell entity.Cell) (*entity.TurnResult, error)
	ResetBoard(ctx context.Context, id string) (*entity.Session, error)
	ToggleAI(ctx context.Context, id string) (*entity.Session, error)
	ToggleScore(ctx context.Context, id string) (*entity.Session, error)
}

type sessionRepo interface {
	CreateOrUpdate(ctx context.Context, session *entity.Session) error
	GetByID(ctx context.Context, id string) (*entity.Session, error)
	Update(ctx context.Context, id string, mutate func(session *entity.Session) error) (*entity.Session, error)
	DeleteByID(ctx context.Context, id string) error
}

type botService interface {
	MakeTurn(session *entity.Session) (entity.Cell, error)
}

type sessionUseCase struct {
	logger *slog.Logger

	sessionRepo sessionRepo
	botService  botService
}

// NewSessionUseCase builds the session commands. The bot must play
// entity.PlayerTwo: in computer mode the human is always player one.
func NewSessionUseCase(logger *slog.Logger, sessionRepo sessionRepo, botService botService) SessionUseCase {
	return &sessionUseCase{
		logger:      logger.With("component", "session"),
		sessionRepo: sessionRepo,
		botService:  botService,
	}
}

func (that *sessionUseCase) CreateSession(ctx context.Context) (*entity.Session, error) {
	session := entity.NewSession(uuid.NewString())

	if err := that.sessionRepo.CreateOrUpdate(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	that.logger.Info("session created", "sessionID", session.ID)

	return session, nil
}

func (that *sessionUseCase) GetSession(ctx context.Context, id string) (*entity.Session, error) {
	session, err := that.sessionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return session, nil
}

func (that *sessionUseCase) DeleteSession(ctx context.Context, id string) error {
	if err := that.sessionRepo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	return nil
}

// MakeTurn places the human's mark and, in computer mode, the computer's
// reply. A finished game is credited to the winner and the board is cleared.
func (that *sessionUseCase) MakeTurn(ctx context.Context, id string, cell entity.Cell) (*entity.TurnResult, error) {
	log := that.logger.With("method", "MakeTurn", "sessionID", id)

	var result *entity.TurnResult
	session, err := that.sessionRepo.Update(ctx, id, func(session *entity.Session) error {
		result = &entity.TurnResult{Move: cell, Mark: session.CurrentMark()}

		if err := session.Place(cell, result.Mark); err != nil {
			return fmt.Errorf("invalid turn: %w", err)
		}

		if !session.AIActive {
			session.PassTurn()
		}

		if finishIfOver(session, result) || !session.AIActive {
			return nil
		}

		botCell, err := that.botService.MakeTurn(session)
		if err != nil {
			return fmt.Errorf("bot failed to make turn: %w", err)
		}

		result.ComputerMove = &botCell
		finishIfOver(session, result)

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	result.Session = session

	if result.Outcome.IsTerminal() {
		log.Info("game finished", "status", result.Outcome.Status, "winner", result.Outcome.Winner)
	}

	return result, nil
}

func (that *sessionUseCase) ResetBoard(ctx context.Context, id string) (*entity.Session, error) {
	return that.update(ctx, id, "reset board", (*entity.Session).ResetBoard)
}

func (that *sessionUseCase) ToggleAI(ctx context.Context, id string) (*entity.Session, error) {
	return that.update(ctx, id, "toggle computer mode", (*entity.Session).ToggleAI)
}

func (that *sessionUseCase) ToggleScore(ctx context.Context, id string) (*entity.Session, error) {
	return that.update(ctx, id, "toggle score", (*entity.Session).ToggleScore)
}

func (that *sessionUseCase) update(ctx context.Context, id, action string, apply func(*entity.Session)) (*entity.Session, error) {
	session, err := that.sessionRepo.Update(ctx, id, func(session *entity.Session) error {
		apply(session)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to %s: %w", action, err)
	}

	return session, nil
}

// finishIfOver evaluates the board and closes the game if it is decided.
func finishIfOver(session *entity.Session, result *entity.TurnResult) bool {
	result.Outcome = tictactoe.Evaluate(session.Board, session.TurnsLeft)
	if !result.Outcome.IsTerminal() {
		return false
	}

	finalBoard := session.Board
	result.FinalBoard = &finalBoard
	session.Finish(result.Outcome)

	return true
}
