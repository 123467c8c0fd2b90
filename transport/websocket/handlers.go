package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

const internalError = "internal error"

// dispatch runs the handler registered for the action and turns its result
// into a reply payload.
func (that *Server) dispatch(ctx context.Context, msg *Message) *ResponsePayload {
	log := that.logger.With("method", "dispatch", "action", msg.Action)

	handler, ok := that.handlers[msg.Action]
	if !ok {
		log.Warn("unknown action")
		return &ResponsePayload{Error: fmt.Sprintf("%v: %q", errUnknownAction, msg.Action)}
	}

	var payload RequestPayload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return &ResponsePayload{Error: fmt.Errorf("%w: %w", errBadMessage, err).Error()}
		}
	}

	response, err := handler(ctx, &payload)
	if err != nil {
		if !isClientError(err) {
			log.Error("failed to process message", "error", err)
			return &ResponsePayload{Error: internalError}
		}

		return &ResponsePayload{Error: err.Error()}
	}

	return response
}

// clientErrors are reported back verbatim; anything else is logged and
// hidden behind internalError. Keep in line with rest.statusOf.
var clientErrors = []error{
	apperror.ErrSessionNotFound,
	apperror.ErrCellOccupied,
	apperror.ErrGameNotInProgress,
	apperror.ErrInconsistentBoard,
	entity.ErrInvalidCell,
	entity.ErrInvalidMark,
	entity.ErrInvalidBoard,
	errBadMessage,
	errSessionRequired,
	errCellRequired,
}

func isClientError(err error) bool {
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func (that *Server) handleNewSession(ctx context.Context, _ *RequestPayload) (*ResponsePayload, error) {
	session, err := that.sessions.CreateSession(ctx)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Session: session}, nil
}

func (that *Server) handleGetSession(ctx context.Context, payload *RequestPayload) (*ResponsePayload, error) {
	return that.sessionCommand(ctx, payload, that.sessions.GetSession)
}

func (that *Server) handleMove(ctx context.Context, payload *RequestPayload) (*ResponsePayload, error) {
	if payload.SessionID == "" {
		return nil, errSessionRequired
	}

	if payload.Cell == nil {
		return nil, errCellRequired
	}

	result, err := that.sessions.MakeTurn(ctx, payload.SessionID, *payload.Cell)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Session: result.Session, Turn: result}, nil
}

func (that *Server) handleReset(ctx context.Context, payload *RequestPayload) (*ResponsePayload, error) {
	return that.sessionCommand(ctx, payload, that.sessions.ResetBoard)
}

func (that *Server) handleToggleAI(ctx context.Context, payload *RequestPayload) (*ResponsePayload, error) {
	return that.sessionCommand(ctx, payload, that.sessions.ToggleAI)
}

func (that *Server) handleToggleScore(ctx context.Context, payload *RequestPayload) (*ResponsePayload, error) {
	return that.sessionCommand(ctx, payload, that.sessions.ToggleScore)
}

func (that *Server) sessionCommand(
	ctx context.Context,
	payload *RequestPayload,
	run func(context.Context, string) (*entity.Session, error),
) (*ResponsePayload, error) {
	if payload.SessionID == "" {
		return nil, errSessionRequired
	}

	session, err := run(ctx, payload.SessionID)
	if err != nil {
		return nil, err
	}

	return &ResponsePayload{Session: session}, nil
}
