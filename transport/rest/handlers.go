package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
)

type sessionUseCase interface {
	CreateSession(ctx context.Context) (*entity.Session, error)
	GetSession(ctx context.Context, id string) (*entity.Session, error)
	DeleteSession(ctx context.Context, id string) error

	MakeTurn(ctx context.Context, id string, cell entity.Cell) (*entity.TurnResult, error)
	ResetBoard(ctx context.Context, id string) (*entity.Session, error)
	ToggleAI(ctx context.Context, id string) (*entity.Session, error)
	ToggleScore(ctx context.Context, id string) (*entity.Session, error)
}

type analysisUseCase interface {
	Evaluate(board entity.Board, movesRemaining int) (entity.Outcome, error)
	BestMove(board entity.Board, movesRemaining int, computer entity.Mark) (entity.Cell, int, error)
}

// positionRequest is the body of the analysis endpoints. A missing counter
// is derived from the board and a missing computer mark defaults to O.
type positionRequest struct {
	Board          entity.Board `json:"board"`
	MovesRemaining *int         `json:"moves_remaining"`
	Computer       entity.Mark  `json:"computer"`
}

type bestMoveResponse struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Score int `json:"score"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type Handlers struct {
	logger *slog.Logger

	sessions sessionUseCase
	analysis analysisUseCase
}

func NewHandlers(logger *slog.Logger, sessions sessionUseCase, analysis analysisUseCase) *Handlers {
	return &Handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
		analysis: analysis,
	}
}

func (that *Handlers) Evaluate(w http.ResponseWriter, r *http.Request) {
	req, err := decodePosition(r)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	outcome, err := that.analysis.Evaluate(req.Board, *req.MovesRemaining)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (that *Handlers) BestMove(w http.ResponseWriter, r *http.Request) {
	req, err := decodePosition(r)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	if req.Computer == entity.Empty {
		req.Computer = entity.PlayerTwo
	}

	cell, score, err := that.analysis.BestMove(req.Board, *req.MovesRemaining, req.Computer)
	if errors.Is(err, apperror.ErrGameNotInProgress) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
		return
	}

	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, bestMoveResponse{Row: cell.Row, Col: cell.Col, Score: score})
}

func (that *Handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.CreateSession(r.Context())
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, session)
}

func (that *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

func (that *Handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *Handlers) MakeTurn(w http.ResponseWriter, r *http.Request) {
	var cell entity.Cell
	if err := json.NewDecoder(r.Body).Decode(&cell); err != nil {
		that.writeError(w, r, fmt.Errorf("%w: %w", errBadPayload, err))
		return
	}

	result, err := that.sessions.MakeTurn(r.Context(), chi.URLParam(r, "id"), cell)
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (that *Handlers) ResetBoard(w http.ResponseWriter, r *http.Request) {
	that.command(w, r, that.sessions.ResetBoard)
}

func (that *Handlers) ToggleAI(w http.ResponseWriter, r *http.Request) {
	that.command(w, r, that.sessions.ToggleAI)
}

func (that *Handlers) ToggleScore(w http.ResponseWriter, r *http.Request) {
	that.command(w, r, that.sessions.ToggleScore)
}

func (that *Handlers) command(w http.ResponseWriter, r *http.Request, run func(context.Context, string) (*entity.Session, error)) {
	session, err := run(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, session)
}

var errBadPayload = errors.New("invalid payload")

func decodePosition(r *http.Request) (*positionRequest, error) {
	var req positionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: %w", errBadPayload, err)
	}

	if req.MovesRemaining == nil {
		moves := req.Board.EmptyCount()
		req.MovesRemaining = &moves
	}

	return &req, nil
}

// writeError maps application errors onto status codes. Anything unknown is
// logged and reported as 500 without details.
func (that *Handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"requestID", middleware.GetReqID(r.Context()),
			"error", err,
		)
		writeJSON(w, status, errorResponse{Error: http.StatusText(status)})
		return
	}

	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrGameNotInProgress):
		return http.StatusConflict
	case errors.Is(err, errBadPayload),
		errors.Is(err, entity.ErrInvalidCell),
		errors.Is(err, entity.ErrInvalidMark),
		errors.Is(err, entity.ErrInvalidBoard),
		errors.Is(err, apperror.ErrInconsistentBoard):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(data)
}
