package entity

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
)

// Session is the state of one player's table: board, turn and score counters.
type Session struct {
	ID              string    `json:"id"`
	Board           Board     `json:"board"`
	AIActive        bool      `json:"ai_active"`
	ScoreOpen       bool      `json:"score_open"`
	PlayerOneTurn   bool      `json:"player_one_turn"`
	TurnsLeft       int       `json:"turns_left"`
	PlayerOnePoints int       `json:"player_one_points"`
	PlayerTwoPoints int       `json:"player_two_points"`
	LastOutcome     *Outcome  `json:"last_outcome,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:            id,
		Board:         Board{},
		PlayerOneTurn: true, // player one always opens
		TurnsLeft:     TotalMoves,
	}
}

// CurrentMark returns the mark the human player places next. In AI mode the
// human is always player one.
func (that *Session) CurrentMark() Mark {
	if that.AIActive || that.PlayerOneTurn {
		return PlayerOne
	}
	return PlayerTwo
}

// Place puts mark on cell and consumes one turn.
func (that *Session) Place(cell Cell, mark Mark) error {
	if !cell.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidCell, cell)
	}

	if !that.Board.IsEmpty(cell) {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, cell)
	}

	that.Board.Set(cell, mark)
	that.TurnsLeft--

	return nil
}

func (that *Session) PassTurn() {
	that.PlayerOneTurn = !that.PlayerOneTurn
}

// Finish records a terminal outcome, credits the winner and clears the board
// for the next game.
func (that *Session) Finish(outcome Outcome) {
	that.LastOutcome = &outcome

	if outcome.IsWin() {
		switch outcome.Winner {
		case PlayerOne:
			that.PlayerOnePoints++
		case PlayerTwo:
			that.PlayerTwoPoints++
		}
	}

	that.ResetBoard()
}

// ResetBoard clears the board. The turn flag is kept.
func (that *Session) ResetBoard() {
	that.Board.Clear()
	that.TurnsLeft = TotalMoves
}

// ToggleAI switches between two-player and computer-opponent mode and starts
// a fresh board.
func (that *Session) ToggleAI() {
	that.AIActive = !that.AIActive
	that.ResetBoard()
}

func (that *Session) ToggleScore() {
	that.ScoreOpen = !that.ScoreOpen
}

// TurnResult reports one played turn: the human move, the computer reply if
// any, and how the game stands afterwards.
type TurnResult struct {
	Session      *Session `json:"session"`
	Move         Cell     `json:"move"`
	Mark         Mark     `json:"mark"`
	ComputerMove *Cell    `json:"computer_move,omitempty"`
	Outcome      Outcome  `json:"outcome"`
	// FinalBoard is the board as it stood when the game ended, before the
	// session cleared it for the next game.
	FinalBoard *Board `json:"final_board,omitempty"`
}
