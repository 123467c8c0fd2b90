package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	BoardSize  = 3
	TotalMoves = BoardSize * BoardSize
)

const (
	Empty     Mark = ""
	PlayerOne Mark = "X"
	PlayerTwo Mark = "O"
)

const (
	StatusInProgress = "in_progress"
	StatusWin        = "win"
	StatusTie        = "tie"
)

var (
	ErrInvalidMark  = errors.New("invalid mark")
	ErrInvalidCell  = errors.New("invalid cell")
	ErrInvalidBoard = errors.New("invalid board")
)

// Mark is the content of a single cell.
type Mark string

func (that Mark) Valid() bool {
	return that == Empty || that == PlayerOne || that == PlayerTwo
}

// Opponent returns the mark of the other player. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	default:
		return Empty
	}
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal mark: %w", err)
	}

	mark := Mark(raw)
	if !mark.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMark, raw)
	}

	*that = mark
	return nil
}

// Cell addresses a square of the board by row and column.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Cell) Valid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Cell) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is a 3x3 grid indexed as [row][col].
type Board [BoardSize][BoardSize]Mark

func (that *Board) At(cell Cell) Mark {
	return that[cell.Row][cell.Col]
}

func (that *Board) Set(cell Cell, mark Mark) {
	that[cell.Row][cell.Col] = mark
}

func (that *Board) IsEmpty(cell Cell) bool {
	return that[cell.Row][cell.Col] == Empty
}

// EmptyCells lists free cells in row-major order.
func (that *Board) EmptyCells() []Cell {
	cells := make([]Cell, 0, TotalMoves)
	for row := range BoardSize {
		for col := range BoardSize {
			if that[row][col] == Empty {
				cells = append(cells, Cell{Row: row, Col: col})
			}
		}
	}
	return cells
}

func (that *Board) EmptyCount() int {
	count := 0
	for row := range BoardSize {
		for col := range BoardSize {
			if that[row][col] == Empty {
				count++
			}
		}
	}
	return count
}

func (that *Board) Clear() {
	*that = Board{}
}

// UnmarshalJSON accepts exactly BoardSize rows of BoardSize marks. Null,
// short and ragged grids are rejected instead of being padded with Empty.
func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Mark
	if err := json.Unmarshal(data, &rows); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	if rows == nil {
		return fmt.Errorf("%w: board is null", ErrInvalidBoard)
	}

	if len(rows) != BoardSize {
		return fmt.Errorf("%w: %d rows, want %d", ErrInvalidBoard, len(rows), BoardSize)
	}

	var board Board
	for row, marks := range rows {
		if len(marks) != BoardSize {
			return fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidBoard, row, len(marks), BoardSize)
		}
		copy(board[row][:], marks)
	}

	*that = board
	return nil
}

func (that *Board) Validate() error {
	for row := range BoardSize {
		for col := range BoardSize {
			if !that[row][col].Valid() {
				return fmt.Errorf("%w: %q at (%d,%d)", ErrInvalidMark, that[row][col], row, col)
			}
		}
	}
	return nil
}

// Outcome classifies a board position.
type Outcome struct {
	Status string `json:"status"`
	Winner Mark   `json:"winner,omitempty"`
}

func InProgress() Outcome {
	return Outcome{Status: StatusInProgress}
}

func Win(mark Mark) Outcome {
	return Outcome{Status: StatusWin, Winner: mark}
}

func Tie() Outcome {
	return Outcome{Status: StatusTie}
}

func (that Outcome) IsTerminal() bool {
	return that.Status == StatusWin || that.Status == StatusTie
}

func (that Outcome) IsWin() bool {
	return that.Status == StatusWin
}

func (that Outcome) IsTie() bool {
	return that.Status == StatusTie
}
