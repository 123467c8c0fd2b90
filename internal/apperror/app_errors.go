package apperror

import "errors"

var (
	ErrCellOccupied      = errors.New("cell is already occupied")
	ErrSessionNotFound   = errors.New("session not found")
	ErrGameNotInProgress = errors.New("game is not in progress")
	ErrInconsistentBoard = errors.New("board does not match the move counter")
)
