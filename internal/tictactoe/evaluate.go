package tictactoe

import "github.com/rocketscienceinc/tictactoe-minimax/internal/entity"

// lines lists every winning line: rows, columns, then both diagonals.
var lines = [8][3]entity.Cell{
	{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 0, Col: 2}},
	{{Row: 1, Col: 0}, {Row: 1, Col: 1}, {Row: 1, Col: 2}},
	{{Row: 2, Col: 0}, {Row: 2, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 0}, {Row: 2, Col: 0}},
	{{Row: 0, Col: 1}, {Row: 1, Col: 1}, {Row: 2, Col: 1}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 2}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 2, Col: 2}},
	{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 0}},
}

// Evaluate classifies the board. A completed line wins even when no moves are
// left; otherwise the game is a tie once movesRemaining reaches zero.
func Evaluate(board entity.Board, movesRemaining int) entity.Outcome {
	return evaluate(&board, movesRemaining)
}

func evaluate(board *entity.Board, movesRemaining int) entity.Outcome {
	if winner := lineWinner(board); winner != entity.Empty {
		return entity.Win(winner)
	}

	if movesRemaining == 0 {
		return entity.Tie()
	}

	return entity.InProgress()
}

func lineWinner(board *entity.Board) entity.Mark {
	for _, line := range lines {
		a, b, c := board.At(line[0]), board.At(line[1]), board.At(line[2])
		if a != entity.Empty && a == b && b == c {
			return a
		}
	}
	return entity.Empty
}
