package entity

import (
	"errors"
	"fmt"
)

type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	EmptyCell Mark = ""
)

const BoardSize = 9

type Board [BoardSize]Mark

type ResultKind string

const (
	NoWinner ResultKind = "none"
	Draw     ResultKind = "draw"
	Win      ResultKind = "win"
)

type Order string

const (
	Ascending  Order = "ascending"
	Descending Order = "descending"
)

var (
	ErrInvalidCell = errors.New("invalid cell index")
	ErrInvalidMark = errors.New("invalid mark")

	// WinCombos are scanned in this order; the first full line wins.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Result - outcome of evaluating a board.
type Result struct {
	Kind   ResultKind `json:"kind"`
	Winner Mark       `json:"winner,omitempty"`
	Line   [3]int     `json:"line,omitempty"`
}

// MoveRecord - board snapshot and the cell changed to reach it. Cell is nil for the initial record.
type MoveRecord struct {
	Board Board `json:"board"`
	Cell  *int  `json:"cell,omitempty"`
}

// Evaluate - reports the winner with its line, a draw, or no winner yet.
func Evaluate(board Board) Result {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return Result{Kind: Win, Winner: a, Line: combo}
		}
	}

	// the game will continue until all the squares are full
	if board.HasEmpty() {
		return Result{Kind: NoWinner}
	}

	return Result{Kind: Draw}
}

func (that Result) IsFinished() bool {
	return that.Kind != NoWinner
}

func (that Board) HasEmpty() bool {
	for _, cell := range that {
		if cell == EmptyCell {
			return true
		}
	}

	return false
}

// Valid - checks that every cell holds X, O or nothing.
func (that Board) Valid() error {
	for i, cell := range that {
		switch cell {
		case PlayerX, PlayerO, EmptyCell:
		default:
			return fmt.Errorf("%w: %q at cell %d", ErrInvalidMark, cell, i)
		}
	}

	return nil
}

func (that Mark) Opponent() Mark {
	if that == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (that Order) Toggle() Order {
	if that == Descending {
		return Ascending
	}
	return Descending
}

func (that Order) Valid() bool {
	return that == Ascending || that == Descending
}

// Location - 1-based row and column of a cell.
func Location(cell int) (int, int, error) {
	if !IsValidCell(cell) {
		return 0, 0, fmt.Errorf("%w: cell %d", ErrInvalidCell, cell)
	}

	return cell/3 + 1, cell%3 + 1, nil
}

func IsValidCell(cell int) bool {
	return cell >= 0 && cell < BoardSize
}
