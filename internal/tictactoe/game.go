package tictactoe

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

type StatusKind string

const (
	StatusWinner     StatusKind = "winner"
	StatusDraw       StatusKind = "draw"
	StatusNextPlayer StatusKind = "next_player"
)

// Status - what the status line shows: the winner, a draw, or who moves next.
type Status struct {
	Kind   StatusKind  `json:"kind"`
	Player entity.Mark `json:"player,omitempty"`
}

// Move - summary of one history record.
type Move struct {
	Number int  `json:"number"`
	Cell   *int `json:"cell,omitempty"`
}

// Game - move history with a movable current pointer.
// Selecting a past move keeps later records until the next play truncates them.
type Game struct {
	history     []entity.MoveRecord
	currentMove int
	order       entity.Order
}

func New() *Game {
	return &Game{
		history: []entity.MoveRecord{{}},
		order:   entity.Ascending,
	}
}

// Play - puts the active player's mark into the cell.
// Returns false without touching the game when the cell is out of range or taken, or the game is over.
func (that *Game) Play(cell int) bool {
	if !entity.IsValidCell(cell) {
		return false
	}

	current := that.CurrentBoard()
	if current[cell] != entity.EmptyCell {
		return false
	}

	if entity.Evaluate(current).IsFinished() {
		return false
	}

	next := current
	next[cell] = that.ActivePlayer()

	that.history = append(that.history[:that.currentMove+1], entity.MoveRecord{
		Board: next,
		Cell:  &cell,
	})
	that.currentMove = len(that.history) - 1

	return true
}

// JumpTo - makes a recorded move current. History is left as is.
func (that *Game) JumpTo(move int) error {
	if move < 0 || move >= len(that.history) {
		return fmt.Errorf("%w: move %d, history has %d records", apperror.ErrOutOfRange, move, len(that.history))
	}

	that.currentMove = move

	return nil
}

func (that *Game) ToggleOrder() {
	that.order = that.order.Toggle()
}

// ActivePlayer - X moves on even moves, O on odd.
func (that *Game) ActivePlayer() entity.Mark {
	if that.currentMove%2 == 0 {
		return entity.PlayerX
	}
	return entity.PlayerO
}

func (that *Game) CurrentMove() int {
	return that.currentMove
}

func (that *Game) CurrentBoard() entity.Board {
	return that.history[that.currentMove].Board
}

func (that *Game) Order() entity.Order {
	return that.order
}

func (that *Game) Result() entity.Result {
	return entity.Evaluate(that.CurrentBoard())
}

func (that *Game) Status() Status {
	switch result := that.Result(); result.Kind {
	case entity.Win:
		return Status{Kind: StatusWinner, Player: result.Winner}
	case entity.Draw:
		return Status{Kind: StatusDraw}
	default:
		return Status{Kind: StatusNextPlayer, Player: that.ActivePlayer()}
	}
}

func (that *Game) WinningLine() ([3]int, bool) {
	result := that.Result()
	if result.Kind != entity.Win {
		return [3]int{}, false
	}

	return result.Line, true
}

// History - copy of all records in play order, regardless of the display order.
func (that *Game) History() []entity.MoveRecord {
	history := make([]entity.MoveRecord, len(that.history))
	for i, record := range that.history {
		history[i] = entity.MoveRecord{Board: record.Board, Cell: copyCell(record.Cell)}
	}

	return history
}

func (that *Game) Moves() []Move {
	moves := make([]Move, len(that.history))
	for i, record := range that.history {
		moves[i] = Move{Number: i, Cell: copyCell(record.Cell)}
	}

	return moves
}

func copyCell(cell *int) *int {
	if cell == nil {
		return nil
	}

	c := *cell

	return &c
}
