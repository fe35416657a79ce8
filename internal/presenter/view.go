// Package presenter projects a game onto what a screen shows: the grid, the status line and the move list.
package presenter

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

// Options - optional decorations layered on the same game.
type Options struct {
	ShowLocations   bool
	HighlightWinner bool
}

type Cell struct {
	Index   int         `json:"index"`
	Mark    entity.Mark `json:"mark"`
	Winning bool        `json:"winning,omitempty"`
}

type MoveEntry struct {
	Move     int     `json:"move"`
	Label    string  `json:"label"`
	Current  bool    `json:"current,omitempty"`
	Location *[2]int `json:"location,omitempty"`
}

type View struct {
	Status      string                 `json:"status"`
	State       tictactoe.Status       `json:"state"`
	Cells       [entity.BoardSize]Cell `json:"cells"`
	Moves       []MoveEntry            `json:"moves"`
	CurrentMove int                    `json:"current_move"`
	Order       entity.Order           `json:"order"`
	SortLabel   string                 `json:"sort_label"`
}

type game interface {
	CurrentBoard() entity.Board
	CurrentMove() int
	Status() tictactoe.Status
	WinningLine() ([3]int, bool)
	Moves() []tictactoe.Move
	Order() entity.Order
}

// Project - builds the view of a game. The game is only read.
func Project(g game, opts Options) View {
	view := View{
		Status:      StatusText(g.Status()),
		State:       g.Status(),
		CurrentMove: g.CurrentMove(),
		Order:       g.Order(),
		SortLabel:   SortLabel(g.Order()),
	}

	board := g.CurrentBoard()
	line, won := g.WinningLine()
	for i, mark := range board {
		view.Cells[i] = Cell{Index: i, Mark: mark}
	}

	if won && opts.HighlightWinner {
		for _, i := range line {
			view.Cells[i].Winning = true
		}
	}

	moves := g.Moves()
	view.Moves = make([]MoveEntry, 0, len(moves))
	for _, move := range moves {
		view.Moves = append(view.Moves, moveEntry(move, g.CurrentMove(), opts))
	}

	if g.Order() == entity.Descending {
		for i, j := 0, len(view.Moves)-1; i < j; i, j = i+1, j-1 {
			view.Moves[i], view.Moves[j] = view.Moves[j], view.Moves[i]
		}
	}

	return view
}

func StatusText(status tictactoe.Status) string {
	switch status.Kind {
	case tictactoe.StatusWinner:
		return "Winner: " + string(status.Player)
	case tictactoe.StatusDraw:
		return "It's a draw!"
	default:
		return "Next player: " + string(status.Player)
	}
}

// SortLabel - text of the button that flips the move list, naming the order it switches to.
func SortLabel(order entity.Order) string {
	if order == entity.Descending {
		return "Sort by Ascending Order"
	}
	return "Sort by Descending Order"
}

func moveEntry(move tictactoe.Move, current int, opts Options) MoveEntry {
	// the start entry stays a button even while it is current
	entry := MoveEntry{Move: move.Number, Current: move.Number > 0 && move.Number == current}

	switch {
	case move.Number == 0:
		entry.Label = "Go to Game Start"
	case entry.Current:
		entry.Label = fmt.Sprintf("You are viewing Move #%d", move.Number)
	default:
		entry.Label = fmt.Sprintf("Go to Move #%d", move.Number)
	}

	if move.Cell == nil {
		return entry
	}

	row, col, err := entity.Location(*move.Cell)
	if err != nil {
		return entry
	}

	if opts.ShowLocations {
		entry.Location = &[2]int{row, col}
		entry.Label += fmt.Sprintf(" (%d, %d)", row, col)
	}

	return entry
}
