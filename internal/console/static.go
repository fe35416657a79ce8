package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
)

// Render - writes a view as plain lines, for output that is not an interactive terminal.
// Colors follow the profile of out; the Ascii profile yields bare text.
func Render(w io.Writer, out *termenv.Output, view presenter.View) error {
	var b strings.Builder

	b.WriteString(view.Status + "\n\n")

	for row := range 3 {
		cells := make([]string, 0, 3)
		for col := range 3 {
			cells = append(cells, renderCell(out, view.Cells[row*3+col]))
		}

		b.WriteString(strings.Join(cells, "|") + "\n")
		if row < 2 {
			b.WriteString("---+---+---\n")
		}
	}

	b.WriteString("\n" + view.SortLabel + "\n")
	for _, move := range view.Moves {
		marker := " "
		if move.Current {
			marker = ">"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, move.Label)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	return nil
}

func renderCell(out *termenv.Output, cell presenter.Cell) string {
	mark := " "
	if cell.Mark != entity.EmptyCell {
		mark = string(cell.Mark)
	}

	style := out.String(" " + mark + " ")
	switch {
	case cell.Winning:
		style = style.Background(out.Color("2")).Foreground(out.Color("0")).Bold()
	case cell.Mark == entity.PlayerX:
		style = style.Foreground(out.Color("6"))
	case cell.Mark == entity.PlayerO:
		style = style.Foreground(out.Color("3"))
	}

	return style.String()
}
