package presenter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

var allDecorations = Options{ShowLocations: true, HighlightWinner: true}

func newGame(t *testing.T, cells ...int) *tictactoe.Game {
	t.Helper()

	game := tictactoe.New()
	for _, cell := range cells {
		require.True(t, game.Play(cell), "play %d", cell)
	}

	return game
}

func labels(view View) []string {
	out := make([]string, 0, len(view.Moves))
	for _, move := range view.Moves {
		out = append(out, move.Label)
	}

	return out
}

func TestProject(t *testing.T) {
	t.Run("New game shows the start entry and X to move", func(t *testing.T) {
		// Given: a new game
		game := newGame(t)

		// When: projecting it
		view := Project(game, allDecorations)

		// Then: there is one entry and the status names X
		want := View{
			Status:    "Next player: X",
			State:     tictactoe.Status{Kind: tictactoe.StatusNextPlayer, Player: entity.PlayerX},
			Moves:     []MoveEntry{{Move: 0, Label: "Go to Game Start"}},
			Order:     entity.Ascending,
			SortLabel: "Sort by Descending Order",
		}
		for i := range want.Cells {
			want.Cells[i] = Cell{Index: i}
		}

		if diff := cmp.Diff(want, view); diff != "" {
			t.Errorf("Project() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Move labels carry row and column", func(t *testing.T) {
		// Given: X at the centre, O at the bottom-right
		game := newGame(t, 4, 8)

		// When: projecting with locations
		view := Project(game, allDecorations)

		// Then: past moves are buttons and the current one is plain text
		assert.Equal(t, []string{
			"Go to Game Start",
			"Go to Move #1 (2, 2)",
			"You are viewing Move #2 (3, 3)",
		}, labels(view))
		assert.True(t, view.Moves[2].Current)
		assert.False(t, view.Moves[1].Current)
		assert.Equal(t, &[2]int{2, 2}, view.Moves[1].Location)
	})

	t.Run("Locations are left out when disabled", func(t *testing.T) {
		game := newGame(t, 4, 8)

		view := Project(game, Options{})

		assert.Equal(t, []string{
			"Go to Game Start",
			"Go to Move #1",
			"You are viewing Move #2",
		}, labels(view))
		assert.Nil(t, view.Moves[1].Location)
	})

	t.Run("Winning cells are highlighted", func(t *testing.T) {
		// Given: X wins on the top row
		game := newGame(t, 0, 4, 1, 5, 2)

		// When: projecting with highlight on
		view := Project(game, allDecorations)

		// Then: only the winning line is marked
		assert.Equal(t, "Winner: X", view.Status)
		for _, cell := range view.Cells {
			assert.Equal(t, cell.Index <= 2, cell.Winning, "cell %d", cell.Index)
		}
	})

	t.Run("Winning cells are plain when highlight is disabled", func(t *testing.T) {
		game := newGame(t, 0, 4, 1, 5, 2)

		view := Project(game, Options{ShowLocations: true})

		for _, cell := range view.Cells {
			assert.False(t, cell.Winning)
		}
	})

	t.Run("Draw status", func(t *testing.T) {
		game := newGame(t, 0, 1, 2, 4, 3, 5, 7, 6, 8)

		view := Project(game, allDecorations)

		assert.Equal(t, "It's a draw!", view.Status)
	})

	t.Run("Descending order reverses only the move list", func(t *testing.T) {
		// Given: two moves and descending order
		game := newGame(t, 0, 4)
		ascending := Project(game, allDecorations)
		game.ToggleOrder()

		// When: projecting again
		view := Project(game, allDecorations)

		// Then: the list is reversed and everything else is the same
		assert.Equal(t, []string{
			"You are viewing Move #2 (2, 2)",
			"Go to Move #1 (1, 1)",
			"Go to Game Start",
		}, labels(view))
		assert.Equal(t, "Sort by Ascending Order", view.SortLabel)
		assert.Equal(t, ascending.Cells, view.Cells)
		assert.Equal(t, ascending.Status, view.Status)
		assert.Equal(t, ascending.CurrentMove, view.CurrentMove)
	})

	t.Run("Viewing a past move keeps later entries", func(t *testing.T) {
		game := newGame(t, 0, 4, 8)
		require.NoError(t, game.JumpTo(1))

		view := Project(game, allDecorations)

		assert.Equal(t, []string{
			"Go to Game Start",
			"You are viewing Move #1 (1, 1)",
			"Go to Move #2 (2, 2)",
			"Go to Move #3 (3, 3)",
		}, labels(view))
		assert.Equal(t, "Next player: O", view.Status)
		assert.Equal(t, entity.EmptyCell, view.Cells[4].Mark)
	})
}
