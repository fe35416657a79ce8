package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	t.Run("Returns win for X with the winning line", func(t *testing.T) {
		// Given: a board where X holds the top row
		board := Board{
			PlayerX, PlayerX, PlayerX,
			EmptyCell, PlayerO, PlayerO,
			EmptyCell, EmptyCell, EmptyCell,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: X wins on cells 0, 1, 2
		assert.Equal(t, Result{Kind: Win, Winner: PlayerX, Line: [3]int{0, 1, 2}}, result)
		assert.True(t, result.IsFinished())
	})

	t.Run("Returns win for O on a column", func(t *testing.T) {
		// Given: a board where O holds the middle column
		board := Board{
			PlayerX, PlayerO, EmptyCell,
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerO, PlayerX,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: O wins on cells 1, 4, 7
		assert.Equal(t, Result{Kind: Win, Winner: PlayerO, Line: [3]int{1, 4, 7}}, result)
	})

	t.Run("Returns win on the anti-diagonal", func(t *testing.T) {
		// Given: a board where X holds 2, 4, 6
		board := Board{
			PlayerO, PlayerO, PlayerX,
			EmptyCell, PlayerX, EmptyCell,
			PlayerX, EmptyCell, EmptyCell,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: X wins on the anti-diagonal
		assert.Equal(t, Win, result.Kind)
		assert.Equal(t, [3]int{2, 4, 6}, result.Line)
	})

	t.Run("Returns the first line in scan order when two lines are complete", func(t *testing.T) {
		// Given: a board where X completes both the first row and the first column
		board := Board{
			PlayerX, PlayerX, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerX, PlayerO, PlayerO,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: the row is reported because rows are scanned first
		assert.Equal(t, [3]int{0, 1, 2}, result.Line)
	})

	t.Run("Returns draw when the board is full", func(t *testing.T) {
		// Given: a full board without three in a row
		board := Board{
			PlayerX, PlayerO, PlayerX,
			PlayerX, PlayerO, PlayerO,
			PlayerO, PlayerX, PlayerX,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: the game is a draw
		assert.Equal(t, Result{Kind: Draw}, result)
		assert.True(t, result.IsFinished())
	})

	t.Run("Returns no winner when the game is ongoing", func(t *testing.T) {
		// Given: a board that is still open
		board := Board{
			PlayerX, PlayerO, EmptyCell,
			EmptyCell, PlayerX, EmptyCell,
			EmptyCell, EmptyCell, PlayerO,
		}

		// When: evaluating the board
		result := Evaluate(board)

		// Then: nobody has won yet
		assert.Equal(t, Result{Kind: NoWinner}, result)
		assert.False(t, result.IsFinished())
	})

	t.Run("Is deterministic", func(t *testing.T) {
		board := Board{PlayerO, PlayerO, PlayerO, PlayerX, PlayerX}

		first := Evaluate(board)
		for range 10 {
			assert.Equal(t, first, Evaluate(board))
		}
	})
}

func TestBoard_Valid(t *testing.T) {
	t.Run("Accepts X, O and empty cells", func(t *testing.T) {
		board := Board{PlayerX, PlayerO}

		require.NoError(t, board.Valid())
	})

	t.Run("Rejects unknown marks", func(t *testing.T) {
		board := Board{PlayerX, "Z"}

		err := board.Valid()

		require.ErrorIs(t, err, ErrInvalidMark)
		assert.Contains(t, err.Error(), "cell 1")
	})
}

func TestLocation(t *testing.T) {
	t.Run("Maps cells to 1-based row and column", func(t *testing.T) {
		cases := map[int][2]int{
			0: {1, 1},
			2: {1, 3},
			4: {2, 2},
			6: {3, 1},
			8: {3, 3},
		}

		for cell, want := range cases {
			row, col, err := Location(cell)
			require.NoError(t, err)
			assert.Equal(t, want, [2]int{row, col}, "cell %d", cell)
		}
	})

	t.Run("Rejects cells outside the board", func(t *testing.T) {
		_, _, err := Location(9)
		require.ErrorIs(t, err, ErrInvalidCell)

		_, _, err = Location(-1)
		require.ErrorIs(t, err, ErrInvalidCell)
	})
}

func TestOrder_Toggle(t *testing.T) {
	assert.Equal(t, Descending, Ascending.Toggle())
	assert.Equal(t, Ascending, Descending.Toggle())
	assert.True(t, Ascending.Valid())
	assert.False(t, Order("sideways").Valid())
}

func TestMark_Opponent(t *testing.T) {
	assert.Equal(t, PlayerO, PlayerX.Opponent())
	assert.Equal(t, PlayerX, PlayerO.Opponent())
}
