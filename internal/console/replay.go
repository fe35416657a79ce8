package console

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

var ErrInvalidMoves = errors.New("invalid move list")

// Replay - plays a comma separated list of cells on a new game. Ignored plays are returned, not treated as errors.
func Replay(moves string) (*tictactoe.Game, []int, error) {
	game := tictactoe.New()

	moves = strings.TrimSpace(moves)
	if moves == "" {
		return game, nil, nil
	}

	var ignored []int
	for _, field := range strings.Split(moves, ",") {
		cell, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q", ErrInvalidMoves, field)
		}

		if !game.Play(cell) {
			ignored = append(ignored, cell)
		}
	}

	return game, ignored, nil
}
