package tictactoe

import (
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

// Snapshot - serialisable form of a Game.
type Snapshot struct {
	History     []entity.MoveRecord `json:"history"`
	CurrentMove int                 `json:"current_move"`
	Order       entity.Order        `json:"order"`
}

func (that *Game) Snapshot() Snapshot {
	return Snapshot{
		History:     that.History(),
		CurrentMove: that.currentMove,
		Order:       that.order,
	}
}

// Restore - rebuilds a Game from a snapshot, rejecting any history that legal play could not produce.
func Restore(snapshot Snapshot) (*Game, error) {
	if err := validateHistory(snapshot.History); err != nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrCorruptedSnapshot, err)
	}

	if snapshot.CurrentMove < 0 || snapshot.CurrentMove >= len(snapshot.History) {
		return nil, fmt.Errorf("%w: current move %d out of %d records",
			apperror.ErrCorruptedSnapshot, snapshot.CurrentMove, len(snapshot.History))
	}

	if !snapshot.Order.Valid() {
		return nil, fmt.Errorf("%w: order %q", apperror.ErrCorruptedSnapshot, snapshot.Order)
	}

	game := &Game{
		currentMove: snapshot.CurrentMove,
		order:       snapshot.Order,
	}
	for _, record := range snapshot.History {
		game.history = append(game.history, entity.MoveRecord{Board: record.Board, Cell: copyCell(record.Cell)})
	}

	return game, nil
}

func validateHistory(history []entity.MoveRecord) error {
	if len(history) == 0 || len(history) > entity.BoardSize+1 {
		return fmt.Errorf("history length %d", len(history))
	}

	if history[0].Board != (entity.Board{}) || history[0].Cell != nil {
		return errors.New("first record is not an empty board")
	}

	mark := entity.PlayerX
	for i := 1; i < len(history); i, mark = i+1, mark.Opponent() {
		prev, record := history[i-1], history[i]

		if err := record.Board.Valid(); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}

		if record.Cell == nil || !entity.IsValidCell(*record.Cell) {
			return fmt.Errorf("record %d has no valid changed cell", i)
		}

		if entity.Evaluate(prev.Board).IsFinished() {
			return fmt.Errorf("record %d follows a finished game", i)
		}

		cell := *record.Cell

		expected := prev.Board
		if expected[cell] != entity.EmptyCell {
			return fmt.Errorf("record %d changes occupied cell %d", i, cell)
		}
		expected[cell] = mark

		if record.Board != expected {
			return fmt.Errorf("record %d does not differ from record %d by cell %d", i, i-1, cell)
		}
	}

	return nil
}
