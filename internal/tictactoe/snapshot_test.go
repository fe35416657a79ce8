package tictactoe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/entity"
)

func intPtr(v int) *int {
	return &v
}

func TestRestore(t *testing.T) {
	t.Run("Restores a game that went back in time", func(t *testing.T) {
		// Given: a game with a past move selected and descending order
		game := New()
		playAll(t, game, 0, 4, 2)
		require.NoError(t, game.JumpTo(1))
		game.ToggleOrder()

		// When: the snapshot goes through JSON and back
		data, err := json.Marshal(game.Snapshot())
		require.NoError(t, err)

		var snapshot Snapshot
		require.NoError(t, json.Unmarshal(data, &snapshot))

		restored, err := Restore(snapshot)

		// Then: the restored game behaves like the original
		require.NoError(t, err)
		assert.Equal(t, game.Snapshot(), restored.Snapshot())
		assert.Equal(t, entity.PlayerO, restored.ActivePlayer())
		assert.True(t, restored.Play(8))
		assert.Len(t, restored.History(), 3)
	})

	t.Run("Rejects corrupted snapshots", func(t *testing.T) {
		cases := map[string]Snapshot{
			"empty history": {
				Order: entity.Ascending,
			},
			"first record not empty": {
				History: []entity.MoveRecord{{Board: entity.Board{entity.PlayerX}}},
				Order:   entity.Ascending,
			},
			"missing cell": {
				History: []entity.MoveRecord{{}, {Board: entity.Board{entity.PlayerX}}},
				Order:   entity.Ascending,
			},
			"wrong mark": {
				History: []entity.MoveRecord{{}, {Board: entity.Board{entity.PlayerO}, Cell: intPtr(0)}},
				Order:   entity.Ascending,
			},
			"same mark twice": {
				History: []entity.MoveRecord{
					{},
					{Board: entity.Board{entity.PlayerX}, Cell: intPtr(0)},
					{Board: entity.Board{entity.PlayerX, entity.PlayerX}, Cell: intPtr(1)},
				},
				Order: entity.Ascending,
			},
			"cell does not match board": {
				History: []entity.MoveRecord{{}, {Board: entity.Board{entity.PlayerX}, Cell: intPtr(3)}},
				Order:   entity.Ascending,
			},
			"two cells changed": {
				History: []entity.MoveRecord{{}, {Board: entity.Board{entity.PlayerX, entity.PlayerX}, Cell: intPtr(0)}},
				Order:   entity.Ascending,
			},
			"unknown mark": {
				History: []entity.MoveRecord{{}, {Board: entity.Board{"Z"}, Cell: intPtr(0)}},
				Order:   entity.Ascending,
			},
			"current move out of range": {
				History:     []entity.MoveRecord{{}},
				CurrentMove: 1,
				Order:       entity.Ascending,
			},
			"unknown order": {
				History: []entity.MoveRecord{{}},
				Order:   "sideways",
			},
		}

		for name, snapshot := range cases {
			t.Run(name, func(t *testing.T) {
				_, err := Restore(snapshot)

				require.ErrorIs(t, err, apperror.ErrCorruptedSnapshot)
			})
		}
	})

	t.Run("Rejects moves after a finished game", func(t *testing.T) {
		// Given: a snapshot of a won game with an extra move appended
		game := New()
		playAll(t, game, 0, 4, 1, 5, 2)
		snapshot := game.Snapshot()

		extra := snapshot.History[len(snapshot.History)-1].Board
		extra[3] = entity.PlayerO
		snapshot.History = append(snapshot.History, entity.MoveRecord{Board: extra, Cell: intPtr(3)})

		// When: restoring it
		_, err := Restore(snapshot)

		// Then: the snapshot is rejected
		require.ErrorIs(t, err, apperror.ErrCorruptedSnapshot)
	})
}
