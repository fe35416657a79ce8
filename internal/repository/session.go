package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

type SessionRepository interface {
	Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error
	GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

type dbSession struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionRepository - keeps session snapshots in Redis; every read or write restarts the ttl.
func NewSessionRepository(client *redis.Client, ttl time.Duration) SessionRepository {
	return &dbSession{
		client: client,
		ttl:    ttl,
	}
}

func sessionKey(id string) string {
	return "session:" + id
}

func (that *dbSession) Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error {
	snapshotJSON, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("could not marshal session: %w", err)
	}

	if err = that.client.Set(ctx, sessionKey(id), snapshotJSON, that.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	return nil
}

func (that *dbSession) GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error) {
	response, err := that.client.GetEx(ctx, sessionKey(id), that.ttl).Result()

	if errors.Is(err, redis.Nil) {
		return tictactoe.Snapshot{}, apperror.ErrSessionNotFound
	}

	if err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to get session by id: %w", err)
	}

	var snapshot tictactoe.Snapshot
	if err = json.Unmarshal([]byte(response), &snapshot); err != nil {
		return tictactoe.Snapshot{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return snapshot, nil
}

func (that *dbSession) DeleteByID(ctx context.Context, id string) error {
	deleted, err := that.client.Del(ctx, sessionKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete session by id: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrSessionNotFound
	}

	return nil
}
