package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/presenter"
	"github.com/rocketscienceinc/tictactoe-history/internal/tictactoe"
)

// Session - a session id with the current projection of its game.
type Session struct {
	ID   string         `json:"id"`
	View presenter.View `json:"view"`
}

type SessionUseCase interface {
	Start(ctx context.Context) (*Session, error)
	View(ctx context.Context, id string) (*Session, error)

	Play(ctx context.Context, id string, cell int) (*Session, error)
	JumpTo(ctx context.Context, id string, move int) (*Session, error)
	ToggleOrder(ctx context.Context, id string) (*Session, error)

	End(ctx context.Context, id string) error
}

type sessionRepo interface {
	Save(ctx context.Context, id string, snapshot tictactoe.Snapshot) error
	GetByID(ctx context.Context, id string) (tictactoe.Snapshot, error)
	DeleteByID(ctx context.Context, id string) error
}

type sessionUseCase struct {
	logger *slog.Logger
	repo   sessionRepo
	opts   presenter.Options
	locks  *keyedMutex
}

func NewSessionUseCase(logger *slog.Logger, repo sessionRepo, opts presenter.Options) SessionUseCase {
	return &sessionUseCase{
		logger: logger.With("component", "session"),
		repo:   repo,
		opts:   opts,
		locks:  newKeyedMutex(),
	}
}

func (that *sessionUseCase) Start(ctx context.Context) (*Session, error) {
	id := uuid.NewString()
	game := tictactoe.New()

	if err := that.repo.Save(ctx, id, game.Snapshot()); err != nil {
		return nil, fmt.Errorf("failed to save new session: %w", err)
	}

	that.logger.Info("session started", "sessionID", id)

	return that.session(id, game), nil
}

func (that *sessionUseCase) View(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, apperror.ErrSessionIDRequired
	}

	unlock := that.locks.Lock(id)
	defer unlock()

	game, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	return that.session(id, game), nil
}

func (that *sessionUseCase) Play(ctx context.Context, id string, cell int) (*Session, error) {
	log := that.logger.With("method", "Play", "sessionID", id, "cell", cell)

	return that.dispatch(ctx, id, func(game *tictactoe.Game) (bool, error) {
		if !game.Play(cell) {
			log.Debug("play ignored", "currentMove", game.CurrentMove())
			return false, nil
		}

		return true, nil
	})
}

func (that *sessionUseCase) JumpTo(ctx context.Context, id string, move int) (*Session, error) {
	return that.dispatch(ctx, id, func(game *tictactoe.Game) (bool, error) {
		if err := game.JumpTo(move); err != nil {
			return false, fmt.Errorf("failed to jump: %w", err)
		}

		return true, nil
	})
}

func (that *sessionUseCase) ToggleOrder(ctx context.Context, id string) (*Session, error) {
	return that.dispatch(ctx, id, func(game *tictactoe.Game) (bool, error) {
		game.ToggleOrder()
		return true, nil
	})
}

func (that *sessionUseCase) End(ctx context.Context, id string) error {
	if id == "" {
		return apperror.ErrSessionIDRequired
	}

	unlock := that.locks.Lock(id)
	defer unlock()

	if err := that.repo.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	that.logger.Info("session ended", "sessionID", id)

	return nil
}

// dispatch - applies one intent to the stored game. Intents on one session never interleave.
func (that *sessionUseCase) dispatch(ctx context.Context, id string, intent func(*tictactoe.Game) (bool, error)) (*Session, error) {
	if id == "" {
		return nil, apperror.ErrSessionIDRequired
	}

	unlock := that.locks.Lock(id)
	defer unlock()

	game, err := that.load(ctx, id)
	if err != nil {
		return nil, err
	}

	changed, err := intent(game)
	if err != nil {
		return nil, err
	}

	if changed {
		if err = that.repo.Save(ctx, id, game.Snapshot()); err != nil {
			return nil, fmt.Errorf("failed to save session: %w", err)
		}
	}

	return that.session(id, game), nil
}

func (that *sessionUseCase) load(ctx context.Context, id string) (*tictactoe.Game, error) {
	snapshot, err := that.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	game, err := tictactoe.Restore(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to restore session: %w", err)
	}

	return game, nil
}

func (that *sessionUseCase) session(id string, game *tictactoe.Game) *Session {
	return &Session{
		ID:   id,
		View: presenter.Project(game, that.opts),
	}
}
