package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

func (that *Server) handleNewSession(ctx context.Context, _ *Message) (*usecase.Session, error) {
	session, err := that.sessions.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	that.logger.Info("session created", "sessionID", session.ID)

	return session, nil
}

func (that *Server) handleViewSession(ctx context.Context, msg *Message) (*usecase.Session, error) {
	var req sessionRequest
	if err := decodePayload(msg.Payload, &req); err != nil {
		return nil, err
	}

	return that.sessions.View(ctx, req.SessionID)
}

func (that *Server) handleEndSession(ctx context.Context, msg *Message) (*usecase.Session, error) {
	var req sessionRequest
	if err := decodePayload(msg.Payload, &req); err != nil {
		return nil, err
	}

	if err := that.sessions.End(ctx, req.SessionID); err != nil {
		return nil, err
	}

	return nil, nil
}

func (that *Server) handlePlay(ctx context.Context, msg *Message) (*usecase.Session, error) {
	var req playRequest
	if err := decodePayload(msg.Payload, &req); err != nil {
		return nil, err
	}

	if req.Cell == nil {
		return nil, fmt.Errorf("%w: cell is required", apperror.ErrInvalidPayload)
	}

	return that.sessions.Play(ctx, req.SessionID, *req.Cell)
}

func (that *Server) handleJump(ctx context.Context, msg *Message) (*usecase.Session, error) {
	var req jumpRequest
	if err := decodePayload(msg.Payload, &req); err != nil {
		return nil, err
	}

	if req.Move == nil {
		return nil, fmt.Errorf("%w: move is required", apperror.ErrInvalidPayload)
	}

	return that.sessions.JumpTo(ctx, req.SessionID, *req.Move)
}

func (that *Server) handleToggleOrder(ctx context.Context, msg *Message) (*usecase.Session, error) {
	var req sessionRequest
	if err := decodePayload(msg.Payload, &req); err != nil {
		return nil, err
	}

	return that.sessions.ToggleOrder(ctx, req.SessionID)
}
