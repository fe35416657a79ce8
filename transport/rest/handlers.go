package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const maxBodyBytes = 1 << 10

type sessionUseCase interface {
	Start(ctx context.Context) (*usecase.Session, error)
	View(ctx context.Context, id string) (*usecase.Session, error)

	Play(ctx context.Context, id string, cell int) (*usecase.Session, error)
	JumpTo(ctx context.Context, id string, move int) (*usecase.Session, error)
	ToggleOrder(ctx context.Context, id string) (*usecase.Session, error)

	End(ctx context.Context, id string) error
}

type Handlers interface {
	PingHandler(w http.ResponseWriter, _ *http.Request)

	CreateSession(w http.ResponseWriter, r *http.Request)
	GetSession(w http.ResponseWriter, r *http.Request)
	DeleteSession(w http.ResponseWriter, r *http.Request)

	Play(w http.ResponseWriter, r *http.Request)
	JumpTo(w http.ResponseWriter, r *http.Request)
	ToggleOrder(w http.ResponseWriter, r *http.Request)
}

type playRequest struct {
	Cell *int `json:"cell"`
}

type jumpRequest struct {
	Move *int `json:"move"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger   *slog.Logger
	sessions sessionUseCase
}

func NewHandlers(logger *slog.Logger, sessions sessionUseCase) Handlers {
	return &handlers{
		logger:   logger.With("component", "rest"),
		sessions: sessions,
	}
}

func (that *handlers) PingHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *handlers) CreateSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.Start(r.Context())
	if err != nil {
		that.writeError(w, "CreateSession", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, session)
}

func (that *handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.View(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "GetSession", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.sessions.End(r.Context(), r.PathValue("id")); err != nil {
		that.writeError(w, "DeleteSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *handlers) Play(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, "Play", err)
		return
	}

	if req.Cell == nil {
		that.writeError(w, "Play", fmt.Errorf("%w: cell is required", apperror.ErrInvalidPayload))
		return
	}

	session, err := that.sessions.Play(r.Context(), r.PathValue("id"), *req.Cell)
	if err != nil {
		that.writeError(w, "Play", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) JumpTo(w http.ResponseWriter, r *http.Request) {
	var req jumpRequest
	if err := decodeBody(w, r, &req); err != nil {
		that.writeError(w, "JumpTo", err)
		return
	}

	if req.Move == nil {
		that.writeError(w, "JumpTo", fmt.Errorf("%w: move is required", apperror.ErrInvalidPayload))
		return
	}

	session, err := that.sessions.JumpTo(r.Context(), r.PathValue("id"), *req.Move)
	if err != nil {
		that.writeError(w, "JumpTo", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func (that *handlers) ToggleOrder(w http.ResponseWriter, r *http.Request) {
	session, err := that.sessions.ToggleOrder(r.Context(), r.PathValue("id"))
	if err != nil {
		that.writeError(w, "ToggleOrder", err)
		return
	}

	that.writeJSON(w, http.StatusOK, session)
}

func decodeBody(w http.ResponseWriter, r *http.Request, target any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(target); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	return nil
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status, text := statusOf(err)

	log := that.logger.With("method", method)
	if status == http.StatusInternalServerError {
		log.Error("request failed", "error", err)
	} else {
		log.Debug("request rejected", "status", status, "error", err)
	}

	that.writeJSON(w, status, errorResponse{Error: text})
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, apperror.ErrSessionNotFound):
		return http.StatusNotFound, apperror.ErrSessionNotFound.Error()
	case errors.Is(err, apperror.ErrOutOfRange):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, apperror.ErrInvalidPayload), errors.Is(err, apperror.ErrSessionIDRequired):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}
