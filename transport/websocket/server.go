package websocket

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const shutdownTimeout = 5 * time.Second

type sessionUseCase interface {
	Start(ctx context.Context) (*usecase.Session, error)
	View(ctx context.Context, id string) (*usecase.Session, error)

	Play(ctx context.Context, id string, cell int) (*usecase.Session, error)
	JumpTo(ctx context.Context, id string, move int) (*usecase.Session, error)
	ToggleOrder(ctx context.Context, id string) (*usecase.Session, error)

	End(ctx context.Context, id string) error
}

type handlerFunc func(ctx context.Context, msg *Message) (*usecase.Session, error)

type Server struct {
	logger   *slog.Logger
	sessions sessionUseCase
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, sessions sessionUseCase) *Server {
	server := &Server{
		logger:   logger.With("component", "websocket"),
		sessions: sessions,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// the board is served from another origin during development
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionSessionNew] = server.handleNewSession
	server.handlers[ActionSessionView] = server.handleViewSession
	server.handlers[ActionSessionEnd] = server.handleEndSession
	server.handlers[ActionGamePlay] = server.handlePlay
	server.handlers[ActionGameJump] = server.handleJump
	server.handlers[ActionGameOrder] = server.handleToggleOrder

	return server
}

func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server and stops it when ctx is done.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: that.Handler(ctx),
		// hijacked connections keep server deadlines, so only the handshake is bounded
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "remote", req.RemoteAddr)

	if err = that.handleMessages(ctx, conn); err != nil {
		log.Info("WebSocket connection closed", "reason", err)
	}
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if isDecodeError(err) {
				log.Error("failed to unmarshal message", "error", err)
				if err = that.sendError(conn, "", err); err != nil {
					return err
				}
				continue
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Error("unknown action", "action", message.Action)
			if err := that.sendError(conn, message.Action, fmt.Errorf("%w: %q", apperror.ErrUnknownAction, message.Action)); err != nil {
				return err
			}
			continue
		}

		session, err := handler(ctx, &message)
		if err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
			if err = that.sendError(conn, message.Action, err); err != nil {
				return err
			}
			continue
		}

		if err = that.sendMessage(conn, message.Action, ResponsePayload{Session: session}); err != nil {
			return err
		}
	}
}
