package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"

	"github.com/gorilla/websocket"
	"github.com/mitchellh/mapstructure"

	"github.com/rocketscienceinc/tictactoe-history/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-history/internal/usecase"
)

const (
	ActionSessionNew  = "session:new"
	ActionSessionView = "session:view"
	ActionSessionEnd  = "session:end"
	ActionGamePlay    = "game:play"
	ActionGameJump    = "game:jump"
	ActionGameOrder   = "game:order"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string         `json:"action"`
	Payload map[string]any `json:"payload,omitempty"`
}

type ResponsePayload struct {
	Session *usecase.Session `json:"session,omitempty"`
	Error   string           `json:"error,omitempty"`
}

type Response struct {
	Action  string          `json:"action"`
	Payload ResponsePayload `json:"payload"`
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

type playRequest struct {
	SessionID string `json:"session_id"`
	Cell      *int   `json:"cell"`
}

type jumpRequest struct {
	SessionID string `json:"session_id"`
	Move      *int   `json:"move"`
}

var errNotWholeNumber = errors.New("not a whole number")

// decodePayload - copies the loose JSON payload into a typed request, rejecting unknown keys.
func decodePayload(payload map[string]any, target any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  wholeNumberHook,
		TagName:     "json",
		ErrorUnused: true,
		Result:      target,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}

	if err = decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrInvalidPayload, err)
	}

	return nil
}

// wholeNumberHook - JSON numbers arrive as float64; int fields only take exact integers that fit.
func wholeNumberHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.Float64 || to.Kind() != reflect.Int {
		return data, nil
	}

	number, _ := data.(float64)
	if number != math.Trunc(number) || number < math.MinInt64 || number >= math.MaxInt64 {
		return nil, fmt.Errorf("%w: %v", errNotWholeNumber, number)
	}

	return int(number), nil
}

func (that *Server) sendMessage(conn *websocket.Conn, action string, payload ResponsePayload) error {
	if err := conn.WriteJSON(Response{Action: action, Payload: payload}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

func (that *Server) sendError(conn *websocket.Conn, action string, err error) error {
	return that.sendMessage(conn, action, ResponsePayload{Error: errorText(err)})
}

// errorText - message shown to the client; internal failures are not spelled out.
func errorText(err error) string {
	for _, known := range []error{
		apperror.ErrSessionNotFound,
		apperror.ErrSessionIDRequired,
		apperror.ErrOutOfRange,
		apperror.ErrInvalidPayload,
		apperror.ErrUnknownAction,
	} {
		if errors.Is(err, known) {
			return err.Error()
		}
	}

	if isDecodeError(err) {
		return "malformed message"
	}

	return "internal error"
}

func isDecodeError(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr)
}
