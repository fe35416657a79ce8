package apperror

import "errors"

var (
	ErrOutOfRange         = errors.New("move index out of range")
	ErrSessionNotFound    = errors.New("session not found")
	ErrCorruptedSnapshot  = errors.New("corrupted game snapshot")
	ErrUnknownAction      = errors.New("unknown action")
	ErrInvalidPayload     = errors.New("invalid payload")
	ErrSessionIDRequired  = errors.New("session id is required")
	ErrUnknownStorageType = errors.New("unknown storage type")
)
