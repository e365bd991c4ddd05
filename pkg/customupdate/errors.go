package customupdate

import (
	"errors"

	"custom-updater/internal/remote"
)

var (
	// ErrInvalidAccessToken is returned when there's no active gaming session.
	ErrInvalidAccessToken = errors.New("invalid access token: no active gaming session")
	// ErrContentParsing is returned when the content can't be sent as request parameters.
	ErrContentParsing = remote.ErrContentParsing
	// ErrDecoding is passed to the completion when the reply has an unexpected shape.
	ErrDecoding = errors.New("failed to decode custom update reply")
)

// ServerError wraps the error the transport failed with.
type ServerError struct {
	Err error
}

func (e *ServerError) Error() string {
	return "custom update request failed: " + e.Err.Error()
}

func (e *ServerError) Unwrap() error {
	return e.Err
}
