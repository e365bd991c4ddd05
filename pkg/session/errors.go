package session

import "errors"

// ErrNoSession .
var ErrNoSession = errors.New("no active session")
