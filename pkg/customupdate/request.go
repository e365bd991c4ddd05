// Package customupdate sends custom updates into the messaging surface of a game
package customupdate

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"

	"custom-updater/internal/remote"
	"custom-updater/pkg/content"
	"custom-updater/pkg/graph"
	"custom-updater/pkg/session"
)

// GraphPath is where custom updates are posted to.
const GraphPath = "me/custom_update"

// Completion receives the outcome of a dispatched request, it's called exactly once.
type Completion func(success bool, err error)

// ServerResult is the only part of the reply we care about.
type ServerResult struct {
	Success bool `json:"success"`
}

// Requester sends custom updates through factory.
//
// The token given to SendMedia and SendImage only gates the call, the requests
// made by factory authenticate on their own. Pass the current token of the same
// session.Store the factory reads from, so the checked session is the one sent.
type Requester struct {
	logger  *slog.Logger
	factory graph.Factory
}

// New creates a requester, a nil logger falls back to slog.Default().
func New(logger *slog.Logger, factory graph.Factory) *Requester {
	if logger == nil {
		logger = slog.Default()
	}

	return &Requester{
		logger:  logger,
		factory: factory,
	}
}

// SendMedia sends an update with URL media.
// tok must be a live gaming session, it isn't attached to the request.
// Errors before the request is dispatched are returned, done isn't called in that case.
func (r *Requester) SendMedia(tok *session.Token, c *content.ContentMedia, done Completion) error {
	return r.send(tok, c, done)
}

// SendImage sends an update with an inline image.
// tok must be a live gaming session, it isn't attached to the request.
// Errors before the request is dispatched are returned, done isn't called in that case.
func (r *Requester) SendImage(tok *session.Token, c *content.ContentImage, done Completion) error {
	return r.send(tok, c, done)
}

func (r *Requester) send(tok *session.Token, c content.Content, done Completion) error {
	if !tok.IsGaming() {
		return ErrInvalidAccessToken
	}

	rc, err := remote.Transcode(c)
	if err != nil {
		return err
	}

	params, err := remote.Encode(rc)
	if err != nil {
		return err
	}

	req := r.factory.CreateRequest(GraphPath, params, http.MethodPost)

	logger := r.logger.With(slog.String("contextTokenID", rc.ContextTokenID))
	logger.Info("dispatching custom update", slog.Int("params", len(params)))

	var once sync.Once
	req.Start(func(result any, err error) {
		once.Do(func() {
			success, err := r.complete(logger, result, err)
			if done != nil {
				done(success, err)
			}
		})
	})

	return nil
}

func (r *Requester) complete(logger *slog.Logger, result any, err error) (bool, error) {
	if err != nil {
		logger.Error("custom update failed", slog.String("err", err.Error()))

		return false, &ServerError{Err: err}
	}

	sr, err := decodeResult(result)
	if err != nil {
		logger.Error("failed to decode custom update reply", slog.Any("reply", result))

		return false, err
	}

	logger.Info("custom update sent", slog.Bool("success", sr.Success))

	return sr.Success, nil
}

// decodeResult keeps only the boolean fields of the reply, anything else is dropped.
func decodeResult(result any) (ServerResult, error) {
	var flags map[string]bool
	switch v := result.(type) {
	case map[string]bool:
		flags = v
	case map[string]any:
		flags = make(map[string]bool, len(v))
		for k, f := range v {
			if b, ok := f.(bool); ok {
				flags[k] = b
			}
		}
	default:
		return ServerResult{}, ErrDecoding
	}

	b, err := json.Marshal(flags)
	if err != nil {
		return ServerResult{}, ErrDecoding
	}

	var decoded struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(b, &decoded); err != nil || decoded.Success == nil {
		return ServerResult{}, ErrDecoding
	}

	return ServerResult{Success: *decoded.Success}, nil
}
