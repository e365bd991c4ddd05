// Package remote turns custom update content into the parameters of the Graph call
package remote

import (
	"encoding/json"
	"errors"

	"custom-updater/pkg/content"
)

// ErrContentParsing is returned when content can't be translated into request parameters.
var ErrContentParsing = errors.New("custom update content is invalid")

// Text is a string with its per-locale variants.
type Text struct {
	Default       string            `json:"default"`
	Localizations map[string]string `json:"localizations"`
}

// Media is encoded the way the Graph API expects it: {"gif": {"url": "..."}}.
type Media struct {
	URL  string
	Type content.MediaType
}

// MarshalJSON .
func (m Media) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]struct {
		URL string `json:"url"`
	}{
		string(m.Type): {URL: m.URL},
	})
}

// RemoteContent is the canonical form of an update before it's flattened.
// At most one of Media and Image is set.
type RemoteContent struct {
	ContextTokenID string  `json:"context_token_id"`
	Payload        *string `json:"payload,omitempty"`

	Text  Text   `json:"-"`
	CTA   *Text  `json:"-"`
	Media *Media `json:"-"`
	Image []byte `json:"-"`
}
