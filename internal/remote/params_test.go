package remote

import (
	"encoding/base64"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"custom-updater/pkg/content"
)

func encodeContent(t *testing.T, c content.Content) Parameters {
	t.Helper()

	rc, err := Transcode(c)
	require.NoError(t, err)
	params, err := Encode(rc)
	require.NoError(t, err)

	return params
}

func TestEncodeMedia(t *testing.T) {
	params := encodeContent(t, content.NewMedia("ctx1", "hi & bye", content.URLMedia{URL: "https://x/y.mp4", Type: content.MediaVideo},
		content.WithCTA("Play"),
		content.WithPayload("p1"),
	))

	assert.Equal(t, Parameters{
		"context_token_id": "ctx1",
		"payload":          "p1",
		"text":             `{"default":"hi & bye","localizations":{}}`,
		"cta":              `{"default":"Play","localizations":{}}`,
		"media":            `{"video":{"url":"https://x/y.mp4"}}`,
	}, params)
}

func TestEncodeTextRoundTrip(t *testing.T) {
	l10n := map[string]string{"hu_HU": "szia", "de_DE": "hallo"}

	for _, c := range []content.Content{
		content.NewMedia("ctx1", "hi", content.URLMedia{URL: "https://x/y.png", Type: content.MediaPhoto}, content.WithMessageLocalization(l10n)),
		content.NewImage("ctx1", "hi", pngBytes(t), content.WithMessageLocalization(l10n)),
	} {
		params := encodeContent(t, c)

		var text Text
		require.NoError(t, json.Unmarshal([]byte(params["text"]), &text))
		assert.Equal(t, Text{Default: "hi", Localizations: l10n}, text)
	}
}

func TestEncodeOptionalKeys(t *testing.T) {
	media := content.URLMedia{URL: "https://x/y.png", Type: content.MediaPhoto}

	params := encodeContent(t, content.NewMedia("ctx1", "hi", media))
	assert.NotContains(t, params, "cta")
	assert.NotContains(t, params, "payload")
	assert.Contains(t, params, "media")
	assert.NotContains(t, params, "image")

	params = encodeContent(t, content.NewImage("ctx1", "hi", pngBytes(t), content.WithCTA("")))
	assert.Contains(t, params, "cta")
	assert.Contains(t, params, "image")
	assert.NotContains(t, params, "media")
}

func TestEncodeImage(t *testing.T) {
	b := pngBytes(t)

	params := encodeContent(t, content.NewImage("ctx1", "hi", b))

	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(b), params["image"])
}

func TestEncodeNil(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, ErrContentParsing)
}
