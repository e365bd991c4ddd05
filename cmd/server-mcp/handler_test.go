package main

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/png"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	graphstub "custom-updater/internal/server"
	"custom-updater/pkg/customupdate"
	"custom-updater/pkg/graph"
	"custom-updater/pkg/session"
)

func newTestHandler(t *testing.T, tok *session.Token) (*handler, *graphstub.Server) {
	t.Helper()

	logger := slog.New(slog.DiscardHandler)
	stub := graphstub.New(logger, "")
	srv := httptest.NewServer(stub.Handler())
	t.Cleanup(srv.Close)

	store := session.NewStore(tok)

	return &handler{
		logger:    logger,
		store:     store,
		requester: customupdate.New(logger, graph.New(logger, srv.URL, store)),
	}, stub
}

func callTool(t *testing.T, h *handler, args map[string]any) *mcp.CallToolResult {
	t.Helper()

	var req mcp.CallToolRequest
	req.Params.Name = "send_custom_update"
	req.Params.Arguments = args

	res, err := h.sendCustomUpdate(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, res)

	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)

	return text.Text
}

func TestSendCustomUpdateMedia(t *testing.T) {
	h, stub := newTestHandler(t, &session.Token{AccessToken: "tok", GraphDomain: session.GamingDomain})

	res := callTool(t, h, map[string]any{
		"context_token_id": "ctx1",
		"message":          "hi",
		"media_url":        "https://x/y.png",
		"cta":              "Play",
	})

	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), "success: true")
	updates := stub.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, `{"photo":{"url":"https://x/y.png"}}`, updates[0].Params["media"])
	assert.Equal(t, `{"default":"Play","localizations":{}}`, updates[0].Params["cta"])
}

func TestSendCustomUpdateImage(t *testing.T) {
	h, stub := newTestHandler(t, &session.Token{AccessToken: "tok", GraphDomain: session.GamingDomain})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))
	encoded := base64.StdEncoding.EncodeToString(buf.Bytes())

	res := callTool(t, h, map[string]any{
		"context_token_id": "ctx1",
		"message":          "hi",
		"image_base64":     encoded,
	})

	assert.False(t, res.IsError)
	updates := stub.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "data:image/png;base64,"+encoded, updates[0].Params["image"])
}

func TestSendCustomUpdateWrongDomain(t *testing.T) {
	h, stub := newTestHandler(t, &session.Token{AccessToken: "tok", GraphDomain: "instagram"})

	res := callTool(t, h, map[string]any{
		"context_token_id": "ctx1",
		"message":          "hi",
		"media_url":        "https://x/y.png",
	})

	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid access token")
	assert.Empty(t, stub.Updates())
}

func TestSendCustomUpdateBadImage(t *testing.T) {
	h, _ := newTestHandler(t, &session.Token{AccessToken: "tok", GraphDomain: session.GamingDomain})

	res := callTool(t, h, map[string]any{
		"context_token_id": "ctx1",
		"message":          "hi",
		"image_base64":     "%%%",
	})

	assert.True(t, res.IsError)
}
