package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func post(t *testing.T, s *Server, token string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/me/custom_update", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	return w
}

func validForm() url.Values {
	return url.Values{
		"context_token_id": {"ctx1"},
		"text":             {`{"default":"hi","localizations":{}}`},
		"media":            {`{"photo":{"url":"https://x/y.png"}}`},
	}
}

func TestPostCustomUpdate(t *testing.T) {
	s := New(slog.New(slog.DiscardHandler), "")

	w := post(t, s, "tok", validForm())

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	updates := s.Updates()
	require.Len(t, updates, 1)
	assert.Equal(t, "tok", updates[0].AccessToken)
	assert.Equal(t, "ctx1", updates[0].ContextTokenID)
}

func TestPostCustomUpdateUnauthorized(t *testing.T) {
	s := New(slog.New(slog.DiscardHandler), "")

	w := post(t, s, "", validForm())

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "OAuthException")
	assert.Empty(t, s.Updates())
}

func TestPostCustomUpdateRejected(t *testing.T) {
	tests := []struct {
		name   string
		modify func(url.Values)
	}{
		{name: "missing context token", modify: func(v url.Values) { v.Del("context_token_id") }},
		{name: "missing text", modify: func(v url.Values) { v.Del("text") }},
		{name: "text not json", modify: func(v url.Values) { v.Set("text", "hi") }},
		{name: "bad cta", modify: func(v url.Values) { v.Set("cta", `{"localizations":{}}`) }},
		{name: "media and image", modify: func(v url.Values) { v.Set("image", "data:image/png;base64,AAAA") }},
		{name: "media with two types", modify: func(v url.Values) {
			v.Set("media", `{"photo":{"url":"https://x/a"},"gif":{"url":"https://x/b"}}`)
		}},
		{name: "image without data uri", modify: func(v url.Values) {
			v.Del("media")
			v.Set("image", "AAAA")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(slog.New(slog.DiscardHandler), "")
			form := validForm()
			tt.modify(form)

			w := post(t, s, "tok", form)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), "GraphMethodException")
			assert.Empty(t, s.Updates())
		})
	}
}

func TestListCustomUpdates(t *testing.T) {
	s := New(slog.New(slog.DiscardHandler), "")
	require.Equal(t, http.StatusOK, post(t, s, "tok", validForm()).Code)

	req := httptest.NewRequest(http.MethodGet, "/me/custom_update", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var res struct {
		Data []struct {
			ContextTokenID string            `json:"context_token_id"`
			Params         map[string]string `json:"params"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.Len(t, res.Data, 1)
	assert.Equal(t, "ctx1", res.Data[0].ContextTokenID)
	assert.Equal(t, `{"photo":{"url":"https://x/y.png"}}`, res.Data[0].Params["media"])
}
