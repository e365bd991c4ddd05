package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"custom-updater/internal/remote"
)

type graphError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    int    `json:"code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, errType string, code int, msg string) {
	writeJSON(w, status, struct {
		Error graphError `json:"error"`
	}{
		Error: graphError{Message: msg, Type: errType, Code: code},
	})
}

func (s *Server) postCustomUpdate(w http.ResponseWriter, r *http.Request) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		writeError(w, http.StatusUnauthorized, "OAuthException", 190, "An active access token must be used")

		return
	}

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "GraphMethodException", 100, "failed to parse form")

		return
	}

	params := make(map[string]string, len(r.PostForm))
	for k := range r.PostForm {
		params[k] = r.PostForm.Get(k)
	}

	if err := validateParams(params); err != nil {
		s.logger.Info("rejecting custom update", slog.String("err", err.Error()))
		writeError(w, http.StatusBadRequest, "GraphMethodException", 100, err.Error())

		return
	}

	s.mu.Lock()
	s.updates = append(s.updates, Update{
		AccessToken:    token,
		ContextTokenID: params["context_token_id"],
		Params:         params,
	})
	s.mu.Unlock()

	s.logger.Info("custom update accepted", slog.String("contextTokenID", params["context_token_id"]))
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) listCustomUpdates(w http.ResponseWriter, r *http.Request) {
	type item struct {
		ContextTokenID string            `json:"context_token_id"`
		Params         map[string]string `json:"params"`
	}

	updates := s.Updates()
	res := make([]item, 0, len(updates))
	for _, u := range updates {
		res = append(res, item{ContextTokenID: u.ContextTokenID, Params: u.Params})
	}

	writeJSON(w, http.StatusOK, struct {
		Data []item `json:"data"`
	}{Data: res})
}

func validateParams(params map[string]string) error {
	if params["context_token_id"] == "" {
		return errors.New("(#100) context_token_id is required")
	}

	var text remote.Text
	if err := json.Unmarshal([]byte(params["text"]), &text); err != nil || text.Default == "" {
		return errors.New("(#100) text must be an object with a default value")
	}

	if cta, ok := params["cta"]; ok {
		var t remote.Text
		if err := json.Unmarshal([]byte(cta), &t); err != nil || t.Default == "" {
			return errors.New("(#100) cta must be an object with a default value")
		}
	}

	media, hasMedia := params["media"]
	image, hasImage := params["image"]
	switch {
	case hasMedia && hasImage:
		return errors.New("(#100) only one of media and image can be set")
	case hasMedia:
		var m map[string]struct {
			URL string `json:"url"`
		}
		if err := json.Unmarshal([]byte(media), &m); err != nil || len(m) != 1 {
			return errors.New("(#100) media must hold exactly one media type")
		}
	case hasImage:
		if !strings.HasPrefix(image, remote.ImageDataURIPrefix) {
			return errors.New("(#100) image must be a base64 png data uri")
		}
	}

	return nil
}
