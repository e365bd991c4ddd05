// Package session keeps the authentication token the custom update call is made with
package session

import (
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// GamingDomain is the graph domain of tokens issued for gaming logins.
const GamingDomain = "gaming"

// Token .
type Token struct {
	AccessToken string
	GraphDomain string
	UserID      string
	Expiry      time.Time // Zero means it never expires
}

// Valid reports whether the token is set and not expired.
func (t *Token) Valid() bool {
	if t == nil || t.AccessToken == "" {
		return false
	}

	return t.Expiry.IsZero() || time.Now().Before(t.Expiry)
}

// IsGaming .
func (t *Token) IsGaming() bool {
	return t.Valid() && t.GraphDomain == GamingDomain
}

// OAuth2 converts t back, graph domain and user id travel in the extra fields.
func (t *Token) OAuth2() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken: t.AccessToken,
		TokenType:   "Bearer",
		Expiry:      t.Expiry,
	}

	return tok.WithExtra(map[string]any{
		"graph_domain": t.GraphDomain,
		"user_id":      t.UserID,
	})
}

// FromOAuth2 reads a token as returned by the login flow.
func FromOAuth2(tok *oauth2.Token) *Token {
	if tok == nil {
		return nil
	}

	t := &Token{
		AccessToken: tok.AccessToken,
		Expiry:      tok.Expiry,
	}
	if d, ok := tok.Extra("graph_domain").(string); ok {
		t.GraphDomain = d
	}
	if u, ok := tok.Extra("user_id").(string); ok {
		t.UserID = u
	}

	return t
}

// Store holds the current token of the process.
type Store struct {
	mu      sync.RWMutex
	current *Token
}

// NewStore .
func NewStore(t *Token) *Store {
	return &Store{current: t}
}

// Current returns a copy of the current token or nil.
func (s *Store) Current() *Token {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	t := *s.current

	return &t
}

// SetCurrent .
func (s *Store) SetCurrent(t *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = t
}

// Clear .
func (s *Store) Clear() {
	s.SetCurrent(nil)
}

// Token implements oauth2.TokenSource.
func (s *Store) Token() (*oauth2.Token, error) {
	t := s.Current()
	if !t.Valid() {
		return nil, ErrNoSession
	}

	return t.OAuth2(), nil
}
