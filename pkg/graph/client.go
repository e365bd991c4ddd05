// Package graph sends requests to the Graph API
package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
)

// DefaultBaseURL .
const DefaultBaseURL = "https://graph.facebook.com/v22.0"

// Handler receives the decoded reply or the transport error of a request.
type Handler func(result any, err error)

// Request is a single prepared Graph call.
type Request interface {
	Start(handler Handler)
}

// Factory creates requests.
type Factory interface {
	CreateRequest(path string, params map[string]string, method string) Request
}

// Client .
type Client struct {
	logger     *slog.Logger
	baseURL    string
	httpClient *http.Client
}

// New creates a client authenticating with ts, a nil ts sends unauthenticated requests.
// ts is asked for a token on every request, so a session store can swap or clear it at any time.
func New(logger *slog.Logger, baseURL string, ts oauth2.TokenSource) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	httpClient := http.DefaultClient
	if ts != nil {
		httpClient = &http.Client{Transport: &oauth2.Transport{Source: ts}}
	}

	return &Client{
		logger:     logger,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// SetHTTPClient overrides the client used to send requests, no auth is added to it.
func (c *Client) SetHTTPClient(hc *http.Client) {
	c.httpClient = hc
}

// CreateRequest .
func (c *Client) CreateRequest(path string, params map[string]string, method string) Request {
	return &request{
		client: c,
		path:   strings.TrimLeft(path, "/"),
		params: params,
		method: method,
	}
}

type request struct {
	client *Client
	path   string
	params map[string]string
	method string
}

// Start sends the request in the background, handler is called once from that goroutine.
func (r *request) Start(handler Handler) {
	go func() {
		handler(r.do())
	}()
}

func (r *request) do() (any, error) {
	logger := r.client.logger.With(slog.String("requestID", uuid.NewString()), slog.String("path", r.path))

	form := url.Values{}
	for k, v := range r.params {
		form.Set(k, v)
	}

	target := fmt.Sprintf("%s/%s", r.client.baseURL, r.path)
	var body io.Reader
	if r.method == http.MethodGet || r.method == http.MethodDelete {
		target += "?" + form.Encode()
	} else {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequest(r.method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	logger.Debug("sending graph request", slog.String("method", r.method))
	resp, err := r.client.httpClient.Do(req)
	if err != nil {
		logger.Error("graph request failed", slog.String("err", err.Error()))

		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := parseAPIError(resp.StatusCode, b)
		logger.Error("graph request rejected", slog.Int("status", resp.StatusCode), slog.String("err", apiErr.Error()))

		return nil, apiErr
	}

	var result any
	if err := json.Unmarshal(b, &result); err != nil {
		// Not JSON, hand the raw body over and let the caller decide
		logger.Warn("graph reply is not json", slog.String("err", err.Error()))

		return string(bytes.TrimSpace(b)), nil
	}

	return result, nil
}
