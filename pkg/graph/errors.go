package graph

import (
	"encoding/json"
	"fmt"
)

// APIError is the error object of a rejected Graph call.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
	Type       string `json:"type"`
	Code       int    `json:"code"`
	FBTraceID  string `json:"fbtrace_id"`
}

func (e *APIError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("graph: status %d: %s", e.StatusCode, e.Message)
	}

	return fmt.Sprintf("graph: status %d: %s (%s, code %d)", e.StatusCode, e.Message, e.Type, e.Code)
}

func parseAPIError(status int, body []byte) *APIError {
	var wrapper struct {
		Error *APIError `json:"error"`
	}
	if err := json.Unmarshal(body, &wrapper); err != nil || wrapper.Error == nil {
		return &APIError{StatusCode: status, Message: string(body)}
	}
	wrapper.Error.StatusCode = status

	return wrapper.Error
}
