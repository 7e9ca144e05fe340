package api

import (
	"encoding/json"
	"fmt"
)

// Error is a server-reported failure. The Detail field carries the API's
// `detail` message and is surfaced to the operator verbatim, with no
// client-side interpretation.
type Error struct {
	Status int
	Detail string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return fmt.Sprintf("server returned status %d", e.Status)
}

// decodeError builds an *Error from a non-2xx response body. Bodies that
// are not JSON, or carry no detail field, fall back to the status code.
func decodeError(status int, body []byte) *Error {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &Error{Status: status, Detail: payload.Detail}
	}
	return &Error{Status: status}
}
