package authresult

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a structured failure raised by the upstream auth service. Its
// status and body are passed through to the caller unchanged.
type APIError struct {
	Status  int
	Message string
	Body    any
	Headers http.Header
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("auth api error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("auth api error %d", e.Status)
}

// Failure builds the response for a failed auth operation. An *APIError in
// the chain keeps its status and body; anything else becomes a 500 whose
// body carries only message.
func Failure(err error, message string) *Response {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		body := apiErr.Body
		if body == nil {
			msg := apiErr.Message
			if msg == "" {
				msg = message
			}
			body = map[string]string{"error": msg}
		}
		return Build(body, Status{Code: status}, SetCookies(FromWireHeaders(apiErr.Headers)))
	}
	return Build(map[string]string{"error": message}, Status{Code: http.StatusInternalServerError}, nil)
}
