package client

import (
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// RequestError is an unsuccessful reply from the API. Detail carries the
// server-provided explanation when the error body includes one.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("api error (status=%d): %s", e.Status, e.Detail)
}

// Temporary reports whether retrying the same call may succeed.
func (e *RequestError) Temporary() bool {
	return e.Status == http.StatusTooManyRequests || e.Status >= 500
}

func newRequestError(status int, body []byte) *RequestError {
	detail := gjson.GetBytes(body, "detail").String()
	if detail == "" {
		detail = http.StatusText(status)
	}
	return &RequestError{Status: status, Detail: detail}
}
