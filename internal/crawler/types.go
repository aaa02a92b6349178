// Package crawler defines the request/response types shared across the
// routing layer.
package crawler

import (
	"time"

	"github.com/paxaxel223/zyteroute/internal/headers"
	"github.com/paxaxel223/zyteroute/internal/params"
)

// FetchRequest captures everything needed to fetch a URL, including the
// per-request routing directive read from the caller's side channel.
type FetchRequest struct {
	URL       string
	Method    string
	Headers   *headers.Headers
	Body      []byte
	Directive params.Directive
	// AutomapOverride, when non-nil, replaces the process-wide automap
	// default for this request only.
	AutomapOverride *bool
}

// ToParams converts the request into the engine's read-only snapshot.
func (r FetchRequest) ToParams() params.Request {
	return params.Request{
		URL:             r.URL,
		Method:          r.Method,
		Headers:         r.Headers,
		Body:            r.Body,
		Directive:       r.Directive,
		AutomapOverride: r.AutomapOverride,
	}
}

// FetchResponse is the result returned by a Fetcher implementation.
type FetchResponse struct {
	URL        string
	StatusCode int
	Headers    *headers.Headers
	Body       []byte
	Duration   time.Duration
	// ViaAPI reports whether the response came from the remote API instead
	// of a plain fetch.
	ViaAPI bool
	// Raw holds the untouched API reply for ViaAPI responses, so callers
	// can reach extraction fields the translation does not surface.
	Raw map[string]any
}
