// Package params derives Zyte API request parameters. Given one outgoing
// request and the process-wide defaults, it decides whether the request is
// routed through the API and, if so, which parameters to send, merging
// default parameters, automatic request-field mapping, and explicit
// per-request overrides in fixed precedence order.
package params

import (
	"strings"

	"github.com/paxaxel223/zyteroute/internal/headers"
)

// Defaults bundles the process-wide configuration consumed by the engine. It
// must be treated as read-only for the lifetime of a crawl; hot reloads swap
// in a new value instead of mutating this one.
type Defaults struct {
	// RouteAllByDefault sends every request without a directive through the
	// API.
	RouteAllByDefault bool
	// AutomapByDefault enables request-field automapping unless a request
	// overrides it.
	AutomapByDefault bool
	// DefaultParams seed every routed request. The engine never mutates the
	// backing map.
	DefaultParams map[string]any
	// UnsupportedHeaders holds lower-cased names of request headers the API
	// cannot accept in customHttpRequestHeaders.
	UnsupportedHeaders map[string]struct{}
	// BrowserHeaders maps lower-cased request header names onto the API
	// field used in the requestHeaders parameter.
	BrowserHeaders map[string]string
	// HarmlessHeaderDefaults maps lower-cased header names to the one value
	// that may be dropped silently instead of warning, because it is the
	// platform default rather than a caller decision.
	HarmlessHeaderDefaults map[string]string
	// JobID, when set, is injected into every routed request.
	JobID string
}

// Request is the read-only snapshot of one outgoing request.
type Request struct {
	URL             string
	Method          string
	Headers         *headers.Headers
	Body            []byte
	Directive       Directive
	AutomapOverride *bool
}

func (r Request) method() string {
	if r.Method == "" {
		return "GET"
	}
	return strings.ToUpper(r.Method)
}

// Outcome is the engine result: either skip the API and use the ordinary
// fetch path, or route through the API with the given parameters. An empty
// parameter map still means "route through the API".
type Outcome struct {
	UseAPI bool
	Params map[string]any
}

// Skip returns the ordinary-fetch outcome.
func Skip() Outcome {
	return Outcome{}
}

// Use returns the route-through-API outcome.
func Use(p map[string]any) Outcome {
	if p == nil {
		p = map[string]any{}
	}
	return Outcome{UseAPI: true, Params: p}
}
