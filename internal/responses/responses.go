// Package responses translates raw Zyte API replies into fetch responses.
package responses

import (
	"encoding/base64"
	"fmt"
	"time"

	"github.com/paxaxel223/zyteroute/internal/crawler"
	"github.com/paxaxel223/zyteroute/internal/headers"
)

// FromAPI maps the decoded JSON reply onto a FetchResponse. Browser-rendered
// replies carry the page as UTF-8 text in browserHtml; plain replies carry
// it base64-encoded in httpResponseBody. The untouched reply stays attached
// so callers can reach extraction fields the translation does not surface.
func FromAPI(reply map[string]any, request crawler.FetchRequest, duration time.Duration) (crawler.FetchResponse, error) {
	body, err := replyBody(reply)
	if err != nil {
		return crawler.FetchResponse{}, err
	}

	url := request.URL
	if s, ok := reply["url"].(string); ok && s != "" {
		url = s
	}

	return crawler.FetchResponse{
		URL:        url,
		StatusCode: 200,
		Headers:    replyHeaders(reply),
		Body:       body,
		Duration:   duration,
		ViaAPI:     true,
		Raw:        reply,
	}, nil
}

func replyBody(reply map[string]any) ([]byte, error) {
	if html, ok := reply["browserHtml"].(string); ok {
		return []byte(html), nil
	}
	encoded, ok := reply["httpResponseBody"].(string)
	if !ok {
		return nil, nil
	}
	body, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("decode httpResponseBody: %w", err)
	}
	return body, nil
}

// replyHeaders rebuilds the response headers from the API's ordered
// name/value list.
func replyHeaders(reply map[string]any) *headers.Headers {
	raw, ok := reply["httpResponseHeaders"].([]any)
	if !ok || len(raw) == 0 {
		return nil
	}
	out := headers.New()
	for _, item := range raw {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name, _ := entry["name"].(string)
		value, _ := entry["value"].(string)
		if name == "" {
			continue
		}
		out.Set(name, value)
	}
	return out
}
