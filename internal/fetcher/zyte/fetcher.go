// Package zytefetcher routes fetches through the Zyte API when the
// parameter engine says so, falling back to the ordinary fetch path
// otherwise.
package zytefetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/paxaxel223/zyteroute/internal/crawler"
	"github.com/paxaxel223/zyteroute/internal/params"
	"github.com/paxaxel223/zyteroute/internal/responses"
)

// Extractor issues one API call. Satisfied by *client.Client.
type Extractor interface {
	Extract(ctx context.Context, payload map[string]any) (map[string]any, error)
}

// Fetcher decides per request whether to call the API or delegate to the
// fallback Fetcher.
type Fetcher struct {
	parser   *params.Parser
	client   Extractor
	fallback crawler.Fetcher
	logger   *zap.Logger
}

// New builds a Fetcher. The fallback may be nil when every request is
// expected to be API-bound.
func New(parser *params.Parser, extractor Extractor, fallback crawler.Fetcher, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Fetcher{
		parser:   parser,
		client:   extractor,
		fallback: fallback,
		logger:   logger,
	}
}

// Fetch derives the API parameters for the request and routes accordingly.
// A directive that fails validation abandons this one request: it falls
// back to neither path, so the failure stays distinguishable in logs from a
// remote API error.
func (f *Fetcher) Fetch(ctx context.Context, request crawler.FetchRequest) (crawler.FetchResponse, error) {
	outcome, warnings, err := f.parser.Parse(request.ToParams())
	f.logWarnings(request.URL, warnings)
	if err != nil {
		var vErr *params.ValidationError
		if errors.As(err, &vErr) {
			f.logger.Error("request abandoned: invalid routing directive",
				zap.String("url", request.URL),
				zap.Error(vErr),
			)
		}
		return crawler.FetchResponse{}, fmt.Errorf("derive api params: %w", err)
	}

	if !outcome.UseAPI {
		if f.fallback == nil {
			return crawler.FetchResponse{}, fmt.Errorf("no fallback fetcher configured for %s", request.URL)
		}
		return f.fallback.Fetch(ctx, request)
	}

	payload := make(map[string]any, len(outcome.Params)+1)
	for k, v := range outcome.Params {
		payload[k] = v
	}
	payload["url"] = request.URL

	start := time.Now()
	reply, err := f.client.Extract(ctx, payload)
	if err != nil {
		return crawler.FetchResponse{}, fmt.Errorf("api fetch %s: %w", request.URL, err)
	}
	return responses.FromAPI(reply, request, time.Since(start))
}

func (f *Fetcher) logWarnings(url string, warnings []params.Warning) {
	for _, w := range warnings {
		f.logger.Warn(w.Message,
			zap.String("url", url),
			zap.String("kind", string(w.Kind)),
		)
	}
}
