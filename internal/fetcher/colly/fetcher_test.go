package collyfetcher

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paxaxel223/zyteroute/internal/crawler"
	"github.com/paxaxel223/zyteroute/internal/headers"
)

func TestFetchGet(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Trace") != "yes" {
			t.Errorf("expected request header propagation, got %v", r.Header)
		}
		w.Header().Set("X-Resp", "ok")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("body"))
	}))
	t.Cleanup(srv.Close)

	h := headers.New()
	h.Set("X-Trace", "yes")

	f := New(Config{UserAgent: "test-agent", Timeout: 5 * time.Second})
	resp, err := f.Fetch(context.Background(), crawler.FetchRequest{URL: srv.URL, Headers: h})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if resp.StatusCode != http.StatusOK || string(resp.Body) != "body" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if got, _ := resp.Headers.Get("X-Resp"); got != "ok" {
		t.Fatalf("expected response headers copied, got %+v", resp.Headers)
	}
	if resp.ViaAPI {
		t.Fatal("plain fetches must not be marked as API responses")
	}
	if resp.Duration <= 0 {
		t.Fatalf("expected a positive duration, got %v", resp.Duration)
	}
}

func TestFetchPostBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "payload" {
			t.Errorf("expected request body forwarded, got %q", body)
		}
		w.WriteHeader(http.StatusCreated)
	}))
	t.Cleanup(srv.Close)

	f := New(Config{Timeout: 5 * time.Second})
	resp, err := f.Fetch(context.Background(), crawler.FetchRequest{
		URL:    srv.URL,
		Method: http.MethodPost,
		Body:   []byte("payload"),
	})
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
}

func TestFetchServerError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	f := New(Config{Timeout: 5 * time.Second})
	_, err := f.Fetch(context.Background(), crawler.FetchRequest{URL: srv.URL})
	if err == nil {
		t.Fatal("expected an error for a 500 response")
	}
}

func TestFetchContextCanceled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	f := New(Config{Timeout: 5 * time.Second})
	_, err := f.Fetch(ctx, crawler.FetchRequest{URL: srv.URL})
	if err == nil {
		t.Fatal("expected cancellation error")
	}
}
