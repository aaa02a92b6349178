// Package fingerprint computes deterministic request fingerprints for
// deduplication. Two requests that would produce the same API call get the
// same fingerprint, regardless of volatile parameters like job metadata.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/paxaxel223/zyteroute/internal/crawler"
	"github.com/paxaxel223/zyteroute/internal/params"
)

// Parameters excluded from fingerprints: they vary between runs or mirror
// request fields already hashed.
var volatileKeys = []string{
	"customHttpRequestHeaders",
	"echoData",
	"jobId",
	"requestHeaders",
}

// Fingerprinter hashes requests through a job-id-free view of the parameter
// engine.
type Fingerprinter struct {
	parser *params.Parser
}

// New builds a Fingerprinter. The job identifier is stripped from the
// defaults so fingerprints stay stable across runs.
func New(defaults params.Defaults) *Fingerprinter {
	defaults.JobID = ""
	return &Fingerprinter{parser: params.NewParser(defaults)}
}

// Fingerprint returns a hex SHA-256 digest for the request.
func (f *Fingerprinter) Fingerprint(request crawler.FetchRequest) (string, error) {
	outcome, _, err := f.parser.Parse(request.ToParams())
	if err != nil {
		return "", fmt.Errorf("derive api params: %w", err)
	}
	if !outcome.UseAPI {
		return f.plainFingerprint(request)
	}

	keepFragment := truthyOutput(outcome.Params, "browserHtml") ||
		truthyOutput(outcome.Params, "screenshot")
	canonical, err := canonicalizeURL(request.URL, keepFragment)
	if err != nil {
		return "", err
	}
	hashed := make(map[string]any, len(outcome.Params)+1)
	for k, v := range outcome.Params {
		hashed[k] = v
	}
	for _, key := range volatileKeys {
		delete(hashed, key)
	}
	hashed["url"] = canonical

	// encoding/json sorts map keys, so the digest is stable.
	encoded, err := json.Marshal(hashed)
	if err != nil {
		return "", fmt.Errorf("encode fingerprint: %w", err)
	}
	return digest(encoded), nil
}

// plainFingerprint covers requests that skip the API.
func (f *Fingerprinter) plainFingerprint(request crawler.FetchRequest) (string, error) {
	canonical, err := canonicalizeURL(request.URL, false)
	if err != nil {
		return "", err
	}
	method := request.Method
	if method == "" {
		method = "GET"
	}
	var b strings.Builder
	b.WriteString(strings.ToUpper(method))
	b.WriteByte('\n')
	b.WriteString(canonical)
	b.WriteByte('\n')
	b.Write(request.Body)
	return digest([]byte(b.String())), nil
}

func truthyOutput(p map[string]any, key string) bool {
	v, ok := p[key]
	return ok && v != false && v != nil
}

func digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
