package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/paxaxel223/zyteroute/internal/headers"
)

func boolPtr(b bool) *bool {
	return &b
}

// testDefaults mirrors the shipped configuration defaults, with automap off
// so merge behavior can be observed in isolation.
func testDefaults() Defaults {
	return Defaults{
		AutomapByDefault: false,
		UnsupportedHeaders: map[string]struct{}{
			"cookie":     {},
			"user-agent": {},
		},
		BrowserHeaders: map[string]string{"referer": "referer"},
		HarmlessHeaderDefaults: map[string]string{
			"accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
			"accept-language": "en",
			"user-agent":      "",
		},
	}
}

func TestParseRouting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		defaults  Defaults
		directive Directive
		wantUse   bool
	}{
		{
			name:      "absent directive skips by default",
			defaults:  testDefaults(),
			directive: Directive{},
			wantUse:   false,
		},
		{
			name: "absent directive routes when route-all is on",
			defaults: func() Defaults {
				d := testDefaults()
				d.RouteAllByDefault = true
				return d
			}(),
			directive: Directive{},
			wantUse:   true,
		},
		{
			name: "false directive skips even with route-all",
			defaults: func() Defaults {
				d := testDefaults()
				d.RouteAllByDefault = true
				return d
			}(),
			directive: Route(false),
			wantUse:   false,
		},
		{
			name:      "true directive routes",
			defaults:  testDefaults(),
			directive: Route(true),
			wantUse:   true,
		},
		{
			name:      "parameter directive routes",
			defaults:  testDefaults(),
			directive: Override(map[string]any{"browserHtml": true}),
			wantUse:   true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := NewParser(tt.defaults)
			outcome, warnings, err := p.Parse(Request{URL: "https://example.com", Directive: tt.directive})
			require.NoError(t, err)
			require.Empty(t, warnings)
			require.Equal(t, tt.wantUse, outcome.UseAPI)
			if !tt.wantUse {
				require.Nil(t, outcome.Params)
			}
		})
	}
}

func TestParseLegacyFalsyDirective(t *testing.T) {
	t.Parallel()

	for _, raw := range []any{nil, 0, "", []any{}} {
		p := NewParser(testDefaults())
		outcome, warnings, err := p.Parse(Request{
			URL:       "https://example.com",
			Directive: NormalizeDirective(raw),
		})
		require.NoError(t, err)
		require.False(t, outcome.UseAPI)
		require.Len(t, warnings, 1)
		require.Equal(t, WarnDeprecatedUsage, warnings[0].Kind)
		require.Contains(t, warnings[0].Message, "deprecated")
		require.Contains(t, warnings[0].Message, "Use False instead.")
	}
}

func TestParseInvalidDirective(t *testing.T) {
	t.Parallel()

	p := NewParser(testDefaults())
	outcome, _, err := p.Parse(Request{
		URL:       "https://example.com",
		Directive: NormalizeDirective("not a boolean"),
	})
	require.Error(t, err)
	var vErr *ValidationError
	require.True(t, errors.As(err, &vErr))
	require.Contains(t, vErr.Error(), "must be a boolean or a parameter map")
	require.False(t, outcome.UseAPI)
}

func TestParseMergesDefaultsAndOverrides(t *testing.T) {
	t.Parallel()

	defaults := testDefaults()
	defaults.DefaultParams = map[string]any{
		"geolocation": "US",
		"browserHtml": true,
	}
	p := NewParser(defaults)

	outcome, warnings, err := p.Parse(Request{
		URL:       "https://example.com",
		Directive: Override(map[string]any{"geolocation": "DE", "screenshot": true}),
	})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Equal(t, map[string]any{
		"geolocation": "DE",
		"browserHtml": true,
		"screenshot":  true,
	}, outcome.Params)
}

func TestParseNullDefaultSkippedWithWarning(t *testing.T) {
	t.Parallel()

	defaults := testDefaults()
	defaults.DefaultParams = map[string]any{"geolocation": nil}
	p := NewParser(defaults)

	outcome, warnings, err := p.Parse(Request{URL: "https://example.com", Directive: Route(true)})
	require.NoError(t, err)
	require.NotContains(t, outcome.Params, "geolocation")
	require.Len(t, warnings, 1)
	require.Equal(t, WarnDroppedDefault, warnings[0].Kind)
	require.Contains(t, warnings[0].Message, `"geolocation"`)
}

func TestParseNullOverrideUnsetsDefault(t *testing.T) {
	t.Parallel()

	defaults := testDefaults()
	defaults.DefaultParams = map[string]any{"geolocation": "US"}
	p := NewParser(defaults)

	outcome, warnings, err := p.Parse(Request{
		URL:       "https://example.com",
		Directive: Override(map[string]any{"geolocation": nil}),
	})
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.NotContains(t, outcome.Params, "geolocation")
}

func TestParseNullOverrideForUnknownKeyWarns(t *testing.T) {
	t.Parallel()

	p := NewParser(testDefaults())
	outcome, warnings, err := p.Parse(Request{
		URL:       "https://example.com",
		Directive: Override(map[string]any{"geolocation": nil}),
	})
	require.NoError(t, err)
	require.NotContains(t, outcome.Params, "geolocation")
	require.Len(t, warnings, 1)
	require.Equal(t, WarnRedundantOverride, warnings[0].Kind)
	require.Contains(t, warnings[0].Message, "do not define such a parameter")
}

func TestParseDefaultParamsNeverMutated(t *testing.T) {
	t.Parallel()

	defaults := testDefaults()
	defaults.DefaultParams = map[string]any{
		"actions": []any{map[string]any{"action": "click"}},
	}
	p := NewParser(defaults)

	outcome, _, err := p.Parse(Request{URL: "https://example.com", Directive: Route(true)})
	require.NoError(t, err)

	// Mutating the outcome must not write through to the shared defaults.
	actions := outcome.Params["actions"].([]any)
	actions[0].(map[string]any)["action"] = "scroll"
	outcome.Params["extra"] = true

	require.Equal(t, map[string]any{
		"actions": []any{map[string]any{"action": "click"}},
	}, defaults.DefaultParams)
}

func TestParseJobIDInjectedLast(t *testing.T) {
	t.Parallel()

	defaults := testDefaults()
	defaults.JobID = "crawl-42"
	p := NewParser(defaults)

	outcome, _, err := p.Parse(Request{
		URL:       "https://example.com",
		Directive: Override(map[string]any{"jobId": "spoofed"}),
	})
	require.NoError(t, err)
	require.Equal(t, "crawl-42", outcome.Params["jobId"])
}

func TestParseAutomapOverride(t *testing.T) {
	t.Parallel()

	// Process default off, request turns it on.
	p := NewParser(testDefaults())
	outcome, _, err := p.Parse(Request{
		URL:             "https://example.com",
		Directive:       Route(true),
		AutomapOverride: boolPtr(true),
	})
	require.NoError(t, err)
	require.Equal(t, true, outcome.Params["httpResponseBody"])

	// Process default on, request turns it off.
	defaults := testDefaults()
	defaults.AutomapByDefault = true
	p = NewParser(defaults)
	outcome, _, err = p.Parse(Request{
		URL:             "https://example.com",
		Directive:       Route(true),
		AutomapOverride: boolPtr(false),
	})
	require.NoError(t, err)
	require.Empty(t, outcome.Params)
}

func TestParseStatelessAcrossCalls(t *testing.T) {
	t.Parallel()

	defaults := testDefaults()
	defaults.AutomapByDefault = true
	p := NewParser(defaults)

	req := Request{
		URL:       "https://example.com",
		Method:    "POST",
		Headers:   headerSet("Referer", "https://example.com/prev"),
		Body:      []byte("payload"),
		Directive: Route(true),
	}
	first, firstWarnings, err := p.Parse(req)
	require.NoError(t, err)
	second, secondWarnings, err := p.Parse(req)
	require.NoError(t, err)
	require.Equal(t, first.Params, second.Params)
	require.Equal(t, firstWarnings, secondWarnings)
}

func headerSet(pairs ...string) *headers.Headers {
	h := headers.New()
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Set(pairs[i], pairs[i+1])
	}
	return h
}
