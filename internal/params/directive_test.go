package params

import "testing"

func TestNormalizeDirective(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  any
		want DirectiveKind
	}{
		{name: "true", raw: true, want: DirectiveTrue},
		{name: "false", raw: false, want: DirectiveFalse},
		{name: "parameter map", raw: map[string]any{"browserHtml": true}, want: DirectiveParams},
		{name: "nil", raw: nil, want: DirectiveLegacyFalsy},
		{name: "zero int", raw: 0, want: DirectiveLegacyFalsy},
		{name: "zero float", raw: 0.0, want: DirectiveLegacyFalsy},
		{name: "empty string", raw: "", want: DirectiveLegacyFalsy},
		{name: "empty slice", raw: []any{}, want: DirectiveLegacyFalsy},
		{name: "empty bytes", raw: []byte{}, want: DirectiveLegacyFalsy},
		{name: "nonzero int", raw: 1, want: DirectiveInvalid},
		{name: "nonempty string", raw: "yes", want: DirectiveInvalid},
		{name: "struct", raw: struct{}{}, want: DirectiveInvalid},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := NormalizeDirective(tt.raw)
			if got.Kind != tt.want {
				t.Fatalf("NormalizeDirective(%#v).Kind = %v, want %v", tt.raw, got.Kind, tt.want)
			}
		})
	}
}

func TestNormalizeDirectivePassthrough(t *testing.T) {
	t.Parallel()

	d := Override(map[string]any{"screenshot": true})
	got := NormalizeDirective(d)
	if got.Kind != DirectiveParams || got.Params["screenshot"] != true {
		t.Fatalf("expected directive passthrough, got %#v", got)
	}
}

func TestNormalizeDirectivePreservesOverrides(t *testing.T) {
	t.Parallel()

	raw := map[string]any{"geolocation": "US"}
	got := NormalizeDirective(raw)
	if got.Kind != DirectiveParams {
		t.Fatalf("expected DirectiveParams, got %v", got.Kind)
	}
	if got.Params["geolocation"] != "US" {
		t.Fatalf("expected overrides to be carried, got %#v", got.Params)
	}
}
