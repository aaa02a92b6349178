package params

import "reflect"

// DirectiveKind identifies the normalized form of a per-request routing
// directive.
type DirectiveKind int

// Directive variants. The zero value is Absent so that requests that never
// set a directive classify correctly.
const (
	DirectiveAbsent DirectiveKind = iota
	DirectiveFalse
	DirectiveTrue
	DirectiveParams
	DirectiveLegacyFalsy
	DirectiveInvalid
)

// Directive is the per-request instruction controlling API routing. It is
// produced once at the boundary by NormalizeDirective so the engine never
// re-inspects raw dynamic values.
type Directive struct {
	Kind   DirectiveKind
	Params map[string]any
	Raw    any
}

// Override builds a Directive carrying explicit parameter overrides.
func Override(p map[string]any) Directive {
	return Directive{Kind: DirectiveParams, Params: p}
}

// Route builds a boolean Directive.
func Route(enabled bool) Directive {
	if enabled {
		return Directive{Kind: DirectiveTrue}
	}
	return Directive{Kind: DirectiveFalse}
}

// NormalizeDirective maps a dynamically-typed directive value, as read from a
// request-scoped side channel, onto its tagged variant. Booleans and
// parameter maps are the documented forms; nil, numeric zero, empty strings,
// and empty byte or value slices are accepted as legacy "false".
func NormalizeDirective(raw any) Directive {
	switch v := raw.(type) {
	case nil:
		return Directive{Kind: DirectiveLegacyFalsy, Raw: raw}
	case bool:
		return Route(v)
	case Directive:
		return v
	case map[string]any:
		return Override(v)
	}
	if isLegacyFalsy(raw) {
		return Directive{Kind: DirectiveLegacyFalsy, Raw: raw}
	}
	return Directive{Kind: DirectiveInvalid, Raw: raw}
}

func isLegacyFalsy(raw any) bool {
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.String:
		return v.Len() == 0
	case reflect.Slice, reflect.Array:
		return v.Len() == 0
	default:
		return false
	}
}
