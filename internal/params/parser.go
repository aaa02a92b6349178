package params

import "sort"

// Parser derives API parameters for requests against one immutable set of
// defaults. It is stateless and safe for concurrent use.
type Parser struct {
	defaults Defaults
}

// NewParser builds a Parser.
func NewParser(defaults Defaults) *Parser {
	return &Parser{defaults: defaults}
}

// Parse classifies the request and, when it is API-bound, produces the final
// parameter mapping. Warnings are a side channel: they never alter the
// outcome. The only error condition is a malformed directive or override
// set, reported as *ValidationError before any merge work.
func (p *Parser) Parse(req Request) (Outcome, []Warning, error) {
	var warnings warningList

	overrides, route, err := p.classify(req.Directive, &warnings)
	if err != nil {
		return Skip(), warnings, err
	}
	if !route {
		return Skip(), warnings, nil
	}

	working := p.seedDefaults(&warnings)
	p.mergeOverrides(working, overrides, &warnings)

	if p.effectiveAutomap(req) {
		p.automap(working, req, &warnings)
	}

	if p.defaults.JobID != "" {
		working["jobId"] = p.defaults.JobID
	}

	return Use(working), warnings, nil
}

// classify applies the routing truth table to the request directive. It
// returns the explicit overrides (possibly empty) and whether the request is
// API-bound at all.
func (p *Parser) classify(d Directive, warnings *warningList) (map[string]any, bool, error) {
	switch d.Kind {
	case DirectiveAbsent:
		if !p.defaults.RouteAllByDefault {
			return nil, false, nil
		}
		return map[string]any{}, true, nil
	case DirectiveFalse:
		return nil, false, nil
	case DirectiveLegacyFalsy:
		warnings.add(
			WarnDeprecatedUsage,
			"setting the API routing directive to %#v is deprecated. Use False instead.",
			d.Raw,
		)
		return nil, false, nil
	case DirectiveTrue:
		return map[string]any{}, true, nil
	case DirectiveParams:
		return d.Params, true, nil
	default:
		return nil, false, validationErrorf(
			"the API routing directive must be a boolean or a parameter map, got %#v",
			d.Raw,
		)
	}
}

// seedDefaults deep-copies the default parameters, dropping null values with
// a warning: null in the defaults is never forwarded.
func (p *Parser) seedDefaults(warnings *warningList) map[string]any {
	working := make(map[string]any, len(p.defaults.DefaultParams))
	for _, key := range sortedKeys(p.defaults.DefaultParams) {
		value := p.defaults.DefaultParams[key]
		if value == nil {
			warnings.add(
				WarnDroppedDefault,
				"parameter %q in the default parameters is null and was skipped; default parameters should never be null",
				key,
			)
			continue
		}
		working[key] = deepCopyValue(value)
	}
	return working
}

// mergeOverrides layers explicit per-request parameters on top of the seeded
// defaults. A null override unsets a seeded key; a null override for an
// unknown key only warns.
func (p *Parser) mergeOverrides(working, overrides map[string]any, warnings *warningList) {
	for _, key := range sortedKeys(overrides) {
		value := overrides[key]
		if value == nil {
			if _, ok := working[key]; ok {
				delete(working, key)
				continue
			}
			warnings.add(
				WarnRedundantOverride,
				"parameter %q is null, which unsets a default parameter, but the default parameters do not define such a parameter",
				key,
			)
			continue
		}
		working[key] = value
	}
}

func (p *Parser) effectiveAutomap(req Request) bool {
	if req.AutomapOverride != nil {
		return *req.AutomapOverride
	}
	return p.defaults.AutomapByDefault
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
