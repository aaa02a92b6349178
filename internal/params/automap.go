package params

import (
	"encoding/base64"
	"strings"
)

// Parameters whose server-side default is false. Sending them explicitly
// with that value is redundant, so automap strips them at the end.
var defaultFalseParams = []string{"browserHtml", "screenshot"}

// automap fills API parameters derived from the physical request fields. It
// only fills gaps: a value already present in the working set is never
// overwritten, though it may draw a redundancy or conflict warning.
func (p *Parser) automap(working map[string]any, req Request, warnings *warningList) {
	p.mapResponseBody(working, warnings)
	p.mapResponseHeaders(working, warnings)
	p.mapMethod(working, req, warnings)
	p.mapHeaders(working, req, warnings)
	p.mapBody(working, req, warnings)
	p.dropDefaultFalse(working, warnings)
}

// mapResponseBody requests httpResponseBody unless an output type is already
// active.
func (p *Parser) mapResponseBody(working map[string]any, warnings *warningList) {
	browser := truthy(working["browserHtml"]) || truthy(working["screenshot"])
	value, present := working["httpResponseBody"]
	if !browser {
		switch {
		case !present:
			working["httpResponseBody"] = true
		case value == true:
			warnings.add(
				WarnRedundantOverride,
				"you do not need to set httpResponseBody to true; it is requested automatically when neither browserHtml nor screenshot are",
			)
		}
	} else if value == false {
		warnings.add(
			WarnRedundantOverride,
			"the request unnecessarily defines the httpResponseBody parameter with its default value, false; it will not be sent to the server",
		)
	}
	if working["httpResponseBody"] == false {
		delete(working, "httpResponseBody")
	}
}

// mapResponseHeaders co-requests httpResponseHeaders whenever a body-bearing
// output is active.
func (p *Parser) mapResponseHeaders(working map[string]any, warnings *warningList) {
	implied := truthy(working["httpResponseBody"]) || truthy(working["browserHtml"])
	value, present := working["httpResponseHeaders"]
	if implied {
		switch {
		case !present:
			working["httpResponseHeaders"] = true
		case value == true:
			warnings.add(
				WarnRedundantOverride,
				"you do not need to set httpResponseHeaders to true; it is requested automatically when httpResponseBody or browserHtml are",
			)
		}
	} else if value == false {
		// An echo of a configured default is not a caller mistake.
		if def, defined := p.defaults.DefaultParams["httpResponseHeaders"]; !defined || def != false {
			warnings.add(
				WarnRedundantOverride,
				"you do not need to set httpResponseHeaders to false if neither httpResponseBody nor browserHtml are requested",
			)
		}
	}
	if working["httpResponseHeaders"] == false {
		delete(working, "httpResponseHeaders")
	}
}

func (p *Parser) mapMethod(working map[string]any, req Request, warnings *warningList) {
	if value, present := working["httpRequestMethod"]; present {
		warnings.add(
			WarnConflict,
			"the request defines the httpRequestMethod parameter, overriding its own method; use the request's native Method field instead",
		)
		if s, _ := value.(string); s != req.method() {
			warnings.add(
				WarnConflict,
				"the HTTP method of the request (%s) does not match the httpRequestMethod parameter (%v)",
				req.method(), value,
			)
		}
		return
	}
	method := req.method()
	if method == "GET" {
		return
	}
	if !truthy(working["httpResponseBody"]) {
		warnings.add(
			WarnGating,
			"the HTTP method of the request (%s) was dropped: httpRequestMethod can only be set when httpResponseBody is requested",
			method,
		)
		return
	}
	working["httpRequestMethod"] = method
}

func (p *Parser) mapHeaders(working map[string]any, req Request, warnings *warningList) {
	customActive := truthy(working["httpResponseBody"])
	browserActive := !truthy(working["httpResponseBody"]) ||
		truthy(working["browserHtml"]) || truthy(working["screenshot"])

	// Explicit booleans steer the mapping instead of riding into the payload:
	// false suppresses it silently, true forces it. The literal is removed
	// either way; it is not a valid wire value for these parameters.
	customActive = headerBoolOverride(working, "customHttpRequestHeaders", customActive)
	browserActive = headerBoolOverride(working, "requestHeaders", browserActive)

	if customActive {
		p.mapCustomHeaders(working, req, warnings)
	}
	if browserActive {
		p.mapBrowserHeaders(working, req, warnings)
	}
}

func headerBoolOverride(working map[string]any, param string, active bool) bool {
	switch working[param] {
	case false:
		delete(working, param)
		return false
	case true:
		delete(working, param)
		return true
	}
	return active
}

// mapCustomHeaders copies request headers into customHttpRequestHeaders,
// preserving name casing and insertion order.
func (p *Parser) mapCustomHeaders(working map[string]any, req Request, warnings *warningList) {
	if _, present := working["customHttpRequestHeaders"]; present {
		warnings.add(
			WarnConflict,
			"the request defines the customHttpRequestHeaders parameter, overriding its own headers; use the request's native Headers field instead",
		)
		return
	}
	var mapped []map[string]string
	for _, entry := range req.Headers.Entries() {
		if entry.Value == nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		if _, unsupported := p.defaults.UnsupportedHeaders[name]; unsupported {
			if !p.harmlessDefault(name, *entry.Value) {
				warnings.add(
					WarnUnmappedHeader,
					"the request defines header %q, which cannot be mapped into the customHttpRequestHeaders parameter",
					entry.Name,
				)
			}
			continue
		}
		mapped = append(mapped, map[string]string{
			"name":  entry.Name,
			"value": *entry.Value,
		})
	}
	if len(mapped) > 0 {
		working["customHttpRequestHeaders"] = mapped
	}
}

// mapBrowserHeaders translates the subset of headers browser-based outputs
// support into the requestHeaders parameter.
func (p *Parser) mapBrowserHeaders(working map[string]any, req Request, warnings *warningList) {
	if _, present := working["requestHeaders"]; present {
		warnings.add(
			WarnConflict,
			"the request defines the requestHeaders parameter, overriding its own headers; use the request's native Headers field instead",
		)
		return
	}
	mapped := map[string]string{}
	for _, entry := range req.Headers.Entries() {
		if entry.Value == nil {
			continue
		}
		name := strings.ToLower(strings.TrimSpace(entry.Name))
		if field, ok := p.defaults.BrowserHeaders[name]; ok {
			mapped[field] = *entry.Value
			continue
		}
		if !p.harmlessDefault(name, *entry.Value) {
			warnings.add(
				WarnUnmappedHeader,
				"the request defines header %q, which cannot be mapped into the requestHeaders parameter",
				entry.Name,
			)
		}
	}
	if len(mapped) > 0 {
		working["requestHeaders"] = mapped
	}
}

// harmlessDefault reports whether a dropped header value matches the
// platform default for its name, in which case the drop stays silent. The
// boundary of "supported" is owned by the remote API, so this is kept as a
// literal lookup table.
func (p *Parser) harmlessDefault(name, value string) bool {
	expected, ok := p.defaults.HarmlessHeaderDefaults[name]
	return ok && expected == value
}

func (p *Parser) mapBody(working map[string]any, req Request, warnings *warningList) {
	if value, present := working["httpRequestBody"]; present {
		warnings.add(
			WarnConflict,
			"the request defines the httpRequestBody parameter, overriding its own body; use the request's native Body field instead",
		)
		encoded := base64.StdEncoding.EncodeToString(req.Body)
		if s, _ := value.(string); s != encoded {
			warnings.add(
				WarnConflict,
				"the body of the request does not match the httpRequestBody parameter (%v)",
				value,
			)
		}
		return
	}
	if len(req.Body) == 0 {
		return
	}
	if !truthy(working["httpResponseBody"]) {
		warnings.add(
			WarnGating,
			"the request body was dropped: httpRequestBody can only be set when httpResponseBody is requested",
		)
		return
	}
	working["httpRequestBody"] = base64.StdEncoding.EncodeToString(req.Body)
}

// dropDefaultFalse removes output parameters explicitly set to their
// server-side default of false. The warning is suppressed when the value
// meaningfully overrides a different default parameter.
func (p *Parser) dropDefaultFalse(working map[string]any, warnings *warningList) {
	for _, param := range defaultFalseParams {
		if value, present := working[param]; !present || value != false {
			continue
		}
		if def, ok := p.defaults.DefaultParams[param]; !ok || def == false {
			warnings.add(
				WarnRedundantOverride,
				"the request unnecessarily defines the %s parameter with its default value, false; it will not be sent to the server",
				param,
			)
		}
		delete(working, param)
	}
}
