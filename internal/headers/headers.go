// Package headers implements an ordered header map with case-insensitive
// lookup and case-preserving storage.
package headers

import (
	"net/http"
	"sort"
	"strings"
)

// Entry is a single header line. A nil Value marks a header that was set
// without a value; consumers skip such entries when emitting parameters.
type Entry struct {
	Name  string
	Value *string
}

// Headers keeps header lines in insertion order. Names are matched
// case-insensitively but emitted with their original casing.
type Headers struct {
	entries []Entry
	index   map[string]int
}

// New builds an empty Headers.
func New() *Headers {
	return &Headers{index: make(map[string]int)}
}

func canonical(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Set replaces the value of name, keeping the position of an existing entry.
// New names are appended.
func (h *Headers) Set(name, value string) {
	v := value
	h.set(name, &v)
}

// SetNone records name without a value. Automap drops such headers silently.
func (h *Headers) SetNone(name string) {
	h.set(name, nil)
}

func (h *Headers) set(name string, value *string) {
	if h.index == nil {
		h.index = make(map[string]int)
	}
	key := canonical(name)
	if pos, ok := h.index[key]; ok {
		h.entries[pos] = Entry{Name: name, Value: value}
		return
	}
	h.index[key] = len(h.entries)
	h.entries = append(h.entries, Entry{Name: name, Value: value})
}

// Get returns the value stored under name. The boolean reports whether the
// header exists and carries a value.
func (h *Headers) Get(name string) (string, bool) {
	if h == nil {
		return "", false
	}
	pos, ok := h.index[canonical(name)]
	if !ok || h.entries[pos].Value == nil {
		return "", false
	}
	return *h.entries[pos].Value, true
}

// Del removes name if present.
func (h *Headers) Del(name string) {
	if h == nil {
		return
	}
	key := canonical(name)
	pos, ok := h.index[key]
	if !ok {
		return
	}
	h.entries = append(h.entries[:pos], h.entries[pos+1:]...)
	delete(h.index, key)
	for k, p := range h.index {
		if p > pos {
			h.index[k] = p - 1
		}
	}
}

// Len reports the number of header lines, including value-less ones.
func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.entries)
}

// Entries returns the header lines in insertion order. The returned slice is
// a copy; mutating it does not affect the map.
func (h *Headers) Entries() []Entry {
	if h == nil {
		return nil
	}
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clone returns an independent copy.
func (h *Headers) Clone() *Headers {
	if h == nil {
		return nil
	}
	out := New()
	for _, e := range h.entries {
		out.set(e.Name, e.Value)
	}
	return out
}

// FromHTTP converts a net/http header map. Multi-valued headers are joined
// with commas; keys are added in sorted order since http.Header has none.
func FromHTTP(src http.Header) *Headers {
	out := New()
	names := make([]string, 0, len(src))
	for name := range src {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		out.Set(name, strings.Join(src[name], ","))
	}
	return out
}

// HTTP converts back to a net/http header map, dropping value-less entries.
func (h *Headers) HTTP() http.Header {
	out := http.Header{}
	if h == nil {
		return out
	}
	for _, e := range h.entries {
		if e.Value == nil {
			continue
		}
		out.Set(e.Name, *e.Value)
	}
	return out
}
