package service

import (
	"net/http"

	"github.com/MKhiriev/go-fleet-keeper/internal/cookie"
)

const headerSetCookie = "Set-Cookie"

type headerField struct {
	name  string
	value string
}

// Headers is an ordered multimap of response headers produced by the auth
// flows. Nested calls each contribute a partial set and the caller merges
// them into one response.
//
// Plain headers follow last-wins per name. Set-Cookie values are keyed by
// cookie name, so a renewed session cookie replaces a cleared one while
// unrelated cookies are kept.
//
// A nil *Headers is an empty set.
type Headers struct {
	fields []headerField
}

func NewHeaders() *Headers {
	return &Headers{}
}

// Add appends a value without touching earlier ones.
func (h *Headers) Add(name, value string) {
	h.fields = append(h.fields, headerField{name: http.CanonicalHeaderKey(name), value: value})
}

// Set replaces every earlier value of name.
func (h *Headers) Set(name, value string) {
	name = http.CanonicalHeaderKey(name)
	if name == headerSetCookie {
		h.SetCookie(value)
		return
	}
	h.remove(func(f headerField) bool { return f.name == name })
	h.fields = append(h.fields, headerField{name: name, value: value})
}

// SetCookie adds a serialized cookie, replacing an earlier one of the same
// cookie name. Values that do not parse as cookies are always kept.
func (h *Headers) SetCookie(value string) {
	if cookieName := cookie.NameOf(value); cookieName != "" {
		h.remove(func(f headerField) bool {
			return f.name == headerSetCookie && cookie.NameOf(f.value) == cookieName
		})
	}
	h.fields = append(h.fields, headerField{name: headerSetCookie, value: value})
}

// Merge folds other into h. Values in other win.
func (h *Headers) Merge(other *Headers) {
	if other == nil {
		return
	}

	replaced := make(map[string]bool)
	for _, f := range other.fields {
		if f.name == headerSetCookie {
			h.SetCookie(f.value)
			continue
		}
		// other may itself hold several values of a name; drop ours once
		if !replaced[f.name] {
			h.remove(func(own headerField) bool { return own.name == f.name })
			replaced[f.name] = true
		}
		h.fields = append(h.fields, f)
	}
}

// Get returns the last value of name, or "".
func (h *Headers) Get(name string) string {
	values := h.Values(name)
	if len(values) == 0 {
		return ""
	}
	return values[len(values)-1]
}

func (h *Headers) Values(name string) []string {
	if h == nil {
		return nil
	}

	name = http.CanonicalHeaderKey(name)
	var values []string
	for _, f := range h.fields {
		if f.name == name {
			values = append(values, f.value)
		}
	}
	return values
}

func (h *Headers) Len() int {
	if h == nil {
		return 0
	}
	return len(h.fields)
}

// WriteTo copies the headers into dst. Plain headers replace what dst
// already holds for the name; cookies are appended.
func (h *Headers) WriteTo(dst http.Header) {
	if h == nil {
		return
	}

	cleared := make(map[string]bool)
	for _, f := range h.fields {
		if f.name != headerSetCookie && !cleared[f.name] {
			dst.Del(f.name)
			cleared[f.name] = true
		}
		dst.Add(f.name, f.value)
	}
}

func (h *Headers) remove(match func(headerField) bool) {
	kept := h.fields[:0]
	for _, f := range h.fields {
		if !match(f) {
			kept = append(kept, f)
		}
	}
	h.fields = kept
}
