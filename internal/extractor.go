package internal

import (
	"strings"
)

// ExtractorSource extracts a value from the request.
// Returns the value and true if found, or ("", false) if not present.
type ExtractorSource = func(*Request) (string, bool)

// Extractor tries multiple sources in order and returns the first match.
type Extractor struct {
	sources []ExtractorSource
}

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return Extractor{sources: sources}
}

// Extract iterates sources in order and returns the first non-empty value.
// Returns ("", false) if all sources miss.
func (e Extractor) Extract(r *Request) (string, bool) {
	for _, src := range e.sources {
		if v, ok := src(r); ok && v != "" {
			return v, true
		}
	}
	return "", false
}

// FromHeader returns a source that reads from a request header.
func FromHeader(name string) ExtractorSource {
	return func(r *Request) (string, bool) {
		v := r.Header(name)
		if v == "" {
			return "", false
		}
		return v, true
	}
}

// FromQuery returns a source that reads a string query parameter.
func FromQuery(name string) ExtractorSource {
	return fromMap(name, (*Request).Query)
}

// FromParam returns a source that reads a string route parameter.
func FromParam(name string) ExtractorSource {
	return fromMap(name, (*Request).Params)
}

// FromBody returns a source that reads a string body field.
func FromBody(name string) ExtractorSource {
	return fromMap(name, (*Request).Body)
}

// FromTransport returns a source that reads a value through the
// request's session transport.
func FromTransport(name string) ExtractorSource {
	return func(r *Request) (string, bool) {
		return r.Transport().Get(name)
	}
}

// FromBearerToken returns a source that reads a Bearer token from the Authorization header.
// Uses case-insensitive comparison on the "Bearer " prefix.
func FromBearerToken() ExtractorSource {
	return func(r *Request) (string, bool) {
		auth := r.Header("Authorization")
		if len(auth) < 7 || !strings.EqualFold(auth[:7], "bearer ") {
			return "", false
		}
		token := auth[7:]
		if token == "" {
			return "", false
		}
		return token, true
	}
}

func fromMap(name string, src func(*Request) map[string]any) ExtractorSource {
	return func(r *Request) (string, bool) {
		s, ok := src(r)[name].(string)
		if !ok || s == "" {
			return "", false
		}
		return s, true
	}
}
