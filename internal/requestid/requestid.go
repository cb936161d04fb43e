// Package requestid correlates a roomsnip fetch with the backend log line that
// served it.
//
// roomsnip stamps every outgoing fetch with an id. The fake backend echoes an
// incoming id and mints one only when the caller sent none, so both sides log
// the same value.
package requestid

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
)

// HeaderKey carries the id on requests and responses.
const HeaderKey = "X-Request-Id"

// prefix marks ids minted by roomsnip.
const prefix = "rs-"

// Gen returns a new id. The body is a UUIDv7, so ids minted later sort later.
func Gen() string {
	id, err := uuid.NewV7()
	if err != nil {
		return prefix + uuid.NewString()
	}
	return prefix + id.String()
}

// Get returns the id in h, or "" when there is none.
func Get(h http.Header) string {
	if h == nil {
		return ""
	}
	return strings.TrimSpace(h.Get(HeaderKey))
}

// Ensure returns the id in h, setting a new one first when h has none.
func Ensure(h http.Header) string {
	if id := Get(h); id != "" {
		return id
	}
	id := Gen()
	h.Set(HeaderKey, id)
	return id
}

// FromResponse prefers the id the server answered with and falls back to
// sent.
func FromResponse(resp *http.Response, sent string) string {
	if resp != nil {
		if id := Get(resp.Header); id != "" {
			return id
		}
	}
	return sent
}
