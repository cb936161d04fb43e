package requestid

import (
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestGen(t *testing.T) {
	a, b := Gen(), Gen()
	if a == b {
		t.Fatalf("ids should differ: %q", a)
	}
	if !strings.HasPrefix(a, "rs-") {
		t.Fatalf("id=%q, want rs- prefix", a)
	}
	id, err := uuid.Parse(strings.TrimPrefix(a, "rs-"))
	if err != nil {
		t.Fatalf("not a uuid: %q: %v", a, err)
	}
	if id.Version() != 7 {
		t.Fatalf("version=%d, want 7", id.Version())
	}
}

func TestEnsureKeepsExisting(t *testing.T) {
	h := http.Header{}
	h.Set(HeaderKey, " rid-1 ")
	if got := Ensure(h); got != "rid-1" {
		t.Fatalf("got %q", got)
	}
}

func TestEnsureSetsNew(t *testing.T) {
	h := http.Header{}
	id := Ensure(h)
	if id == "" || h.Get(HeaderKey) != id {
		t.Fatalf("id=%q header=%q", id, h.Get(HeaderKey))
	}
	if again := Ensure(h); again != id {
		t.Fatalf("second Ensure changed id: %q -> %q", id, again)
	}
}

func TestFromResponse(t *testing.T) {
	if got := FromResponse(nil, "sent"); got != "sent" {
		t.Fatalf("nil response: got %q", got)
	}
	resp := &http.Response{Header: http.Header{}}
	if got := FromResponse(resp, "sent"); got != "sent" {
		t.Fatalf("no header: got %q", got)
	}
	resp.Header.Set(HeaderKey, "server-1")
	if got := FromResponse(resp, "sent"); got != "server-1" {
		t.Fatalf("got %q", got)
	}
}
