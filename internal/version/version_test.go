package version

import (
	"strings"
	"testing"
)

func TestShort(t *testing.T) {
	oldV, oldC := Version, Commit
	defer func() { Version, Commit = oldV, oldC }()

	Version, Commit = "v1.0.0", "unknown"
	if got := Short(); got != "v1.0.0" {
		t.Fatalf("got %q", got)
	}
	Commit = "0123456789abcdef"
	if got := Short(); got != "v1.0.0 (0123456)" {
		t.Fatalf("got %q", got)
	}
	if got := UserAgent(); got != "roomsnip/v1.0.0" {
		t.Fatalf("user agent got %q", got)
	}
}

func TestInfoString(t *testing.T) {
	s := Get().String()
	if !strings.HasPrefix(s, "roomsnip ") || !strings.Contains(s, "go version: go") {
		t.Fatalf("unexpected info: %q", s)
	}
}
