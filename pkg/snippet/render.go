// Package snippet renders a session descriptor as a source-code snippet.
package snippet

import (
	"fmt"
	"strings"

	"github.com/r9s-ai/room-snippet/pkg/placeholder"
	"github.com/r9s-ai/room-snippet/pkg/session"
)

// Placeholder names available to dialect templates.
const (
	KeyRoom          = "room"
	KeyURL           = "url"
	KeyAPIKey        = "api_key"
	KeyToken         = "token"
	KeySessionID     = "session_id"
	KeyAPIKeyVarName = "api_key_var_name"
)

// Values builds the placeholder mapping of a descriptor. varName is used as
// given.
func Values(d session.Descriptor, varName string) map[string]string {
	return map[string]string{
		KeyRoom:          d.Room,
		KeyURL:           d.URL,
		KeyAPIKey:        d.APIKey,
		KeyToken:         d.Token,
		KeySessionID:     d.SessionID,
		KeyAPIKeyVarName: varName,
	}
}

// Render renders d in dialect. A non-empty varNameOverride replaces the
// dialect's default API key variable name. The template's trailing newline,
// or its absence, is kept as is.
func Render(d session.Descriptor, dialect Dialect, varNameOverride string) (string, error) {
	spec, ok := dialects[dialect]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownDialect, string(dialect))
	}
	varName := strings.TrimSpace(varNameOverride)
	if varName == "" {
		varName = spec.convention.DefaultVarName()
	}
	return placeholder.Expand(string(dialect), spec.template, Values(d, varName))
}

// RenderAll renders the same descriptor once per dialect and joins the
// results in order with Join.
func RenderAll(d session.Descriptor, ds []Dialect, varNameOverride string) (string, error) {
	parts := make([]string, 0, len(ds))
	for _, dialect := range ds {
		out, err := Render(d, dialect, varNameOverride)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	return Join(parts), nil
}

// Separate returns a copy of parts where every snippet but the last ends with
// a newline, so the next one starts on its own line. The last snippet keeps
// its template's ending.
func Separate(parts []string) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		if i < len(parts)-1 && !strings.HasSuffix(p, "\n") {
			p += "\n"
		}
		out[i] = p
	}
	return out
}

// Join concatenates rendered snippets after Separate.
func Join(parts []string) string {
	return strings.Join(Separate(parts), "")
}
