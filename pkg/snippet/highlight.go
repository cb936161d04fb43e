package snippet

import (
	"bytes"

	"github.com/alecthomas/chroma/v2/quick"
)

// Highlight returns text with ANSI syntax colors for dialect. If the text
// cannot be highlighted it is returned unchanged.
func Highlight(text string, dialect Dialect) string {
	lexer := dialects[dialect].lexer
	if lexer == "" {
		return text
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, text, lexer, "terminal256", "monokai"); err != nil {
		return text
	}
	return buf.String()
}
