package snippet

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Dialect is one output language syntax.
type Dialect string

const (
	Swift         Dialect = "swift"
	ObjectiveC    Dialect = "objc"
	Java          Dialect = "java"
	Kotlin        Dialect = "kotlin"
	Python        Dialect = "python"
	CSharp        Dialect = "csharp"
	JavaScript    Dialect = "javascript"
	FakePublisher Dialect = "fake-publisher"
)

// ErrUnknownDialect is returned for tags that name no dialect, and when no
// dialect is selected at all.
var ErrUnknownDialect = errors.New("unknown dialect")

// Convention is a naming style for the API key constant.
type Convention int

const (
	// Uppercase names the constant APIKEY.
	Uppercase Convention = iota
	// HintPrefixed names the constant kApiKey.
	HintPrefixed
)

// DefaultVarName returns the API key variable name of the convention.
func (c Convention) DefaultVarName() string {
	if c == HintPrefixed {
		return "kApiKey"
	}
	return "APIKEY"
}

func (c Convention) String() string {
	if c == HintPrefixed {
		return "hint-prefixed"
	}
	return "uppercase"
}

type dialectSpec struct {
	convention Convention
	// lexer is the chroma lexer used for highlighting.
	lexer    string
	template string
}

// dialects is the only place a dialect is declared. Placeholders available to
// templates: room, url, api_key, token, session_id, api_key_var_name.
var dialects = map[Dialect]dialectSpec{
	Swift: {
		convention: Uppercase,
		lexer:      "swift",
		template: `// room: {{.room}}
// url: {{.url}}
let {{.api_key_var_name}} = "{{.api_key}}"
let TOKEN = "{{.token}}"
let SESSIONID = "{{.session_id}}"
`,
	},
	ObjectiveC: {
		convention: HintPrefixed,
		lexer:      "objective-c",
		template: `// room: {{.room}}
// url: {{.url}}
static NSString* const {{.api_key_var_name}} = @"{{.api_key}}";
static NSString* const kToken = @"{{.token}}";
static NSString* const kSessionId = @"{{.session_id}}";
`,
	},
	Java: {
		convention: Uppercase,
		lexer:      "java",
		template: `// room: {{.room}}
// url: {{.url}}
public static final String {{.api_key_var_name}} = "{{.api_key}}";
public static final String TOKEN = "{{.token}}";
public static final String SESSION_ID = "{{.session_id}}";
`,
	},
	Kotlin: {
		convention: Uppercase,
		lexer:      "kotlin",
		template: `// room: {{.room}}
// url: {{.url}}
const val {{.api_key_var_name}} = "{{.api_key}}"
const val TOKEN = "{{.token}}"
const val SESSION_ID = "{{.session_id}}"
`,
	},
	Python: {
		convention: Uppercase,
		lexer:      "python",
		template: `# room: {{.room}} url: {{.url}}
{{.api_key_var_name}} = "{{.api_key}}"
TOKEN = "{{.token}}"
SESSION_ID = "{{.session_id}}"
`,
	},
	CSharp: {
		convention: Uppercase,
		lexer:      "csharp",
		template: `// room: {{.room}}
// url: {{.url}}
public const string {{.api_key_var_name}} = "{{.api_key}}";
public const string TOKEN = "{{.token}}";
public const string SESSION_ID = "{{.session_id}}";`,
	},
	JavaScript: {
		convention: Uppercase,
		lexer:      "javascript",
		template: `// room: {{.room}}
// url: {{.url}}
export const {{.api_key_var_name}} = '{{.api_key}}';
export const TOKEN = '{{.token}}';
export const SESSION_ID = '{{.session_id}}';
`,
	},
	FakePublisher: {
		convention: Uppercase,
		lexer:      "bash",
		template:   `fake-publisher --api-key {{.api_key}} --session-id {{.session_id}} --token {{.token}}`,
	},
}

var dialectAliases = map[string]Dialect{
	"objective-c":   ObjectiveC,
	"objectivec":    ObjectiveC,
	"js":            JavaScript,
	"cs":            CSharp,
	"c#":            CSharp,
	"fakepublisher": FakePublisher,
}

// ParseDialect maps a tag or alias to its Dialect.
func ParseDialect(tag string) (Dialect, error) {
	key := strings.ToLower(strings.TrimSpace(tag))
	if _, ok := dialects[Dialect(key)]; ok {
		return Dialect(key), nil
	}
	if d, ok := dialectAliases[key]; ok {
		return d, nil
	}
	return "", fmt.Errorf("%w %q (expect: %s)", ErrUnknownDialect, tag, strings.Join(DialectTags(), ", "))
}

// Dialects returns every supported dialect sorted by tag.
func Dialects() []Dialect {
	out := make([]Dialect, 0, len(dialects))
	for d := range dialects {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// DialectTags returns the tag of every supported dialect sorted.
func DialectTags() []string {
	ds := Dialects()
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, string(d))
	}
	return out
}

// Convention returns the naming convention the dialect declares.
func (d Dialect) Convention() Convention {
	return dialects[d].convention
}

// DefaultVarName returns the API key variable name used without an override.
func (d Dialect) DefaultVarName() string {
	return d.Convention().DefaultVarName()
}

// Template returns the raw template of the dialect.
func (d Dialect) Template() string {
	return dialects[d].template
}

func (d Dialect) String() string { return string(d) }
