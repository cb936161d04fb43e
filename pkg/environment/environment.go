package environment

import (
	"errors"
	"fmt"
	"strings"

	"github.com/r9s-ai/room-snippet/pkg/placeholder"
)

// Environment identifies one of the known room backends.
type Environment string

const (
	Meet        Environment = "meet"
	RoomService Environment = "opentokrtc"
	DemoService Environment = "opentokdemo"
	HostedMeet  Environment = "hosted-meet"
)

// Default is used when the caller selects no environment.
const Default = RoomService

// ErrUnknownEnvironment is returned for tags outside the known set and for
// environments a Table has no pattern for.
var ErrUnknownEnvironment = errors.New("unknown environment")

var all = []Environment{Meet, RoomService, DemoService, HostedMeet}

// All returns every known environment in a stable order.
func All() []Environment {
	out := make([]Environment, len(all))
	copy(out, all)
	return out
}

// Parse maps a tag to its Environment.
func Parse(tag string) (Environment, error) {
	want := Environment(strings.ToLower(strings.TrimSpace(tag)))
	for _, e := range all {
		if e == want {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w %q (expect: %s)", ErrUnknownEnvironment, tag, strings.Join(Tags(), ", "))
}

// Tags returns the tag of every known environment.
func Tags() []string {
	out := make([]string, 0, len(all))
	for _, e := range all {
		out = append(out, string(e))
	}
	return out
}

func (e Environment) String() string { return string(e) }

// Pattern holds the URL patterns of one environment. Both use the {{.room}}
// placeholder. An empty DisplayURL means the display URL equals the fetch URL.
type Pattern struct {
	FetchURL   string
	DisplayURL string
}

// Endpoint is the pair of URLs resolved for one room. FetchURL is queried for
// the session descriptor; DisplayURL is the page a human opens.
type Endpoint struct {
	FetchURL   string
	DisplayURL string
}

// Table maps every environment to its URL patterns.
type Table map[Environment]Pattern

// DefaultTable returns the builtin URL patterns.
func DefaultTable() Table {
	return Table{
		Meet: {
			FetchURL: "https://meet.tokbox.com/{{.room}}",
		},
		RoomService: {
			FetchURL:   "https://opentokrtc.com/room/{{.room}}/info",
			DisplayURL: "https://opentokrtc.com/room/{{.room}}",
		},
		DemoService: {
			FetchURL:   "https://opentokdemo.tokbox.com/room/{{.room}}/info",
			DisplayURL: "https://opentokdemo.tokbox.com/room/{{.room}}",
		},
		HostedMeet: {
			FetchURL: "https://meet.opentok.com/{{.room}}",
		},
	}
}

// With returns a copy of t where the non-empty fields of p replace the
// patterns of env.
func (t Table) With(env Environment, p Pattern) Table {
	out := make(Table, len(t)+1)
	for k, v := range t {
		out[k] = v
	}
	cur := out[env]
	if s := strings.TrimSpace(p.FetchURL); s != "" {
		cur.FetchURL = s
	}
	if s := strings.TrimSpace(p.DisplayURL); s != "" {
		cur.DisplayURL = s
	}
	out[env] = cur
	return out
}

// Resolve builds the endpoint of room in env. The room name is interpolated
// verbatim; callers must pass URL-safe names.
func (t Table) Resolve(env Environment, room string) (Endpoint, error) {
	p, ok := t[env]
	if !ok || strings.TrimSpace(p.FetchURL) == "" {
		return Endpoint{}, fmt.Errorf("%w %q: no url pattern", ErrUnknownEnvironment, string(env))
	}
	values := map[string]string{"room": room}
	fetchURL, err := placeholder.Expand(string(env)+".fetch_url", p.FetchURL, values)
	if err != nil {
		return Endpoint{}, err
	}
	displayURL := fetchURL
	if strings.TrimSpace(p.DisplayURL) != "" {
		displayURL, err = placeholder.Expand(string(env)+".display_url", p.DisplayURL, values)
		if err != nil {
			return Endpoint{}, err
		}
	}
	return Endpoint{FetchURL: fetchURL, DisplayURL: displayURL}, nil
}
