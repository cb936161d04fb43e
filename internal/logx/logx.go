package logx

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
)

const prefix = "[ROOMSNIP]"

// IsTerminal reports whether f is an interactive terminal and NO_COLOR is unset.
func IsTerminal(f *os.File) bool {
	if f == nil || strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ColorizeStatusWith renders status, or ERR when status <= 0, colored by class
// when color is set.
func ColorizeStatusWith(status int, color bool) string {
	text := fmt.Sprintf("%d", status)
	if status <= 0 {
		text = "ERR"
	}
	if !color {
		return text
	}
	// ANSI colors
	const (
		reset  = "\x1b[0m"
		red    = "\x1b[31m"
		green  = "\x1b[32m"
		yellow = "\x1b[33m"
		cyan   = "\x1b[36m"
	)
	switch {
	case status >= 200 && status < 300:
		return green + text + reset
	case status >= 300 && status < 400:
		return cyan + text + reset
	case status >= 400 && status < 500:
		return yellow + text + reset
	default:
		return red + text + reset
	}
}

// FormatFetchLine prints a single line for an outgoing fetch. status <= 0
// means the request never got a response.
//
// Example:
// [ROOMSNIP] 2026/10/19 - 17:44:22 | 200 | 84.1ms | GET "https://opentokrtc.com/room/r1/info" | request_id=2026...
func FormatFetchLine(
	ts time.Time,
	status int,
	latency time.Duration,
	method string,
	url string,
	fields map[string]any,
	color bool,
) string {
	base := fmt.Sprintf(
		`%s %s | %s | %s | %s %q`,
		prefix,
		ts.Format("2006/01/02 - 15:04:05"),
		ColorizeStatusWith(status, color),
		latency.String(),
		strings.TrimSpace(method),
		url,
	)
	return withFields(base, fields)
}

// FormatRequestLine prints a single line for a request served by the fake
// backend.
//
// Example:
// [ROOMSNIP] 2026/10/19 - 17:44:22 | 200 | 120µs | 127.0.0.1 | GET "/room/r1/info" | room=r1
func FormatRequestLine(
	ts time.Time,
	status int,
	latency time.Duration,
	clientIP string,
	method string,
	path string,
	fields map[string]any,
	color bool,
) string {
	base := fmt.Sprintf(
		`%s %s | %s | %s | %s | %s %q`,
		prefix,
		ts.Format("2006/01/02 - 15:04:05"),
		ColorizeStatusWith(status, color),
		latency.String(),
		strings.TrimSpace(clientIP),
		strings.TrimSpace(method),
		path,
	)
	return withFields(base, fields)
}

func withFields(base string, fields map[string]any) string {
	extra := formatFields(fields)
	if extra == "" {
		return base
	}
	return base + " | " + extra
}

func formatFields(fields map[string]any) string {
	if len(fields) == 0 {
		return ""
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		v, ok := fields[k]
		if !ok || v == nil {
			continue
		}
		switch t := v.(type) {
		case string:
			if strings.TrimSpace(t) == "" {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%s", k, t))
		default:
			s := strings.TrimSpace(fmt.Sprintf("%v", v))
			if s == "" || s == "<nil>" {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s=%s", k, s))
		}
	}
	return strings.Join(parts, " ")
}
