// Package pipeline runs one resolve, fetch, parse and render pass.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/r9s-ai/room-snippet/internal/roomname"
	"github.com/r9s-ai/room-snippet/pkg/environment"
	"github.com/r9s-ai/room-snippet/pkg/roomfetch"
	"github.com/r9s-ai/room-snippet/pkg/session"
	"github.com/r9s-ai/room-snippet/pkg/snippet"
)

// Request is one snippet request as given by the user.
type Request struct {
	// Environment is a tag; empty selects environment.Default.
	Environment string
	// Dialects holds at least one dialect tag.
	Dialects []string
	// Room is used verbatim; empty generates one.
	Room string
	// VarName overrides the API key variable name when non-empty.
	VarName string
}

// Deps are the collaborators of Run.
type Deps struct {
	// Fetcher is required.
	Fetcher roomfetch.Fetcher
	// Table defaults to environment.DefaultTable.
	Table environment.Table
	// NewRoomName defaults to roomname.New.
	NewRoomName func() string
}

// Result carries the rendered output with the values it was built from.
type Result struct {
	Environment environment.Environment
	Dialects    []snippet.Dialect
	Endpoint    environment.Endpoint
	Descriptor  session.Descriptor
	Output      string
}

// Run validates every tag of req before any network activity, then performs
// exactly one fetch.
func Run(ctx context.Context, req Request, deps Deps) (Result, error) {
	envTag := strings.TrimSpace(req.Environment)
	if envTag == "" {
		envTag = string(environment.Default)
	}
	env, err := environment.Parse(envTag)
	if err != nil {
		return Result{}, err
	}

	dialects, err := parseDialects(req.Dialects)
	if err != nil {
		return Result{}, err
	}

	if deps.Fetcher == nil {
		return Result{}, errors.New("pipeline: fetcher is nil")
	}
	table := deps.Table
	if table == nil {
		table = environment.DefaultTable()
	}

	room := req.Room
	if strings.TrimSpace(room) == "" {
		gen := deps.NewRoomName
		if gen == nil {
			gen = roomname.New
		}
		room = gen()
	}

	ep, err := table.Resolve(env, room)
	if err != nil {
		return Result{}, fmt.Errorf("resolve room %q in %s: %w", room, env, err)
	}

	body, err := deps.Fetcher.Fetch(ctx, ep.FetchURL)
	if err != nil {
		return Result{}, err
	}

	d, err := session.Parse(body, room, ep.DisplayURL)
	if err != nil {
		return Result{}, fmt.Errorf("parse response of %s: %w", ep.FetchURL, err)
	}

	out, err := snippet.RenderAll(d, dialects, req.VarName)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Environment: env,
		Dialects:    dialects,
		Endpoint:    ep,
		Descriptor:  d,
		Output:      out,
	}, nil
}

func parseDialects(tags []string) ([]snippet.Dialect, error) {
	out := make([]snippet.Dialect, 0, len(tags))
	for _, tag := range tags {
		if strings.TrimSpace(tag) == "" {
			continue
		}
		d, err := snippet.ParseDialect(tag)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: no dialect selected (expect: %s)", snippet.ErrUnknownDialect, strings.Join(snippet.DialectTags(), ", "))
	}
	return out, nil
}
