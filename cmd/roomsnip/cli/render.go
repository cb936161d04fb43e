package cli

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/room-snippet/internal/config"
	"github.com/r9s-ai/room-snippet/internal/logx"
	"github.com/r9s-ai/room-snippet/internal/pipeline"
	"github.com/r9s-ai/room-snippet/pkg/roomfetch"
	"github.com/r9s-ai/room-snippet/pkg/snippet"
)

type renderOptions struct {
	languages   []string
	environment string
	room        string
	apiKeyVar   string
	timeout     time.Duration
	highlight   string
	debug       bool
}

func addRenderFlags(cmd *cobra.Command, opts *renderOptions) {
	fs := cmd.Flags()
	fs.StringSliceVarP(&opts.languages, "language", "l", nil,
		"output language, repeatable or comma separated: "+strings.Join(snippet.DialectTags(), ", "))
	fs.StringVarP(&opts.environment, "environment", "e", "", "target environment (default from config, builtin opentokrtc)")
	fs.StringVarP(&opts.room, "room", "r", "", "room name (default: random uuid)")
	fs.StringVarP(&opts.apiKeyVar, "api-key-var", "k", "", "override the api key variable name")
	fs.DurationVar(&opts.timeout, "timeout", 0, "fetch timeout (default from config, 30s)")
	fs.StringVar(&opts.highlight, "highlight", "", "syntax highlight output: auto|always|never (default from config, never)")
	fs.BoolVar(&opts.debug, "debug", false, "print the fetch log line to stderr")
	_ = cmd.MarkFlagRequired("language")
}

func runRenderWithOptions(cmd *cobra.Command, root *rootOptions, opts renderOptions) error {
	cfg, err := config.LoadIfExists(root.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	envTag := strings.TrimSpace(opts.environment)
	if envTag == "" {
		envTag = cfg.DefaultEnvironment
	}
	varName := strings.TrimSpace(opts.apiKeyVar)
	if varName == "" {
		varName = cfg.APIKeyVarName
	}
	timeout := opts.timeout
	if timeout <= 0 {
		timeout = time.Duration(cfg.HTTP.TimeoutMs) * time.Millisecond
	}
	highlight := strings.ToLower(strings.TrimSpace(opts.highlight))
	if highlight == "" {
		highlight = cfg.Highlight
	}
	switch highlight {
	case config.HighlightAuto, config.HighlightAlways, config.HighlightNever:
	default:
		return fmt.Errorf("invalid --highlight %q, expect auto, always or never", opts.highlight)
	}

	stderr := cmd.ErrOrStderr()
	fetcher := &roomfetch.Client{
		HTTPClient: &http.Client{Timeout: timeout},
		UserAgent:  cfg.HTTP.UserAgent,
	}
	if opts.debug {
		fetcher.DebugOut = stderr
		fetcher.Color = isTerminal(stderr)
	}

	res, err := pipeline.Run(cmd.Context(), pipeline.Request{
		Environment: envTag,
		Dialects:    opts.languages,
		Room:        opts.room,
		VarName:     varName,
	}, pipeline.Deps{
		Fetcher: fetcher,
		Table:   cfg.Table(),
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !shouldHighlight(highlight, out) {
		_, err = io.WriteString(out, res.Output)
		return err
	}
	texts := make([]string, 0, len(res.Dialects))
	for _, d := range res.Dialects {
		text, err := snippet.Render(res.Descriptor, d, varName)
		if err != nil {
			return err
		}
		texts = append(texts, text)
	}
	for i, text := range snippet.Separate(texts) {
		if _, err := io.WriteString(out, snippet.Highlight(text, res.Dialects[i])); err != nil {
			return err
		}
	}
	return nil
}

func shouldHighlight(mode string, w io.Writer) bool {
	switch mode {
	case config.HighlightAlways:
		return true
	case config.HighlightAuto:
		return isTerminal(w)
	default:
		return false
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && logx.IsTerminal(f)
}
