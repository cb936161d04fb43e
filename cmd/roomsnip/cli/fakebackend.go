package cli

import (
	"fmt"
	"log"
	"net"
	"strings"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/room-snippet/internal/config"
	"github.com/r9s-ai/room-snippet/internal/fakebackend"
)

type fakeBackendOptions struct {
	listen string
	apiKey string
	quiet  bool
}

func newFakeBackendCmd(root *rootOptions) *cobra.Command {
	opts := fakeBackendOptions{}
	cmd := &cobra.Command{
		Use:   "fake-backend",
		Short: "Serve a local room backend for offline development",
		Long: "fake-backend answers GET /room/<room>/info and GET /<room> with a session descriptor.\n" +
			"Point an environment at it, e.g. ROOMSNIP_OPENTOKDEMO_FETCH_URL=http://127.0.0.1:3300/room/{{.room}}/info",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFakeBackendWithOptions(cmd, root, opts)
		},
	}
	fs := cmd.Flags()
	fs.StringVar(&opts.listen, "listen", "", "listen address (default from config, :3300)")
	fs.StringVar(&opts.apiKey, "api-key", "", "api key served in every session (default from config)")
	fs.BoolVarP(&opts.quiet, "quiet", "q", false, "disable access log")
	return cmd
}

func runFakeBackendWithOptions(cmd *cobra.Command, root *rootOptions, opts fakeBackendOptions) error {
	cfg, err := config.LoadIfExists(root.cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	listen := strings.TrimSpace(opts.listen)
	if listen == "" {
		listen = cfg.FakeBackend.Listen
	}
	apiKey := strings.TrimSpace(opts.apiKey)
	if apiKey == "" {
		apiKey = cfg.FakeBackend.APIKey
	}

	stderr := cmd.ErrOrStderr()
	logger := log.New(stderr, "", 0)
	bopts := fakebackend.Options{APIKey: apiKey}
	if !opts.quiet {
		bopts.Logger = logger
		bopts.Color = isTerminal(stderr)
	}
	return fakebackend.Serve(cmd.Context(), listen, bopts, func(addr net.Addr) {
		logger.Printf("roomsnip fake-backend listening on %s", addr)
	})
}
