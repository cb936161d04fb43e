package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Run executes roomsnip with args, reading .env from the working directory
// first. Variables already set in the process environment win.
func Run(args []string) error {
	if err := loadDotEnv(".env"); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := newRootCmd()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// loadDotEnv loads path into the process environment. A missing file is not
// an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

type rootOptions struct {
	cfgPath string
}

func newRootCmd() *cobra.Command {
	root := &rootOptions{cfgPath: "roomsnip.yaml"}
	render := renderOptions{}
	cmd := &cobra.Command{
		Use:   "roomsnip -l <language> [-e environment] [-r room] [-k var]",
		Short: "Fetch a room session and print it as a code snippet",
		Long: "roomsnip resolves a room on a room backend, fetches its session (api key, session id, token)\n" +
			"and prints it as a snippet in the selected language.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRenderWithOptions(cmd, root, render)
		},
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w\n\n%s", err, c.UsageString())
	})
	cmd.PersistentFlags().StringVarP(&root.cfgPath, "config", "c", "roomsnip.yaml", "config yaml path (optional)")
	addRenderFlags(cmd, &render)

	cmd.AddCommand(
		newDialectsCmd(),
		newEnvironmentsCmd(root),
		newFakeBackendCmd(root),
		newVersionCmd(),
	)
	return cmd
}
