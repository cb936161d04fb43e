package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/r9s-ai/room-snippet/internal/config"
	"github.com/r9s-ai/room-snippet/pkg/environment"
	"github.com/r9s-ai/room-snippet/pkg/snippet"
)

func newDialectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "dialects",
		Aliases: []string{"languages"},
		Short:   "List output languages and their default api key variable names",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, d := range snippet.Dialects() {
				if _, err := fmt.Fprintf(out, "dialect=%s convention=%s api_key_var=%s\n", d, d.Convention(), d.DefaultVarName()); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func newEnvironmentsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "environments",
		Short: "List environments and their resolved url patterns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadIfExists(root.cfgPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			table := cfg.Table()
			out := cmd.OutOrStdout()
			for _, env := range environment.All() {
				ep, err := table.Resolve(env, "<room>")
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(out, "environment=%s default=%t fetch_url=%s display_url=%s\n",
					env, string(env) == cfg.DefaultEnvironment, ep.FetchURL, ep.DisplayURL)
				if err != nil {
					return err
				}
			}
			return nil
		},
	}
}
