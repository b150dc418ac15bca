package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	srvErrors "github.com/mikesterific/parallel-instances/pkg/errors"
	"github.com/mikesterific/parallel-instances/pkg/fixtures"
)

func newResolveCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "resolve <key>",
		Short:     "Print the fixture value of the base URL for key",
		Long:      "Prints the fixture value matched by --base-url. Keys: username, apiKey, testItem.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{fixtures.KeyUsername, fixtures.KeyAPIKey, fixtures.KeyTestItem},
		RunE: func(cmd *cobra.Command, args []string) error {
			v, ok := a.cfg.FixtureTable().Resolve(a.cfg.BaseURL, args[0])
			if !ok {
				return srvErrors.NewFixtureNotFoundError(args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), v)
			return nil
		},
	}
}
