package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/philipp01105/preciselog/formatter"
)

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate config.yaml",
		Short: "Check a YAML formatter config",
		Long:  `Load a YAML formatter config and report every problem found. Exits non-zero when the config is invalid.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := formatter.LoadConfig(args[0])
			if err != nil {
				errs := multierr.Errors(err)
				for _, e := range errs {
					fmt.Fprintln(a.stdout, e)
				}
				return fmt.Errorf("%s: %d problem(s)", args[0], len(errs))
			}
			// The template is compiled too; lenient configs can still be checked
			if _, err := formatter.New(cfg); err != nil {
				fmt.Fprintln(a.stdout, err)
				return fmt.Errorf("%s: 1 problem(s)", args[0])
			}
			fmt.Fprintf(a.stdout, "%s: ok\n", args[0])
			return nil
		},
	}
}
