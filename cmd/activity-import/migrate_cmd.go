package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCmd(g *globalOptions) *cobra.Command {
	var down bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the activity schema migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if g.dryRun {
				return withCode(exitUsage, fmt.Errorf("migrate does not support --dry-run"))
			}
			env, cleanup, err := bootstrap(cmd.Context(), false)
			if err != nil {
				return err
			}
			defer cleanup()

			migrations := env.app.Migrations()
			if down {
				err = migrations.Rollback(cmd.Context())
			} else {
				err = migrations.Run(cmd.Context())
			}
			return withCode(exitDB, err)
		},
	}
	cmd.Flags().BoolVar(&down, "down", false, "Roll back the last migration instead")
	return cmd
}
