package main

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/cobra"

	"github.com/retromat/retromat-backend/modules/activity/infrastructure/reader"
	"github.com/retromat/retromat-backend/modules/activity/services"
	"github.com/retromat/retromat-backend/pkg/configuration"
)

type importer interface {
	Import(ctx context.Context, locale string) (*services.ImportResult, error)
	Import2Multiple(ctx context.Context, locales []string) (*services.ImportResult, error)
}

func newImportCmd(g *globalOptions) *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Run the legacy pass, then a translatable pass in --locale",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, cleanup, err := bootstrap(cmd.Context(), g.dryRun)
			if err != nil {
				return err
			}
			defer cleanup()
			return runImport(env.context(cmd.Context()), env.importer(), locale, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "en", "Locale of the translatable pass")
	return cmd
}

func newImport2MultipleCmd(g *globalOptions) *cobra.Command {
	var locales string

	cmd := &cobra.Command{
		Use:   "import2-multiple",
		Short: "Run a translatable pass per locale, English last",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, cleanup, err := bootstrap(cmd.Context(), g.dryRun)
			if err != nil {
				return err
			}
			defer cleanup()

			list := configuration.SplitList(locales)
			if !cmd.Flags().Changed("locales") {
				list = env.conf.Importer.LocaleList()
			}
			return runImport2Multiple(env.context(cmd.Context()), env.importer(), list, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&locales, "locales", "", "Comma separated locales (default: ACTIVITY_LOCALES)")
	return cmd
}

func runImport(ctx context.Context, imp importer, locale string, out io.Writer) error {
	result, err := imp.Import(ctx, locale)
	return report(out, result, err)
}

// runImport2Multiple with no locales still runs the closing English pass.
func runImport2Multiple(ctx context.Context, imp importer, locales []string, out io.Writer) error {
	result, err := imp.Import2Multiple(ctx, locales)
	return report(out, result, err)
}

// report prints the committed passes, also when a later pass failed.
func report(out io.Writer, result *services.ImportResult, err error) error {
	if result != nil && len(result.Passes) > 0 {
		if werr := writeJSONLine(out, result); werr != nil {
			return werr
		}
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, services.ErrInvalidActivity):
		return withCode(exitValidation, err)
	case errors.Is(err, reader.ErrSourceNotFound):
		return withCode(exitUsage, err)
	default:
		return withCode(exitDB, err)
	}
}
