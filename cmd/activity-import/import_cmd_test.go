package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
	"github.com/retromat/retromat-backend/modules/activity/services"
	"github.com/retromat/retromat-backend/pkg/configuration"
)

type stubImporter struct {
	locale  string
	locales []string
	result  *services.ImportResult
	err     error
}

func (s *stubImporter) Import(_ context.Context, locale string) (*services.ImportResult, error) {
	s.locale = locale
	return s.result, s.err
}

func (s *stubImporter) Import2Multiple(_ context.Context, locales []string) (*services.ImportResult, error) {
	s.locales = locales
	return s.result, s.err
}

func twoPasses() *services.ImportResult {
	return &services.ImportResult{Passes: []services.PassResult{
		{Variant: activity.VariantLegacy, Locale: "en", Inserted: 2},
		{Variant: activity.VariantTranslatable, Locale: "de", Inserted: 1, Updated: 1},
	}}
}

func TestRunImport_PrintsPasses(t *testing.T) {
	imp := &stubImporter{result: twoPasses()}
	var out bytes.Buffer

	require.NoError(t, runImport(context.Background(), imp, "de", &out))
	require.Equal(t, "de", imp.locale)

	var got services.ImportResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Equal(t, twoPasses().Passes, got.Passes)
}

func TestRunImport_InvalidActivityExitCode(t *testing.T) {
	imp := &stubImporter{
		result: &services.ImportResult{Passes: twoPasses().Passes[:1]},
		err:    &services.InvalidActivityError{Variant: activity.VariantTranslatable, Locale: "de"},
	}
	var out bytes.Buffer

	err := runImport(context.Background(), imp, "de", &out)
	require.Error(t, err)
	require.Equal(t, exitValidation, exitCode(err))
	require.Contains(t, out.String(), `"variant":"legacy"`)
}

func TestRunImport_OtherErrorsMapToDB(t *testing.T) {
	imp := &stubImporter{result: &services.ImportResult{}, err: errors.New("connection reset")}
	var out bytes.Buffer

	err := runImport(context.Background(), imp, "", &out)
	require.Equal(t, exitDB, exitCode(err))
	require.Empty(t, out.String())
}

func TestRunImport2Multiple(t *testing.T) {
	imp := &stubImporter{result: twoPasses()}
	var out bytes.Buffer

	require.NoError(t, runImport2Multiple(context.Background(), imp, []string{"de", "fr"}, &out))
	require.Equal(t, []string{"de", "fr"}, imp.locales)
}

func TestRunImport2Multiple_NoLocalesRunsEnglish(t *testing.T) {
	imp := &stubImporter{result: &services.ImportResult{Passes: []services.PassResult{
		{Variant: activity.VariantTranslatable, Locale: "en", Updated: 3},
	}}}
	var out bytes.Buffer

	require.NoError(t, runImport2Multiple(context.Background(), imp, nil, &out))
	require.Empty(t, imp.locales)
	require.Contains(t, out.String(), `"locale":"en"`)
}

func TestNewEnvironment_UnloadsOnReaderError(t *testing.T) {
	conf := &configuration.Configuration{}
	conf.Importer.SourceFormat = "csv"
	unloads := 0

	env, cleanup, err := newEnvironment(context.Background(), conf, true, func() { unloads++ })
	require.Error(t, err)
	require.Equal(t, exitUsage, exitCode(err))
	require.Nil(t, env)
	require.Nil(t, cleanup)
	require.Equal(t, 1, unloads)
}

func TestNewEnvironment_DryRunImport(t *testing.T) {
	conf := &configuration.Configuration{}
	conf.Importer.SourceFormat = "yaml"
	conf.Importer.SourceDir = "../../data/activities"
	unloads := 0

	env, cleanup, err := newEnvironment(context.Background(), conf, true, func() { unloads++ })
	require.NoError(t, err)
	require.Nil(t, env.pool)

	var out bytes.Buffer
	require.NoError(t, runImport(env.context(context.Background()), env.importer(), "de", &out))

	var got services.ImportResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Passes, 2)
	require.Equal(t, 3, got.Passes[0].Inserted)
	require.Equal(t, "de", got.Passes[1].Locale)
	require.Equal(t, 2, got.Passes[1].Inserted)

	cleanup()
	require.Equal(t, 1, unloads)
}

func TestExitCode(t *testing.T) {
	require.Equal(t, exitOK, exitCode(nil))
	require.Equal(t, 1, exitCode(errors.New("plain")))
	require.Nil(t, withCode(exitDB, nil))
}

func TestRootCmd_Subcommands(t *testing.T) {
	cmd := newRootCmd()
	names := make([]string, 0)
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch(t, []string{"import", "import2-multiple", "migrate"}, names)
	require.NotNil(t, cmd.PersistentFlags().Lookup("dry-run"))
}
