package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadEnv_FallsBackToGoModRoot(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "RETROMAT_TEST_ENV_LOAD=ok\n")

	sub := filepath.Join(tmp, "modules", "activity")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(sub))

	_ = os.Unsetenv("RETROMAT_TEST_ENV_LOAD")
	t.Cleanup(func() { _ = os.Unsetenv("RETROMAT_TEST_ENV_LOAD") })

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("RETROMAT_TEST_ENV_LOAD"))
}

func TestParse_Defaults(t *testing.T) {
	c := &Configuration{}
	require.NoError(t, c.parse())

	require.Equal(t, "yaml", c.Importer.SourceFormat)
	require.Equal(t, []string{"de", "es", "fr", "nl"}, c.Importer.LocaleList())
	require.Equal(t, "localhost:3200", c.SocketAddress)
	require.Contains(t, c.Database.Opts, "dbname=retromat")
}

func TestParse_RejectsUnknownSourceFormat(t *testing.T) {
	t.Setenv("ACTIVITY_SOURCE_FORMAT", "csv")
	c := &Configuration{}
	require.ErrorContains(t, c.parse(), "ACTIVITY_SOURCE_FORMAT")
}

func TestParse_ProductionSocket(t *testing.T) {
	t.Setenv("GO_APP_ENV", Production)
	t.Setenv("PORT", "8080")
	c := &Configuration{}
	require.NoError(t, c.parse())
	require.Equal(t, ":8080", c.SocketAddress)
}

func TestSplitList(t *testing.T) {
	require.Equal(t, []string{"de", "fr", "en"}, SplitList(" de, fr\nen ,"))
	require.Empty(t, SplitList(""))
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
