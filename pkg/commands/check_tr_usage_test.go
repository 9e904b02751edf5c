package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/iota-uz/go-i18n/v2/i18n"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

const pageSource = `package page

func render(h *writer) {
	h.t("Page.Title")
	_ = intl.MustT(h.ctx, "Page.Missing", nil)
	h.t(dynamicKey)
}
`

func newBundle(t *testing.T, files map[string]string) *i18n.Bundle {
	t.Helper()
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for name, content := range files {
		bundle.MustParseMessageFileBytes([]byte(content), name)
	}
	return bundle
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestCheckTrUsage_ReportsMissingKeys(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "page"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "page", "page.go"), []byte(pageSource), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "page", "page_test.go"), []byte(`package page
func x() { h.t("Only.In.Tests") }
`), 0o644))

	bundle := newBundle(t, map[string]string{
		"en.json": `{"Page.Title": "Title", "Page.Missing": "Here"}`,
		"de.json": `{"Page.Title": "Titel"}`,
	})

	missing, err := CheckTrUsage(quietLogger(), bundle, root, []string{"en", "de"})
	require.NoError(t, err)
	require.Len(t, missing, 1)
	require.Equal(t, MissingKey{Locale: "de", Key: "Page.Missing", File: "page/page.go", Line: 5}, missing[0])
}

func TestCheckTrUsage_UnknownLanguage(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "page.go"), []byte(pageSource), 0o644))

	bundle := newBundle(t, map[string]string{"en.json": `{"Page.Title": "Title"}`})
	_, err := CheckTrUsage(quietLogger(), bundle, root, []string{"fr"})
	require.ErrorContains(t, err, "not found in bundle")
}

func TestCheckTrUsage_NoUsages(t *testing.T) {
	bundle := newBundle(t, map[string]string{"en.json": `{"Page.Title": "Title"}`})
	_, err := CheckTrUsage(quietLogger(), bundle, t.TempDir(), nil)
	require.ErrorContains(t, err, "no translation usages")
}
