package reader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/retromat/retromat-backend/pkg/configuration"
)

func TestYAMLReader(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "activities_en.yml"), []byte(`
- retromatId: 1
  phase: 0
  name: ESVP
  summary: How do participants feel?
  desc: Prepare a flipchart
- retromatId: 2
  phase: 1
  name: Weather Report
  summary: Participants mark their weather
  desc: Draw weather symbols
`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "activities_de.yml"), []byte(`
- retromatId: 1
  name: ESVP
  summary: Wie fühlen sich die Teilnehmer?
  desc: Bereite ein Flipchart vor
`), 0o644))

	r := NewYAMLReader(dir)
	records, err := r.ExtractAllActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, 1, records[0]["retromatId"])
	require.Equal(t, "Weather Report", records[1]["name"])

	r.SetCurrentLocale("de")
	records, err = r.ExtractAllActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	require.Equal(t, "Wie fühlen sich die Teilnehmer?", records[0]["summary"])

	r.SetCurrentLocale("fr")
	_, err = r.ExtractAllActivities(context.Background())
	require.ErrorIs(t, err, ErrSourceNotFound)
}

func TestYAMLReader_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewYAMLReader(t.TempDir()).ExtractAllActivities(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestXLSXReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "activities.xlsx")

	f := excelize.NewFile()
	_, err := f.NewSheet("en")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("en", "A1", &[]any{"retromatId", "phase", "name", "summary", "desc"}))
	require.NoError(t, f.SetSheetRow("en", "A2", &[]any{1, 0, "ESVP", "How do participants feel?", "Prepare a flipchart"}))
	require.NoError(t, f.SetSheetRow("en", "A4", &[]any{2, 1, "Weather Report", "Mark the weather", "Draw symbols"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	r := NewXLSXReader(path)
	records, err := r.ExtractAllActivities(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "1", records[0]["retromatId"])
	require.Equal(t, "ESVP", records[0]["name"])
	require.Equal(t, "Weather Report", records[1]["name"])

	r.SetCurrentLocale("nl")
	_, err = r.ExtractAllActivities(context.Background())
	require.ErrorIs(t, err, ErrSourceNotFound)
}

func TestFromConfig(t *testing.T) {
	r, err := FromConfig(configuration.ImporterOptions{SourceFormat: "yaml", SourceDir: "data"})
	require.NoError(t, err)
	require.IsType(t, &YAMLReader{}, r)

	r, err = FromConfig(configuration.ImporterOptions{SourceFormat: "xlsx", Workbook: "a.xlsx"})
	require.NoError(t, err)
	require.IsType(t, &XLSXReader{}, r)

	_, err = FromConfig(configuration.ImporterOptions{SourceFormat: "csv"})
	require.Error(t, err)
}
