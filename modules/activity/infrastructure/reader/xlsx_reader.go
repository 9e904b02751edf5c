package reader

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
)

// XLSXReader reads a workbook with one sheet per locale. The first row of a
// sheet names the fields, every following non-empty row is one activity.
type XLSXReader struct {
	path   string
	locale string
}

func NewXLSXReader(path string) *XLSXReader {
	return &XLSXReader{path: path, locale: defaultLocale}
}

func (r *XLSXReader) SetCurrentLocale(locale string) {
	r.locale = locale
}

func (r *XLSXReader) ExtractAllActivities(ctx context.Context) ([]activity.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := excelize.OpenFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", r.path, err)
	}
	defer f.Close()

	if idx, err := f.GetSheetIndex(r.locale); err != nil || idx < 0 {
		return nil, fmt.Errorf("%w: sheet %q in %s", ErrSourceNotFound, r.locale, r.path)
	}

	rows, err := f.GetRows(r.locale)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", r.locale, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	records := make([]activity.Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(activity.Record, len(header))
		for i, cell := range row {
			if i >= len(header) || header[i] == "" || cell == "" {
				continue
			}
			record[header[i]] = cell
		}
		if len(record) == 0 {
			continue
		}
		records = append(records, record)
	}
	return records, nil
}
