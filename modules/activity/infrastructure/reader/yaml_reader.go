package reader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
)

var ErrSourceNotFound = errors.New("activity source not found")

const defaultLocale = "en"

// YAMLReader reads activities_<locale>.yml files from a directory. Each file
// holds a list of activity mappings.
type YAMLReader struct {
	dir    string
	locale string
}

func NewYAMLReader(dir string) *YAMLReader {
	return &YAMLReader{dir: dir, locale: defaultLocale}
}

func (r *YAMLReader) SetCurrentLocale(locale string) {
	r.locale = locale
}

func (r *YAMLReader) path() string {
	return filepath.Join(r.dir, fmt.Sprintf("activities_%s.yml", r.locale))
}

func (r *YAMLReader) ExtractAllActivities(ctx context.Context) ([]activity.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := r.path()
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, err
	}

	var items []map[string]any
	if err := yaml.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	records := make([]activity.Record, 0, len(items))
	for _, item := range items {
		records = append(records, activity.Record(item))
	}
	return records, nil
}
