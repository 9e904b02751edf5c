package reader

import (
	"fmt"

	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
	"github.com/retromat/retromat-backend/pkg/configuration"
)

// FromConfig builds the reader selected by ACTIVITY_SOURCE_FORMAT.
func FromConfig(opts configuration.ImporterOptions) (activity.Reader, error) {
	switch opts.SourceFormat {
	case "yaml":
		return NewYAMLReader(opts.SourceDir), nil
	case "xlsx":
		return NewXLSXReader(opts.Workbook), nil
	default:
		return nil, fmt.Errorf("unsupported activity source format %q", opts.SourceFormat)
	}
}
