package activity

import "time"

const (
	VariantLegacy       = "legacy"
	VariantTranslatable = "translatable"
)

// ImportedEvent is published after an import pass has been committed.
type ImportedEvent struct {
	Variant  string
	Locale   string
	Inserted int
	Updated  int
	At       time.Time
}
