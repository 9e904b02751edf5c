package activity2

import "maps"

// Translation holds the locale dependent texts of an activity.
type Translation struct {
	Locale  string `json:"locale"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Desc    string `json:"desc"`
}

// MergeTranslations returns the union of existing and incoming keyed by
// locale. A locale present in both takes the incoming translation. Neither
// argument is modified.
func MergeTranslations(existing, incoming map[string]Translation) map[string]Translation {
	merged := make(map[string]Translation, len(existing)+len(incoming))
	maps.Copy(merged, existing)
	maps.Copy(merged, incoming)
	return merged
}
