package mapping

import (
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strconv"

	"github.com/go-playground/form"

	"github.com/retromat/retromat-backend/pkg/validation"
)

// RecordMapper fills structs from loosely typed records using `form` tags.
// Only keys present in the record are written; other fields keep their values.
type RecordMapper struct {
	decoder *form.Decoder
}

func NewRecordMapper() *RecordMapper {
	return &RecordMapper{decoder: form.NewDecoder()}
}

func (m *RecordMapper) Fill(record map[string]any, target any) error {
	return m.decoder.Decode(target, recordValues(record))
}

func recordValues(record map[string]any) url.Values {
	values := make(url.Values, len(record))
	for key, value := range record {
		if value == nil {
			continue
		}
		values[key] = stringify(value)
	}
	return values
}

func stringify(value any) []string {
	switch v := value.(type) {
	case string:
		return []string{v}
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			out = append(out, stringify(item)...)
		}
		return out
	case float64:
		return []string{strconv.FormatFloat(v, 'f', -1, 64)}
	case float32:
		return []string{strconv.FormatFloat(float64(v), 'f', -1, 32)}
	case bool:
		return []string{strconv.FormatBool(v)}
	default:
		return []string{fmt.Sprint(v)}
	}
}

func MapViewModels[T any, V any](entities []T, mapFn func(T) V) []V {
	viewModels := make([]V, len(entities))
	for i, entity := range entities {
		viewModels[i] = mapFn(entity)
	}
	return viewModels
}

// DecodeViolations turns the field errors of a failed Fill into violations.
// Errors that are not field errors become a single violation without a path.
func DecodeViolations(err error) validation.Violations {
	if err == nil {
		return nil
	}
	var decodeErrs form.DecodeErrors
	if !errors.As(err, &decodeErrs) {
		return validation.Violations{{Rule: "decode", Message: err.Error()}}
	}
	keys := make([]string, 0, len(decodeErrs))
	for key := range decodeErrs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	violations := make(validation.Violations, 0, len(keys))
	for _, key := range keys {
		violations = append(violations, validation.Violation{
			Path:    key,
			Rule:    "type",
			Message: "This value is not valid.",
		})
	}
	return violations
}
