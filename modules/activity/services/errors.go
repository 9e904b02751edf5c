package services

import (
	"github.com/go-faster/errors"

	"github.com/retromat/retromat-backend/pkg/validation"
)

var ErrInvalidActivity = errors.New("invalid activity")

// InvalidActivityError aborts an import pass. Activity is the rendering of
// the record that failed, as mapped so far.
type InvalidActivityError struct {
	Variant    string
	Locale     string
	Activity   string
	Violations validation.Violations
}

func (e *InvalidActivityError) Error() string {
	return " This activity:\n " + e.Activity + "\n has these validations:\n " + e.Violations.String() + "\n"
}

func (e *InvalidActivityError) Is(target error) bool {
	return target == ErrInvalidActivity
}
