package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/retromat/retromat-backend/pkg/constants"
)

type Violation struct {
	Path    string `json:"path"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Violations is empty when the validated value is valid.
type Violations []Violation

func (v Violations) String() string {
	var b strings.Builder
	for _, violation := range v {
		fmt.Fprintf(&b, "%s:\n    %s\n", violation.Path, violation.Message)
	}
	return b.String()
}

type Validator interface {
	Validate(v any) Violations
}

type StructValidator struct {
	validate *validator.Validate
}

func NewStructValidator() *StructValidator {
	return &StructValidator{validate: constants.Validate}
}

func (s *StructValidator) Validate(v any) Violations {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return Violations{{Rule: "invalid", Message: err.Error()}}
	}
	violations := make(Violations, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		violations = append(violations, Violation{
			Path:    fe.Namespace(),
			Rule:    fe.Tag(),
			Message: message(fe),
		})
	}
	return violations
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This value should not be blank."
	case "min", "gte":
		return fmt.Sprintf("This value should be greater than or equal to %s.", fe.Param())
	case "max", "lte":
		return fmt.Sprintf("This value should be less than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("The value you selected is not a valid choice (%s).", fe.Param())
	case "bcp47_language_tag":
		return "This value is not a valid locale."
	default:
		return fmt.Sprintf("This value is not valid (%s).", fe.Tag())
	}
}
