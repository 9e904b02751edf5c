package activity

import (
	"context"
	"fmt"
	"strings"

	"github.com/retromat/retromat-backend/pkg/repo"
)

// Record is one activity as produced by a Reader: field name to raw value.
type Record map[string]any

// Reader produces every activity of the source in the current locale.
type Reader interface {
	SetCurrentLocale(locale string)
	ExtractAllActivities(ctx context.Context) ([]Record, error)
}

// Activity is the single language activity row, always English.
type Activity struct {
	ID         uint
	RetromatID int    `form:"retromatId" validate:"required,min=1"`
	Language   string `validate:"required"`
	Phase      int    `form:"phase" validate:"min=0,max=5"`
	Name       string `form:"name" validate:"required"`
	Summary    string `form:"summary" validate:"required"`
	Desc       string `form:"desc" validate:"required"`
	Duration   string `form:"duration"`
	Source     string `form:"source"`
	More       string `form:"more"`
	Suitable   string `form:"suitable"`
}

func (a *Activity) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Activity(retromatId=%d, language=%q, phase=%d)\n", a.RetromatID, a.Language, a.Phase)
	fmt.Fprintf(&b, "  name: %s\n", a.Name)
	fmt.Fprintf(&b, "  summary: %s\n", a.Summary)
	fmt.Fprintf(&b, "  desc: %s\n", a.Desc)
	if a.Duration != "" {
		fmt.Fprintf(&b, "  duration: %s\n", a.Duration)
	}
	if a.Source != "" {
		fmt.Fprintf(&b, "  source: %s\n", a.Source)
	}
	return b.String()
}

type Repository interface {
	FindByRetromatID(ctx context.Context, retromatID int) (repo.Lookup[*Activity], error)
	Create(ctx context.Context, a *Activity) error
	Update(ctx context.Context, a *Activity) error
	Count(ctx context.Context) (int64, error)
}
