package activity2

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/retromat/retromat-backend/pkg/repo"
)

// Activity2 is the translatable activity. Name, Summary and Desc are the
// texts of DefaultLocale being edited; MergeNewTranslations stores them.
type Activity2 struct {
	ID            uint
	RetromatID    int    `form:"retromatId" validate:"required,min=1"`
	DefaultLocale string `validate:"required"`
	Phase         int    `form:"phase" validate:"min=0,max=5"`
	Duration      string `form:"duration"`
	Source        string `form:"source"`
	More          string `form:"more"`
	Suitable      string `form:"suitable"`

	Name    string `form:"name" validate:"required"`
	Summary string `form:"summary" validate:"required"`
	Desc    string `form:"desc" validate:"required"`

	Translations map[string]Translation `validate:"-"`
}

func New(defaultLocale string) *Activity2 {
	a := &Activity2{}
	a.SetDefaultLocale(defaultLocale)
	return a
}

// SetDefaultLocale switches the editable texts to locale, loading the
// stored translation for it when there is one.
func (a *Activity2) SetDefaultLocale(locale string) {
	a.DefaultLocale = locale
	t := a.Translations[locale]
	a.Name = t.Name
	a.Summary = t.Summary
	a.Desc = t.Desc
}

// NewTranslation is the translation currently being edited.
func (a *Activity2) NewTranslation() Translation {
	return Translation{
		Locale:  a.DefaultLocale,
		Name:    a.Name,
		Summary: a.Summary,
		Desc:    a.Desc,
	}
}

// MergeNewTranslations folds the edited texts into Translations.
func (a *Activity2) MergeNewTranslations() {
	a.Translations = MergeTranslations(a.Translations, map[string]Translation{
		a.DefaultLocale: a.NewTranslation(),
	})
}

// Locales lists the stored translation locales in sorted order.
func (a *Activity2) Locales() []string {
	locales := make([]string, 0, len(a.Translations))
	for locale := range a.Translations {
		locales = append(locales, locale)
	}
	slices.Sort(locales)
	return locales
}

func (a *Activity2) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Activity2(retromatId=%d, defaultLocale=%q, phase=%d)\n", a.RetromatID, a.DefaultLocale, a.Phase)
	fmt.Fprintf(&b, "  name: %s\n", a.Name)
	fmt.Fprintf(&b, "  summary: %s\n", a.Summary)
	fmt.Fprintf(&b, "  desc: %s\n", a.Desc)
	if len(a.Translations) > 0 {
		fmt.Fprintf(&b, "  translations: %s\n", strings.Join(a.Locales(), ", "))
	}
	return b.String()
}

type Repository interface {
	FindByRetromatID(ctx context.Context, retromatID int) (repo.Lookup[*Activity2], error)
	Create(ctx context.Context, a *Activity2) error
	Update(ctx context.Context, a *Activity2) error
	Count(ctx context.Context) (int64, error)
	CountTranslationsByLocale(ctx context.Context) (map[string]int64, error)
}
