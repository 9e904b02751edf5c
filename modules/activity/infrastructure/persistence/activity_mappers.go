package persistence

import (
	"github.com/retromat/retromat-backend/modules/activity/domain/aggregates/activity2"
	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
	"github.com/retromat/retromat-backend/modules/activity/infrastructure/persistence/models"
)

func toDomainActivity(m *models.Activity) *activity.Activity {
	return &activity.Activity{
		ID:         m.ID,
		RetromatID: m.RetromatID,
		Language:   m.Language,
		Phase:      m.Phase,
		Name:       m.Name,
		Summary:    m.Summary,
		Desc:       m.Description,
		Duration:   m.Duration,
		Source:     m.Source,
		More:       m.More,
		Suitable:   m.Suitable,
	}
}

func toDBActivity(a *activity.Activity) *models.Activity {
	return &models.Activity{
		ID:          a.ID,
		RetromatID:  a.RetromatID,
		Language:    a.Language,
		Phase:       a.Phase,
		Name:        a.Name,
		Summary:     a.Summary,
		Description: a.Desc,
		Duration:    a.Duration,
		Source:      a.Source,
		More:        a.More,
		Suitable:    a.Suitable,
	}
}

func toDomainActivity2(m *models.Activity2, translations []*models.Activity2Translation) *activity2.Activity2 {
	a := &activity2.Activity2{
		ID:           m.ID,
		RetromatID:   m.RetromatID,
		Phase:        m.Phase,
		Duration:     m.Duration,
		Source:       m.Source,
		More:         m.More,
		Suitable:     m.Suitable,
		Translations: make(map[string]activity2.Translation, len(translations)),
	}
	for _, t := range translations {
		a.Translations[t.Locale] = activity2.Translation{
			Locale:  t.Locale,
			Name:    t.Name,
			Summary: t.Summary,
			Desc:    t.Description,
		}
	}
	a.SetDefaultLocale(m.DefaultLocale)
	return a
}

func toDBActivity2(a *activity2.Activity2) *models.Activity2 {
	return &models.Activity2{
		ID:            a.ID,
		RetromatID:    a.RetromatID,
		DefaultLocale: a.DefaultLocale,
		Phase:         a.Phase,
		Duration:      a.Duration,
		Source:        a.Source,
		More:          a.More,
		Suitable:      a.Suitable,
	}
}

func toDBTranslations(a *activity2.Activity2) []*models.Activity2Translation {
	out := make([]*models.Activity2Translation, 0, len(a.Translations))
	for _, locale := range a.Locales() {
		t := a.Translations[locale]
		out = append(out, &models.Activity2Translation{
			Activity2ID: a.ID,
			Locale:      locale,
			Name:        t.Name,
			Summary:     t.Summary,
			Description: t.Desc,
		})
	}
	return out
}
