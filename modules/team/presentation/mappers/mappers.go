package mappers

import (
	"slices"

	activityservices "github.com/retromat/retromat-backend/modules/activity/services"
	"github.com/retromat/retromat-backend/modules/plan/domain/titleparts"
	planservices "github.com/retromat/retromat-backend/modules/plan/services"
	"github.com/retromat/retromat-backend/modules/team/presentation/viewmodels"
	"github.com/retromat/retromat-backend/pkg/mapping"
)

func DashboardToViewModel(locale string, stats activityservices.Stats) *viewmodels.DashboardPage {
	locales := make([]string, 0, len(stats.TranslationsByLocale))
	for l := range stats.TranslationsByLocale {
		locales = append(locales, l)
	}
	slices.Sort(locales)

	return &viewmodels.DashboardPage{
		Locale:     locale,
		Activities: stats.Activities,
		Activity2:  stats.Activity2,
		Translations: mapping.MapViewModels(locales, func(l string) viewmodels.LocaleCount {
			return viewmodels.LocaleCount{Locale: l, Count: stats.TranslationsByLocale[l]}
		}),
	}
}

func TitlesToViewModel(locale string, parts *titleparts.TitleParts, gen *planservices.TitleIdGenerator) *viewmodels.TitlesPage {
	sequences := make([]viewmodels.Sequence, len(parts.SequenceOfGroups))
	for id, groups := range parts.SequenceOfGroups {
		n, _ := gen.CountCombinationsInSequence(id)
		sequences[id] = viewmodels.Sequence{ID: id, Groups: groups, Combinations: n}
	}

	groupIDs := make([]string, 0, len(parts.GroupsOfTerms))
	for id := range parts.GroupsOfTerms {
		groupIDs = append(groupIDs, id)
	}
	slices.Sort(groupIDs)

	return &viewmodels.TitlesPage{
		Locale:    locale,
		Sequences: sequences,
		Groups: mapping.MapViewModels(groupIDs, func(id string) viewmodels.Group {
			return viewmodels.Group{ID: id, Terms: parts.GroupsOfTerms[id]}
		}),
		TotalCombinations: gen.CountCombinationsInAllSequences(),
	}
}

func SequenceToViewModel(
	locale string,
	sequenceID int,
	parts *titleparts.TitleParts,
	gen *planservices.TitleIdGenerator,
	titles []planservices.SequenceTitle,
	query string,
) *viewmodels.SequencePage {
	n, _ := gen.CountCombinationsInSequence(sequenceID)
	return &viewmodels.SequencePage{
		Locale:                 locale,
		SequenceID:             sequenceID,
		Groups:                 parts.SequenceOfGroups[sequenceID],
		CombinationsInSequence: n,
		TotalCombinations:      gen.CountCombinationsInAllSequences(),
		Query:                  query,
		Titles: mapping.MapViewModels(titles, func(t planservices.SequenceTitle) viewmodels.Title {
			return viewmodels.Title{ID: t.ID, Text: t.Title}
		}),
	}
}
