package services

import (
	"context"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/retromat/retromat-backend/modules/plan/domain/titleparts"
	"github.com/retromat/retromat-backend/pkg/cache"
)

const titleCachePrefix = "plan:title:"

type PlanTitle struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// PlanTitleService resolves the title of a plan given its activity ids.
type PlanTitleService struct {
	parts     *titleparts.TitleParts
	chooser   *TitleIdChooser
	generator *TitleIdGenerator
	renderer  *TitleRenderer
	cache     cache.Cache
	ttl       time.Duration
}

func NewPlanTitleService(parts *titleparts.TitleParts, c cache.Cache, ttl time.Duration) *PlanTitleService {
	return &PlanTitleService{
		parts:     parts,
		chooser:   NewTitleIdChooser(parts),
		generator: NewTitleIdGenerator(parts),
		renderer:  NewTitleRenderer(parts),
		cache:     c,
		ttl:       ttl,
	}
}

func (s *PlanTitleService) Parts() *titleparts.TitleParts {
	return s.parts
}

func (s *PlanTitleService) Generator() *TitleIdGenerator {
	return s.generator
}

// Title chooses and renders the plan title. Malformed id lists give an empty title.
func (s *PlanTitleService) Title(ctx context.Context, activityIDs string) (PlanTitle, error) {
	return cache.Remember(ctx, s.cache, titleCachePrefix+activityIDs, s.ttl, func(context.Context) (PlanTitle, error) {
		id := s.chooser.ChooseTitleID(activityIDs)
		if id == "" {
			return PlanTitle{}, nil
		}
		title, err := s.renderer.Render(id)
		if err != nil {
			return PlanTitle{}, err
		}
		return PlanTitle{ID: id, Title: title}, nil
	})
}

// SequenceTitle is one enumerated id of a sequence with its rendering.
type SequenceTitle struct {
	ID    string
	Title string
}

// SequenceTitles renders every id of a sequence.
func (s *PlanTitleService) SequenceTitles(sequenceID int) ([]SequenceTitle, error) {
	ids, err := s.generator.GenerateIDs(sequenceID)
	if err != nil {
		return nil, err
	}
	out := make([]SequenceTitle, len(ids))
	for i, id := range ids {
		title, err := s.renderer.Render(id)
		if err != nil {
			return nil, err
		}
		out[i] = SequenceTitle{ID: id, Title: title}
	}
	return out, nil
}

// FilterTitles keeps the titles fuzzily matching query, in their original order.
func FilterTitles(titles []SequenceTitle, query string) []SequenceTitle {
	query = strings.TrimSpace(query)
	if query == "" {
		return titles
	}
	out := make([]SequenceTitle, 0, len(titles))
	for _, t := range titles {
		if fuzzy.MatchNormalizedFold(query, t.Title) {
			out = append(out, t)
		}
	}
	return out
}
