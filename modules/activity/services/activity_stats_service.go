package services

import (
	"context"
	"time"

	"github.com/retromat/retromat-backend/modules/activity/domain/aggregates/activity2"
	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
	"github.com/retromat/retromat-backend/pkg/cache"
	"github.com/retromat/retromat-backend/pkg/composables"
	"github.com/retromat/retromat-backend/pkg/eventbus"
)

const StatsCacheKey = "activity:stats"

type Stats struct {
	Activities           int64            `json:"activities"`
	Activity2            int64            `json:"activity2"`
	TranslationsByLocale map[string]int64 `json:"translationsByLocale"`
}

type ActivityStatsService struct {
	activities activity.Repository
	activity2  activity2.Repository
	cache      cache.Cache
	ttl        time.Duration
}

func NewActivityStatsService(
	activities activity.Repository,
	activity2Repo activity2.Repository,
	c cache.Cache,
	ttl time.Duration,
) *ActivityStatsService {
	return &ActivityStatsService{
		activities: activities,
		activity2:  activity2Repo,
		cache:      c,
		ttl:        ttl,
	}
}

func (s *ActivityStatsService) Stats(ctx context.Context) (Stats, error) {
	return cache.Remember(ctx, s.cache, StatsCacheKey, s.ttl, s.load)
}

func (s *ActivityStatsService) load(ctx context.Context) (Stats, error) {
	var (
		stats Stats
		err   error
	)
	if stats.Activities, err = s.activities.Count(ctx); err != nil {
		return Stats{}, err
	}
	if stats.Activity2, err = s.activity2.Count(ctx); err != nil {
		return Stats{}, err
	}
	if stats.TranslationsByLocale, err = s.activity2.CountTranslationsByLocale(ctx); err != nil {
		return Stats{}, err
	}
	return stats, nil
}

// Invalidate drops the cached statistics.
func (s *ActivityStatsService) Invalidate(ctx context.Context) error {
	return s.cache.Delete(ctx, StatsCacheKey)
}

// Subscribe invalidates the statistics whenever an import pass commits.
func (s *ActivityStatsService) Subscribe(bus eventbus.EventBus) {
	bus.Subscribe(func(e *activity.ImportedEvent) {
		ctx := context.Background()
		if err := s.Invalidate(ctx); err != nil {
			composables.UseLogger(ctx).WithError(err).Warn("failed to invalidate activity stats")
		}
	})
}
