package persistence

import (
	"context"
	"maps"
	"sync"

	"github.com/retromat/retromat-backend/modules/activity/domain/aggregates/activity2"
	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
	"github.com/retromat/retromat-backend/pkg/repo"
)

type memoryState struct {
	activities map[int]activity.Activity
	activity2  map[int]activity2.Activity2
	nextID     uint
}

func (s *memoryState) clone() *memoryState {
	out := &memoryState{
		activities: maps.Clone(s.activities),
		activity2:  make(map[int]activity2.Activity2, len(s.activity2)),
		nextID:     s.nextID,
	}
	for id, a := range s.activity2 {
		a.Translations = maps.Clone(a.Translations)
		out.activity2[id] = a
	}
	return out
}

type memoryTxKey struct{}

// MemoryStore keeps activities in process. Writes made inside InTx are
// staged and become visible to other callers only when the function
// returns nil. It backs dry runs and tests.
type MemoryStore struct {
	mu        sync.Mutex
	committed *memoryState
	commits   int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		committed: &memoryState{
			activities: make(map[int]activity.Activity),
			activity2:  make(map[int]activity2.Activity2),
		},
	}
}

// InTx has the same contract as composables.InTx.
func (s *MemoryStore) InTx(ctx context.Context, fn func(context.Context) error) error {
	s.mu.Lock()
	staged := s.committed.clone()
	s.mu.Unlock()

	if err := fn(context.WithValue(ctx, memoryTxKey{}, staged)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = staged
	s.commits++
	return nil
}

// Commits reports how many transactions have been committed.
func (s *MemoryStore) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.commits
}

// state returns the staged state of the transaction in ctx, or the committed
// state locked for the duration of the returned release func.
func (s *MemoryStore) state(ctx context.Context) (*memoryState, func()) {
	if staged, ok := ctx.Value(memoryTxKey{}).(*memoryState); ok {
		return staged, func() {}
	}
	s.mu.Lock()
	return s.committed, s.mu.Unlock
}

func (s *MemoryStore) Activities() activity.Repository {
	return &memoryActivityRepository{store: s}
}

func (s *MemoryStore) Activity2() activity2.Repository {
	return &memoryActivity2Repository{store: s}
}

type memoryActivityRepository struct {
	store *MemoryStore
}

func (r *memoryActivityRepository) FindByRetromatID(ctx context.Context, retromatID int) (repo.Lookup[*activity.Activity], error) {
	st, release := r.store.state(ctx)
	defer release()
	a, ok := st.activities[retromatID]
	if !ok {
		return repo.NotFound[*activity.Activity](), nil
	}
	return repo.Found(&a), nil
}

func (r *memoryActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	st, release := r.store.state(ctx)
	defer release()
	st.nextID++
	a.ID = st.nextID
	st.activities[a.RetromatID] = *a
	return nil
}

func (r *memoryActivityRepository) Update(ctx context.Context, a *activity.Activity) error {
	st, release := r.store.state(ctx)
	defer release()
	st.activities[a.RetromatID] = *a
	return nil
}

func (r *memoryActivityRepository) Count(ctx context.Context) (int64, error) {
	st, release := r.store.state(ctx)
	defer release()
	return int64(len(st.activities)), nil
}

type memoryActivity2Repository struct {
	store *MemoryStore
}

func (r *memoryActivity2Repository) FindByRetromatID(ctx context.Context, retromatID int) (repo.Lookup[*activity2.Activity2], error) {
	st, release := r.store.state(ctx)
	defer release()
	a, ok := st.activity2[retromatID]
	if !ok {
		return repo.NotFound[*activity2.Activity2](), nil
	}
	a.Translations = maps.Clone(a.Translations)
	a.SetDefaultLocale(a.DefaultLocale)
	return repo.Found(&a), nil
}

func (r *memoryActivity2Repository) save(ctx context.Context, a *activity2.Activity2, create bool) {
	st, release := r.store.state(ctx)
	defer release()
	if create {
		st.nextID++
		a.ID = st.nextID
	}
	stored := *a
	stored.Translations = maps.Clone(a.Translations)
	st.activity2[a.RetromatID] = stored
}

func (r *memoryActivity2Repository) Create(ctx context.Context, a *activity2.Activity2) error {
	r.save(ctx, a, true)
	return nil
}

func (r *memoryActivity2Repository) Update(ctx context.Context, a *activity2.Activity2) error {
	r.save(ctx, a, false)
	return nil
}

func (r *memoryActivity2Repository) Count(ctx context.Context) (int64, error) {
	st, release := r.store.state(ctx)
	defer release()
	return int64(len(st.activity2)), nil
}

func (r *memoryActivity2Repository) CountTranslationsByLocale(ctx context.Context) (map[string]int64, error) {
	st, release := r.store.state(ctx)
	defer release()
	counts := make(map[string]int64)
	for _, a := range st.activity2 {
		for locale := range a.Translations {
			counts[locale]++
		}
	}
	return counts, nil
}
