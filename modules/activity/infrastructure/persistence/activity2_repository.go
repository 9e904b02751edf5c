package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/retromat/retromat-backend/modules/activity/domain/aggregates/activity2"
	"github.com/retromat/retromat-backend/modules/activity/infrastructure/persistence/models"
	"github.com/retromat/retromat-backend/pkg/composables"
	"github.com/retromat/retromat-backend/pkg/repo"
)

const (
	selectActivity2Query = `
		SELECT id, retromat_id, default_locale, phase, duration, source, more, suitable
		FROM activity2
		WHERE retromat_id = $1`

	selectTranslationsQuery = `
		SELECT id, activity2_id, locale, name, summary, description
		FROM activity2_translations
		WHERE activity2_id = $1
		ORDER BY locale`

	insertActivity2Query = `
		INSERT INTO activity2 (retromat_id, default_locale, phase, duration, source, more, suitable)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	updateActivity2Query = `
		UPDATE activity2
		SET default_locale = $2, phase = $3, duration = $4, source = $5, more = $6, suitable = $7
		WHERE id = $1`

	upsertTranslationQuery = `
		INSERT INTO activity2_translations (activity2_id, locale, name, summary, description)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (activity2_id, locale)
		DO UPDATE SET name = EXCLUDED.name, summary = EXCLUDED.summary, description = EXCLUDED.description`

	countActivity2Query = `SELECT COUNT(*) FROM activity2`

	countTranslationsQuery = `
		SELECT locale, COUNT(*)
		FROM activity2_translations
		GROUP BY locale
		ORDER BY locale`
)

type Activity2Repository struct{}

func NewActivity2Repository() activity2.Repository {
	return &Activity2Repository{}
}

func (r *Activity2Repository) FindByRetromatID(ctx context.Context, retromatID int) (repo.Lookup[*activity2.Activity2], error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return repo.NotFound[*activity2.Activity2](), err
	}

	var row models.Activity2
	if err := tx.QueryRow(ctx, selectActivity2Query, retromatID).Scan(
		&row.ID,
		&row.RetromatID,
		&row.DefaultLocale,
		&row.Phase,
		&row.Duration,
		&row.Source,
		&row.More,
		&row.Suitable,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.NotFound[*activity2.Activity2](), nil
		}
		return repo.NotFound[*activity2.Activity2](), gerrors.Wrapf(err, "find activity2 %d", retromatID)
	}

	translations, err := r.translations(ctx, tx, row.ID)
	if err != nil {
		return repo.NotFound[*activity2.Activity2](), err
	}
	return repo.Found(toDomainActivity2(&row, translations)), nil
}

func (r *Activity2Repository) translations(ctx context.Context, tx repo.Tx, activityID uint) ([]*models.Activity2Translation, error) {
	rows, err := tx.Query(ctx, selectTranslationsQuery, activityID)
	if err != nil {
		return nil, gerrors.Wrap(err, "query translations")
	}
	defer rows.Close()

	var out []*models.Activity2Translation
	for rows.Next() {
		var t models.Activity2Translation
		if err := rows.Scan(&t.ID, &t.Activity2ID, &t.Locale, &t.Name, &t.Summary, &t.Description); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Activity2Repository) Create(ctx context.Context, a *activity2.Activity2) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	row := toDBActivity2(a)
	if err := tx.QueryRow(ctx, insertActivity2Query,
		row.RetromatID,
		row.DefaultLocale,
		row.Phase,
		row.Duration,
		row.Source,
		row.More,
		row.Suitable,
	).Scan(&a.ID); err != nil {
		return gerrors.Wrapf(err, "create activity2 %d", a.RetromatID)
	}
	return r.saveTranslations(ctx, tx, a)
}

func (r *Activity2Repository) Update(ctx context.Context, a *activity2.Activity2) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	row := toDBActivity2(a)
	if _, err := tx.Exec(ctx, updateActivity2Query,
		row.ID,
		row.DefaultLocale,
		row.Phase,
		row.Duration,
		row.Source,
		row.More,
		row.Suitable,
	); err != nil {
		return gerrors.Wrapf(err, "update activity2 %d", a.RetromatID)
	}
	return r.saveTranslations(ctx, tx, a)
}

// saveTranslations upserts every translation; stored locales are never removed.
func (r *Activity2Repository) saveTranslations(ctx context.Context, tx repo.Tx, a *activity2.Activity2) error {
	for _, t := range toDBTranslations(a) {
		if _, err := tx.Exec(ctx, upsertTranslationQuery,
			t.Activity2ID,
			t.Locale,
			t.Name,
			t.Summary,
			t.Description,
		); err != nil {
			return gerrors.Wrapf(err, "save %s translation of activity2 %d", t.Locale, a.RetromatID)
		}
	}
	return nil
}

func (r *Activity2Repository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, countActivity2Query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *Activity2Repository) CountTranslationsByLocale(ctx context.Context) (map[string]int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := tx.Query(ctx, countTranslationsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var (
			locale string
			count  int64
		)
		if err := rows.Scan(&locale, &count); err != nil {
			return nil, err
		}
		counts[locale] = count
	}
	return counts, rows.Err()
}
