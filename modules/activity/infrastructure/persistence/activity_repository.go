package persistence

import (
	"context"
	"errors"

	gerrors "github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"

	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
	"github.com/retromat/retromat-backend/modules/activity/infrastructure/persistence/models"
	"github.com/retromat/retromat-backend/pkg/composables"
	"github.com/retromat/retromat-backend/pkg/repo"
)

const (
	selectActivityQuery = `
		SELECT id, retromat_id, language, phase, name, summary, description, duration, source, more, suitable
		FROM activities`

	insertActivityQuery = `
		INSERT INTO activities (retromat_id, language, phase, name, summary, description, duration, source, more, suitable)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`

	updateActivityQuery = `
		UPDATE activities
		SET language = $2, phase = $3, name = $4, summary = $5, description = $6,
		    duration = $7, source = $8, more = $9, suitable = $10
		WHERE retromat_id = $1`

	countActivitiesQuery = `SELECT COUNT(*) FROM activities`
)

type ActivityRepository struct{}

func NewActivityRepository() activity.Repository {
	return &ActivityRepository{}
}

func (r *ActivityRepository) FindByRetromatID(ctx context.Context, retromatID int) (repo.Lookup[*activity.Activity], error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return repo.NotFound[*activity.Activity](), err
	}

	var row models.Activity
	if err := tx.QueryRow(ctx, selectActivityQuery+" WHERE retromat_id = $1", retromatID).Scan(
		&row.ID,
		&row.RetromatID,
		&row.Language,
		&row.Phase,
		&row.Name,
		&row.Summary,
		&row.Description,
		&row.Duration,
		&row.Source,
		&row.More,
		&row.Suitable,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return repo.NotFound[*activity.Activity](), nil
		}
		return repo.NotFound[*activity.Activity](), gerrors.Wrapf(err, "find activity %d", retromatID)
	}
	return repo.Found(toDomainActivity(&row)), nil
}

func (r *ActivityRepository) Create(ctx context.Context, a *activity.Activity) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	row := toDBActivity(a)
	if err := tx.QueryRow(ctx, insertActivityQuery,
		row.RetromatID,
		row.Language,
		row.Phase,
		row.Name,
		row.Summary,
		row.Description,
		row.Duration,
		row.Source,
		row.More,
		row.Suitable,
	).Scan(&a.ID); err != nil {
		return gerrors.Wrapf(err, "create activity %d", a.RetromatID)
	}
	return nil
}

func (r *ActivityRepository) Update(ctx context.Context, a *activity.Activity) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return err
	}
	row := toDBActivity(a)
	if _, err := tx.Exec(ctx, updateActivityQuery,
		row.RetromatID,
		row.Language,
		row.Phase,
		row.Name,
		row.Summary,
		row.Description,
		row.Duration,
		row.Source,
		row.More,
		row.Suitable,
	); err != nil {
		return gerrors.Wrapf(err, "update activity %d", a.RetromatID)
	}
	return nil
}

func (r *ActivityRepository) Count(ctx context.Context) (int64, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := tx.QueryRow(ctx, countActivitiesQuery).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
