package activity

import (
	"embed"
	"time"

	"github.com/retromat/retromat-backend/modules/activity/domain/aggregates/activity2"
	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
	"github.com/retromat/retromat-backend/modules/activity/infrastructure/persistence"
	"github.com/retromat/retromat-backend/modules/activity/presentation/controllers"
	"github.com/retromat/retromat-backend/modules/activity/services"
	"github.com/retromat/retromat-backend/pkg/application"
	"github.com/retromat/retromat-backend/pkg/mapping"
	"github.com/retromat/retromat-backend/pkg/validation"
)

//go:embed presentation/locales/*.json
var localeFiles embed.FS

//go:embed infrastructure/persistence/schema/*.sql
var migrationFiles embed.FS

const schemaDir = "infrastructure/persistence/schema"

type ModuleOptions struct {
	Reader   activity.Reader
	CacheTTL time.Duration
	// Store replaces the Postgres repositories and transactions, e.g. for dry runs.
	Store *persistence.MemoryStore
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	var (
		activities activity.Repository  = persistence.NewActivityRepository()
		translated activity2.Repository = persistence.NewActivity2Repository()
		uow        services.UnitOfWork
	)
	if store := m.options.Store; store != nil {
		activities = store.Activities()
		translated = store.Activity2()
		uow = store.InTx
	}

	stats := services.NewActivityStatsService(activities, translated, app.Cache(), m.options.CacheTTL)
	stats.Subscribe(app.EventPublisher())

	app.RegisterLocaleFiles(&localeFiles)
	app.Migrations().RegisterSchema(application.Schema{FS: migrationFiles, Dir: schemaDir})
	app.RegisterServices(
		services.NewActivityImporter(services.ActivityImporterOptions{
			Reader:     m.options.Reader,
			Mapper:     mapping.NewRecordMapper(),
			Validator:  validation.NewStructValidator(),
			Activities: activities,
			Activity2:  translated,
			UnitOfWork: uow,
			Publisher:  app.EventPublisher(),
		}),
		stats,
	)
	app.RegisterControllers(
		controllers.NewImportController(app),
	)
	return nil
}

func (m *Module) Name() string {
	return "activity"
}
