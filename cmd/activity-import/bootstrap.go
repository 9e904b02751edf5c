package main

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	activitymodule "github.com/retromat/retromat-backend/modules/activity"
	"github.com/retromat/retromat-backend/modules/activity/infrastructure/persistence"
	"github.com/retromat/retromat-backend/modules/activity/infrastructure/reader"
	"github.com/retromat/retromat-backend/modules/activity/services"
	"github.com/retromat/retromat-backend/pkg/application"
	"github.com/retromat/retromat-backend/pkg/composables"
	"github.com/retromat/retromat-backend/pkg/configuration"
	"github.com/retromat/retromat-backend/pkg/eventbus"
)

type environment struct {
	conf *configuration.Configuration
	app  application.Application
	pool *pgxpool.Pool
}

// bootstrap wires the activity module against Postgres, or against an
// in-memory store when dryRun is set.
func bootstrap(ctx context.Context, dryRun bool) (*environment, func(), error) {
	conf := configuration.Use()
	return newEnvironment(ctx, conf, dryRun, conf.Unload)
}

// newEnvironment calls unload on every error path, and from the returned
// cleanup otherwise.
func newEnvironment(ctx context.Context, conf *configuration.Configuration, dryRun bool, unload func()) (*environment, func(), error) {
	logger := conf.Logger()
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	source, err := reader.FromConfig(conf.Importer)
	if err != nil {
		unload()
		return nil, nil, withCode(exitUsage, err)
	}

	env := &environment{conf: conf}
	cleanup := unload
	opts := &activitymodule.ModuleOptions{Reader: source, CacheTTL: conf.Redis.TTL}
	if dryRun {
		logger.Info("dry run: activities are imported into memory only")
		opts.Store = persistence.NewMemoryStore()
	} else {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		pool, err := pgxpool.New(connectCtx, conf.Database.Opts)
		if err != nil {
			unload()
			return nil, nil, withCode(exitDB, errors.Wrap(err, "connect database"))
		}
		env.pool = pool
		cleanup = func() {
			pool.Close()
			unload()
		}
	}

	env.app = application.New(&application.ApplicationOptions{
		Pool:               env.pool,
		EventBus:           eventbus.NewEventPublisher(logger),
		Logger:             logger,
		SupportedLanguages: conf.SupportedLanguageCodes(),
	})
	if err := activitymodule.NewModule(opts).Register(env.app); err != nil {
		cleanup()
		return nil, nil, err
	}
	return env, cleanup, nil
}

func (e *environment) context(ctx context.Context) context.Context {
	if e.pool != nil {
		ctx = composables.WithPool(ctx, e.pool)
	}
	return composables.WithLogger(ctx, logrus.NewEntry(e.app.Logger()))
}

func (e *environment) importer() *services.ActivityImporter {
	return e.app.Service(services.ActivityImporter{}).(*services.ActivityImporter)
}
