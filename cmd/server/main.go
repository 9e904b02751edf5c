package main

import (
	"context"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/retromat/retromat-backend/internal/server"
	"github.com/retromat/retromat-backend/modules"
	"github.com/retromat/retromat-backend/pkg/application"
	"github.com/retromat/retromat-backend/pkg/cache"
	"github.com/retromat/retromat-backend/pkg/configuration"
	"github.com/retromat/retromat-backend/pkg/eventbus"
	"github.com/retromat/retromat-backend/pkg/logging"
	"github.com/retromat/retromat-backend/pkg/mailer"
	"github.com/retromat/retromat-backend/pkg/metrics"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	conf := configuration.Use()
	logger := conf.Logger()

	if conf.OpenTelemetry.Enabled {
		tracingCleanup := logging.SetupTracing(
			context.Background(),
			conf.OpenTelemetry.ServiceName,
			conf.OpenTelemetry.TempoURL,
		)
		defer tracingCleanup()
		logger.Info("OpenTelemetry tracing enabled, exporting to " + conf.OpenTelemetry.TempoURL)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	pool, err := pgxpool.New(ctx, conf.Database.Opts)
	if err != nil {
		panic(err)
	}
	defer pool.Close()

	app := application.New(&application.ApplicationOptions{
		Pool:               pool,
		Bundle:             application.LoadBundle(),
		EventBus:           eventbus.NewEventPublisher(logger),
		Logger:             logger,
		Cache:              newCache(conf),
		Mailer:             newMailer(conf, logger),
		SupportedLanguages: conf.SupportedLanguageCodes(),
	})
	builtIn, err := modules.BuiltInModules(conf)
	if err != nil {
		log.Fatalf("failed to configure modules: %v", err)
	}
	if err := modules.Load(app, builtIn...); err != nil {
		log.Fatalf("failed to load modules: %v", err)
	}
	if conf.Prometheus.Enabled {
		app.RegisterControllers(metrics.NewPrometheusController(conf.Prometheus.Path))
	}

	options := &server.DefaultOptions{
		Logger:        logger,
		Configuration: conf,
		Application:   app,
		Pool:          pool,
	}
	serverInstance, err := server.Default(options)
	if err != nil {
		log.Fatalf("failed to create server: %v", err)
	}
	log.Printf("Listening on: %s\n", conf.Origin)
	if err := serverInstance.Start(conf.SocketAddress); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func newCache(conf *configuration.Configuration) cache.Cache {
	if !conf.Redis.Enabled {
		return cache.NewMemoryCache()
	}
	return cache.NewRedisCache(cache.NewRedisClient(conf.Redis.URL), conf.Redis.Prefix)
}

func newMailer(conf *configuration.Configuration, logger *logrus.Logger) mailer.Mailer {
	if conf.Mailer.Host == "" {
		logger.Warn("SMTP_HOST is not set, emails are only logged")
		return mailer.NewLogMailer(logger)
	}
	m, err := mailer.NewSMTPMailer(mailer.Options{
		Host:     conf.Mailer.Host,
		Port:     conf.Mailer.Port,
		Username: conf.Mailer.Username,
		Password: conf.Mailer.Password,
	})
	if err != nil {
		panic(err)
	}
	return m
}
