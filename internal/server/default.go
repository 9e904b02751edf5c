package server

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"
	"github.com/ulule/limiter/v3"

	"github.com/retromat/retromat-backend/pkg/application"
	"github.com/retromat/retromat-backend/pkg/configuration"
	"github.com/retromat/retromat-backend/pkg/constants"
	"github.com/retromat/retromat-backend/pkg/httpapi"
	"github.com/retromat/retromat-backend/pkg/middleware"
	"github.com/retromat/retromat-backend/pkg/server"
)

type DefaultOptions struct {
	Logger        *logrus.Logger
	Configuration *configuration.Configuration
	Application   application.Application
	Pool          *pgxpool.Pool
}

func Default(options *DefaultOptions) (*server.HTTPServer, error) {
	app := options.Application

	loggerOpts := middleware.DefaultLoggerOptions()
	if conf := options.Configuration; conf != nil {
		loggerOpts.RequestIDHeader = conf.RequestIDHeader
		loggerOpts.RealIPHeader = conf.RealIPHeader
	}

	middlewares := []mux.MiddlewareFunc{
		// Root span for each request.
		middleware.WithLogger(options.Logger, loggerOpts),

		middleware.TracedMiddleware("database"),
		middleware.Provide(constants.AppKey, app),
		middleware.Provide(constants.PoolKey, options.Pool),
	}

	if conf := options.Configuration; conf != nil {
		if origins := conf.CorsOriginList(); len(origins) > 0 {
			middlewares = append(middlewares,
				middleware.TracedMiddleware("cors"),
				middleware.Cors(origins...),
			)
		}
		if conf.RateLimit.Enabled {
			var store limiter.Store
			switch conf.RateLimit.Storage {
			case "redis":
				var err error
				store, err = middleware.NewRedisStore(conf.RateLimit.RedisURL)
				if err != nil {
					options.Logger.WithError(err).Warn("Failed to create Redis store for rate limiting, falling back to memory")
					store = middleware.NewMemoryStore()
				}
			default:
				store = middleware.NewMemoryStore()
			}
			middlewares = append(middlewares,
				middleware.TracedMiddleware("rateLimit"),
				middleware.RateLimit(middleware.RateLimitConfig{
					RequestsPerPeriod: conf.RateLimit.GlobalRPS,
					Store:             store,
				}),
			)
		}
	}

	middlewares = append(middlewares,
		middleware.TracedMiddleware("localizer"),
		middleware.ProvideLocalizer(app),
	)
	app.RegisterMiddleware(middlewares...)

	serverInstance := server.NewHTTPServer(
		app,
		NotFound(),
		MethodNotAllowed(),
	)
	return serverInstance, nil
}

func NotFound() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusNotFound, "NOT_FOUND", "not found", map[string]string{"path": r.URL.Path})
	})
}

func MethodNotAllowed() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = httpapi.WriteError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "method not allowed", map[string]string{
			"path":   r.URL.Path,
			"method": r.Method,
		})
	})
}
