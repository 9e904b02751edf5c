package controllers

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/retromat/retromat-backend/modules/activity/services"
	"github.com/retromat/retromat-backend/pkg/application"
	"github.com/retromat/retromat-backend/pkg/composables"
	"github.com/retromat/retromat-backend/pkg/configuration"
	"github.com/retromat/retromat-backend/pkg/httpapi"
	"github.com/retromat/retromat-backend/pkg/intl"
	"github.com/retromat/retromat-backend/pkg/middleware"
)

type activityImporter interface {
	Import(ctx context.Context, locale string) (*services.ImportResult, error)
	Import2Multiple(ctx context.Context, locales []string) (*services.ImportResult, error)
}

type ImportResponse struct {
	Passes []services.PassResult `json:"passes"`
}

type ImportController struct {
	app      application.Application
	importer activityImporter
	basePath string
	// Import runs are exclusive; the reader keeps the current locale.
	running sync.Mutex
}

func NewImportController(app application.Application) application.Controller {
	return &ImportController{
		app:      app,
		importer: app.Service(services.ActivityImporter{}).(*services.ActivityImporter),
		basePath: "/{_locale}/team/activities",
	}
}

func (c *ImportController) Key() string {
	return c.basePath
}

func (c *ImportController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RouteLocalizer(c.app))
	router.HandleFunc("/import", c.Import).Methods(http.MethodPost)
}

// Import runs Import for the route locale, or Import2Multiple when the
// locales query parameter lists locales.
func (c *ImportController) Import(w http.ResponseWriter, r *http.Request) {
	if !c.running.TryLock() {
		_ = httpapi.WriteError(w, http.StatusConflict, "IMPORT_RUNNING", "an activity import is already running", nil)
		return
	}
	defer c.running.Unlock()

	ctx := r.Context()
	locales := configuration.SplitList(r.URL.Query().Get("locales"))

	var (
		result *services.ImportResult
		err    error
	)
	if len(locales) > 0 {
		result, err = c.importer.Import2Multiple(ctx, locales)
	} else {
		result, err = c.importer.Import(ctx, routeLocale(r))
	}

	if err != nil {
		var invalid *services.InvalidActivityError
		if errors.As(err, &invalid) {
			_ = httpapi.WriteErrorDetails(w, http.StatusUnprocessableEntity, "INVALID_ACTIVITY", invalid.Error(), map[string]any{
				"variant":    invalid.Variant,
				"locale":     invalid.Locale,
				"activity":   invalid.Activity,
				"violations": invalid.Violations,
				"committed":  passes(result),
			})
			return
		}
		composables.UseLogger(ctx).WithError(err).Error("activity import failed")
		_ = httpapi.WriteErrorDetails(w, http.StatusInternalServerError, "IMPORT_FAILED", intl.MustT(ctx, "Activities.Import.Failed"), map[string]any{
			"committed": passes(result),
		})
		return
	}
	_ = httpapi.WriteJSON(w, http.StatusOK, &ImportResponse{Passes: passes(result)})
}

func routeLocale(r *http.Request) string {
	if tag, ok := intl.UseLocale(r.Context()); ok {
		return tag.String()
	}
	return mux.Vars(r)[middleware.LocaleVar]
}

func passes(result *services.ImportResult) []services.PassResult {
	if result == nil || result.Passes == nil {
		return []services.PassResult{}
	}
	return result.Passes
}
