package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	activitymodule "github.com/retromat/retromat-backend/modules/activity"
	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
	"github.com/retromat/retromat-backend/modules/activity/infrastructure/persistence"
	"github.com/retromat/retromat-backend/modules/activity/presentation/controllers"
	"github.com/retromat/retromat-backend/pkg/application"
	"github.com/retromat/retromat-backend/pkg/httpapi"
)

type mapReader struct {
	locale  string
	records map[string][]activity.Record
}

func (r *mapReader) SetCurrentLocale(locale string) { r.locale = locale }

func (r *mapReader) ExtractAllActivities(context.Context) ([]activity.Record, error) {
	return r.records[r.locale], nil
}

func rec(id int, name string) activity.Record {
	return activity.Record{"retromatId": id, "phase": 1, "name": name, "summary": "s", "desc": "d"}
}

func newRouter(t *testing.T, records map[string][]activity.Record) (*mux.Router, *persistence.MemoryStore) {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	app := application.New(&application.ApplicationOptions{
		Logger:             logger,
		SupportedLanguages: []string{"en", "de", "fr"},
	})
	store := persistence.NewMemoryStore()
	require.NoError(t, activitymodule.NewModule(&activitymodule.ModuleOptions{
		Reader:   &mapReader{records: records},
		CacheTTL: time.Minute,
		Store:    store,
	}).Register(app))

	r := mux.NewRouter()
	for _, c := range app.Controllers() {
		c.Register(r)
	}
	return r, store
}

func post(r http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, target, nil))
	return rec
}

func TestImportController_ImportRouteLocale(t *testing.T) {
	r, store := newRouter(t, map[string][]activity.Record{
		"en": {rec(1, "ESVP")},
		"de": {rec(1, "ESVP de")},
	})

	res := post(r, "/de/team/activities/import")
	require.Equal(t, http.StatusOK, res.Code, res.Body.String())

	var body controllers.ImportResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Len(t, body.Passes, 2)
	require.Equal(t, activity.VariantLegacy, body.Passes[0].Variant)
	require.Equal(t, "de", body.Passes[1].Locale)
	require.Equal(t, 1, body.Passes[1].Inserted)
	require.Equal(t, 2, store.Commits())
}

func TestImportController_MultipleLocales(t *testing.T) {
	r, _ := newRouter(t, map[string][]activity.Record{
		"en": {rec(1, "ESVP")},
		"de": {rec(1, "ESVP de")},
		"fr": {rec(1, "ESVP fr")},
	})

	res := post(r, "/en/team/activities/import?locales=de,fr")
	require.Equal(t, http.StatusOK, res.Code)

	var body controllers.ImportResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	require.Len(t, body.Passes, 3)
	require.Equal(t, "en", body.Passes[2].Locale)
	require.Equal(t, activity.VariantTranslatable, body.Passes[2].Variant)
}

func TestImportController_InvalidActivity(t *testing.T) {
	r, store := newRouter(t, map[string][]activity.Record{
		"en": {rec(1, "ESVP"), rec(2, "")},
	})

	res := post(r, "/en/team/activities/import")
	require.Equal(t, http.StatusUnprocessableEntity, res.Code)

	var env httpapi.ErrorEnvelope
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &env))
	require.Equal(t, "INVALID_ACTIVITY", env.Code)
	details := env.Details.(map[string]any)
	require.Equal(t, activity.VariantLegacy, details["variant"])
	violations := details["violations"].([]any)
	require.Len(t, violations, 1)
	require.Equal(t, "Activity.Name", violations[0].(map[string]any)["path"])
	require.Zero(t, store.Commits())
}

func TestImportController_UnsupportedLocale(t *testing.T) {
	r, _ := newRouter(t, nil)
	require.Equal(t, http.StatusNotFound, post(r, "/xx/team/activities/import").Code)
}

func TestImportController_MethodNotAllowed(t *testing.T) {
	r, _ := newRouter(t, nil)
	res := httptest.NewRecorder()
	r.ServeHTTP(res, httptest.NewRequest(http.MethodGet, "/en/team/activities/import", nil))
	require.Equal(t, http.StatusMethodNotAllowed, res.Code)
}
