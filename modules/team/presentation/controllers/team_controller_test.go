package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	activitymodule "github.com/retromat/retromat-backend/modules/activity"
	"github.com/retromat/retromat-backend/modules/activity/domain/entities/activity"
	"github.com/retromat/retromat-backend/modules/activity/infrastructure/persistence"
	planmodule "github.com/retromat/retromat-backend/modules/plan"
	"github.com/retromat/retromat-backend/modules/plan/domain/titleparts"
	teammodule "github.com/retromat/retromat-backend/modules/team"
	"github.com/retromat/retromat-backend/modules/team/presentation/controllers"
	"github.com/retromat/retromat-backend/pkg/application"
	"github.com/retromat/retromat-backend/pkg/mailer"
	"github.com/retromat/retromat-backend/pkg/middleware"
)

type recordingMailer struct {
	sent []mailer.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type emptyReader struct{}

func (emptyReader) SetCurrentLocale(string) {}

func (emptyReader) ExtractAllActivities(context.Context) ([]activity.Record, error) {
	return nil, nil
}

func testParts() *titleparts.TitleParts {
	return &titleparts.TitleParts{
		SequenceOfGroups: [][]string{{"adjective", "noun"}, {"noun"}},
		GroupsOfTerms: map[string][]string{
			"adjective": {"Agile", "Lean"},
			"noun":      {"Retro", "Review", "Sprint"},
		},
	}
}

func newRouter(t *testing.T, m mailer.Mailer) http.Handler {
	t.Helper()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	app := application.New(&application.ApplicationOptions{
		Logger:             logger,
		Mailer:             m,
		SupportedLanguages: []string{"en", "de"},
	})
	modules := []application.Module{
		activitymodule.NewModule(&activitymodule.ModuleOptions{
			Reader:   emptyReader{},
			CacheTTL: time.Minute,
			Store:    persistence.NewMemoryStore(),
		}),
		planmodule.NewModule(&planmodule.ModuleOptions{Parts: testParts(), CacheTTL: time.Minute}),
		teammodule.NewModule(&teammodule.ModuleOptions{
			MailFrom:    "backend@retromat.test",
			TeamAddress: "team@retromat.test",
		}),
	}
	for _, module := range modules {
		require.NoError(t, module.Register(app))
	}

	r := mux.NewRouter()
	r.Use(middleware.WithLogger(logger, middleware.DefaultLoggerOptions()))
	for _, c := range app.Controllers() {
		c.Register(r)
	}
	return r
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestTeamController_Dashboard(t *testing.T) {
	res := get(newRouter(t, &recordingMailer{}), "/en/team/dashboard")
	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), `id="activity-stats"`)
	require.Contains(t, res.Body.String(), "Team dashboard")
}

func TestTeamController_UnsupportedLocale(t *testing.T) {
	res := get(newRouter(t, &recordingMailer{}), "/xx/team/dashboard")
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestTeamController_Titles(t *testing.T) {
	r := newRouter(t, &recordingMailer{})

	res := get(r, "/en/team/experiment/titles")
	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), "9 combinations in total")
	require.Contains(t, res.Body.String(), "adjective + noun")

	res = get(r, "/de/team/experiment/titles")
	require.Equal(t, http.StatusOK, res.Code)
	require.Contains(t, res.Body.String(), "9 Kombinationen insgesamt")
}

func TestTeamController_TitlesBySequence(t *testing.T) {
	r := newRouter(t, &recordingMailer{})

	res := get(r, "/en/team/experiment/titles/sequence/0")
	require.Equal(t, http.StatusOK, res.Code)
	body := res.Body.String()
	require.Contains(t, body, "6 of 9 combinations")
	require.Contains(t, body, "<code>0:0-0</code></td><td>Agile Retro</td>")
	require.Contains(t, body, "<code>0:1-2</code></td><td>Lean Sprint</td>")

	res = get(r, "/en/team/experiment/titles/sequence/7")
	require.Equal(t, http.StatusNotFound, res.Code)
}

func TestTeamController_TitlesBySequenceSearch(t *testing.T) {
	res := get(newRouter(t, &recordingMailer{}), "/en/team/experiment/titles/sequence/0?q=sprint")
	require.Equal(t, http.StatusOK, res.Code)

	doc, err := goquery.NewDocumentFromReader(res.Body)
	require.NoError(t, err)
	rows := doc.Find("tbody tr")
	require.Equal(t, 2, rows.Length())
	require.Equal(t, "Agile Sprint", rows.First().Find("td").Last().Text())
	value, _ := doc.Find(`input[name="q"]`).Attr("value")
	require.Equal(t, "sprint", value)
}

func TestTeamController_EmailExperiment(t *testing.T) {
	m := &recordingMailer{}
	res := get(newRouter(t, m), "/en/team/experiment/email")
	require.Equal(t, http.StatusOK, res.Code)
	doc, err := goquery.NewDocumentFromReader(res.Body)
	require.NoError(t, err)
	require.Equal(t, "[retromat-backend] Email Experiment", doc.Find("#email-subject").Text())
	require.Equal(t, "Email experiment | Retromat Team", doc.Find("title").Text())

	require.Len(t, m.sent, 1)
	require.Equal(t, []string{"team@retromat.test"}, m.sent[0].To)
	require.Equal(t, "backend@retromat.test", m.sent[0].From)
	require.Equal(t, controllers.EmailExperimentSubject, m.sent[0].Subject)
	require.Equal(t, controllers.EmailExperimentBody, m.sent[0].Body)
}

func TestTeamController_EmailExperimentMailerFailure(t *testing.T) {
	res := get(newRouter(t, &recordingMailer{err: errors.New("smtp down")}), "/en/team/experiment/email")
	require.Equal(t, http.StatusBadGateway, res.Code)
	require.Contains(t, res.Body.String(), "The test email could not be sent.")
}

func TestTeamController_ErrorExperiment(t *testing.T) {
	res := get(newRouter(t, &recordingMailer{}), "/en/team/experiment/error")
	require.Equal(t, http.StatusInternalServerError, res.Code)
	require.Contains(t, res.Body.String(), "INTERNAL_SERVER_ERROR")
}
