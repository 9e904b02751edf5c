package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/a-h/templ"
	"github.com/gorilla/mux"

	activityservices "github.com/retromat/retromat-backend/modules/activity/services"
	planservices "github.com/retromat/retromat-backend/modules/plan/services"
	"github.com/retromat/retromat-backend/modules/team/presentation/mappers"
	"github.com/retromat/retromat-backend/modules/team/presentation/templates/pages/team"
	"github.com/retromat/retromat-backend/modules/team/presentation/viewmodels"
	"github.com/retromat/retromat-backend/pkg/application"
	"github.com/retromat/retromat-backend/pkg/composables"
	"github.com/retromat/retromat-backend/pkg/intl"
	"github.com/retromat/retromat-backend/pkg/mailer"
	"github.com/retromat/retromat-backend/pkg/middleware"
)

const (
	EmailExperimentSubject = "[retromat-backend] Email Experiment"
	EmailExperimentBody    = "Email Experiment"
)

var ErrErrorExperiment = errors.New("The ErrorExperiment has been triggered.")

type TeamControllerOptions struct {
	MailFrom    string
	TeamAddress string
}

type TeamController struct {
	app          application.Application
	statsService *activityservices.ActivityStatsService
	titleService *planservices.PlanTitleService
	mailer       mailer.Mailer
	opts         TeamControllerOptions
	basePath     string
}

func NewTeamController(app application.Application, opts TeamControllerOptions) application.Controller {
	return &TeamController{
		app:          app,
		statsService: app.Service(activityservices.ActivityStatsService{}).(*activityservices.ActivityStatsService),
		titleService: app.Service(planservices.PlanTitleService{}).(*planservices.PlanTitleService),
		mailer:       app.Mailer(),
		opts:         opts,
		basePath:     "/{_locale}/team",
	}
}

func (c *TeamController) Key() string {
	return c.basePath
}

func (c *TeamController) Register(r *mux.Router) {
	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(middleware.RouteLocalizer(c.app))
	router.HandleFunc("/dashboard", c.Dashboard).Methods(http.MethodGet)
	router.HandleFunc("/experiment/titles", c.Titles).Methods(http.MethodGet)
	router.HandleFunc("/experiment/titles/sequence/{sequenceId:[0-9]+}", c.TitlesBySequence).Methods(http.MethodGet)
	router.HandleFunc("/experiment/email", c.EmailExperiment).Methods(http.MethodGet)
	router.HandleFunc("/experiment/error", c.ErrorExperiment).Methods(http.MethodGet)
}

func locale(r *http.Request) string {
	return mux.Vars(r)[middleware.LocaleVar]
}

func (c *TeamController) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := c.statsService.Stats(r.Context())
	if err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to load activity stats")
		http.Error(w, "Error retrieving activity statistics", http.StatusInternalServerError)
		return
	}
	props := &team.DashboardProps{Page: mappers.DashboardToViewModel(locale(r), stats)}
	templ.Handler(team.Dashboard(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TeamController) Titles(w http.ResponseWriter, r *http.Request) {
	props := &team.TitlesProps{
		Page: mappers.TitlesToViewModel(locale(r), c.titleService.Parts(), c.titleService.Generator()),
	}
	templ.Handler(team.Titles(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TeamController) TitlesBySequence(w http.ResponseWriter, r *http.Request) {
	sequenceID, err := strconv.Atoi(mux.Vars(r)["sequenceId"])
	if err != nil {
		http.NotFound(w, r)
		return
	}
	titles, err := c.titleService.SequenceTitles(sequenceID)
	if err != nil {
		if errors.Is(err, planservices.ErrUnknownSequence) {
			http.NotFound(w, r)
			return
		}
		composables.UseLogger(r.Context()).WithError(err).Error("failed to render sequence titles")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	query := r.URL.Query().Get("q")
	props := &team.SequenceProps{
		Page: mappers.SequenceToViewModel(
			locale(r), sequenceID, c.titleService.Parts(), c.titleService.Generator(),
			planservices.FilterTitles(titles, query), query,
		),
	}
	templ.Handler(team.TitlesBySequence(props), templ.WithStreaming()).ServeHTTP(w, r)
}

func (c *TeamController) EmailExperiment(w http.ResponseWriter, r *http.Request) {
	msg := mailer.Message{
		From:    c.opts.MailFrom,
		To:      []string{c.opts.TeamAddress},
		Subject: EmailExperimentSubject,
		Body:    EmailExperimentBody,
	}
	if err := c.mailer.Send(r.Context(), msg); err != nil {
		composables.UseLogger(r.Context()).WithError(err).Error("failed to send experiment email")
		http.Error(w, intl.MustT(r.Context(), "Team.Email.Failed"), http.StatusBadGateway)
		return
	}
	props := &team.EmailProps{Page: &viewmodels.EmailPage{
		Subject:   EmailExperimentSubject,
		Recipient: c.opts.TeamAddress,
	}}
	templ.Handler(team.EmailExperiment(props), templ.WithStreaming()).ServeHTTP(w, r)
}

// ErrorExperiment fails on purpose to check error reporting end to end.
func (c *TeamController) ErrorExperiment(w http.ResponseWriter, r *http.Request) {
	panic(ErrErrorExperiment)
}
