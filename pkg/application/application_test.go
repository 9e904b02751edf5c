package application

import (
	"net/http"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
)

type stubController struct{ key string }

func (c *stubController) Key() string { return c.key }
func (c *stubController) Register(r *mux.Router) {
	r.HandleFunc(c.key, func(w http.ResponseWriter, r *http.Request) {})
}

type stubService struct{ name string }

func TestApplication_Defaults(t *testing.T) {
	app := New(&ApplicationOptions{})
	require.NotNil(t, app.Cache())
	require.NotNil(t, app.Mailer())
	require.NotNil(t, app.EventPublisher())
	require.NotNil(t, app.Bundle())
	require.Contains(t, app.GetSupportedLanguages(), "en")
}

func TestApplication_ServiceRegistry(t *testing.T) {
	app := New(&ApplicationOptions{})
	svc := &stubService{name: "x"}
	app.RegisterServices(svc)

	got := app.Service(stubService{}).(*stubService)
	require.Same(t, svc, got)
	require.Panics(t, func() { app.Service(struct{}{}) })
}

func TestApplication_ControllersSortedByKey(t *testing.T) {
	app := New(&ApplicationOptions{})
	app.RegisterControllers(&stubController{key: "/b"}, &stubController{key: "/a"}, &stubController{key: "/b"})

	controllers := app.Controllers()
	require.Len(t, controllers, 2)
	require.Equal(t, "/a", controllers[0].Key())
	require.Equal(t, "/b", controllers[1].Key())
}

func TestMigrationManager_RegisterSchema(t *testing.T) {
	app := New(&ApplicationOptions{})
	app.Migrations().RegisterSchema(Schema{Dir: "schema"})
	require.Len(t, app.Migrations().Schemas(), 1)
}
