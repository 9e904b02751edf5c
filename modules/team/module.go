package team

import (
	"embed"

	"github.com/retromat/retromat-backend/modules/team/presentation/controllers"
	"github.com/retromat/retromat-backend/pkg/application"
)

//go:embed presentation/locales/*.json
var localeFiles embed.FS

type ModuleOptions struct {
	MailFrom    string
	TeamAddress string
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{options: opts}
}

// Module serves the team area. It needs the activity and plan modules
// registered first.
type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	app.RegisterLocaleFiles(&localeFiles)
	app.RegisterControllers(
		controllers.NewTeamController(app, controllers.TeamControllerOptions{
			MailFrom:    m.options.MailFrom,
			TeamAddress: m.options.TeamAddress,
		}),
	)
	return nil
}

func (m *Module) Name() string {
	return "team"
}
