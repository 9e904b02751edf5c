package plan

import (
	"time"

	"github.com/retromat/retromat-backend/modules/plan/domain/titleparts"
	"github.com/retromat/retromat-backend/modules/plan/services"
	"github.com/retromat/retromat-backend/pkg/application"
)

type ModuleOptions struct {
	// TitlesPath points at the YAML file holding the title parts.
	TitlesPath string
	// Parts, when set, is used instead of reading TitlesPath.
	Parts    *titleparts.TitleParts
	CacheTTL time.Duration
}

func NewModule(opts *ModuleOptions) application.Module {
	return &Module{options: opts}
}

type Module struct {
	options *ModuleOptions
}

func (m *Module) Register(app application.Application) error {
	parts := m.options.Parts
	if parts == nil {
		loaded, err := titleparts.Load(m.options.TitlesPath)
		if err != nil {
			return err
		}
		parts = loaded
	}
	app.RegisterServices(
		services.NewPlanTitleService(parts, app.Cache(), m.options.CacheTTL),
	)
	return nil
}

func (m *Module) Name() string {
	return "plan"
}
