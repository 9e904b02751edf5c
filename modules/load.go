package modules

import (
	"github.com/retromat/retromat-backend/modules/activity"
	"github.com/retromat/retromat-backend/modules/activity/infrastructure/reader"
	"github.com/retromat/retromat-backend/modules/plan"
	"github.com/retromat/retromat-backend/modules/team"
	"github.com/retromat/retromat-backend/pkg/application"
	"github.com/retromat/retromat-backend/pkg/configuration"
)

// BuiltInModules builds the modules in registration order; team depends on
// the services of activity and plan.
func BuiltInModules(conf *configuration.Configuration) ([]application.Module, error) {
	source, err := reader.FromConfig(conf.Importer)
	if err != nil {
		return nil, err
	}
	return []application.Module{
		activity.NewModule(&activity.ModuleOptions{
			Reader:   source,
			CacheTTL: conf.Redis.TTL,
		}),
		plan.NewModule(&plan.ModuleOptions{
			TitlesPath: conf.Plan.TitlesPath,
			CacheTTL:   conf.Redis.TTL,
		}),
		team.NewModule(&team.ModuleOptions{
			MailFrom:    conf.Mailer.From,
			TeamAddress: conf.Mailer.TeamAddress,
		}),
	}, nil
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
