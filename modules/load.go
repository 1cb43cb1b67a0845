package modules

import (
	"github.com/flowgate/flowgate/modules/approvals"
	"github.com/flowgate/flowgate/modules/assistant"
	"github.com/flowgate/flowgate/pkg/application"
)

var BuiltInModules = []application.Module{
	approvals.NewModule(),
	assistant.NewModule(),
}

func Load(app application.Application, externalModules ...application.Module) error {
	for _, module := range externalModules {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
