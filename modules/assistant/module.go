package assistant

import (
	"github.com/flowgate/flowgate/modules/assistant/presentation/controllers"
	"github.com/flowgate/flowgate/modules/assistant/services"
	"github.com/flowgate/flowgate/pkg/application"
	"github.com/flowgate/flowgate/pkg/configuration"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	conf := configuration.Use()

	app.RegisterServices(
		services.NewAssistantService(services.AssistantServiceConfig{
			DefaultCacheConfig: services.DefaultCacheConfig{
				Enabled: conf.AssistantCache.Enabled,
				Backend: conf.AssistantCache.Backend,
				Prefix:  conf.AssistantCache.Prefix,
				TTL:     conf.AssistantCache.TTL,
			},
		}),
	)

	app.RegisterControllers(
		controllers.NewAssistantAPIController(app),
	)

	return nil
}

func (m *Module) Name() string {
	return "assistant"
}
