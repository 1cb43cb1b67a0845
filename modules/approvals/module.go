package approvals

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/flowgate/flowgate/modules/approvals/domain/aggregates/request"
	"github.com/flowgate/flowgate/modules/approvals/infrastructure/persistence"
	"github.com/flowgate/flowgate/modules/approvals/presentation/controllers"
	"github.com/flowgate/flowgate/modules/approvals/seed"
	"github.com/flowgate/flowgate/modules/approvals/services"
	"github.com/flowgate/flowgate/pkg/application"
)

func NewModule() application.Module {
	return &Module{}
}

type Module struct{}

func (m *Module) Register(app application.Application) error {
	directory := persistence.NewInmemDirectory(seed.Actors())
	repo := persistence.NewInmemRequestRepository()

	if err := seed.Requests(context.Background(), repo); err != nil {
		return err
	}

	app.RegisterServices(
		services.NewRequestService(repo, directory, app.EventPublisher()),
	)

	app.RegisterControllers(
		controllers.NewRequestAPIController(app, directory),
	)

	logger := app.Logger()
	app.EventPublisher().Subscribe(func(event *request.CreatedEvent) {
		logger.WithFields(logrus.Fields{
			"request_id": event.Request.ID(),
			"type":       event.Request.Type(),
			"employee":   event.Request.EmployeeName(),
		}).Info("request submitted")
	})
	app.EventPublisher().Subscribe(func(event *request.TransitionedEvent) {
		logger.WithFields(logrus.Fields{
			"request_id": event.RequestID,
			"actor_id":   event.ActorID,
			"decision":   event.Decision,
			"from":       event.From,
			"to":         event.To,
		}).Info("request transitioned")
	})

	return nil
}

func (m *Module) Name() string {
	return "approvals"
}
