package services_test

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flowgate/flowgate/modules/approvals/domain/entities/actor"
	"github.com/flowgate/flowgate/modules/approvals/infrastructure/persistence"
	"github.com/flowgate/flowgate/modules/approvals/services"
	"github.com/flowgate/flowgate/pkg/composables"
	"github.com/flowgate/flowgate/pkg/eventbus"
)

type fixtures struct {
	Ctx       context.Context
	Service   *services.RequestService
	Repo      *persistence.InmemRequestRepository
	Bus       eventbus.EventBus
	Employee  actor.Actor
	Employee2 actor.Actor
	POC       actor.Actor
	OtherPOC  actor.Actor
	Manager   actor.Actor
	Orphan    actor.Actor
}

func setupTest(t *testing.T) *fixtures {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	pocID := uuid.New()
	managerID := uuid.New()

	poc := actor.New(pocID, "POC001", "jane.smith@company.com", "Jane Smith", actor.RolePOC, "Engineering",
		actor.WithManager(managerID))
	manager := actor.New(managerID, "MGR001", "mike.johnson@company.com", "Mike Johnson", actor.RoleManager, "Engineering")
	employee := actor.New(uuid.New(), "EMP001", "john.doe@company.com", "John Doe", actor.RoleEmployee, "Engineering",
		actor.WithPOC(pocID), actor.WithManager(managerID))
	employee2 := actor.New(uuid.New(), "EMP002", "sarah.wilson@company.com", "Sarah Wilson", actor.RoleEmployee, "Design",
		actor.WithPOC(pocID), actor.WithManager(managerID))
	otherPOC := actor.New(uuid.New(), "POC002", "amy.chen@company.com", "Amy Chen", actor.RolePOC, "Design",
		actor.WithManager(managerID))
	// No POC/Manager configured: requests from this actor are orphaned.
	orphan := actor.New(uuid.New(), "EMP003", "orphan@company.com", "Orphan Employee", actor.RoleEmployee, "Support")

	directory := persistence.NewInmemDirectory([]actor.Actor{employee, employee2, poc, otherPOC, manager, orphan})
	repo := persistence.NewInmemRequestRepository()
	bus := eventbus.NewEventPublisher(logger)

	ctx := composables.WithLogger(context.Background(), logrus.NewEntry(logger))

	return &fixtures{
		Ctx:       ctx,
		Service:   services.NewRequestService(repo, directory, bus),
		Repo:      repo,
		Bus:       bus,
		Employee:  employee,
		Employee2: employee2,
		POC:       poc,
		OtherPOC:  otherPOC,
		Manager:   manager,
		Orphan:    orphan,
	}
}
