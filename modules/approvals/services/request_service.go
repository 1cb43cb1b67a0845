package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/flowgate/flowgate/modules/approvals/domain/aggregates/request"
	"github.com/flowgate/flowgate/modules/approvals/domain/entities/actor"
	"github.com/flowgate/flowgate/pkg/composables"
	"github.com/flowgate/flowgate/pkg/eventbus"
)

var (
	ErrSubmitterNotEmployee = errors.New("submitter is not an employee")
)

// Stats is the dashboard aggregate over an actor's relevant requests.
type Stats struct {
	Total     int
	Pending   int
	Approved  int
	Rejected  int
	Important int
}

type RequestService struct {
	repo      request.Repository
	directory actor.Directory
	publisher eventbus.EventBus

	// mu serializes the two mutation paths so at most one status change
	// is in flight at a time; readers see fully-applied states only.
	mu sync.Mutex
}

func NewRequestService(repo request.Repository, directory actor.Directory, publisher eventbus.EventBus) *RequestService {
	return &RequestService{
		repo:      repo,
		directory: directory,
		publisher: publisher,
	}
}

// Create validates the input, captures the submitter's POC and Manager
// references from the directory, and prepends a pending_poc request.
// A submitter without a configured POC or Manager still gets a request,
// with empty approver references; such a request never enters any
// approver's queue.
func (s *RequestService) Create(ctx context.Context, dto *request.CreateDTO) (request.Request, error) {
	if dto == nil {
		return nil, errors.New("missing dto")
	}
	if fieldErrs, ok := dto.Ok(); !ok {
		return nil, fieldErrs
	}

	submitter, err := s.directory.ResolveActor(ctx, dto.EmployeeID)
	if err != nil {
		return nil, err
	}
	if submitter.Role() != actor.RoleEmployee {
		return nil, ErrSubmitterNotEmployee
	}
	if submitter.POCID() == uuid.Nil || submitter.ManagerID() == uuid.Nil {
		composables.UseLogger(ctx).WithFields(logrus.Fields{
			"employee_id": submitter.ID(),
			"poc_id":      submitter.POCID(),
			"manager_id":  submitter.ManagerID(),
		}).Warn("submitter has incomplete approver chain; request will be unreachable by approvers")
	}

	entity, err := request.New(
		request.Type(dto.Type),
		dto.Title,
		dto.Description,
		submitter.ID(),
		submitter.Name(),
		request.WithApprovers(submitter.POCID(), submitter.ManagerID()),
		request.WithImportant(dto.Important),
		request.WithDates(dto.StartDate, dto.EndDate),
	)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	created, err := s.repo.Create(ctx, entity)
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(request.NewCreatedEvent(created))
	return created, nil
}

// Transition applies an approver's decision. Employees are rejected
// before the workflow table is consulted; an approver acting on a
// request not assigned to them, or at the wrong stage, gets
// ErrInvalidTransition. The whole read-decide-write is atomic.
func (s *RequestService) Transition(ctx context.Context, dto *request.DecideDTO) (request.Request, error) {
	if dto == nil {
		return nil, errors.New("missing dto")
	}
	if fieldErrs, ok := dto.Ok(); !ok {
		return nil, fieldErrs
	}

	acting, err := s.directory.ResolveActor(ctx, dto.ActorID)
	if err != nil {
		return nil, err
	}
	if acting.Role() == actor.RoleEmployee {
		return nil, request.ErrUnauthorizedRole
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entity, err := s.repo.GetByID(ctx, dto.RequestID)
	if err != nil {
		return nil, err
	}

	if !s.isAssignedApprover(entity, acting) {
		return nil, request.ErrInvalidTransition
	}

	from := entity.Status()
	decision := request.Decision(dto.Decision)
	next, err := request.NextStatus(from, acting.Role(), decision)
	if err != nil {
		return nil, err
	}

	byManager := acting.Role() == actor.RoleManager
	updated, err := s.repo.Update(ctx, entity.WithDecision(next, byManager, dto.Remark, time.Now()))
	if err != nil {
		return nil, err
	}

	s.publisher.Publish(request.NewTransitionedEvent(updated.ID(), acting.ID(), decision, from, next))
	return updated, nil
}

func (s *RequestService) isAssignedApprover(r request.Request, a actor.Actor) bool {
	switch a.Role() {
	case actor.RolePOC:
		return r.POCID() == a.ID()
	case actor.RoleManager:
		return r.ManagerID() == a.ID()
	}
	return false
}

func (s *RequestService) GetByID(ctx context.Context, id uuid.UUID) (request.Request, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *RequestService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// RelevantForActor returns the requests visible to the actor: own
// submissions for employees, assigned items for approvers.
func (s *RequestService) RelevantForActor(ctx context.Context, actorID uuid.UUID) ([]request.Request, error) {
	a, err := s.directory.ResolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return request.Relevant(all, a), nil
}

// ActionableForActor returns the actor's approval queue.
func (s *RequestService) ActionableForActor(ctx context.Context, actorID uuid.UUID) ([]request.Request, error) {
	a, err := s.directory.ResolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}
	return request.Actionable(all, a), nil
}

// StatsForActor aggregates the actor's relevant requests for the
// dashboard. For approvers "pending" counts only their own stage;
// for employees both pending stages count.
func (s *RequestService) StatsForActor(ctx context.Context, actorID uuid.UUID) (Stats, error) {
	a, err := s.directory.ResolveActor(ctx, actorID)
	if err != nil {
		return Stats{}, err
	}
	all, err := s.repo.All(ctx)
	if err != nil {
		return Stats{}, err
	}
	relevant := request.Relevant(all, a)

	stats := Stats{Total: len(relevant)}
	for _, r := range relevant {
		switch {
		case a.Role() == actor.RolePOC && r.Status() == request.StatusPendingPOC:
			stats.Pending++
		case a.Role() == actor.RoleManager && r.Status() == request.StatusPendingManager:
			stats.Pending++
		case a.Role() == actor.RoleEmployee && !r.Status().IsTerminal():
			stats.Pending++
		}
		switch r.Status() {
		case request.StatusApproved:
			stats.Approved++
		case request.StatusRejectedByPOC, request.StatusRejectedByManager:
			stats.Rejected++
		}
		if r.Important() {
			stats.Important++
		}
	}
	return stats, nil
}
