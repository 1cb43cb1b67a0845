package services_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgate/flowgate/modules/approvals/domain/aggregates/request"
	"github.com/flowgate/flowgate/pkg/serrors"
)

func createLeaveRequest(t *testing.T, f *fixtures) request.Request {
	t.Helper()
	created, err := f.Service.Create(f.Ctx, &request.CreateDTO{
		Type:        "leave",
		Title:       "Annual Leave Request",
		Description: "Planning family vacation for 5 days.",
		EmployeeID:  f.Employee.ID(),
	})
	require.NoError(t, err)
	return created
}

func TestRequestService_Create_RoundTrip(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created, err := f.Service.Create(f.Ctx, &request.CreateDTO{
		Type:        "wfh",
		Title:       "Work From Home - Personal Reasons",
		Description: "Requesting WFH for next week due to home renovation work.",
		StartDate:   "2024-01-15",
		EndDate:     "2024-01-19",
		Important:   true,
		EmployeeID:  f.Employee.ID(),
	})
	require.NoError(t, err)

	assert.Equal(t, request.StatusPendingPOC, created.Status())
	assert.Equal(t, f.Employee.ID(), created.EmployeeID())
	assert.Equal(t, f.POC.ID(), created.POCID())
	assert.Equal(t, f.Manager.ID(), created.ManagerID())
	assert.True(t, created.Important())
	assert.Equal(t, created.CreatedAt(), created.UpdatedAt())

	relevant, err := f.Service.RelevantForActor(f.Ctx, f.Employee.ID())
	require.NoError(t, err)
	require.Len(t, relevant, 1)
	assert.Equal(t, created.ID(), relevant[0].ID())
	assert.Equal(t, "Work From Home - Personal Reasons", relevant[0].Title())
	assert.Equal(t, request.TypeWorkFromHome, relevant[0].Type())
}

func TestRequestService_Create_Validation(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	_, err := f.Service.Create(f.Ctx, &request.CreateDTO{
		Type:       "leave",
		Title:      "",
		EmployeeID: f.Employee.ID(),
	})
	require.Error(t, err)
	var fieldErrs serrors.ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "Title")
	assert.Contains(t, fieldErrs, "Description")

	count, err := f.Service.Count(f.Ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "no partial request on validation failure")
}

func TestRequestService_Create_NewestFirst(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	first := createLeaveRequest(t, f)
	second := createLeaveRequest(t, f)

	relevant, err := f.Service.RelevantForActor(f.Ctx, f.Employee.ID())
	require.NoError(t, err)
	require.Len(t, relevant, 2)
	assert.Equal(t, second.ID(), relevant[0].ID())
	assert.Equal(t, first.ID(), relevant[1].ID())
}

func TestRequestService_Create_OrphanedApproverChain(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created, err := f.Service.Create(f.Ctx, &request.CreateDTO{
		Type:        "resource",
		Title:       "New Laptop Request",
		Description: "Current laptop is outdated.",
		EmployeeID:  f.Orphan.ID(),
	})
	require.NoError(t, err, "creation succeeds even without a configured approver chain")
	assert.Equal(t, uuid.Nil, created.POCID())
	assert.Equal(t, uuid.Nil, created.ManagerID())

	// The orphaned request enters nobody's queue.
	queue, err := f.Service.ActionableForActor(f.Ctx, f.POC.ID())
	require.NoError(t, err)
	assert.Empty(t, queue)
}

func TestRequestService_Create_NonEmployeeSubmitter(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	_, err := f.Service.Create(f.Ctx, &request.CreateDTO{
		Type:        "leave",
		Title:       "t",
		Description: "d",
		EmployeeID:  f.POC.ID(),
	})
	assert.Error(t, err)
}

// Scenario: POC approves without remark, then Manager rejects with one.
func TestRequestService_Transition_ApproveThenManagerReject(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created := createLeaveRequest(t, f)

	afterPOC, err := f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: created.ID(),
		Decision:  "approve",
		ActorID:   f.POC.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusPendingManager, afterPOC.Status())
	assert.Empty(t, afterPOC.POCRemark(), "no remark supplied")

	afterManager, err := f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: created.ID(),
		Decision:  "reject",
		Remark:    "budget",
		ActorID:   f.Manager.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejectedByManager, afterManager.Status())
	assert.Equal(t, "budget", afterManager.ManagerRemark())
	assert.Empty(t, afterManager.POCRemark())
}

// Scenario: POC rejection is terminal; the manager cannot act afterwards.
func TestRequestService_Transition_POCRejectIsTerminal(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created := createLeaveRequest(t, f)

	rejected, err := f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: created.ID(),
		Decision:  "reject",
		Remark:    "incomplete",
		ActorID:   f.POC.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejectedByPOC, rejected.Status())
	assert.Equal(t, "incomplete", rejected.POCRemark())

	_, err = f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: created.ID(),
		Decision:  "approve",
		ActorID:   f.Manager.ID(),
	})
	assert.ErrorIs(t, err, request.ErrInvalidTransition)

	// Status unchanged after the failed attempt.
	got, err := f.Service.GetByID(f.Ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, request.StatusRejectedByPOC, got.Status())
}

// Scenario: the manager cannot act before the POC gate.
func TestRequestService_Transition_ManagerBeforePOC(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created := createLeaveRequest(t, f)

	_, err := f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: created.ID(),
		Decision:  "approve",
		ActorID:   f.Manager.ID(),
	})
	assert.ErrorIs(t, err, request.ErrInvalidTransition)
}

// Scenario: employees can never decide, whatever the status.
func TestRequestService_Transition_EmployeeUnauthorized(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created := createLeaveRequest(t, f)

	_, err := f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: created.ID(),
		Decision:  "approve",
		ActorID:   f.Employee.ID(),
	})
	assert.ErrorIs(t, err, request.ErrUnauthorizedRole)

	_, err = f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: created.ID(),
		Decision:  "reject",
		ActorID:   f.Employee2.ID(),
	})
	assert.ErrorIs(t, err, request.ErrUnauthorizedRole)
}

func TestRequestService_Transition_NotFound(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	_, err := f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: uuid.New(),
		Decision:  "approve",
		ActorID:   f.POC.ID(),
	})
	assert.ErrorIs(t, err, request.ErrRequestNotFound)
}

func TestRequestService_Transition_UnassignedApprover(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created := createLeaveRequest(t, f)

	// A POC who is not the one referenced on the request cannot act on it.
	_, err := f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: created.ID(),
		Decision:  "approve",
		ActorID:   f.OtherPOC.ID(),
	})
	assert.ErrorIs(t, err, request.ErrInvalidTransition)

	// The referenced POC still can.
	updated, err := f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: created.ID(),
		Decision:  "approve",
		ActorID:   f.POC.ID(),
	})
	require.NoError(t, err)
	assert.Equal(t, request.StatusPendingManager, updated.Status())
}

func TestRequestService_ActionableQueues(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	created := createLeaveRequest(t, f)

	pocQueue, err := f.Service.ActionableForActor(f.Ctx, f.POC.ID())
	require.NoError(t, err)
	require.Len(t, pocQueue, 1)
	assert.Equal(t, created.ID(), pocQueue[0].ID())

	managerQueue, err := f.Service.ActionableForActor(f.Ctx, f.Manager.ID())
	require.NoError(t, err)
	assert.Empty(t, managerQueue)

	employeeQueue, err := f.Service.ActionableForActor(f.Ctx, f.Employee.ID())
	require.NoError(t, err)
	assert.Empty(t, employeeQueue)

	_, err = f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: created.ID(),
		Decision:  "approve",
		ActorID:   f.POC.ID(),
	})
	require.NoError(t, err)

	pocQueue, err = f.Service.ActionableForActor(f.Ctx, f.POC.ID())
	require.NoError(t, err)
	assert.Empty(t, pocQueue)

	managerQueue, err = f.Service.ActionableForActor(f.Ctx, f.Manager.ID())
	require.NoError(t, err)
	require.Len(t, managerQueue, 1)
}

func TestRequestService_StatsForActor(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	first, err := f.Service.Create(f.Ctx, &request.CreateDTO{
		Type:        "leave",
		Title:       "Leave",
		Description: "d",
		Important:   true,
		EmployeeID:  f.Employee.ID(),
	})
	require.NoError(t, err)
	second := createLeaveRequest(t, f)

	_, err = f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: first.ID(),
		Decision:  "approve",
		ActorID:   f.POC.ID(),
	})
	require.NoError(t, err)
	_, err = f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: first.ID(),
		Decision:  "approve",
		ActorID:   f.Manager.ID(),
	})
	require.NoError(t, err)
	_, err = f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: second.ID(),
		Decision:  "reject",
		ActorID:   f.POC.ID(),
	})
	require.NoError(t, err)

	employeeStats, err := f.Service.StatsForActor(f.Ctx, f.Employee.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, employeeStats.Total)
	assert.Equal(t, 0, employeeStats.Pending)
	assert.Equal(t, 1, employeeStats.Approved)
	assert.Equal(t, 1, employeeStats.Rejected)
	assert.Equal(t, 1, employeeStats.Important)

	pocStats, err := f.Service.StatsForActor(f.Ctx, f.POC.ID())
	require.NoError(t, err)
	assert.Equal(t, 2, pocStats.Total)
	assert.Equal(t, 0, pocStats.Pending)
}

func TestRequestService_StatusClosure(t *testing.T) {
	t.Parallel()
	f := setupTest(t)

	first := createLeaveRequest(t, f)
	_, err := f.Service.Transition(f.Ctx, &request.DecideDTO{
		RequestID: first.ID(),
		Decision:  "approve",
		ActorID:   f.POC.ID(),
	})
	require.NoError(t, err)

	all, err := f.Service.RelevantForActor(f.Ctx, f.Employee.ID())
	require.NoError(t, err)
	for _, r := range all {
		assert.True(t, r.Status().IsValid(), "status %q outside the closed set", r.Status())
	}
}
