package persistence_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flowgate/flowgate/modules/approvals/domain/aggregates/request"
	"github.com/flowgate/flowgate/modules/approvals/infrastructure/persistence"
)

func newLeaveRequest(t *testing.T, title string) request.Request {
	t.Helper()
	r, err := request.New(request.TypeLeave, title, "some description", uuid.New(), "Test Employee")
	require.NoError(t, err)
	return r
}

func TestInmemRequestRepository_CreatePrepends(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := persistence.NewInmemRequestRepository()

	first := newLeaveRequest(t, "first")
	second := newLeaveRequest(t, "second")

	_, err := repo.Create(ctx, first)
	require.NoError(t, err)
	_, err = repo.Create(ctx, second)
	require.NoError(t, err)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Title(), "newest first")
	assert.Equal(t, "first", all[1].Title())

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestInmemRequestRepository_GetByID(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := persistence.NewInmemRequestRepository()

	r := newLeaveRequest(t, "lookup")
	_, err := repo.Create(ctx, r)
	require.NoError(t, err)

	got, err := repo.GetByID(ctx, r.ID())
	require.NoError(t, err)
	assert.Equal(t, r.ID(), got.ID())

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, request.ErrRequestNotFound)
}

func TestInmemRequestRepository_UpdateKeepsOrder(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := persistence.NewInmemRequestRepository()

	older := newLeaveRequest(t, "older")
	newer := newLeaveRequest(t, "newer")
	_, err := repo.Create(ctx, older)
	require.NoError(t, err)
	_, err = repo.Create(ctx, newer)
	require.NoError(t, err)

	transitioned := older.WithDecision(request.StatusPendingManager, false, "", older.UpdatedAt())
	_, err = repo.Update(ctx, transitioned)
	require.NoError(t, err)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "newer", all[0].Title(), "transition must not reorder")
	assert.Equal(t, request.StatusPendingManager, all[1].Status())

	missing := newLeaveRequest(t, "missing")
	_, err = repo.Update(ctx, missing)
	assert.ErrorIs(t, err, request.ErrRequestNotFound)
}

func TestInmemRequestRepository_Find(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := persistence.NewInmemRequestRepository()

	leave := newLeaveRequest(t, "leave")
	wfh, err := request.New(request.TypeWorkFromHome, "wfh", "remote week", uuid.New(), "Test Employee")
	require.NoError(t, err)

	_, err = repo.Create(ctx, leave)
	require.NoError(t, err)
	_, err = repo.Create(ctx, wfh)
	require.NoError(t, err)

	byType, err := repo.Find(ctx, &request.FindParams{Types: []request.Type{request.TypeLeave}})
	require.NoError(t, err)
	require.Len(t, byType, 1)
	assert.Equal(t, "leave", byType[0].Title())

	byStatus, err := repo.Find(ctx, &request.FindParams{Statuses: []request.Status{request.StatusApproved}})
	require.NoError(t, err)
	assert.Empty(t, byStatus)
}
