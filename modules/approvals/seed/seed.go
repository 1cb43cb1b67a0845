// Package seed loads the demo directory and a handful of requests in
// various workflow stages so a fresh instance is immediately usable.
package seed

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/flowgate/flowgate/modules/approvals/domain/aggregates/request"
	"github.com/flowgate/flowgate/modules/approvals/domain/entities/actor"
)

// Stable ids keep seeded data addressable across restarts.
var (
	JohnDoeID     = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	JaneSmithID   = uuid.MustParse("00000000-0000-0000-0000-000000000002")
	MikeJohnsonID = uuid.MustParse("00000000-0000-0000-0000-000000000003")
	SarahWilsonID = uuid.MustParse("00000000-0000-0000-0000-000000000004")
)

// Actors returns the demo directory: two employees reporting to one
// point of contact and one manager.
func Actors() []actor.Actor {
	return []actor.Actor{
		actor.New(JohnDoeID, "EMP001", "john.doe@company.com", "John Doe", actor.RoleEmployee, "Engineering",
			actor.WithPOC(JaneSmithID), actor.WithManager(MikeJohnsonID)),
		actor.New(JaneSmithID, "POC001", "jane.smith@company.com", "Jane Smith", actor.RolePOC, "Engineering",
			actor.WithManager(MikeJohnsonID)),
		actor.New(MikeJohnsonID, "MGR001", "mike.johnson@company.com", "Mike Johnson", actor.RoleManager, "Engineering"),
		actor.New(SarahWilsonID, "EMP002", "sarah.wilson@company.com", "Sarah Wilson", actor.RoleEmployee, "Design",
			actor.WithPOC(JaneSmithID), actor.WithManager(MikeJohnsonID)),
	}
}

// Requests writes one request per workflow stage into the repository.
// Entries are created oldest first so the newest-first ordering of the
// store matches the timestamps.
func Requests(ctx context.Context, repo request.Repository) error {
	seeded := []request.Request{
		request.Hydrate(
			uuid.MustParse("00000000-0000-0000-0000-000000000104"),
			request.TypeResource,
			"New Laptop Request",
			"Current laptop is outdated and affecting productivity. Requesting upgrade.",
			SarahWilsonID, "Sarah Wilson",
			JaneSmithID, MikeJohnsonID,
			request.StatusRejectedByPOC,
			true,
			mustTime("2024-01-03T08:00:00Z"), mustTime("2024-01-04T09:30:00Z"),
			"Laptop upgrade cycle starts next quarter. Please resubmit then.", "",
			"", "",
		),
		request.Hydrate(
			uuid.MustParse("00000000-0000-0000-0000-000000000103"),
			request.TypeShiftChange,
			"Shift Change Request",
			"Requesting shift change from morning to evening for better productivity.",
			JohnDoeID, "John Doe",
			JaneSmithID, MikeJohnsonID,
			request.StatusApproved,
			false,
			mustTime("2024-01-05T11:00:00Z"), mustTime("2024-01-07T16:00:00Z"),
			"No concerns from team perspective.", "Approved. Effective from next month.",
			"", "",
		),
		request.Hydrate(
			uuid.MustParse("00000000-0000-0000-0000-000000000102"),
			request.TypeLeave,
			"Annual Leave Request",
			"Planning family vacation for 5 days.",
			SarahWilsonID, "Sarah Wilson",
			JaneSmithID, MikeJohnsonID,
			request.StatusPendingManager,
			false,
			mustTime("2024-01-08T14:30:00Z"), mustTime("2024-01-09T10:00:00Z"),
			"Approved. Work handover completed.", "",
			"2024-01-22", "2024-01-26",
		),
		request.Hydrate(
			uuid.MustParse("00000000-0000-0000-0000-000000000101"),
			request.TypeWorkFromHome,
			"Work From Home - Personal Reasons",
			"Requesting WFH for next week due to home renovation work.",
			JohnDoeID, "John Doe",
			JaneSmithID, MikeJohnsonID,
			request.StatusPendingPOC,
			true,
			mustTime("2024-01-10T09:00:00Z"), mustTime("2024-01-10T09:00:00Z"),
			"", "",
			"2024-01-15", "2024-01-19",
		),
	}

	for _, r := range seeded {
		if _, err := repo.Create(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

func mustTime(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}
