package mappers

import (
	"time"

	"github.com/google/uuid"

	"github.com/flowgate/flowgate/modules/approvals/domain/aggregates/request"
	"github.com/flowgate/flowgate/modules/approvals/presentation/viewmodels"
)

func RequestToListItem(r request.Request) viewmodels.RequestListItem {
	return viewmodels.RequestListItem{
		ID:            r.ID().String(),
		Type:          string(r.Type()),
		Title:         r.Title(),
		Description:   r.Description(),
		EmployeeID:    r.EmployeeID().String(),
		EmployeeName:  r.EmployeeName(),
		POCID:         uuidOrEmpty(r.POCID()),
		ManagerID:     uuidOrEmpty(r.ManagerID()),
		Status:        string(r.Status()),
		Important:     r.Important(),
		CreatedAt:     r.CreatedAt().Format(time.RFC3339),
		UpdatedAt:     r.UpdatedAt().Format(time.RFC3339),
		POCRemark:     r.POCRemark(),
		ManagerRemark: r.ManagerRemark(),
		StartDate:     r.StartDate(),
		EndDate:       r.EndDate(),
		Progress:      ProjectStages(r.Status()),
	}
}

func RequestsToListItems(rs []request.Request) []viewmodels.RequestListItem {
	out := make([]viewmodels.RequestListItem, 0, len(rs))
	for _, r := range rs {
		out = append(out, RequestToListItem(r))
	}
	return out
}

func uuidOrEmpty(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
