package mappers

import (
	"github.com/flowgate/flowgate/modules/approvals/domain/aggregates/request"
	"github.com/flowgate/flowgate/modules/approvals/presentation/viewmodels"
)

// ProjectStages maps a request status onto the three-step tracker.
// The employee step completes at submission, so it is never pending.
func ProjectStages(status request.Status) viewmodels.Progress {
	switch status {
	case request.StatusPendingPOC:
		return viewmodels.Progress{
			Employee: viewmodels.StageComplete,
			POC:      viewmodels.StageActive,
			Manager:  viewmodels.StagePending,
		}
	case request.StatusPendingManager:
		return viewmodels.Progress{
			Employee: viewmodels.StageComplete,
			POC:      viewmodels.StageComplete,
			Manager:  viewmodels.StageActive,
		}
	case request.StatusApproved:
		return viewmodels.Progress{
			Employee: viewmodels.StageComplete,
			POC:      viewmodels.StageComplete,
			Manager:  viewmodels.StageComplete,
		}
	case request.StatusRejectedByPOC:
		return viewmodels.Progress{
			Employee: viewmodels.StageComplete,
			POC:      viewmodels.StageRejected,
			Manager:  viewmodels.StagePending,
		}
	case request.StatusRejectedByManager:
		return viewmodels.Progress{
			Employee: viewmodels.StageComplete,
			POC:      viewmodels.StageComplete,
			Manager:  viewmodels.StageRejected,
		}
	default:
		return viewmodels.Progress{
			Employee: viewmodels.StageComplete,
			POC:      viewmodels.StagePending,
			Manager:  viewmodels.StagePending,
		}
	}
}
