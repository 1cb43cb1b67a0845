package request

import (
	"errors"

	"github.com/flowgate/flowgate/modules/approvals/domain/entities/actor"
)

var (
	ErrInvalidTransition = errors.New("invalid transition")
	ErrUnauthorizedRole  = errors.New("role cannot decide on requests")
)

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func (d Decision) IsValid() bool {
	return d == DecisionApprove || d == DecisionReject
}

// NextStatus is the single source of truth for the two-gate approval
// chain: POC decides on pending_poc, Manager decides on pending_manager,
// everything else fails. Terminal statuses never transition again.
func NextStatus(current Status, role actor.Role, d Decision) (Status, error) {
	if role == actor.RoleEmployee {
		return "", ErrUnauthorizedRole
	}
	if !d.IsValid() {
		return "", ErrInvalidTransition
	}

	switch {
	case current == StatusPendingPOC && role == actor.RolePOC:
		if d == DecisionApprove {
			return StatusPendingManager, nil
		}
		return StatusRejectedByPOC, nil
	case current == StatusPendingManager && role == actor.RoleManager:
		if d == DecisionApprove {
			return StatusApproved, nil
		}
		return StatusRejectedByManager, nil
	}
	return "", ErrInvalidTransition
}

// Relevant returns the requests the actor may see: their own submissions
// for employees, assigned items for approvers. Unknown roles see nothing.
func Relevant(all []Request, a actor.Actor) []Request {
	out := make([]Request, 0, len(all))
	for _, r := range all {
		switch a.Role() {
		case actor.RoleEmployee:
			if r.EmployeeID() == a.ID() {
				out = append(out, r)
			}
		case actor.RolePOC:
			if r.POCID() == a.ID() {
				out = append(out, r)
			}
		case actor.RoleManager:
			if r.ManagerID() == a.ID() {
				out = append(out, r)
			}
		}
	}
	return out
}

// Actionable returns the approval queue for the actor: requests assigned
// to them that currently sit at their gate. Employees never act.
func Actionable(all []Request, a actor.Actor) []Request {
	out := make([]Request, 0, len(all))
	for _, r := range all {
		switch a.Role() {
		case actor.RolePOC:
			if r.POCID() == a.ID() && r.Status() == StatusPendingPOC {
				out = append(out, r)
			}
		case actor.RoleManager:
			if r.ManagerID() == a.ID() && r.Status() == StatusPendingManager {
				out = append(out, r)
			}
		}
	}
	return out
}
