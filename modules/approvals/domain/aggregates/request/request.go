package request

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound = errors.New("request not found")
	ErrEmptyTitle      = errors.New("empty title")
	ErrEmptyBody       = errors.New("empty description")
	ErrInvalidType     = errors.New("invalid request type")
)

type Type string

const (
	TypeWorkFromHome Type = "wfh"
	TypeLeave        Type = "leave"
	TypeShiftChange  Type = "shift"
	TypeResource     Type = "resource"
)

func (t Type) IsValid() bool {
	switch t {
	case TypeWorkFromHome, TypeLeave, TypeShiftChange, TypeResource:
		return true
	}
	return false
}

type Status string

const (
	StatusPendingPOC        Status = "pending_poc"
	StatusPendingManager    Status = "pending_manager"
	StatusApproved          Status = "approved"
	StatusRejectedByPOC     Status = "rejected_by_poc"
	StatusRejectedByManager Status = "rejected_by_manager"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPOC, StatusPendingManager, StatusApproved, StatusRejectedByPOC, StatusRejectedByManager:
		return true
	}
	return false
}

// IsTerminal reports whether no further decision can change the status.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejectedByPOC, StatusRejectedByManager:
		return true
	}
	return false
}

type Request interface {
	ID() uuid.UUID
	Type() Type
	Title() string
	Description() string
	EmployeeID() uuid.UUID
	EmployeeName() string
	POCID() uuid.UUID
	ManagerID() uuid.UUID
	Status() Status
	Important() bool
	CreatedAt() time.Time
	UpdatedAt() time.Time
	POCRemark() string
	ManagerRemark() string
	StartDate() string
	EndDate() string

	// WithDecision returns a copy with the transition applied. Remark
	// lands on the deciding role's field and is never overwritten once
	// set; the other role's remark is untouched.
	WithDecision(next Status, byManager bool, remark string, at time.Time) Request
}

type requestImpl struct {
	id            uuid.UUID
	reqType       Type
	title         string
	description   string
	employeeID    uuid.UUID
	employeeName  string
	pocID         uuid.UUID
	managerID     uuid.UUID
	status        Status
	important     bool
	createdAt     time.Time
	updatedAt     time.Time
	pocRemark     string
	managerRemark string
	startDate     string
	endDate       string
}

// New creates a request in the initial pending_poc status. Title and
// description must be non-empty; the type must be from the closed set.
func New(reqType Type, title, description string, employeeID uuid.UUID, employeeName string, opts ...Option) (Request, error) {
	if !reqType.IsValid() {
		return nil, ErrInvalidType
	}
	if strings.TrimSpace(title) == "" {
		return nil, ErrEmptyTitle
	}
	if strings.TrimSpace(description) == "" {
		return nil, ErrEmptyBody
	}

	now := time.Now()
	r := &requestImpl{
		id:           uuid.New(),
		reqType:      reqType,
		title:        strings.TrimSpace(title),
		description:  strings.TrimSpace(description),
		employeeID:   employeeID,
		employeeName: strings.TrimSpace(employeeName),
		status:       StatusPendingPOC,
		createdAt:    now,
		updatedAt:    now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

type Option func(*requestImpl)

func WithID(id uuid.UUID) Option {
	return func(r *requestImpl) {
		if id != uuid.Nil {
			r.id = id
		}
	}
}

// WithApprovers captures the submitter's POC and Manager references at
// creation time. They never change afterwards, even if the directory does.
func WithApprovers(pocID, managerID uuid.UUID) Option {
	return func(r *requestImpl) {
		r.pocID = pocID
		r.managerID = managerID
	}
}

func WithImportant(important bool) Option {
	return func(r *requestImpl) {
		r.important = important
	}
}

func WithDates(startDate, endDate string) Option {
	return func(r *requestImpl) {
		r.startDate = strings.TrimSpace(startDate)
		r.endDate = strings.TrimSpace(endDate)
	}
}

func WithTimestamps(createdAt, updatedAt time.Time) Option {
	return func(r *requestImpl) {
		if !createdAt.IsZero() {
			r.createdAt = createdAt
		}
		if !updatedAt.IsZero() {
			r.updatedAt = updatedAt
		}
	}
}

// Hydrate rebuilds a request in an arbitrary state, remarks included.
// Used by seeders; create paths go through New.
func Hydrate(
	id uuid.UUID,
	reqType Type,
	title, description string,
	employeeID uuid.UUID,
	employeeName string,
	pocID, managerID uuid.UUID,
	status Status,
	important bool,
	createdAt, updatedAt time.Time,
	pocRemark, managerRemark string,
	startDate, endDate string,
) Request {
	return &requestImpl{
		id:            id,
		reqType:       reqType,
		title:         title,
		description:   description,
		employeeID:    employeeID,
		employeeName:  employeeName,
		pocID:         pocID,
		managerID:     managerID,
		status:        status,
		important:     important,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		pocRemark:     pocRemark,
		managerRemark: managerRemark,
		startDate:     startDate,
		endDate:       endDate,
	}
}

func (r *requestImpl) ID() uuid.UUID        { return r.id }
func (r *requestImpl) Type() Type           { return r.reqType }
func (r *requestImpl) Title() string        { return r.title }
func (r *requestImpl) Description() string  { return r.description }
func (r *requestImpl) EmployeeID() uuid.UUID {
	return r.employeeID
}
func (r *requestImpl) EmployeeName() string  { return r.employeeName }
func (r *requestImpl) POCID() uuid.UUID      { return r.pocID }
func (r *requestImpl) ManagerID() uuid.UUID  { return r.managerID }
func (r *requestImpl) Status() Status        { return r.status }
func (r *requestImpl) Important() bool       { return r.important }
func (r *requestImpl) CreatedAt() time.Time  { return r.createdAt }
func (r *requestImpl) UpdatedAt() time.Time  { return r.updatedAt }
func (r *requestImpl) POCRemark() string     { return r.pocRemark }
func (r *requestImpl) ManagerRemark() string { return r.managerRemark }
func (r *requestImpl) StartDate() string     { return r.startDate }
func (r *requestImpl) EndDate() string       { return r.endDate }

func (r *requestImpl) WithDecision(next Status, byManager bool, remark string, at time.Time) Request {
	updated := *r
	updated.status = next
	updated.updatedAt = at
	if remark != "" {
		if byManager {
			if updated.managerRemark == "" {
				updated.managerRemark = remark
			}
		} else {
			if updated.pocRemark == "" {
				updated.pocRemark = remark
			}
		}
	}
	return &updated
}
