package actor

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrActorNotFound = errors.New("actor not found")
)

type Role string

const (
	RoleEmployee Role = "employee"
	RolePOC      Role = "poc"
	RoleManager  Role = "manager"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RolePOC, RoleManager:
		return true
	}
	return false
}

// Directory is the identity provider consumed by the approvals module.
// Entries are immutable for the lifetime of the process; the module
// never writes to it.
type Directory interface {
	ResolveActor(ctx context.Context, id uuid.UUID) (Actor, error)
	All(ctx context.Context) ([]Actor, error)
}

type Actor struct {
	id           uuid.UUID
	employeeCode string
	email        string
	name         string
	role         Role
	department   string
	pocID        uuid.UUID
	managerID    uuid.UUID
}

func New(id uuid.UUID, employeeCode, email, name string, role Role, department string, opts ...Option) Actor {
	a := Actor{
		id:           id,
		employeeCode: strings.TrimSpace(employeeCode),
		email:        strings.TrimSpace(email),
		name:         strings.TrimSpace(name),
		role:         role,
		department:   strings.TrimSpace(department),
	}
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

type Option func(*Actor)

// WithPOC sets the designated first-stage approver for an employee.
func WithPOC(id uuid.UUID) Option {
	return func(a *Actor) {
		a.pocID = id
	}
}

// WithManager sets the designated second-stage approver for an employee.
func WithManager(id uuid.UUID) Option {
	return func(a *Actor) {
		a.managerID = id
	}
}

func (a Actor) ID() uuid.UUID         { return a.id }
func (a Actor) EmployeeCode() string  { return a.employeeCode }
func (a Actor) Email() string         { return a.email }
func (a Actor) Name() string          { return a.name }
func (a Actor) Role() Role            { return a.role }
func (a Actor) Department() string    { return a.department }
func (a Actor) POCID() uuid.UUID      { return a.pocID }
func (a Actor) ManagerID() uuid.UUID  { return a.managerID }
func (a Actor) IsZero() bool          { return a.id == uuid.Nil }
