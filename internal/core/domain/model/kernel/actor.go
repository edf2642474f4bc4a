package kernel

import (
	"errors"
	"fmt"

	"oliveflow/internal/pkg/errs"
)

// Role is the tag distinguishing the kinds of actor sharing one identity record.
type Role int

const (
	UnknownRole Role = iota
	FarmerRole
	ConsumerRole
	MillManagerRole
	AdministratorRole
	VisitorRole
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		UnknownRole:       "unknown",
		FarmerRole:        "farmer",
		ConsumerRole:      "consumer",
		MillManagerRole:   "mill manager",
		AdministratorRole: "administrator",
		VisitorRole:       "visitor",
	}
}

// ParseRole maps the role name carried by the identity collaborator.
func ParseRole(s string) (Role, error) {
	for r, str := range getRoleStrings() {
		if r != UnknownRole && str == s {
			return r, nil
		}
	}
	return UnknownRole, errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%q is not a valid role", s))
}

func (r Role) Validate() error {
	if r <= UnknownRole || r > VisitorRole {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

var ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

// Actor is the authenticated caller of an operation: who, and in which role.
type Actor struct {
	id    UUID
	role  Role
	valid bool
}

func NewActor(id UUID, role Role) (Actor, error) {
	if err := errors.Join(id.Validate(), role.Validate()); err != nil {
		return Actor{}, err
	}
	return Actor{id: id, role: role, valid: true}, nil
}

func (a Actor) Validate() error {
	if !a.valid {
		return ErrActorIsNotConstructed
	}
	return nil
}

func (a Actor) ID() UUID {
	return a.id
}

func (a Actor) Role() Role {
	return a.role
}

func (a Actor) Is(role Role) bool {
	return a.role == role
}

// RequireRole returns a PermissionDeniedError unless the actor holds one of roles.
func (a Actor) RequireRole(action string, roles ...Role) error {
	if err := a.Validate(); err != nil {
		return err
	}
	for _, r := range roles {
		if a.role == r {
			return nil
		}
	}
	return errs.NewPermissionDeniedError(action, fmt.Sprintf("%s %s", a.role, a.id))
}

func (a Actor) String() string {
	return fmt.Sprintf("%s %s", a.role, a.id)
}
