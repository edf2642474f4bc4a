package facility

import (
	"errors"
	"strings"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

var ErrOilMillIsNotConstructed = errors.New("OilMill must be created via NewOilMill constructor")

// OilMill is a mill managed by one mill-manager actor.
type OilMill struct {
	id          kernel.ID
	name        string
	managerID   kernel.UUID
	hasLab      bool
	hasPackUnit bool

	isConstructed bool
}

// NewOilMill registers a mill for managerID.
func NewOilMill(name string, managerID kernel.UUID, hasLab bool, hasPackUnit bool) (*OilMill, error) {
	m := &OilMill{
		hasLab:        hasLab,
		hasPackUnit:   hasPackUnit,
		isConstructed: true,
	}
	if err := errors.Join(m.setName(name), m.setManagerID(managerID)); err != nil {
		return nil, err
	}
	return m, nil
}

// RestoreOilMill rebuilds a persisted mill.
func RestoreOilMill(id kernel.ID, name string, managerID kernel.UUID, hasLab bool, hasPackUnit bool) (*OilMill, error) {
	m, err := NewOilMill(name, managerID, hasLab, hasPackUnit)
	if err != nil {
		return nil, err
	}
	if err = m.AssignID(id); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *OilMill) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrOilMillIsNotConstructed
	}
	return nil
}

// AssignID records the identity given by storage.
func (m *OilMill) AssignID(id kernel.ID) error {
	if !m.id.IsZero() {
		return errs.NewConflictError("oil mill", kernel.ErrIdentityAlreadyAssigned)
	}
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *OilMill) ID() kernel.ID {
	return m.id
}

func (m *OilMill) Name() string {
	return m.name
}

func (m *OilMill) ManagerID() kernel.UUID {
	return m.managerID
}

func (m *OilMill) HasLab() bool {
	return m.hasLab
}

func (m *OilMill) HasPackUnit() bool {
	return m.hasPackUnit
}

// Party returns the mill as a trading party.
func (m *OilMill) Party() (kernel.Party, error) {
	return kernel.NewMill(m.id)
}

// IsManagedBy reports whether actorID runs this mill.
func (m *OilMill) IsManagedBy(actorID kernel.UUID) bool {
	return m.managerID.IsEqual(actorID)
}

func (m *OilMill) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	m.name = name
	return nil
}

func (m *OilMill) setManagerID(managerID kernel.UUID) error {
	if err := managerID.Validate(); err != nil {
		return err
	}
	m.managerID = managerID
	return nil
}
