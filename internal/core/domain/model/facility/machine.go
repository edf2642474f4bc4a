package facility

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

var ErrMachineIsNotConstructed = errors.New("Machine must be created via NewMachine constructor")

// MachineType is the extraction process a machine runs.
type MachineType int

const (
	UnknownMachineType MachineType = iota
	Traditional
	SuperPress
	ContinuousOnePhase
	ContinuousTwoPhases
)

func getMachineTypeStrings() map[MachineType]string {
	return map[MachineType]string{
		UnknownMachineType:  "unknown",
		Traditional:         "traditional",
		SuperPress:          "super press",
		ContinuousOnePhase:  "continuous one phase",
		ContinuousTwoPhases: "continuous two phases",
	}
}

func ParseMachineType(s string) (MachineType, error) {
	for t, str := range getMachineTypeStrings() {
		if t != UnknownMachineType && str == s {
			return t, nil
		}
	}
	return UnknownMachineType, errs.NewValueIsInvalidErrorWithCause("machine type", fmt.Errorf("%q is not a machine type", s))
}

func (t MachineType) Validate() error {
	if t <= UnknownMachineType || t > ContinuousTwoPhases {
		return errs.NewValueIsInvalidErrorWithCause("machine type", fmt.Errorf("%d is not a machine type", t))
	}
	return nil
}

func (t MachineType) String() string {
	if s, ok := getMachineTypeStrings()[t]; ok {
		return s
	}
	return "unknown"
}

// Machine is a press or decanter installed at a mill. Capacity is in
// kilograms of olives per hour.
type Machine struct {
	id           kernel.ID
	millID       kernel.ID
	reference    string
	brand        string
	manufacturer string
	purchaseDate time.Time
	capacity     int
	machineType  MachineType

	isConstructed bool
}

type MachineState struct {
	ID           kernel.ID
	MillID       kernel.ID
	Reference    string
	Brand        string
	Manufacturer string
	PurchaseDate time.Time
	Capacity     int
	Type         MachineType
}

// NewMachine registers a machine at the mill millID.
func NewMachine(
	millID kernel.ID,
	reference string,
	brand string,
	manufacturer string,
	purchaseDate time.Time,
	capacity int,
	machineType MachineType,
) (*Machine, error) {
	m := &Machine{
		brand:         strings.TrimSpace(brand),
		manufacturer:  strings.TrimSpace(manufacturer),
		isConstructed: true,
	}

	err := errors.Join(millID.Validate(), machineType.Validate(), m.setReference(reference))
	if purchaseDate.IsZero() {
		err = errors.Join(err, errs.NewValueIsRequiredError("purchase date"))
	}
	if capacity <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause("capacity", fmt.Errorf("%d kg/h is not positive", capacity)))
	}
	if err != nil {
		return nil, err
	}

	m.millID = millID
	m.purchaseDate = purchaseDate
	m.capacity = capacity
	m.machineType = machineType
	return m, nil
}

func RestoreMachine(s MachineState) (*Machine, error) {
	m, err := NewMachine(s.MillID, s.Reference, s.Brand, s.Manufacturer, s.PurchaseDate, s.Capacity, s.Type)
	if err != nil {
		return nil, err
	}
	if err = m.AssignID(s.ID); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Machine) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMachineIsNotConstructed
	}
	return nil
}

func (m *Machine) AssignID(id kernel.ID) error {
	if !m.id.IsZero() {
		return errs.NewConflictError("machine", kernel.ErrIdentityAlreadyAssigned)
	}
	if err := id.Validate(); err != nil {
		return err
	}
	m.id = id
	return nil
}

func (m *Machine) ID() kernel.ID           { return m.id }
func (m *Machine) MillID() kernel.ID       { return m.millID }
func (m *Machine) Reference() string       { return m.reference }
func (m *Machine) Brand() string           { return m.brand }
func (m *Machine) Manufacturer() string    { return m.manufacturer }
func (m *Machine) PurchaseDate() time.Time { return m.purchaseDate }
func (m *Machine) Capacity() int           { return m.capacity }
func (m *Machine) Type() MachineType       { return m.machineType }

// IsInstalledAt reports whether the machine belongs to mill.
func (m *Machine) IsInstalledAt(mill *OilMill) bool {
	return mill != nil && m.millID == mill.ID()
}

func (m *Machine) setReference(reference string) error {
	if strings.TrimSpace(reference) == "" {
		return errs.NewValueIsRequiredError("machine reference")
	}
	m.reference = strings.TrimSpace(reference)
	return nil
}
