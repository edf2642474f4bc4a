package facility

import (
	"errors"
	"fmt"
	"strings"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

var ErrStorageAreaIsNotConstructed = errors.New("StorageArea must be created via NewStorageArea constructor")

// Coordinates locate a storage area in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

func (c Coordinates) Validate() error {
	var err error
	if c.Latitude < -90 || c.Latitude > 90 {
		err = errs.NewValueIsOutOfRangeError("latitude", c.Latitude, -90, 90)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		err = errors.Join(err, errs.NewValueIsOutOfRangeError("longitude", c.Longitude, -180, 180))
	}
	return err
}

// StorageArea is a place where oil is kept in containers. It is owned by
// either a mill or a farmer, never both.
type StorageArea struct {
	id             kernel.ID
	owner          kernel.Party
	localType      string
	address        string
	location       *Coordinates
	containerType  string
	containerCount int

	isConstructed bool
}

type StorageAreaState struct {
	ID             kernel.ID
	Owner          kernel.Party
	LocalType      string
	Address        string
	Location       *Coordinates
	ContainerType  string
	ContainerCount int
}

// NewStorageArea registers an area owned by owner, which must be a mill or
// a farmer.
func NewStorageArea(
	owner kernel.Party,
	localType string,
	address string,
	location *Coordinates,
	containerType string,
	containerCount int,
) (*StorageArea, error) {
	if err := owner.Validate(); err != nil {
		return nil, err
	}
	if owner.Kind() != kernel.MillParty && owner.Kind() != kernel.FarmerParty {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"storage area owner", fmt.Errorf("a %s cannot own a storage area", owner.Kind()))
	}

	a := &StorageArea{
		owner:         owner,
		isConstructed: true,
	}

	err := errors.Join(
		required("local type", localType, &a.localType),
		required("address", address, &a.address),
		required("container type", containerType, &a.containerType),
	)
	if containerCount <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidErrorWithCause(
			"container count", fmt.Errorf("%d is not positive", containerCount)))
	}
	if location != nil {
		err = errors.Join(err, location.Validate())
	}
	if err != nil {
		return nil, err
	}

	if location != nil {
		l := *location
		a.location = &l
	}
	a.containerCount = containerCount
	return a, nil
}

func RestoreStorageArea(s StorageAreaState) (*StorageArea, error) {
	a, err := NewStorageArea(s.Owner, s.LocalType, s.Address, s.Location, s.ContainerType, s.ContainerCount)
	if err != nil {
		return nil, err
	}
	if err = a.AssignID(s.ID); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *StorageArea) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrStorageAreaIsNotConstructed
	}
	return nil
}

func (a *StorageArea) AssignID(id kernel.ID) error {
	if !a.id.IsZero() {
		return errs.NewConflictError("storage area", kernel.ErrIdentityAlreadyAssigned)
	}
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *StorageArea) ID() kernel.ID         { return a.id }
func (a *StorageArea) Owner() kernel.Party   { return a.owner }
func (a *StorageArea) LocalType() string     { return a.localType }
func (a *StorageArea) Address() string       { return a.address }
func (a *StorageArea) ContainerType() string { return a.containerType }
func (a *StorageArea) ContainerCount() int   { return a.containerCount }

// Location is nil when the area was registered without coordinates.
func (a *StorageArea) Location() *Coordinates {
	if a.location == nil {
		return nil
	}
	l := *a.location
	return &l
}

func (a *StorageArea) IsOwnedBy(party kernel.Party) bool {
	return a.owner.IsEqual(party)
}

func required(name, value string, dst *string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(name)
	}
	*dst = strings.TrimSpace(value)
	return nil
}
