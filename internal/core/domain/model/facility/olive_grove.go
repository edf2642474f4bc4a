package facility

import (
	"errors"
	"strings"

	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/pkg/errs"
)

var ErrOliveGroveIsNotConstructed = errors.New("OliveGrove must be created via NewOliveGrove constructor")

// OliveGrove is a parcel owned by a farmer; its harvests inherit that owner.
type OliveGrove struct {
	id       kernel.ID
	name     string
	farmerID kernel.UUID
	variety  string

	isConstructed bool
}

func NewOliveGrove(name string, farmerID kernel.UUID, variety string) (*OliveGrove, error) {
	g := &OliveGrove{
		variety:       variety,
		isConstructed: true,
	}
	if err := errors.Join(g.setName(name), g.setFarmerID(farmerID)); err != nil {
		return nil, err
	}
	return g, nil
}

func RestoreOliveGrove(id kernel.ID, name string, farmerID kernel.UUID, variety string) (*OliveGrove, error) {
	g, err := NewOliveGrove(name, farmerID, variety)
	if err != nil {
		return nil, err
	}
	if err = g.AssignID(id); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *OliveGrove) Validate() error {
	if g == nil || !g.isConstructed {
		return ErrOliveGroveIsNotConstructed
	}
	return nil
}

func (g *OliveGrove) AssignID(id kernel.ID) error {
	if !g.id.IsZero() {
		return errs.NewConflictError("olive grove", kernel.ErrIdentityAlreadyAssigned)
	}
	if err := id.Validate(); err != nil {
		return err
	}
	g.id = id
	return nil
}

func (g *OliveGrove) ID() kernel.ID {
	return g.id
}

func (g *OliveGrove) Name() string {
	return g.name
}

func (g *OliveGrove) FarmerID() kernel.UUID {
	return g.farmerID
}

func (g *OliveGrove) Variety() string {
	return g.variety
}

// Farmer returns the owner of the grove as a trading party.
func (g *OliveGrove) Farmer() (kernel.Party, error) {
	return kernel.NewFarmer(g.farmerID)
}

func (g *OliveGrove) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	g.name = name
	return nil
}

func (g *OliveGrove) setFarmerID(farmerID kernel.UUID) error {
	if err := farmerID.Validate(); err != nil {
		return err
	}
	g.farmerID = farmerID
	return nil
}
