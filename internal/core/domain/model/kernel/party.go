package kernel

import (
	"errors"
	"fmt"

	"oliveflow/internal/pkg/errs"
)

// PartyKind is the category of a trading party. It doubles as the declared
// owner category of an oil product.
type PartyKind int

const (
	UnknownParty PartyKind = iota
	MillParty
	FarmerParty
	ConsumerParty
)

func getPartyKindStrings() map[PartyKind]string {
	return map[PartyKind]string{
		UnknownParty:  "Unknown",
		MillParty:     "Mill",
		FarmerParty:   "Farmer",
		ConsumerParty: "Consumer",
	}
}

func (k PartyKind) Validate() error {
	if k <= UnknownParty || k > ConsumerParty {
		return errs.NewValueIsInvalidErrorWithCause("party kind", fmt.Errorf("%d is not a valid party kind", k))
	}
	return nil
}

func (k PartyKind) String() string {
	if str, ok := getPartyKindStrings()[k]; ok {
		return str
	}
	return "Unknown"
}

var ErrPartyIsNotConstructed = errors.New("Party must be created via NewParty, NewMill, NewFarmer or NewConsumer")

// Party references exactly one of: an oil mill (by ID) or a person (by actor
// UUID). Persisted records carry two nullable columns, one per side; NewParty
// is the single place where "both set" and "neither set" are rejected.
type Party struct {
	kind    PartyKind
	millID  *ID
	actorID *UUID
}

// NewParty validates the mutually exclusive references against kind:
// a Mill party has a mill and no actor, a Farmer or Consumer party has an
// actor and no mill.
func NewParty(kind PartyKind, millID *ID, actorID *UUID) (Party, error) {
	if err := kind.Validate(); err != nil {
		return Party{}, err
	}
	if millID != nil && actorID != nil {
		return Party{}, errs.NewValueIsInvalidErrorWithCause(
			"party",
			fmt.Errorf("%s cannot reference an oil mill and a person at the same time", kind),
		)
	}

	switch kind {
	case MillParty:
		if millID == nil {
			return Party{}, errs.NewValueIsRequiredError("oil mill")
		}
		if err := millID.Validate(); err != nil {
			return Party{}, err
		}
		id := *millID
		return Party{kind: kind, millID: &id}, nil
	default:
		if actorID == nil {
			return Party{}, errs.NewValueIsRequiredError(fmt.Sprintf("%s reference", kind))
		}
		if err := actorID.Validate(); err != nil {
			return Party{}, err
		}
		id := *actorID
		return Party{kind: kind, actorID: &id}, nil
	}
}

// NewMill references an oil mill.
func NewMill(millID ID) (Party, error) {
	return NewParty(MillParty, &millID, nil)
}

// NewFarmer references a farmer actor.
func NewFarmer(actorID UUID) (Party, error) {
	return NewParty(FarmerParty, nil, &actorID)
}

// NewConsumer references a consumer actor.
func NewConsumer(actorID UUID) (Party, error) {
	return NewParty(ConsumerParty, nil, &actorID)
}

func (p Party) Validate() error {
	if p.kind == UnknownParty {
		return ErrPartyIsNotConstructed
	}
	return nil
}

func (p Party) Kind() PartyKind {
	return p.kind
}

// MillID returns the referenced mill, nil for persons.
func (p Party) MillID() *ID {
	if p.millID == nil {
		return nil
	}
	id := *p.millID
	return &id
}

// ActorID returns the referenced person, nil for mills.
func (p Party) ActorID() *UUID {
	if p.actorID == nil {
		return nil
	}
	id := *p.actorID
	return &id
}

func (p Party) IsEqual(other Party) bool {
	if p.kind != other.kind {
		return false
	}
	if p.millID != nil && other.millID != nil {
		return *p.millID == *other.millID
	}
	if p.actorID != nil && other.actorID != nil {
		return p.actorID.IsEqual(*other.actorID)
	}
	return false
}

func (p Party) String() string {
	switch {
	case p.millID != nil:
		return fmt.Sprintf("%s %d", p.kind, *p.millID)
	case p.actorID != nil:
		return fmt.Sprintf("%s %s", p.kind, p.actorID)
	default:
		return p.kind.String()
	}
}
