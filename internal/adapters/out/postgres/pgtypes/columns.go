// Package pgtypes holds the column groups and error mapping shared by the
// GORM repositories.
package pgtypes

import (
	"oliveflow/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PartyColumns stores a kernel.Party as a kind plus two nullable references.
// Exactly one reference is set for a valid party.
type PartyColumns struct {
	Kind    int        `gorm:"type:smallint;not null"`
	MillID  *int64     `gorm:"index"`
	ActorID *uuid.UUID `gorm:"type:uuid;index"`
}

func PartyFromDomain(p kernel.Party) PartyColumns {
	c := PartyColumns{Kind: int(p.Kind())}
	if id := p.MillID(); id != nil {
		v := id.Int64()
		c.MillID = &v
	}
	if id := p.ActorID(); id != nil {
		raw := id.Bytes()
		c.ActorID = &raw
	}
	return c
}

func (c PartyColumns) ToDomain() (kernel.Party, error) {
	var millID *kernel.ID
	if c.MillID != nil {
		id := kernel.ID(*c.MillID)
		millID = &id
	}
	var actorID *kernel.UUID
	if c.ActorID != nil {
		id, err := kernel.UUIDFromBytes(c.ActorID[:])
		if err != nil {
			return kernel.Party{}, err
		}
		actorID = &id
	}
	return kernel.NewParty(kernel.PartyKind(c.Kind), millID, actorID)
}

// OptionalParty maps a nullable party. A zero Kind means no party.
func OptionalParty(p *kernel.Party) PartyColumns {
	if p == nil {
		return PartyColumns{}
	}
	return PartyFromDomain(*p)
}

func (c PartyColumns) ToOptionalDomain() (*kernel.Party, error) {
	if c.Kind == int(kernel.UnknownParty) {
		return nil, nil
	}
	p, err := c.ToDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// QuantityColumns stores a kernel.Quantity.
type QuantityColumns struct {
	Value decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Unit  int             `gorm:"type:smallint;not null"`
}

func QuantityFromDomain(q kernel.Quantity) QuantityColumns {
	return QuantityColumns{Value: q.Value(), Unit: int(q.Unit())}
}

func (c QuantityColumns) ToDomain() (kernel.Quantity, error) {
	return kernel.NewQuantity(c.Value, kernel.Unit(c.Unit))
}

// MoneyColumns stores a kernel.Money.
type MoneyColumns struct {
	Amount   decimal.Decimal `gorm:"type:numeric(14,3);not null"`
	Currency int             `gorm:"type:smallint;not null"`
}

func MoneyFromDomain(m kernel.Money) MoneyColumns {
	return MoneyColumns{Amount: m.Amount(), Currency: int(m.Currency())}
}

func (c MoneyColumns) ToDomain() (kernel.Money, error) {
	return kernel.NewMoney(c.Amount, kernel.Currency(c.Currency))
}

// OptionalID maps a nullable reference column.
func OptionalID(id *kernel.ID) *int64 {
	if id == nil {
		return nil
	}
	v := id.Int64()
	return &v
}

func ToOptionalID(v *int64) *kernel.ID {
	if v == nil {
		return nil
	}
	id := kernel.ID(*v)
	return &id
}

// Code returns the stored code or the empty code for rows not stamped yet.
func Code(v *string) kernel.Code {
	if v == nil {
		return ""
	}
	return kernel.Code(*v)
}
