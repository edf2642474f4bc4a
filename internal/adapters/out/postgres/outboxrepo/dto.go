// Package outboxrepo stores notification events in the transaction of the
// transition that raised them until the dispatcher delivers them.
package outboxrepo

import (
	"time"

	"oliveflow/internal/adapters/out/postgres/pgtypes"
	"oliveflow/internal/core/domain/model/kernel"
	"oliveflow/internal/core/domain/model/notification"
	"oliveflow/internal/core/ports"
)

type EventDTO struct {
	ID          int64                `gorm:"primaryKey;autoIncrement"`
	Kind        string               `gorm:"not null"`
	Recipient   pgtypes.PartyColumns `gorm:"embedded;embeddedPrefix:recipient_"`
	Subject     string               `gorm:"not null"`
	Message     string               `gorm:"type:text;not null"`
	OccurredAt  time.Time            `gorm:"not null"`
	DeliveredAt *time.Time           `gorm:"index"`
}

func (EventDTO) TableName() string {
	return "outbox_events"
}

func fromDomain(e notification.Event) EventDTO {
	return EventDTO{
		Kind:       string(e.Kind()),
		Recipient:  pgtypes.PartyFromDomain(e.Recipient()),
		Subject:    e.Subject().String(),
		Message:    e.Message(),
		OccurredAt: e.OccurredAt(),
	}
}

func toDomain(dto EventDTO) (ports.OutboxEntry, error) {
	recipient, err := dto.Recipient.ToDomain()
	if err != nil {
		return ports.OutboxEntry{}, err
	}
	event, err := notification.NewEvent(
		notification.Kind(dto.Kind),
		recipient,
		kernel.Code(dto.Subject),
		dto.Message,
		dto.OccurredAt,
	)
	if err != nil {
		return ports.OutboxEntry{}, err
	}
	return ports.OutboxEntry{ID: kernel.ID(dto.ID), Event: event}, nil
}
