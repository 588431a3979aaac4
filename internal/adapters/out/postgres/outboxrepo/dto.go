package outboxrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"dispatch/internal/core/domain/events"

	"github.com/google/uuid"
)

// OutboxEventDTO is the outbox_events row. Seq orders rows by commit; EventID is the
// envelope id subscribers deduplicate on.
type OutboxEventDTO struct {
	Seq          int64      `gorm:"primaryKey;autoIncrement"`
	EventID      uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	EventType    string     `gorm:"type:varchar(64);not null"`
	CourierID    *uuid.UUID `gorm:"type:uuid"`
	RestaurantID *uuid.UUID `gorm:"type:uuid"`
	Payload      []byte     `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time  `gorm:"autoCreateTime:false;not null"`
	DispatchedAt *time.Time `gorm:"type:timestamptz;index"`
}

func (OutboxEventDTO) TableName() string {
	return "outbox_events"
}

func fromEnvelope(e events.Envelope) (OutboxEventDTO, error) {
	eventID, err := uuid.Parse(e.ID)
	if err != nil {
		return OutboxEventDTO{}, fmt.Errorf("outbox event id: %w", err)
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return OutboxEventDTO{}, fmt.Errorf("marshal %s: %w", e.Type, err)
	}

	return OutboxEventDTO{
		EventID:      eventID,
		EventType:    string(e.Type),
		CourierID:    optionalUUID(e.CourierID),
		RestaurantID: optionalUUID(e.RestaurantID),
		Payload:      payload,
		CreatedAt:    e.OccurredAt,
	}, nil
}

func toEnvelope(dto OutboxEventDTO) (events.Envelope, error) {
	var e events.Envelope
	if err := json.Unmarshal(dto.Payload, &e); err != nil {
		return events.Envelope{}, fmt.Errorf("unmarshal outbox event %d: %w", dto.Seq, err)
	}
	return e, nil
}

func optionalUUID(s string) *uuid.UUID {
	if s == "" {
		return nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil
	}
	return &id
}
