package po

import (
	"encoding/json"
	"time"

	"comandas/domain/shared"

	"github.com/google/uuid"
)

// OutboxEventPO is the transactional-outbox row: one per domain event,
// published at least once by OutboxWorker.
type OutboxEventPO struct {
	ID          string    `gorm:"primaryKey;size:64"`
	AggregateID string    `gorm:"size:64;index;not null"`
	EventType   string    `gorm:"size:100;index;not null"`
	Payload     string    `gorm:"type:json;not null"`
	Status      string    `gorm:"size:20;default:PENDING;not null"`
	RetryCount  int       `gorm:"default:0;not null"`
	CreatedAt   time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}

func (OutboxEventPO) TableName() string { return "outbox_events" }

type EventStatus string

const (
	EventStatusPending    EventStatus = "PENDING"
	EventStatusProcessing EventStatus = "PROCESSING"
	EventStatusPublished  EventStatus = "PUBLISHED"
	EventStatusFailed     EventStatus = "FAILED"
)

func FromDomainEvent(event shared.DomainEvent) (*OutboxEventPO, error) {
	payload, err := serializeEventToJSON(event)
	if err != nil {
		return nil, err
	}
	return &OutboxEventPO{
		ID:          uuid.New().String(),
		AggregateID: event.GetAggregateID(),
		EventType:   event.EventName(),
		Payload:     payload,
		Status:      string(EventStatusPending),
		RetryCount:  0,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}, nil
}

// serializeEventToJSON extracts the event-specific payload by probing for
// the getters comandas's order/promotion events expose. comandas's event
// fields are unexported, so a plain json.Marshal would produce an empty
// object — this mirrors the teacher's duck-typed extraction instead.
func serializeEventToJSON(event shared.DomainEvent) (string, error) {
	data := map[string]interface{}{
		"event_name":   event.EventName(),
		"aggregate_id": event.GetAggregateID(),
		"occurred_on":  event.OccurredOn(),
	}

	if e, ok := event.(interface{ LocalID() string }); ok {
		data["local_id"] = e.LocalID()
	}
	if e, ok := event.(interface{ FinalTotal() shared.Money }); ok {
		data["final_total"] = e.FinalTotal().String()
	}
	if e, ok := event.(interface{ PromotionID() string }); ok {
		data["promotion_id"] = e.PromotionID()
	}
	if e, ok := event.(interface{ Name() string }); ok {
		data["name"] = e.Name()
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (p *OutboxEventPO) ToEventData() (map[string]interface{}, error) {
	var data map[string]interface{}
	if err := json.Unmarshal([]byte(p.Payload), &data); err != nil {
		return nil, err
	}
	return data, nil
}
