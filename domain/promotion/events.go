package promotion

import "time"

type PromotionCreatedEvent struct {
	promotionID string
	name        string
	occurredOn  time.Time
}

func NewPromotionCreatedEvent(promotionID, name string) *PromotionCreatedEvent {
	return &PromotionCreatedEvent{promotionID: promotionID, name: name, occurredOn: time.Now()}
}

func (e *PromotionCreatedEvent) EventName() string      { return "promotion.created" }
func (e *PromotionCreatedEvent) OccurredOn() time.Time   { return e.occurredOn }
func (e *PromotionCreatedEvent) GetAggregateID() string  { return e.promotionID }
func (e *PromotionCreatedEvent) PromotionID() string     { return e.promotionID }
func (e *PromotionCreatedEvent) Name() string            { return e.name }
