package order

import (
	"time"

	"comandas/domain/shared"
)

// OrderClosedEvent is published after a successful close, for the outbox
// worker to notify printing/reporting collaborators (out of scope here,
// see spec §1 — this is the seam they would hang off of).
type OrderClosedEvent struct {
	orderID    string
	localID    string
	finalTotal shared.Money
	occurredOn time.Time
}

func NewOrderClosedEvent(orderID, localID string, finalTotal shared.Money) *OrderClosedEvent {
	return &OrderClosedEvent{orderID: orderID, localID: localID, finalTotal: finalTotal, occurredOn: time.Now()}
}

func (e *OrderClosedEvent) EventName() string       { return "order.closed" }
func (e *OrderClosedEvent) OccurredOn() time.Time    { return e.occurredOn }
func (e *OrderClosedEvent) GetAggregateID() string   { return e.orderID }
func (e *OrderClosedEvent) LocalID() string          { return e.localID }
func (e *OrderClosedEvent) FinalTotal() shared.Money { return e.finalTotal }

// OrderReopenedEvent is published after a reopen, since it un-does the
// stock decrement and cash accounting the closed event triggered downstream.
type OrderReopenedEvent struct {
	orderID    string
	localID    string
	occurredOn time.Time
}

func NewOrderReopenedEvent(orderID, localID string) *OrderReopenedEvent {
	return &OrderReopenedEvent{orderID: orderID, localID: localID, occurredOn: time.Now()}
}

func (e *OrderReopenedEvent) EventName() string     { return "order.reopened" }
func (e *OrderReopenedEvent) OccurredOn() time.Time  { return e.occurredOn }
func (e *OrderReopenedEvent) GetAggregateID() string { return e.orderID }
func (e *OrderReopenedEvent) LocalID() string        { return e.localID }
