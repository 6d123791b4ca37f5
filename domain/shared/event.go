package shared

import "time"

// DomainEvent is something an aggregate recorded while handling a command.
// The unit of work pulls these after a successful Execute and hands them to
// the outbox for at-least-once delivery.
type DomainEvent interface {
	EventName() string
	OccurredOn() time.Time
	GetAggregateID() string
}

// ValidateEvent is the outbox's last line of defense before it writes a row
// that a worker can never publish meaningfully.
func ValidateEvent(event DomainEvent) error {
	if event == nil {
		return NewValidationError("domain_event", "event", "event must not be nil")
	}
	if event.EventName() == "" {
		return NewValidationError("domain_event", "eventName", "event name is required")
	}
	if event.GetAggregateID() == "" {
		return NewValidationError("domain_event", "aggregateId", "aggregate id is required")
	}
	return nil
}
