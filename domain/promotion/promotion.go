package promotion

import (
	"strings"
	"time"

	"comandas/domain/shared"

	"github.com/google/uuid"
)

type State string

const (
	Active   State = "ACTIVE"
	Inactive State = "INACTIVE"
)

// Promotion is the aggregate root of the promotion engine: a priority, a
// strategy (tagged variant), an AND-composed list of activation criteria,
// and a scope of targets/triggers.
type Promotion struct {
	id          string
	localID     string
	name        string
	description string
	priority    int
	state       State
	strategy    Strategy
	criteria    []ActivationCriterion
	scope       Scope
	createdAt   time.Time
	version     int

	events []shared.DomainEvent
}

type NewPromotionInput struct {
	LocalID     string
	Name        string
	Description string
	Priority    int
	Strategy    Strategy
	Criteria    []ActivationCriterion
	Scope       Scope
}

func NewPromotion(in NewPromotionInput, now time.Time) (*Promotion, error) {
	if in.LocalID == "" {
		return nil, shared.NewValidationError("promotion", "localId", "localId is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.NewValidationError("promotion", "name", "name is required")
	}
	if in.Priority < 0 {
		return nil, shared.NewValidationError("promotion", "priority", "priority must be non-negative")
	}
	if err := in.Strategy.Validate(); err != nil {
		return nil, err
	}
	if err := in.Scope.Validate(); err != nil {
		return nil, err
	}
	if in.Strategy.Kind == ComboConditional && !in.Scope.HasTrigger() {
		return nil, shared.NewValidationError("promotion", "scope", "combo conditional strategy requires at least one TRIGGER")
	}
	if in.Strategy.Kind != ComboConditional && in.Scope.HasTrigger() {
		return nil, shared.NewValidationError("promotion", "scope", "TRIGGER role is only meaningful for the combo strategy")
	}

	p := &Promotion{
		id:          uuid.NewString(),
		localID:     in.LocalID,
		name:        strings.TrimSpace(in.Name),
		description: in.Description,
		priority:    in.Priority,
		state:       Active,
		strategy:    in.Strategy,
		criteria:    in.Criteria,
		scope:       in.Scope,
		createdAt:   now,
		version:     0,
	}
	p.events = append(p.events, NewPromotionCreatedEvent(p.id, p.name))
	return p, nil
}

func (p *Promotion) ID() string          { return p.id }
func (p *Promotion) Version() int        { return p.version }
func (p *Promotion) LocalID() string     { return p.localID }
func (p *Promotion) Name() string        { return p.name }
func (p *Promotion) Description() string { return p.description }
func (p *Promotion) Priority() int       { return p.priority }
func (p *Promotion) State() State        { return p.state }
func (p *Promotion) Strategy() Strategy  { return p.strategy }
func (p *Promotion) Criteria() []ActivationCriterion { return p.criteria }
func (p *Promotion) Scope() Scope        { return p.scope }
func (p *Promotion) CreatedAt() time.Time { return p.createdAt }
func (p *Promotion) IsActive() bool      { return p.state == Active }

func (p *Promotion) Activate()   { p.state = Active }
func (p *Promotion) Deactivate() { p.state = Inactive }

type EditPromotionInput struct {
	Name        string
	Description string
	Priority    int
	Strategy    Strategy
	Criteria    []ActivationCriterion
}

func (p *Promotion) Edit(in EditPromotionInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return shared.NewValidationError("promotion", "name", "name is required")
	}
	if in.Priority < 0 {
		return shared.NewValidationError("promotion", "priority", "priority must be non-negative")
	}
	if err := in.Strategy.Validate(); err != nil {
		return err
	}
	p.name = strings.TrimSpace(in.Name)
	p.description = in.Description
	p.priority = in.Priority
	p.strategy = in.Strategy
	p.criteria = in.Criteria
	return nil
}

// SetScope replaces the scope wholesale, enforcing the same invariants as
// construction.
func (p *Promotion) SetScope(scope Scope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	if p.strategy.Kind == ComboConditional && !scope.HasTrigger() {
		return shared.NewValidationError("promotion", "scope", "combo conditional strategy requires at least one TRIGGER")
	}
	if p.strategy.Kind != ComboConditional && scope.HasTrigger() {
		return shared.NewValidationError("promotion", "scope", "TRIGGER role is only meaningful for the combo strategy")
	}
	p.scope = scope
	return nil
}

func (p *Promotion) PullEvents() []shared.DomainEvent {
	events := p.events
	p.events = nil
	return events
}

var _ shared.AggregateRoot = (*Promotion)(nil)

// ReconstructionDTO rebuilds a Promotion from storage, bypassing NewPromotion's
// validation (persisted data is trusted to already be valid).
type ReconstructionDTO struct {
	ID          string
	LocalID     string
	Name        string
	Description string
	Priority    int
	State       State
	Strategy    Strategy
	Criteria    []ActivationCriterion
	Scope       Scope
	CreatedAt   time.Time
	Version     int
}

func RebuildFromDTO(dto ReconstructionDTO) *Promotion {
	return &Promotion{
		id: dto.ID, localID: dto.LocalID, name: dto.Name, description: dto.Description,
		priority: dto.Priority, state: dto.State, strategy: dto.Strategy, criteria: dto.Criteria,
		scope: dto.Scope, createdAt: dto.CreatedAt, version: dto.Version,
	}
}

func (p *Promotion) ToDTO() ReconstructionDTO {
	return ReconstructionDTO{
		ID: p.id, LocalID: p.localID, Name: p.name, Description: p.description,
		Priority: p.priority, State: p.state, Strategy: p.strategy, Criteria: p.criteria,
		Scope: p.scope, CreatedAt: p.createdAt, Version: p.version,
	}
}
