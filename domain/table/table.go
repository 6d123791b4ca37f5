package table

import (
	"comandas/domain/shared"

	"github.com/google/uuid"
)

type State string

const (
	Free State = "FREE"
	Open State = "OPEN"
)

// Table is a dining table. It is not an aggregate root by spec's monetary
// core — it owns no items — but it gates order opening and the cash
// journal's "no table still open" precondition, so it is modeled as its
// own small aggregate with just a state flag.
type Table struct {
	id      string
	localID string
	number  int
	state   State
	version int
}

func NewTable(localID string, number int) (*Table, error) {
	if localID == "" {
		return nil, shared.NewValidationError("table", "localId", "localId is required")
	}
	if number <= 0 {
		return nil, shared.NewValidationError("table", "number", "number must be positive")
	}
	return &Table{
		id:      uuid.NewString(),
		localID: localID,
		number:  number,
		state:   Free,
		version: 0,
	}, nil
}

func (t *Table) ID() string      { return t.id }
func (t *Table) Version() int    { return t.version }
func (t *Table) LocalID() string { return t.localID }
func (t *Table) Number() int     { return t.number }
func (t *Table) State() State    { return t.state }
func (t *Table) IsOpen() bool    { return t.state == Open }

// MarkOpen is called when an order is opened on this table.
func (t *Table) MarkOpen() { t.state = Open }

// MarkFree is called when the order on this table closes.
func (t *Table) MarkFree() { t.state = Free }

func (t *Table) PullEvents() []shared.DomainEvent { return nil }

var _ shared.AggregateRoot = (*Table)(nil)

// TableDTO reconstructs a Table from storage without running NewTable's
// validation a second time.
type TableDTO struct {
	ID      string
	LocalID string
	Number  int
	State   State
	Version int
}

func RebuildFromDTO(dto TableDTO) *Table {
	return &Table{
		id:      dto.ID,
		localID: dto.LocalID,
		number:  dto.Number,
		state:   dto.State,
		version: dto.Version,
	}
}

func (t *Table) ToDTO() TableDTO {
	return TableDTO{ID: t.id, LocalID: t.localID, Number: t.number, State: t.state, Version: t.version}
}
