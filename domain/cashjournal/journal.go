package cashjournal

import (
	"time"

	"comandas/domain/shared"

	"github.com/google/uuid"
)

type State string

const Closed State = "CLOSED"

// CashJournal is the immutable record of a closed operative day (spec
// §3). Once created it never mutates — there is no setter below on
// purpose.
type CashJournal struct {
	id                       string
	localID                  string
	operativeDate            time.Time
	closedAt                 time.Time
	totalRealSales           shared.Money
	totalInternalConsumption shared.Money
	totalEgresses            shared.Money
	cashBalance              shared.Money
	closedOrdersCount        int
	state                    State
}

func (j *CashJournal) ID() string                            { return j.id }
func (j *CashJournal) LocalID() string                        { return j.localID }
func (j *CashJournal) OperativeDate() time.Time               { return j.operativeDate }
func (j *CashJournal) ClosedAt() time.Time                    { return j.closedAt }
func (j *CashJournal) TotalRealSales() shared.Money           { return j.totalRealSales }
func (j *CashJournal) TotalInternalConsumption() shared.Money { return j.totalInternalConsumption }
func (j *CashJournal) TotalEgresses() shared.Money            { return j.totalEgresses }
func (j *CashJournal) CashBalance() shared.Money              { return j.cashBalance }
func (j *CashJournal) ClosedOrdersCount() int                 { return j.closedOrdersCount }
func (j *CashJournal) State() State                           { return j.state }

func (j *CashJournal) PullEvents() []shared.DomainEvent { return nil }
func (j *CashJournal) Version() int                     { return 0 }

var _ shared.AggregateRoot = (*CashJournal)(nil)

// JournalDTO reconstructs a CashJournal from storage; there is no factory
// validation to bypass beyond field assignment since CashJournal is only
// ever produced by Closer.Close.
type JournalDTO struct {
	ID                       string
	LocalID                  string
	OperativeDate            time.Time
	ClosedAt                 time.Time
	TotalRealSales           shared.Money
	TotalInternalConsumption shared.Money
	TotalEgresses            shared.Money
	CashBalance              shared.Money
	ClosedOrdersCount        int
}

func RebuildFromDTO(dto JournalDTO) *CashJournal {
	return &CashJournal{
		id: dto.ID, localID: dto.LocalID, operativeDate: dto.OperativeDate, closedAt: dto.ClosedAt,
		totalRealSales: dto.TotalRealSales, totalInternalConsumption: dto.TotalInternalConsumption,
		totalEgresses: dto.TotalEgresses, cashBalance: dto.CashBalance,
		closedOrdersCount: dto.ClosedOrdersCount, state: Closed,
	}
}

func newJournal(localID string, operativeDate, closedAt time.Time) *CashJournal {
	return &CashJournal{
		id: uuid.NewString(), localID: localID, operativeDate: operativeDate,
		closedAt: closedAt, state: Closed,
	}
}
