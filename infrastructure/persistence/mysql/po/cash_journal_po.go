package po

import (
	"time"

	"comandas/domain/cashjournal"
	"comandas/domain/shared"

	"github.com/shopspring/decimal"
)

// CashJournalPO has no Version column: CashJournal is immutable post-creation
// and reports Version() 0, so optimistic locking doesn't apply to it.
type CashJournalPO struct {
	ID                       string          `gorm:"primaryKey;size:64"`
	LocalID                  string          `gorm:"size:64;index;not null;uniqueIndex:idx_cash_journal_local_date"`
	OperativeDate            time.Time       `gorm:"not null;uniqueIndex:idx_cash_journal_local_date"`
	ClosedAt                 time.Time       `gorm:"not null"`
	TotalRealSales           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalInternalConsumption decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalEgresses            decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	CashBalance              decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ClosedOrdersCount        int             `gorm:"not null"`
}

func (CashJournalPO) TableName() string { return "cash_journals" }

func FromCashJournal(j *cashjournal.CashJournal) *CashJournalPO {
	return &CashJournalPO{
		ID: j.ID(), LocalID: j.LocalID(), OperativeDate: j.OperativeDate(), ClosedAt: j.ClosedAt(),
		TotalRealSales: j.TotalRealSales().Decimal(), TotalInternalConsumption: j.TotalInternalConsumption().Decimal(),
		TotalEgresses: j.TotalEgresses().Decimal(), CashBalance: j.CashBalance().Decimal(),
		ClosedOrdersCount: j.ClosedOrdersCount(),
	}
}

func (p *CashJournalPO) ToDomain() *cashjournal.CashJournal {
	return cashjournal.RebuildFromDTO(cashjournal.JournalDTO{
		ID: p.ID, LocalID: p.LocalID, OperativeDate: p.OperativeDate, ClosedAt: p.ClosedAt,
		TotalRealSales: shared.NewMoney(p.TotalRealSales), TotalInternalConsumption: shared.NewMoney(p.TotalInternalConsumption),
		TotalEgresses: shared.NewMoney(p.TotalEgresses), CashBalance: shared.NewMoney(p.CashBalance),
		ClosedOrdersCount: p.ClosedOrdersCount,
	})
}
