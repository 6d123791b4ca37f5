package cashjournal

import (
	"time"

	"comandas/domain/order"
	"comandas/domain/shared"
)

const nightShiftCutoffHour = 6

// OperativeDate applies the night-shift cutoff rule (spec §4.5): closings
// before 06:00 are attributed to the previous calendar day. No local is
// assumed to operate at 06:00 itself.
func OperativeDate(at time.Time) time.Time {
	day := time.Date(at.Year(), at.Month(), at.Day(), 0, 0, 0, 0, at.Location())
	if at.Hour() < nightShiftCutoffHour {
		return day.AddDate(0, 0, -1)
	}
	return day
}

// WindowFor returns the [from, to) aggregation window for an operative date:
// that date's 06:00 through the next day's 06:00.
func WindowFor(operativeDate time.Time) (time.Time, time.Time) {
	from := time.Date(operativeDate.Year(), operativeDate.Month(), operativeDate.Day(), nightShiftCutoffHour, 0, 0, 0, operativeDate.Location())
	return from, from.AddDate(0, 0, 1)
}

// Closer is a stateless domain service. It never queries a repository
// itself (spec §9) — the application service fetches open-table count,
// whether a journal already exists for the date, the closed orders in the
// window, and the cash movements in the window, and passes them in.
type Closer struct{}

func NewCloser() *Closer { return &Closer{} }

// Close runs the full precondition check plus aggregation (spec §4.5) and
// returns the new, immutable CashJournal.
func (Closer) Close(localID string, now time.Time, openTableCount int, journalAlreadyExists bool, ordersInWindow []*order.Order, movementsInWindow []Movement) (*CashJournal, error) {
	if openTableCount > 0 {
		return nil, shared.NewTablesStillOpenError(openTableCount)
	}
	operativeDate := OperativeDate(now)
	if journalAlreadyExists {
		return nil, shared.NewDayAlreadyClosedError(operativeDate.Format("2006-01-02"))
	}

	report := Aggregate(ordersInWindow, movementsInWindow)
	j := newJournal(localID, operativeDate, now)
	j.totalRealSales = report.TotalRealSales
	j.totalInternalConsumption = report.TotalInternalConsumption
	j.totalEgresses = report.TotalEgresses
	j.cashBalance = report.CashBalance
	j.closedOrdersCount = report.ClosedOrdersCount
	return j, nil
}

// Report is the aggregation result, reused by both Close (persisted) and
// DailyCashReport (read-only preview, supplementing spec §6's "produce
// daily cash report for a date" operation).
type Report struct {
	TotalRealSales           shared.Money
	TotalInternalConsumption shared.Money
	TotalEgresses            shared.Money
	CashBalance              shared.Money
	ClosedOrdersCount        int
}

// Aggregate computes the spec §4.5 totals over a window's closed orders
// and cash movements.
func Aggregate(ordersInWindow []*order.Order, movementsInWindow []Movement) Report {
	realSales := shared.Zero
	internalConsumption := shared.Zero
	cashIn := shared.Zero

	for _, o := range ordersInWindow {
		for _, p := range o.Payments() {
			if p.Medium == order.PaymentOnAccount {
				internalConsumption = internalConsumption.Add(p.Amount)
			} else {
				realSales = realSales.Add(p.Amount)
			}
			if p.Medium == order.PaymentCash {
				cashIn = cashIn.Add(p.Amount)
			}
		}
	}

	egresses := shared.Zero
	for _, m := range movementsInWindow {
		egresses = egresses.Add(m.Amount)
	}

	return Report{
		TotalRealSales:           realSales,
		TotalInternalConsumption: internalConsumption,
		TotalEgresses:            egresses,
		CashBalance:              cashIn.Sub(egresses),
		ClosedOrdersCount:        len(ordersInWindow),
	}
}
