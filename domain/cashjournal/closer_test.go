package cashjournal

import (
	"errors"
	"testing"
	"time"

	"comandas/domain/catalog"
	"comandas/domain/order"
	"comandas/domain/shared"
)

func TestOperativeDate_NightShiftCutoff(t *testing.T) {
	cases := []struct {
		name string
		at   time.Time
		want time.Time
	}{
		{"just before cutoff rolls to the previous day", time.Date(2026, 7, 31, 5, 59, 0, 0, time.UTC), time.Date(2026, 7, 30, 0, 0, 0, 0, time.UTC)},
		{"exactly at cutoff stays on the same day", time.Date(2026, 7, 31, 6, 0, 0, 0, time.UTC), time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)},
		{"midday stays on the same day", time.Date(2026, 7, 31, 13, 30, 0, 0, time.UTC), time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := OperativeDate(c.at)
			if !got.Equal(c.want) {
				t.Errorf("OperativeDate(%v) = %v, want %v", c.at, got, c.want)
			}
		})
	}
}

// Invariant: operative date never runs backwards as the clock advances.
func TestOperativeDate_Monotonicity(t *testing.T) {
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	prev := OperativeDate(start)
	for i := 0; i < 24*7; i++ {
		at := start.Add(time.Duration(i) * time.Hour)
		got := OperativeDate(at)
		if got.Before(prev) {
			t.Fatalf("operative date decreased at %v: %v -> %v", at, prev, got)
		}
		prev = got
	}
}

func TestWindowFor(t *testing.T) {
	date := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	from, to := WindowFor(date)
	wantFrom := time.Date(2026, 7, 31, 6, 0, 0, 0, time.UTC)
	wantTo := time.Date(2026, 8, 1, 6, 0, 0, 0, time.UTC)
	if !from.Equal(wantFrom) || !to.Equal(wantTo) {
		t.Fatalf("WindowFor(%v) = [%v, %v), want [%v, %v)", date, from, to, wantFrom, wantTo)
	}
}

func closedOrderWithPayment(t *testing.T, price shared.Money, medium order.PaymentMedium, at time.Time) *order.Order {
	t.Helper()
	product, err := catalog.NewProduct(catalog.NewProductInput{LocalID: "p1", Name: "Item", Price: price})
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	o, err := order.NewOrder("local-1", "table-1", 1, at)
	if err != nil {
		t.Fatalf("NewOrder: %v", err)
	}
	if _, err := o.AddItem(order.AddItemInput{Product: product, Quantity: 1, At: at}); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if err := o.Close([]order.Payment{{Medium: medium, Amount: price, Timestamp: at}}, at); err != nil {
		t.Fatalf("Close: %v", err)
	}
	return o
}

func TestAggregate_SeparatesRealSalesFromInternalConsumption(t *testing.T) {
	at := time.Date(2026, 7, 31, 13, 0, 0, 0, time.UTC)
	cash := closedOrderWithPayment(t, shared.MoneyFromCents(1000), order.PaymentCash, at)
	onAccount := closedOrderWithPayment(t, shared.MoneyFromCents(2000), order.PaymentOnAccount, at)

	egress, err := NewMovement("local-1", shared.MoneyFromCents(500), "supplies", at, "R-1")
	if err != nil {
		t.Fatalf("NewMovement: %v", err)
	}

	report := Aggregate([]*order.Order{cash, onAccount}, []Movement{*egress})

	if !report.TotalRealSales.Equals(shared.MoneyFromCents(1000)) {
		t.Errorf("TotalRealSales = %s, want 10.00", report.TotalRealSales)
	}
	if !report.TotalInternalConsumption.Equals(shared.MoneyFromCents(2000)) {
		t.Errorf("TotalInternalConsumption = %s, want 20.00", report.TotalInternalConsumption)
	}
	if !report.TotalEgresses.Equals(shared.MoneyFromCents(500)) {
		t.Errorf("TotalEgresses = %s, want 5.00", report.TotalEgresses)
	}
	// Only the CASH payment feeds cash-in; ON_ACCOUNT is internal consumption.
	if !report.CashBalance.Equals(shared.MoneyFromCents(500)) {
		t.Errorf("CashBalance = %s, want 5.00", report.CashBalance)
	}
	if report.ClosedOrdersCount != 2 {
		t.Errorf("ClosedOrdersCount = %d, want 2", report.ClosedOrdersCount)
	}
}

// Seed scenario: a closing made in the small hours attributes to the
// previous operative day, and still aggregates that day's sales correctly.
func TestCloser_Close_NightShiftCutoff(t *testing.T) {
	at := time.Date(2026, 7, 31, 13, 0, 0, 0, time.UTC)
	o := closedOrderWithPayment(t, shared.MoneyFromCents(1000), order.PaymentCash, at)
	closer := NewCloser()

	closingAt := time.Date(2026, 8, 1, 2, 30, 0, 0, time.UTC)
	journal, err := closer.Close("local-1", closingAt, 0, false, []*order.Order{o}, nil)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	wantDate := time.Date(2026, 7, 31, 0, 0, 0, 0, time.UTC)
	if !journal.OperativeDate().Equal(wantDate) {
		t.Errorf("OperativeDate = %v, want %v", journal.OperativeDate(), wantDate)
	}
	if !journal.TotalRealSales().Equals(shared.MoneyFromCents(1000)) {
		t.Errorf("TotalRealSales = %s, want 10.00", journal.TotalRealSales())
	}
	if journal.State() != Closed {
		t.Errorf("State = %s, want %s", journal.State(), Closed)
	}
}

func TestCloser_Close_RejectsOpenTables(t *testing.T) {
	closer := NewCloser()
	at := time.Date(2026, 7, 31, 13, 0, 0, 0, time.UTC)
	_, err := closer.Close("local-1", at, 2, false, nil, nil)
	if !errors.Is(err, shared.ErrTablesStillOpen) {
		t.Fatalf("expected ErrTablesStillOpen, got %v", err)
	}
}

func TestCloser_Close_RejectsDuplicateDay(t *testing.T) {
	closer := NewCloser()
	at := time.Date(2026, 7, 31, 13, 0, 0, 0, time.UTC)
	_, err := closer.Close("local-1", at, 0, true, nil, nil)
	if !errors.Is(err, shared.ErrDayAlreadyClosed) {
		t.Fatalf("expected ErrDayAlreadyClosed, got %v", err)
	}
}
