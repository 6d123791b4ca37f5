package cashapp

import (
	"time"

	"comandas/domain/cashjournal"
)

type RegisterEgressInput struct {
	Amount      string
	Description string
}

type MovementView struct {
	ID            string    `json:"id"`
	Amount        string    `json:"amount"`
	Description   string    `json:"description"`
	Timestamp     time.Time `json:"timestamp"`
	ReceiptNumber string    `json:"receiptNumber"`
}

func toMovementView(m *cashjournal.Movement) *MovementView {
	return &MovementView{
		ID: m.ID, Amount: m.Amount.String(), Description: m.Description,
		Timestamp: m.Timestamp, ReceiptNumber: m.ReceiptNumber,
	}
}

type JournalView struct {
	ID                       string    `json:"id"`
	OperativeDate            time.Time `json:"operativeDate"`
	ClosedAt                 time.Time `json:"closedAt"`
	TotalRealSales           string    `json:"totalRealSales"`
	TotalInternalConsumption string    `json:"totalInternalConsumption"`
	TotalEgresses            string    `json:"totalEgresses"`
	CashBalance              string    `json:"cashBalance"`
	ClosedOrdersCount        int       `json:"closedOrdersCount"`
}

func toJournalView(j *cashjournal.CashJournal) *JournalView {
	return &JournalView{
		ID:                       j.ID(),
		OperativeDate:            j.OperativeDate(),
		ClosedAt:                 j.ClosedAt(),
		TotalRealSales:           j.TotalRealSales().String(),
		TotalInternalConsumption: j.TotalInternalConsumption().String(),
		TotalEgresses:            j.TotalEgresses().String(),
		CashBalance:              j.CashBalance().String(),
		ClosedOrdersCount:        j.ClosedOrdersCount(),
	}
}

type ReportView struct {
	TotalRealSales           string `json:"totalRealSales"`
	TotalInternalConsumption string `json:"totalInternalConsumption"`
	TotalEgresses            string `json:"totalEgresses"`
	CashBalance              string `json:"cashBalance"`
	ClosedOrdersCount        int    `json:"closedOrdersCount"`
}

func toReportView(r cashjournal.Report) *ReportView {
	return &ReportView{
		TotalRealSales:           r.TotalRealSales.String(),
		TotalInternalConsumption: r.TotalInternalConsumption.String(),
		TotalEgresses:            r.TotalEgresses.String(),
		CashBalance:              r.CashBalance.String(),
		ClosedOrdersCount:        r.ClosedOrdersCount,
	}
}
