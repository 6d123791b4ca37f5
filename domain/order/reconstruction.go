package order

import (
	"time"

	"comandas/domain/shared"
)

// ReconstructionDTO rebuilds an Order from storage, bypassing NewOrder's
// validation — persisted rows are trusted to already satisfy invariants.
// Used only by the persistence layer.
type ReconstructionDTO struct {
	ID       string
	LocalID  string
	TableID  string
	Number   int
	State    State
	OpenedAt time.Time
	ClosedAt *time.Time
	Payments []Payment
	Global   *ManualDiscount
	Snapshot *AccountingSnapshot
	Version  int
}

// ItemDTO is the persistence-layer shape for a reconstructed OrderItem.
type ItemDTO struct {
	ID                  string
	ProductID           string
	ProductNameSnapshot string
	Quantity            int
	UnitPriceSnapshot   shared.Money
	Observation         *string
	Extras              []ExtraLine
	Promotion           PromotionSnapshot
	ManualDiscount      *ManualDiscount
}

// RebuildFromDTO reconstructs the Order shell; the repository then calls
// SetItems with each item rebuilt via RebuildItemFromDTO.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id: dto.ID, localID: dto.LocalID, tableID: dto.TableID, number: dto.Number,
		state: dto.State, openedAt: dto.OpenedAt, closedAt: dto.ClosedAt,
		payments: dto.Payments, global: dto.Global, snapshot: dto.Snapshot,
		version: dto.Version,
	}
}

func (o *Order) ToReconstructionDTO() ReconstructionDTO {
	return ReconstructionDTO{
		ID: o.id, LocalID: o.localID, TableID: o.tableID, Number: o.number,
		State: o.state, OpenedAt: o.openedAt, ClosedAt: o.closedAt,
		Payments: o.payments, Global: o.global, Snapshot: o.snapshot, Version: o.version,
	}
}

// SetItems attaches already-reconstructed items; OrderItem has unexported
// fields too, so it needs its own reconstruction path via RebuildItemFromDTO.
func (o *Order) SetItems(items []*OrderItem) { o.items = items }

func RebuildItemFromDTO(dto ItemDTO) *OrderItem {
	return &OrderItem{
		id: dto.ID, productID: dto.ProductID, productNameSnapshot: dto.ProductNameSnapshot,
		quantity: dto.Quantity, unitPriceSnapshot: dto.UnitPriceSnapshot, observation: dto.Observation,
		extras: dto.Extras, promo: dto.Promotion, manualDiscount: dto.ManualDiscount,
	}
}

func (i *OrderItem) ToDTO() ItemDTO {
	return ItemDTO{
		ID: i.id, ProductID: i.productID, ProductNameSnapshot: i.productNameSnapshot,
		Quantity: i.quantity, UnitPriceSnapshot: i.unitPriceSnapshot, Observation: i.observation,
		Extras: i.extras, Promotion: i.promo, ManualDiscount: i.manualDiscount,
	}
}
