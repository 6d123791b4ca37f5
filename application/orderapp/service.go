// Package orderapp orchestrates the order-and-pricing engine: opening a
// table's order, adding/modifying/removing items (loading the catalog
// context the variant normalizer and promotion engine need), manual
// discounts, and the close/reopen cycle which also drives the stock ledger.
package orderapp

import (
	"context"
	"fmt"
	"time"

	"comandas/domain/catalog"
	"comandas/domain/order"
	"comandas/domain/promotion"
	"comandas/domain/shared"
	"comandas/domain/stock"
	"comandas/domain/table"
	"comandas/domain/variant"

	"github.com/shopspring/decimal"
)

type Service struct {
	orders     order.Repository
	tables     table.Repository
	products   catalog.ProductRepository
	promotions promotion.Repository
	movements  stock.MovementRepository
	ledger     *stock.Ledger
	uow        shared.UnitOfWorkFactory
	locals     shared.LocalContextProvider
	clock      shared.Clock
}

func NewService(
	orders order.Repository,
	tables table.Repository,
	products catalog.ProductRepository,
	promotions promotion.Repository,
	movements stock.MovementRepository,
	uow shared.UnitOfWorkFactory,
	locals shared.LocalContextProvider,
	clock shared.Clock,
) *Service {
	return &Service{
		orders: orders, tables: tables, products: products, promotions: promotions,
		movements: movements, ledger: stock.NewLedger(), uow: uow, locals: locals, clock: clock,
	}
}

func (s *Service) OpenOrder(ctx context.Context, tableID string) (*OrderView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *OrderView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		t, err := s.tables.FindByID(ctx, tableID, localID)
		if err != nil {
			return err
		}
		if t.IsOpen() {
			return shared.NewValidationError("table", "tableId", "table already has an open order")
		}
		number, err := s.orders.NextOrderNumber(ctx, localID)
		if err != nil {
			return fmt.Errorf("allocate order number: %w", err)
		}
		o, err := order.NewOrder(localID, tableID, number, s.clock.Now())
		if err != nil {
			return err
		}
		uow.RegisterNew(o)
		if err := s.orders.Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		t.MarkOpen()
		uow.RegisterDirty(t)
		if err := s.tables.Save(ctx, t); err != nil {
			return fmt.Errorf("save table: %w", err)
		}
		view = toOrderView(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) GetOrder(ctx context.Context, orderID string) (*OrderView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, orderID, localID)
	if err != nil {
		return nil, err
	}
	return toOrderView(o), nil
}

// KitchenSlip fetches the print-ready kitchen projection of an order (spec
// §6): what to prepare, never what it costs.
func (s *Service) KitchenSlip(ctx context.Context, orderID string) (*KitchenSlipView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, orderID, localID)
	if err != nil {
		return nil, err
	}
	return toKitchenSlipView(o), nil
}

// CustomerReceipt fetches the priced, customer-facing projection of an
// order (spec §6), usable as a pre-bill while open or as the final
// receipt once closed.
func (s *Service) CustomerReceipt(ctx context.Context, orderID string) (*CustomerReceiptView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	o, err := s.orders.FindByID(ctx, orderID, localID)
	if err != nil {
		return nil, err
	}
	return toCustomerReceiptView(o), nil
}

// loadItemContext gathers everything AddItem/RecomputeAll need without the
// aggregate reaching into a repository itself (spec §9).
func (s *Service) loadItemContext(ctx context.Context, localID string, productID string, extras []ExtraRequestInput) (*catalog.Product, map[string]*catalog.Product, []*catalog.Product, map[string]struct{}, []*promotion.Promotion, error) {
	product, err := s.products.FindByIDAndLocal(ctx, productID, localID)
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}

	extraProducts := make(map[string]*catalog.Product, len(extras))
	for _, e := range extras {
		p, err := s.products.FindByIDAndLocal(ctx, e.ProductID, localID)
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		extraProducts[e.ProductID] = p
	}

	var siblings []*catalog.Product
	if product.VariantGroupID() != nil {
		siblings, err = s.products.ListByGroup(ctx, *product.VariantGroupID(), localID)
		if err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("list variant siblings: %w", err)
		}
	}

	structuralIDs, err := s.products.ListStructuralModifierIDs(ctx, localID)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("list structural modifier ids: %w", err)
	}

	promotions, err := s.promotions.ListActiveByLocal(ctx, localID)
	if err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("list active promotions: %w", err)
	}

	return product, extraProducts, siblings, structuralIDs, promotions, nil
}

func (s *Service) AddItem(ctx context.Context, orderID string, in AddItemInput) (*OrderView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *OrderView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, orderID, localID)
		if err != nil {
			return err
		}

		product, extraProducts, siblings, structuralIDs, promotions, err := s.loadItemContext(ctx, localID, in.ProductID, in.RequestedExtras)
		if err != nil {
			return err
		}

		requested := make([]variant.ExtraRequest, len(in.RequestedExtras))
		for i, e := range in.RequestedExtras {
			requested[i] = variant.ExtraRequest{ProductID: e.ProductID}
		}

		at := s.clock.Now()
		_, err = o.AddItem(order.AddItemInput{
			Product:               product,
			Quantity:              in.Quantity,
			Observation:           in.Observation,
			RequestedExtras:       requested,
			ExtraProducts:         extraProducts,
			SiblingVariants:       siblings,
			StructuralModifierIDs: structuralIDs,
			ActivePromotions:      promotions,
			At:                    at,
		})
		if err != nil {
			return err
		}
		uow.RegisterDirty(o)
		if err := s.orders.Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		view = toOrderView(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) ModifyQuantity(ctx context.Context, orderID, itemID string, quantity int) (*OrderView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *OrderView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, orderID, localID)
		if err != nil {
			return err
		}
		promotions, err := s.promotions.ListActiveByLocal(ctx, localID)
		if err != nil {
			return fmt.Errorf("list active promotions: %w", err)
		}
		if err := o.ModifyQuantity(itemID, quantity, promotions, s.clock.Now()); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		if err := s.orders.Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		view = toOrderView(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) RemoveItem(ctx context.Context, orderID, itemID string) (*OrderView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	var view *OrderView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, orderID, localID)
		if err != nil {
			return err
		}
		promotions, err := s.promotions.ListActiveByLocal(ctx, localID)
		if err != nil {
			return fmt.Errorf("list active promotions: %w", err)
		}
		if err := o.RemoveItem(itemID, promotions, s.clock.Now()); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		if err := s.orders.Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		view = toOrderView(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) ApplyLineDiscount(ctx context.Context, orderID, itemID string, in ManualDiscountInput) (*OrderView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(in.Value)
	if err != nil {
		return nil, shared.NewValidationError("order_item", "value", "value must be a decimal number")
	}

	var view *OrderView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, orderID, localID)
		if err != nil {
			return err
		}
		if err := o.ApplyLineDiscount(itemID, in.Kind, shared.NewMoney(value), in.Reason, in.UserID, s.clock.Now()); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		if err := s.orders.Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		view = toOrderView(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) ApplyGlobalDiscount(ctx context.Context, orderID string, in ManualDiscountInput) (*OrderView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	value, err := decimal.NewFromString(in.Value)
	if err != nil {
		return nil, shared.NewValidationError("order", "value", "value must be a decimal number")
	}

	var view *OrderView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, orderID, localID)
		if err != nil {
			return err
		}
		if err := o.ApplyGlobalDiscount(in.Kind, shared.NewMoney(value), in.Reason, in.UserID, s.clock.Now()); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		if err := s.orders.Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		view = toOrderView(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Close closes the order against the given payments, then runs the stock
// ledger's sale recording and frees the table — all within the same
// transaction (spec §4.4: the stock decrement is atomic with the close).
func (s *Service) Close(ctx context.Context, orderID string, payments []PaymentInput) (*OrderView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}

	domainPayments := make([]order.Payment, len(payments))
	at := s.clock.Now()
	for i, p := range payments {
		amount, err := decimal.NewFromString(p.Amount)
		if err != nil {
			return nil, shared.NewValidationError("order", "payments", "amount must be a decimal number")
		}
		domainPayments[i] = order.Payment{Medium: p.Medium, Amount: shared.NewMoney(amount), Timestamp: at}
	}

	var view *OrderView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, orderID, localID)
		if err != nil {
			return err
		}
		if err := o.Close(domainPayments, at); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		if err := s.orders.Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}

		if err := s.applyStockMovements(ctx, o, localID, at, true); err != nil {
			return err
		}

		t, err := s.tables.FindByID(ctx, o.TableID(), localID)
		if err != nil {
			return err
		}
		t.MarkFree()
		uow.RegisterDirty(t)
		if err := s.tables.Save(ctx, t); err != nil {
			return fmt.Errorf("save table: %w", err)
		}

		view = toOrderView(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

// Reopen reverses the stock decrement and re-opens the table, leaving the
// order in OPEN state for further edits (spec §4.1/§4.4).
func (s *Service) Reopen(ctx context.Context, orderID string) (*OrderView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	at := s.clock.Now()

	var view *OrderView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, orderID, localID)
		if err != nil {
			return err
		}
		if err := s.applyStockMovements(ctx, o, localID, at, false); err != nil {
			return err
		}
		if err := o.Reopen(at); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		if err := s.orders.Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}

		t, err := s.tables.FindByID(ctx, o.TableID(), localID)
		if err != nil {
			return err
		}
		t.MarkOpen()
		uow.RegisterDirty(t)
		if err := s.tables.Save(ctx, t); err != nil {
			return fmt.Errorf("save table: %w", err)
		}

		view = toOrderView(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *Service) applyStockMovements(ctx context.Context, o *order.Order, localID string, at time.Time, sale bool) error {
	productsByID := make(map[string]*catalog.Product, len(o.Items()))
	for _, item := range o.Items() {
		if _, loaded := productsByID[item.ProductID()]; loaded {
			continue
		}
		p, err := s.products.FindByIDAndLocal(ctx, item.ProductID(), localID)
		if err != nil {
			continue // historical referential safety (spec §4.4): a deleted product is skipped
		}
		productsByID[item.ProductID()] = p
	}

	var updated []*catalog.Product
	var movements []stock.Movement
	if sale {
		updated, movements = s.ledger.RecordSale(o, productsByID, at)
	} else {
		updated, movements = s.ledger.RevertSale(o, productsByID, at)
	}
	for _, p := range updated {
		if err := s.products.Save(ctx, p); err != nil {
			return fmt.Errorf("save product stock: %w", err)
		}
	}
	for _, m := range movements {
		if err := s.movements.Save(ctx, m); err != nil {
			return fmt.Errorf("save stock movement: %w", err)
		}
	}
	return nil
}

// CorrectClosedOrderInput describes the edit to replay against a closed
// order: an optional quantity change on an existing line, plus the
// replacement payment set the order must balance against afterward.
type CorrectClosedOrderInput struct {
	ItemID      string
	NewQuantity *int
	Payments    []PaymentInput
}

// CorrectClosedOrder is UoW-level choreography, not a new aggregate state
// (spec.md §6's "correct closed order" operation): reopen, replay the
// stock reversal, apply the edit, recompute, reclose against the new
// payment set, then re-apply the stock sale — all within one transaction.
func (s *Service) CorrectClosedOrder(ctx context.Context, orderID string, in CorrectClosedOrderInput) (*OrderView, error) {
	localID, err := s.locals.CurrentLocalID(ctx)
	if err != nil {
		return nil, err
	}
	at := s.clock.Now()

	domainPayments := make([]order.Payment, len(in.Payments))
	for i, p := range in.Payments {
		amount, err := decimal.NewFromString(p.Amount)
		if err != nil {
			return nil, shared.NewValidationError("order", "payments", "amount must be a decimal number")
		}
		domainPayments[i] = order.Payment{Medium: p.Medium, Amount: shared.NewMoney(amount), Timestamp: at}
	}

	var view *OrderView
	uow := s.uow.New()
	err = uow.Execute(ctx, func(ctx context.Context) error {
		o, err := s.orders.FindByID(ctx, orderID, localID)
		if err != nil {
			return err
		}

		if err := s.applyStockMovements(ctx, o, localID, at, false); err != nil {
			return err
		}
		if err := o.Reopen(at); err != nil {
			return err
		}

		if in.NewQuantity != nil {
			promotions, err := s.promotions.ListActiveByLocal(ctx, localID)
			if err != nil {
				return fmt.Errorf("list active promotions: %w", err)
			}
			if err := o.ModifyQuantity(in.ItemID, *in.NewQuantity, promotions, at); err != nil {
				return err
			}
		}

		if err := o.Close(domainPayments, at); err != nil {
			return err
		}
		if err := s.applyStockMovements(ctx, o, localID, at, true); err != nil {
			return err
		}
		uow.RegisterDirty(o)
		if err := s.orders.Save(ctx, o); err != nil {
			return fmt.Errorf("save order: %w", err)
		}
		view = toOrderView(o)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}
