package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"comandas/domain/order"
	"comandas/domain/shared"
	"comandas/infrastructure/persistence"
	"comandas/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *OrderRepository) findOne(ctx context.Context, cond string, args ...interface{}) (*order.Order, error) {
	var row po.OrderPO
	err := r.getDB(ctx).Preload("Items.Extras").Where(cond, args...).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError("order", fmt.Sprint(args))
	}
	if err != nil {
		return nil, fmt.Errorf("find order: %w", err)
	}
	return row.ToDomain()
}

func (r *OrderRepository) FindByID(ctx context.Context, id, localID string) (*order.Order, error) {
	return r.findOne(ctx, "id = ? AND local_id = ?", id, localID)
}

func (r *OrderRepository) FindOpenByTable(ctx context.Context, tableID, localID string) (*order.Order, error) {
	var row po.OrderPO
	err := r.getDB(ctx).Preload("Items.Extras").
		Where("table_id = ? AND local_id = ? AND state = ?", tableID, localID, string(order.Open)).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError("order", tableID)
	}
	if err != nil {
		return nil, fmt.Errorf("find open order: %w", err)
	}
	return row.ToDomain()
}

func (r *OrderRepository) FindByTableAndState(ctx context.Context, tableID, localID string, state order.State) ([]*order.Order, error) {
	var rows []po.OrderPO
	err := r.getDB(ctx).Preload("Items.Extras").
		Where("table_id = ? AND local_id = ? AND state = ?", tableID, localID, string(state)).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list orders by table and state: %w", err)
	}
	return toOrders(rows)
}

func (r *OrderRepository) ListClosedInWindow(ctx context.Context, localID string, from, to time.Time) ([]*order.Order, error) {
	var rows []po.OrderPO
	err := r.getDB(ctx).Preload("Items.Extras").
		Where("local_id = ? AND state = ? AND closed_at >= ? AND closed_at < ?", localID, string(order.Closed), from, to).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list closed orders in window: %w", err)
	}
	return toOrders(rows)
}

func toOrders(rows []po.OrderPO) ([]*order.Order, error) {
	orders := make([]*order.Order, len(rows))
	for i, row := range rows {
		o, err := row.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("decode order %s: %w", row.ID, err)
		}
		orders[i] = o
	}
	return orders, nil
}

// NextOrderNumber locks the local's highest order number row (if any) so
// concurrent opens within the same transaction serialize instead of racing.
func (r *OrderRepository) NextOrderNumber(ctx context.Context, localID string) (int, error) {
	db := r.getDB(ctx)
	var max int
	err := db.Model(&po.OrderPO{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("local_id = ?", localID).
		Select("COALESCE(MAX(number), 0)").
		Scan(&max).Error
	if err != nil {
		return 0, fmt.Errorf("lock order sequence: %w", err)
	}
	return max + 1, nil
}

// Save replaces the order's item/extra rows wholesale on every write: order
// mutation always flows through the aggregate's own methods, never a
// partial field update, so there is no incremental diff worth computing.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	row, err := po.FromOrder(o)
	if err != nil {
		return fmt.Errorf("encode order: %w", err)
	}
	db := r.getDB(ctx)

	result := db.Model(&po.OrderPO{}).
		Where("id = ? AND version = ?", row.ID, row.Version-1).
		Updates(map[string]interface{}{
			"state": row.State, "closed_at": row.ClosedAt, "payments_json": row.PaymentsJSON,
			"global_discount_kind": row.GlobalDiscountKind, "global_discount_value": row.GlobalDiscountValue,
			"global_discount_reason": row.GlobalDiscountReason, "global_discount_user_id": row.GlobalDiscountUserID,
			"global_discount_at": row.GlobalDiscountAt, "snapshot_subtotal": row.SnapshotSubtotal,
			"snapshot_discount_total": row.SnapshotDiscountTotal, "snapshot_final_total": row.SnapshotFinalTotal,
			"version": row.Version,
		})
	if result.Error != nil {
		return fmt.Errorf("save order: %w", result.Error)
	}

	isNew := false
	if result.RowsAffected == 0 {
		var exists int64
		db.Model(&po.OrderPO{}).Where("id = ?", row.ID).Count(&exists)
		if exists == 0 {
			if err := db.Omit("Items").Create(row).Error; err != nil {
				return fmt.Errorf("insert order: %w", err)
			}
			isNew = true
		} else {
			return shared.ErrConflict
		}
	}

	if !isNew {
		var itemIDs []string
		if err := db.Model(&po.OrderItemPO{}).Where("order_id = ?", row.ID).Pluck("id", &itemIDs).Error; err != nil {
			return fmt.Errorf("list existing order items: %w", err)
		}
		if len(itemIDs) > 0 {
			if err := db.Where("order_item_id IN ?", itemIDs).Delete(&po.ExtraLinePO{}).Error; err != nil {
				return fmt.Errorf("clear order item extras: %w", err)
			}
			if err := db.Where("order_id = ?", row.ID).Delete(&po.OrderItemPO{}).Error; err != nil {
				return fmt.Errorf("clear order items: %w", err)
			}
		}
	}
	for i := range row.Items {
		if err := db.Create(&row.Items[i]).Error; err != nil {
			return fmt.Errorf("save order item: %w", err)
		}
	}

	return nil
}

var _ order.Repository = (*OrderRepository)(nil)
