package mysql

import (
	"context"
	"fmt"

	"comandas/domain/stock"
	"comandas/infrastructure/persistence"
	"comandas/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type StockMovementRepository struct {
	db *gorm.DB
}

func NewStockMovementRepository(db *gorm.DB) *StockMovementRepository {
	return &StockMovementRepository{db: db}
}

func (r *StockMovementRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *StockMovementRepository) Save(ctx context.Context, m stock.Movement) error {
	if err := r.getDB(ctx).Create(po.FromMovement(m)).Error; err != nil {
		return fmt.Errorf("save stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepository) ListByProductAndLocalDesc(ctx context.Context, productID, localID string) ([]stock.Movement, error) {
	var rows []po.StockMovementPO
	err := r.getDB(ctx).
		Where("product_id = ? AND local_id = ?", productID, localID).
		Order("timestamp DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	movements := make([]stock.Movement, len(rows))
	for i, row := range rows {
		movements[i] = row.ToDomain()
	}
	return movements, nil
}

var _ stock.MovementRepository = (*StockMovementRepository)(nil)
