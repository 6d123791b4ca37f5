package mysql

import (
	"context"
	"fmt"
	"time"

	"comandas/domain/cashjournal"
	"comandas/infrastructure/persistence"
	"comandas/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CashMovementRepository struct {
	db *gorm.DB
}

func NewCashMovementRepository(db *gorm.DB) *CashMovementRepository {
	return &CashMovementRepository{db: db}
}

func (r *CashMovementRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CashMovementRepository) Save(ctx context.Context, m *cashjournal.Movement) error {
	if err := r.getDB(ctx).Create(po.FromCashMovement(m)).Error; err != nil {
		return fmt.Errorf("save cash movement: %w", err)
	}
	return nil
}

func (r *CashMovementRepository) ListByLocalInWindow(ctx context.Context, localID string, from, to time.Time) ([]cashjournal.Movement, error) {
	var rows []po.CashMovementPO
	err := r.getDB(ctx).
		Where("local_id = ? AND timestamp >= ? AND timestamp < ?", localID, from, to).
		Order("timestamp ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list cash movements in window: %w", err)
	}
	movements := make([]cashjournal.Movement, len(rows))
	for i, row := range rows {
		movements[i] = *row.ToDomain()
	}
	return movements, nil
}

// NextReceiptNumber formats a locally-prefixed sequential receipt number;
// the row lock over the local's existing movements serializes concurrent
// egresses within the same transaction.
func (r *CashMovementRepository) NextReceiptNumber(ctx context.Context, localID string) (string, error) {
	db := r.getDB(ctx)
	var count int64
	err := db.Model(&po.CashMovementPO{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("local_id = ?", localID).
		Count(&count).Error
	if err != nil {
		return "", fmt.Errorf("lock cash movement sequence: %w", err)
	}
	return fmt.Sprintf("%s-%06d", localID, count+1), nil
}

var _ cashjournal.MovementRepository = (*CashMovementRepository)(nil)
