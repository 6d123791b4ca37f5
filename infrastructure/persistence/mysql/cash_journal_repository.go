package mysql

import (
	"context"
	"fmt"
	"time"

	"comandas/domain/cashjournal"
	"comandas/infrastructure/persistence"
	"comandas/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type CashJournalRepository struct {
	db *gorm.DB
}

func NewCashJournalRepository(db *gorm.DB) *CashJournalRepository {
	return &CashJournalRepository{db: db}
}

func (r *CashJournalRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

// Save always inserts: a CashJournal is never mutated once closed.
func (r *CashJournalRepository) Save(ctx context.Context, j *cashjournal.CashJournal) error {
	if err := r.getDB(ctx).Create(po.FromCashJournal(j)).Error; err != nil {
		return fmt.Errorf("save cash journal: %w", err)
	}
	return nil
}

func (r *CashJournalRepository) ExistsForLocalAndDate(ctx context.Context, localID string, date time.Time) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.CashJournalPO{}).
		Where("local_id = ? AND operative_date = ?", localID, date).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check existing cash journal: %w", err)
	}
	return count > 0, nil
}

func (r *CashJournalRepository) ListByLocalInDateRange(ctx context.Context, localID string, from, to time.Time) ([]*cashjournal.CashJournal, error) {
	var rows []po.CashJournalPO
	err := r.getDB(ctx).
		Where("local_id = ? AND operative_date >= ? AND operative_date < ?", localID, from, to).
		Order("operative_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list cash journals: %w", err)
	}
	journals := make([]*cashjournal.CashJournal, len(rows))
	for i, row := range rows {
		journals[i] = row.ToDomain()
	}
	return journals, nil
}

var _ cashjournal.Repository = (*CashJournalRepository)(nil)
