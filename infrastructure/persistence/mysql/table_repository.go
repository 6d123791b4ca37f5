package mysql

import (
	"context"
	"errors"
	"fmt"

	"comandas/domain/shared"
	"comandas/domain/table"
	"comandas/infrastructure/persistence"
	"comandas/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type TableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *TableRepository) ListByLocal(ctx context.Context, localID string) ([]*table.Table, error) {
	var rows []po.TablePO
	if err := r.getDB(ctx).Where("local_id = ?", localID).Order("number ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list tables by local: %w", err)
	}
	tables := make([]*table.Table, len(rows))
	for i, row := range rows {
		tables[i] = row.ToDomain()
	}
	return tables, nil
}

func (r *TableRepository) FindByID(ctx context.Context, id, localID string) (*table.Table, error) {
	var row po.TablePO
	err := r.getDB(ctx).Where("id = ? AND local_id = ?", id, localID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError("table", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find table: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *TableRepository) Save(ctx context.Context, t *table.Table) error {
	row := po.FromTable(t)
	db := r.getDB(ctx)

	result := db.Model(&po.TablePO{}).
		Where("id = ? AND version = ?", row.ID, row.Version-1).
		Updates(map[string]interface{}{
			"number": row.Number, "state": row.State, "version": row.Version,
		})
	if result.Error != nil {
		return fmt.Errorf("save table: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var exists int64
		db.Model(&po.TablePO{}).Where("id = ?", row.ID).Count(&exists)
		if exists == 0 {
			if err := db.Create(row).Error; err != nil {
				return fmt.Errorf("insert table: %w", err)
			}
			return nil
		}
		return shared.ErrConflict
	}
	return nil
}

func (r *TableRepository) ExistsByNumberAndLocal(ctx context.Context, number int, localID string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.TablePO{}).Where("number = ? AND local_id = ?", number, localID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check table number: %w", err)
	}
	return count > 0, nil
}

func (r *TableRepository) CountOpenByLocal(ctx context.Context, localID string) (int, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.TablePO{}).Where("local_id = ? AND state = ?", localID, "OPEN").Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count open tables: %w", err)
	}
	return int(count), nil
}

var _ table.Repository = (*TableRepository)(nil)
