package mysql

import (
	"context"
	"errors"
	"fmt"

	"comandas/domain/catalog"
	"comandas/domain/shared"
	"comandas/infrastructure/persistence"
	"comandas/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *CategoryRepository) FindByIDAndLocal(ctx context.Context, id, localID string) (*catalog.Category, error) {
	var row po.CategoryPO
	err := r.getDB(ctx).Where("id = ? AND local_id = ?", id, localID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError("category", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *CategoryRepository) ExistsByNameAndLocal(ctx context.Context, name, localID string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.CategoryPO{}).Where("name = ? AND local_id = ?", name, localID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check category name: %w", err)
	}
	return count > 0, nil
}

func (r *CategoryRepository) ListByLocal(ctx context.Context, localID string) ([]*catalog.Category, error) {
	var rows []po.CategoryPO
	if err := r.getDB(ctx).Where("local_id = ?", localID).Order("ordering ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list categories by local: %w", err)
	}
	categories := make([]*catalog.Category, len(rows))
	for i, row := range rows {
		categories[i] = row.ToDomain()
	}
	return categories, nil
}

func (r *CategoryRepository) Save(ctx context.Context, c *catalog.Category) error {
	row := po.FromCategory(c)
	db := r.getDB(ctx)

	result := db.Model(&po.CategoryPO{}).
		Where("id = ? AND version = ?", row.ID, row.Version-1).
		Updates(map[string]interface{}{
			"name": row.Name, "color": row.Color, "admits_variants": row.AdmitsVariants,
			"is_extra_category": row.IsExtraCategory, "ordering": row.Ordering,
			"modifier_category_id": row.ModifierCategoryID, "version": row.Version,
		})
	if result.Error != nil {
		return fmt.Errorf("save category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var exists int64
		db.Model(&po.CategoryPO{}).Where("id = ?", row.ID).Count(&exists)
		if exists == 0 {
			if err := db.Create(row).Error; err != nil {
				return fmt.Errorf("insert category: %w", err)
			}
			return nil
		}
		return shared.ErrConflict
	}
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id, localID string) error {
	result := r.getDB(ctx).Where("id = ? AND local_id = ?", id, localID).Delete(&po.CategoryPO{})
	if result.Error != nil {
		return fmt.Errorf("delete category: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("category", id)
	}
	return nil
}

var _ catalog.CategoryRepository = (*CategoryRepository)(nil)
