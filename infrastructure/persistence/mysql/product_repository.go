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

type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *ProductRepository) FindByID(ctx context.Context, id string) (*catalog.Product, error) {
	var row po.ProductPO
	err := r.getDB(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError("product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *ProductRepository) FindByIDAndLocal(ctx context.Context, id, localID string) (*catalog.Product, error) {
	var row po.ProductPO
	err := r.getDB(ctx).Where("id = ? AND local_id = ?", id, localID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError("product", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *ProductRepository) ExistsByNameAndLocal(ctx context.Context, name, localID string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.ProductPO{}).Where("name = ? AND local_id = ?", name, localID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check product name: %w", err)
	}
	return count > 0, nil
}

func (r *ProductRepository) ListByLocal(ctx context.Context, localID string) ([]*catalog.Product, error) {
	var rows []po.ProductPO
	if err := r.getDB(ctx).Where("local_id = ?", localID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list products by local: %w", err)
	}
	products := make([]*catalog.Product, len(rows))
	for i, row := range rows {
		products[i] = row.ToDomain()
	}
	return products, nil
}

func (r *ProductRepository) ListByGroup(ctx context.Context, variantGroupID, localID string) ([]*catalog.Product, error) {
	var rows []po.ProductPO
	err := r.getDB(ctx).Where("variant_group_id = ? AND local_id = ?", variantGroupID, localID).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list products by group: %w", err)
	}
	products := make([]*catalog.Product, len(rows))
	for i, row := range rows {
		products[i] = row.ToDomain()
	}
	return products, nil
}

// ListStructuralModifierIDs feeds the order item's structural-extra
// compatibility check (spec §3/§4) without loading full Product aggregates.
func (r *ProductRepository) ListStructuralModifierIDs(ctx context.Context, localID string) (map[string]struct{}, error) {
	var ids []string
	err := r.getDB(ctx).Model(&po.ProductPO{}).
		Where("local_id = ? AND is_structural_modifier = ?", localID, true).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list structural modifier ids: %w", err)
	}
	result := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		result[id] = struct{}{}
	}
	return result, nil
}

func (r *ProductRepository) Save(ctx context.Context, p *catalog.Product) error {
	row := po.FromProduct(p)
	db := r.getDB(ctx)

	result := db.Model(&po.ProductPO{}).
		Where("id = ? AND version = ?", row.ID, row.Version-1).
		Updates(map[string]interface{}{
			"name": row.Name, "price": row.Price, "active": row.Active, "color": row.Color,
			"category_id": row.CategoryID, "variant_group_id": row.VariantGroupID,
			"structural_modifier_count": row.StructuralModifierCount, "is_extra": row.IsExtra,
			"is_structural_modifier": row.IsStructuralModifier, "admits_extras": row.AdmitsExtras,
			"requires_configuration": row.RequiresConfiguration, "stock_tracked": row.StockTracked,
			"current_stock": row.CurrentStock, "version": row.Version,
		})
	if result.Error != nil {
		return fmt.Errorf("save product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		var exists int64
		db.Model(&po.ProductPO{}).Where("id = ?", row.ID).Count(&exists)
		if exists == 0 {
			if err := db.Create(row).Error; err != nil {
				return fmt.Errorf("insert product: %w", err)
			}
			return nil
		}
		return shared.ErrConflict
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id, localID string) error {
	result := r.getDB(ctx).Where("id = ? AND local_id = ?", id, localID).Delete(&po.ProductPO{})
	if result.Error != nil {
		return fmt.Errorf("delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("product", id)
	}
	return nil
}

var _ catalog.ProductRepository = (*ProductRepository)(nil)
