package mysql

import (
	"context"
	"errors"
	"fmt"

	"comandas/domain/promotion"
	"comandas/domain/shared"
	"comandas/infrastructure/persistence"
	"comandas/infrastructure/persistence/mysql/po"

	"gorm.io/gorm"
)

type PromotionRepository struct {
	db *gorm.DB
}

func NewPromotionRepository(db *gorm.DB) *PromotionRepository {
	return &PromotionRepository{db: db}
}

func (r *PromotionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx := persistence.TxFromContext(ctx); tx != nil {
		return tx
	}
	return r.db.WithContext(ctx)
}

func (r *PromotionRepository) FindByIDAndLocal(ctx context.Context, id, localID string) (*promotion.Promotion, error) {
	var row po.PromotionPO
	err := r.getDB(ctx).Preload("Scope").Where("id = ? AND local_id = ?", id, localID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewNotFoundError("promotion", id)
	}
	if err != nil {
		return nil, fmt.Errorf("find promotion: %w", err)
	}
	return row.ToDomain()
}

func (r *PromotionRepository) ListActiveByLocal(ctx context.Context, localID string) ([]*promotion.Promotion, error) {
	var rows []po.PromotionPO
	err := r.getDB(ctx).Preload("Scope").
		Where("local_id = ? AND state = ?", localID, "ACTIVE").
		Order("priority DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list active promotions: %w", err)
	}
	promotions := make([]*promotion.Promotion, len(rows))
	for i, row := range rows {
		p, err := row.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("decode promotion %s: %w", row.ID, err)
		}
		promotions[i] = p
	}
	return promotions, nil
}

func (r *PromotionRepository) ExistsByNameAndLocal(ctx context.Context, name, localID string) (bool, error) {
	var count int64
	err := r.getDB(ctx).Model(&po.PromotionPO{}).Where("name = ? AND local_id = ?", name, localID).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check promotion name: %w", err)
	}
	return count > 0, nil
}

// Save writes the promotion row and replaces its scope child rows wholesale;
// scope is small and rewritten on every edit, so there's no value in diffing.
func (r *PromotionRepository) Save(ctx context.Context, p *promotion.Promotion) error {
	row, err := po.FromPromotion(p)
	if err != nil {
		return fmt.Errorf("encode promotion: %w", err)
	}
	db := r.getDB(ctx)

	result := db.Model(&po.PromotionPO{}).
		Where("id = ? AND version = ?", row.ID, row.Version-1).
		Updates(map[string]interface{}{
			"name": row.Name, "description": row.Description, "priority": row.Priority, "state": row.State,
			"strategy_kind": row.StrategyKind, "mode": row.Mode, "percent_value": row.PercentValue,
			"fixed_value": row.FixedValue, "take_n": row.TakeN, "pay_m": row.PayM,
			"min_trigger_qty": row.MinTriggerQty, "benefit_pct": row.BenefitPct,
			"activate_at_k": row.ActivateAtK, "pack_price": row.PackPrice,
			"criteria_json": row.CriteriaJSON, "version": row.Version,
		})
	if result.Error != nil {
		return fmt.Errorf("save promotion: %w", result.Error)
	}

	isNew := false
	if result.RowsAffected == 0 {
		var exists int64
		db.Model(&po.PromotionPO{}).Where("id = ?", row.ID).Count(&exists)
		if exists == 0 {
			if err := db.Create(row).Error; err != nil {
				return fmt.Errorf("insert promotion: %w", err)
			}
			isNew = true
		} else {
			return shared.ErrConflict
		}
	}

	if !isNew {
		if err := db.Where("promotion_id = ?", row.ID).Delete(&po.PromotionScopeItemPO{}).Error; err != nil {
			return fmt.Errorf("clear promotion scope: %w", err)
		}
		for i := range row.Scope {
			if err := db.Create(&row.Scope[i]).Error; err != nil {
				return fmt.Errorf("save promotion scope: %w", err)
			}
		}
	}

	return nil
}

var _ promotion.Repository = (*PromotionRepository)(nil)
