package po

import (
	"encoding/json"
	"fmt"
	"time"

	"comandas/domain/promotion"
	"comandas/domain/shared"

	"github.com/shopspring/decimal"
)

// PromotionPO flattens Strategy's variant fields onto the row (every
// strategy kind only ever populates a handful of them) and JSON-encodes
// Criteria, whose shape varies more widely per kind.
type PromotionPO struct {
	ID          string          `gorm:"primaryKey;size:64"`
	LocalID     string          `gorm:"size:64;index;not null"`
	Name        string          `gorm:"size:200;not null"`
	Description string          `gorm:"size:1000"`
	Priority    int             `gorm:"not null"`
	State       string          `gorm:"size:20;not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	Version     int             `gorm:"not null"`

	StrategyKind  string           `gorm:"size:30;not null"`
	Mode          string           `gorm:"size:10"`
	PercentValue  *decimal.Decimal `gorm:"type:decimal(5,2)"`
	FixedValue    *decimal.Decimal `gorm:"type:decimal(12,2)"`
	TakeN         int
	PayM          int
	MinTriggerQty int
	BenefitPct    *decimal.Decimal `gorm:"type:decimal(5,2)"`
	ActivateAtK   int
	PackPrice     *decimal.Decimal `gorm:"type:decimal(12,2)"`

	CriteriaJSON string `gorm:"type:json;not null"`

	Scope []PromotionScopeItemPO `gorm:"foreignKey:PromotionID;references:ID"`
}

func (PromotionPO) TableName() string { return "promotions" }

// PromotionScopeItemPO is the scope child table (spec SPEC_FULL §3): a
// unique constraint on (promotion_id, reference_id) mirrors Scope's
// no-duplicate-referenceId invariant at the storage layer.
type PromotionScopeItemPO struct {
	PromotionID   string `gorm:"primaryKey;size:64;uniqueIndex:idx_promotion_scope_ref"`
	ReferenceID   string `gorm:"primaryKey;size:64;uniqueIndex:idx_promotion_scope_ref"`
	ReferenceKind string `gorm:"size:20;not null"`
	Role          string `gorm:"size:10;not null"`
}

func (PromotionScopeItemPO) TableName() string { return "promotion_scope_items" }

// criterionJSON is the wire shape for one ActivationCriterion; only the
// fields relevant to Kind are populated, matching the domain struct.
type criterionJSON struct {
	Kind               string   `json:"kind"`
	From               *time.Time `json:"from,omitempty"`
	To                 *time.Time `json:"to,omitempty"`
	Weekdays           []int    `json:"weekdays,omitempty"`
	FromHour           int      `json:"fromHour"`
	ToHour             int      `json:"toHour"`
	RequiredProductIDs []string `json:"requiredProductIds,omitempty"`
	Threshold          string   `json:"threshold,omitempty"`
}

func criteriaToJSON(criteria []promotion.ActivationCriterion) (string, error) {
	wire := make([]criterionJSON, len(criteria))
	for i, c := range criteria {
		w := criterionJSON{Kind: string(c.Kind), FromHour: c.FromHour, ToHour: c.ToHour}
		if !c.From.IsZero() {
			from := c.From
			w.From = &from
		}
		if !c.To.IsZero() {
			to := c.To
			w.To = &to
		}
		for wd := range c.Weekdays {
			w.Weekdays = append(w.Weekdays, int(wd))
		}
		w.RequiredProductIDs = c.RequiredProductIDs
		if c.Kind == promotion.CriterionMinAmount {
			w.Threshold = c.Threshold.String()
		}
		wire[i] = w
	}
	raw, err := json.Marshal(wire)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func criteriaFromJSON(raw string) ([]promotion.ActivationCriterion, error) {
	var wire []criterionJSON
	if err := json.Unmarshal([]byte(raw), &wire); err != nil {
		return nil, fmt.Errorf("decode criteria json: %w", err)
	}
	criteria := make([]promotion.ActivationCriterion, len(wire))
	for i, w := range wire {
		c := promotion.ActivationCriterion{
			Kind: promotion.CriterionKind(w.Kind), FromHour: w.FromHour, ToHour: w.ToHour,
			RequiredProductIDs: w.RequiredProductIDs,
		}
		if w.From != nil {
			c.From = *w.From
		}
		if w.To != nil {
			c.To = *w.To
		}
		if len(w.Weekdays) > 0 {
			c.Weekdays = make(map[time.Weekday]struct{}, len(w.Weekdays))
			for _, wd := range w.Weekdays {
				c.Weekdays[time.Weekday(wd)] = struct{}{}
			}
		}
		if w.Threshold != "" {
			v, err := decimal.NewFromString(w.Threshold)
			if err != nil {
				return nil, fmt.Errorf("decode criterion threshold: %w", err)
			}
			c.Threshold = shared.NewMoney(v)
		}
		criteria[i] = c
	}
	return criteria, nil
}

func FromPromotion(p *promotion.Promotion) (*PromotionPO, error) {
	dto := p.ToDTO()
	criteriaJSON, err := criteriaToJSON(dto.Criteria)
	if err != nil {
		return nil, fmt.Errorf("encode criteria: %w", err)
	}

	strat := dto.Strategy
	po := &PromotionPO{
		ID: dto.ID, LocalID: dto.LocalID, Name: dto.Name, Description: dto.Description,
		Priority: dto.Priority, State: string(dto.State), CreatedAt: dto.CreatedAt, Version: dto.Version,
		StrategyKind: string(strat.Kind), Mode: string(strat.Mode),
		TakeN: strat.TakeN, PayM: strat.PayM, MinTriggerQty: strat.MinTriggerQty, ActivateAtK: strat.ActivateAtK,
		CriteriaJSON: criteriaJSON,
	}
	if strat.Kind == promotion.DirectDiscount {
		if strat.Mode == promotion.ModePercent {
			v := strat.PercentValue.Decimal()
			po.PercentValue = &v
		} else {
			v := strat.FixedValue.Decimal()
			po.FixedValue = &v
		}
	}
	if strat.Kind == promotion.ComboConditional {
		v := strat.BenefitPct.Decimal()
		po.BenefitPct = &v
	}
	if strat.Kind == promotion.FixedPricePack {
		v := strat.PackPrice.Decimal()
		po.PackPrice = &v
	}

	po.Scope = make([]PromotionScopeItemPO, len(dto.Scope))
	for i, item := range dto.Scope {
		po.Scope[i] = PromotionScopeItemPO{
			PromotionID: dto.ID, ReferenceID: item.ReferenceID,
			ReferenceKind: string(item.ReferenceKind), Role: string(item.Role),
		}
	}
	return po, nil
}

func (p *PromotionPO) ToDomain() (*promotion.Promotion, error) {
	criteria, err := criteriaFromJSON(p.CriteriaJSON)
	if err != nil {
		return nil, err
	}

	strat := promotion.Strategy{
		Kind: promotion.StrategyKind(p.StrategyKind), Mode: promotion.DiscountMode(p.Mode),
		TakeN: p.TakeN, PayM: p.PayM, MinTriggerQty: p.MinTriggerQty, ActivateAtK: p.ActivateAtK,
	}
	if p.PercentValue != nil {
		strat.PercentValue = shared.NewMoney(*p.PercentValue)
	}
	if p.FixedValue != nil {
		strat.FixedValue = shared.NewMoney(*p.FixedValue)
	}
	if p.BenefitPct != nil {
		strat.BenefitPct = shared.NewMoney(*p.BenefitPct)
	}
	if p.PackPrice != nil {
		strat.PackPrice = shared.NewMoney(*p.PackPrice)
	}

	scope := make(promotion.Scope, len(p.Scope))
	for i, item := range p.Scope {
		scope[i] = promotion.ScopeItem{
			ReferenceID: item.ReferenceID, ReferenceKind: promotion.ReferenceKind(item.ReferenceKind),
			Role: promotion.Role(item.Role),
		}
	}

	return promotion.RebuildFromDTO(promotion.ReconstructionDTO{
		ID: p.ID, LocalID: p.LocalID, Name: p.Name, Description: p.Description,
		Priority: p.Priority, State: promotion.State(p.State), Strategy: strat, Criteria: criteria,
		Scope: scope, CreatedAt: p.CreatedAt, Version: p.Version,
	}), nil
}
