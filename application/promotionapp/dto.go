package promotionapp

import (
	"time"

	"comandas/domain/promotion"
)

// ScopeItemInput mirrors promotion.ScopeItem at the API boundary; CATEGORY
// references are expanded to their member products before the aggregate is
// built (promotion/scope.go: "the engine only ever sees opaque product-id
// membership").
type ScopeItemInput struct {
	ReferenceID   string
	ReferenceKind promotion.ReferenceKind
	Role          promotion.Role
}

type PromotionView struct {
	ID          string                       `json:"id"`
	Name        string                       `json:"name"`
	Description string                       `json:"description"`
	Priority    int                          `json:"priority"`
	State       string                       `json:"state"`
	Strategy    promotion.Strategy           `json:"strategy"`
	Criteria    []promotion.ActivationCriterion `json:"criteria"`
	Scope       promotion.Scope              `json:"scope"`
	CreatedAt   time.Time                    `json:"createdAt"`
}

func toPromotionView(p *promotion.Promotion) *PromotionView {
	return &PromotionView{
		ID:          p.ID(),
		Name:        p.Name(),
		Description: p.Description(),
		Priority:    p.Priority(),
		State:       string(p.State()),
		Strategy:    p.Strategy(),
		Criteria:    p.Criteria(),
		Scope:       p.Scope(),
		CreatedAt:   p.CreatedAt(),
	}
}
