package catalogapp

import "comandas/domain/catalog"

type ProductView struct {
	ID                      string  `json:"id"`
	Name                    string  `json:"name"`
	Price                   string  `json:"price"`
	Active                  bool    `json:"active"`
	Color                   string  `json:"color"`
	CategoryID              *string `json:"categoryId,omitempty"`
	VariantGroupID          *string `json:"variantGroupId,omitempty"`
	StructuralModifierCount *int    `json:"structuralModifierCount,omitempty"`
	IsExtra                 bool    `json:"isExtra"`
	IsStructuralModifier    bool    `json:"isStructuralModifier"`
	AdmitsExtras            bool    `json:"admitsExtras"`
	RequiresConfiguration   bool    `json:"requiresConfiguration"`
	StockTracked            bool    `json:"stockTracked"`
	CurrentStock            int     `json:"currentStock"`
}

func toProductView(p *catalog.Product) *ProductView {
	return &ProductView{
		ID:                      p.ID(),
		Name:                    p.Name(),
		Price:                   p.Price().String(),
		Active:                  p.Active(),
		Color:                   p.Color(),
		CategoryID:              p.CategoryID(),
		VariantGroupID:          p.VariantGroupID(),
		StructuralModifierCount: p.StructuralModifierCount(),
		IsExtra:                 p.IsExtra(),
		IsStructuralModifier:    p.IsStructuralModifier(),
		AdmitsExtras:            p.AdmitsExtras(),
		RequiresConfiguration:   p.RequiresConfiguration(),
		StockTracked:            p.StockTracked(),
		CurrentStock:            p.CurrentStock(),
	}
}

type CategoryView struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	Color              string  `json:"color"`
	AdmitsVariants     bool    `json:"admitsVariants"`
	IsExtraCategory    bool    `json:"isExtraCategory"`
	Ordering           int     `json:"ordering"`
	ModifierCategoryID *string `json:"modifierCategoryId,omitempty"`
}

func toCategoryView(c *catalog.Category) *CategoryView {
	return &CategoryView{
		ID:                 c.ID(),
		Name:               c.Name(),
		Color:              c.Color(),
		AdmitsVariants:     c.AdmitsVariants(),
		IsExtraCategory:    c.IsExtraCategory(),
		Ordering:           c.Ordering(),
		ModifierCategoryID: c.ModifierCategoryID(),
	}
}
