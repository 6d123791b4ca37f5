package catalog

import (
	"regexp"
	"strings"

	"comandas/domain/shared"

	"github.com/google/uuid"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-F]{6}$`)

const defaultColor = "#FFFFFF"

// Product is referenced by OrderItems by id only; deleting one must never
// orphan historical items, since they carry their own name/price snapshot.
type Product struct {
	id                      string
	localID                 string
	name                    string
	price                   shared.Money
	active                  bool
	color                   string
	categoryID              *string
	variantGroupID          *string
	structuralModifierCount *int
	isExtra                 bool
	isStructuralModifier    bool
	admitsExtras            bool
	requiresConfiguration   bool
	stockTracked            bool
	currentStock            int
	version                 int
}

type NewProductInput struct {
	LocalID                 string
	Name                    string
	Price                   shared.Money
	Color                   string
	CategoryID              *string
	VariantGroupID          *string
	StructuralModifierCount *int
	IsExtra                 bool
	IsStructuralModifier    bool
	AdmitsExtras            bool
	RequiresConfiguration   bool
	StockTracked            bool
}

func NewProduct(in NewProductInput) (*Product, error) {
	if in.LocalID == "" {
		return nil, shared.NewValidationError("product", "localId", "localId is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.NewValidationError("product", "name", "name is required")
	}
	if !in.Price.IsPositive() {
		return nil, shared.NewValidationError("product", "price", "price must be greater than zero")
	}
	color := normalizeColor(in.Color)
	if color == "" {
		return nil, shared.NewValidationError("product", "color", "color must be a valid hex value like #A1B2C3")
	}
	if in.StructuralModifierCount != nil && *in.StructuralModifierCount < 1 {
		return nil, shared.NewValidationError("product", "structuralModifierCount", "must be at least 1 when present")
	}
	if in.IsExtra && in.AdmitsExtras {
		return nil, shared.NewValidationError("product", "admitsExtras", "an extra product cannot itself admit extras")
	}

	return &Product{
		id:                      uuid.NewString(),
		localID:                 in.LocalID,
		name:                    strings.TrimSpace(in.Name),
		price:                   in.Price,
		active:                  true,
		color:                   color,
		categoryID:              in.CategoryID,
		variantGroupID:          in.VariantGroupID,
		structuralModifierCount: in.StructuralModifierCount,
		isExtra:                 in.IsExtra,
		isStructuralModifier:    in.IsStructuralModifier,
		admitsExtras:            in.AdmitsExtras,
		requiresConfiguration:   in.RequiresConfiguration,
		stockTracked:            in.StockTracked,
		currentStock:            0,
		version:                 0,
	}, nil
}

// normalizeColor validates and uppercases a hex color, returning "" if
// invalid, or the default white when blank.
func normalizeColor(color string) string {
	color = strings.TrimSpace(color)
	if color == "" {
		return defaultColor
	}
	upper := strings.ToUpper(color)
	if !hexColorRe.MatchString(upper) {
		return ""
	}
	return upper
}

func (p *Product) ID() string      { return p.id }
func (p *Product) Version() int    { return p.version }
func (p *Product) LocalID() string { return p.localID }
func (p *Product) Name() string    { return p.name }
func (p *Product) Price() shared.Money { return p.price }
func (p *Product) Active() bool        { return p.active }
func (p *Product) Color() string       { return p.color }
func (p *Product) CategoryID() *string { return p.categoryID }
func (p *Product) VariantGroupID() *string { return p.variantGroupID }
func (p *Product) StructuralModifierCount() *int { return p.structuralModifierCount }
func (p *Product) IsExtra() bool               { return p.isExtra }
func (p *Product) IsStructuralModifier() bool  { return p.isStructuralModifier }
func (p *Product) AdmitsExtras() bool          { return p.admitsExtras }
func (p *Product) RequiresConfiguration() bool { return p.requiresConfiguration }
func (p *Product) StockTracked() bool          { return p.stockTracked }
func (p *Product) CurrentStock() int           { return p.currentStock }

// CanReceiveExtras mirrors the invariant in spec §3: only products that
// admit extras and are not themselves extras may receive one.
func (p *Product) CanReceiveExtras() bool { return p.admitsExtras && !p.isExtra }

func (p *Product) Activate()   { p.active = true }
func (p *Product) Deactivate() { p.active = false }

func (p *Product) Rename(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewValidationError("product", "name", "name is required")
	}
	p.name = strings.TrimSpace(name)
	return nil
}

func (p *Product) Reprice(price shared.Money) error {
	if !price.IsPositive() {
		return shared.NewValidationError("product", "price", "price must be greater than zero")
	}
	p.price = price
	return nil
}

// ApplyStockDelta adjusts currentStock by delta, atomically switching
// stockTracked to true if it wasn't already (domain/stock.Ledger.ManualAdjust
// semantics — stock can go negative).
func (p *Product) ApplyStockDelta(delta int) {
	p.stockTracked = true
	p.currentStock += delta
}

// AdjustTrackedStock adjusts currentStock without touching stockTracked —
// used by sale/reversal movements, which only ever apply to products that
// are already tracked (spec §4.4: untracked products are skipped).
func (p *Product) AdjustTrackedStock(delta int) {
	p.currentStock += delta
}

func (p *Product) PullEvents() []shared.DomainEvent { return nil }

var _ shared.AggregateRoot = (*Product)(nil)

type ProductDTO struct {
	ID                      string
	LocalID                 string
	Name                    string
	Price                   shared.Money
	Active                  bool
	Color                   string
	CategoryID              *string
	VariantGroupID          *string
	StructuralModifierCount *int
	IsExtra                 bool
	IsStructuralModifier    bool
	AdmitsExtras            bool
	RequiresConfiguration   bool
	StockTracked            bool
	CurrentStock            int
	Version                 int
}

func RebuildProductFromDTO(dto ProductDTO) *Product {
	return &Product{
		id:                      dto.ID,
		localID:                 dto.LocalID,
		name:                    dto.Name,
		price:                   dto.Price,
		active:                  dto.Active,
		color:                   dto.Color,
		categoryID:              dto.CategoryID,
		variantGroupID:          dto.VariantGroupID,
		structuralModifierCount: dto.StructuralModifierCount,
		isExtra:                 dto.IsExtra,
		isStructuralModifier:    dto.IsStructuralModifier,
		admitsExtras:            dto.AdmitsExtras,
		requiresConfiguration:   dto.RequiresConfiguration,
		stockTracked:            dto.StockTracked,
		currentStock:            dto.CurrentStock,
		version:                 dto.Version,
	}
}

func (p *Product) ToDTO() ProductDTO {
	return ProductDTO{
		ID: p.id, LocalID: p.localID, Name: p.name, Price: p.price, Active: p.active,
		Color: p.color, CategoryID: p.categoryID, VariantGroupID: p.variantGroupID,
		StructuralModifierCount: p.structuralModifierCount, IsExtra: p.isExtra,
		IsStructuralModifier: p.isStructuralModifier, AdmitsExtras: p.admitsExtras,
		RequiresConfiguration: p.requiresConfiguration, StockTracked: p.stockTracked,
		CurrentStock: p.currentStock, Version: p.version,
	}
}
