package po

import (
	"comandas/domain/catalog"
	"comandas/domain/shared"

	"github.com/shopspring/decimal"
)

type ProductPO struct {
	ID                      string          `gorm:"primaryKey;size:64"`
	LocalID                 string          `gorm:"size:64;index;not null"`
	Name                    string          `gorm:"size:200;not null"`
	Price                   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Active                  bool            `gorm:"not null"`
	Color                   string          `gorm:"size:7;not null"`
	CategoryID              *string         `gorm:"size:64;index"`
	VariantGroupID          *string         `gorm:"size:64;index"`
	StructuralModifierCount *int
	IsExtra                 bool `gorm:"not null"`
	IsStructuralModifier    bool `gorm:"not null"`
	AdmitsExtras            bool `gorm:"not null"`
	RequiresConfiguration   bool `gorm:"not null"`
	StockTracked            bool `gorm:"not null"`
	CurrentStock            int  `gorm:"not null"`
	Version                 int  `gorm:"not null"`
}

func (ProductPO) TableName() string { return "products" }

func FromProduct(p *catalog.Product) *ProductPO {
	dto := p.ToDTO()
	return &ProductPO{
		ID: dto.ID, LocalID: dto.LocalID, Name: dto.Name, Price: dto.Price.Decimal(),
		Active: dto.Active, Color: dto.Color, CategoryID: dto.CategoryID,
		VariantGroupID: dto.VariantGroupID, StructuralModifierCount: dto.StructuralModifierCount,
		IsExtra: dto.IsExtra, IsStructuralModifier: dto.IsStructuralModifier,
		AdmitsExtras: dto.AdmitsExtras, RequiresConfiguration: dto.RequiresConfiguration,
		StockTracked: dto.StockTracked, CurrentStock: dto.CurrentStock, Version: dto.Version,
	}
}

func (p *ProductPO) ToDomain() *catalog.Product {
	return catalog.RebuildProductFromDTO(catalog.ProductDTO{
		ID: p.ID, LocalID: p.LocalID, Name: p.Name, Price: shared.NewMoney(p.Price),
		Active: p.Active, Color: p.Color, CategoryID: p.CategoryID,
		VariantGroupID: p.VariantGroupID, StructuralModifierCount: p.StructuralModifierCount,
		IsExtra: p.IsExtra, IsStructuralModifier: p.IsStructuralModifier,
		AdmitsExtras: p.AdmitsExtras, RequiresConfiguration: p.RequiresConfiguration,
		StockTracked: p.StockTracked, CurrentStock: p.CurrentStock, Version: p.Version,
	})
}
