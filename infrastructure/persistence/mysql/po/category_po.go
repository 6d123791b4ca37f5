package po

import "comandas/domain/catalog"

type CategoryPO struct {
	ID                 string `gorm:"primaryKey;size:64"`
	LocalID            string `gorm:"size:64;index;not null"`
	Name               string `gorm:"size:200;not null"`
	Color              string `gorm:"size:7;not null"`
	AdmitsVariants     bool   `gorm:"not null"`
	IsExtraCategory    bool   `gorm:"not null"`
	Ordering           int    `gorm:"not null"`
	ModifierCategoryID *string `gorm:"size:64"`
	Version            int    `gorm:"not null"`
}

func (CategoryPO) TableName() string { return "categories" }

func FromCategory(c *catalog.Category) *CategoryPO {
	dto := c.ToDTO()
	return &CategoryPO{
		ID: dto.ID, LocalID: dto.LocalID, Name: dto.Name, Color: dto.Color,
		AdmitsVariants: dto.AdmitsVariants, IsExtraCategory: dto.IsExtraCategory,
		Ordering: dto.Ordering, ModifierCategoryID: dto.ModifierCategoryID, Version: dto.Version,
	}
}

func (p *CategoryPO) ToDomain() *catalog.Category {
	return catalog.RebuildCategoryFromDTO(catalog.CategoryDTO{
		ID: p.ID, LocalID: p.LocalID, Name: p.Name, Color: p.Color,
		AdmitsVariants: p.AdmitsVariants, IsExtraCategory: p.IsExtraCategory,
		Ordering: p.Ordering, ModifierCategoryID: p.ModifierCategoryID, Version: p.Version,
	})
}
