package catalog

import (
	"strings"

	"comandas/domain/shared"

	"github.com/google/uuid"
)

// Category groups products. ModifierCategoryID, when set, restricts the
// extras offered to products of this category to products of that other
// category (spec §3: "products of category A offer modifiers drawn only
// from category B").
type Category struct {
	id                string
	localID           string
	name              string
	color             string
	admitsVariants    bool
	isExtraCategory   bool
	ordering          int
	modifierCategoryID *string
	version           int
}

type NewCategoryInput struct {
	LocalID            string
	Name               string
	Color              string
	AdmitsVariants     bool
	IsExtraCategory    bool
	Ordering           int
	ModifierCategoryID *string
}

func NewCategory(in NewCategoryInput) (*Category, error) {
	if in.LocalID == "" {
		return nil, shared.NewValidationError("category", "localId", "localId is required")
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, shared.NewValidationError("category", "name", "name is required")
	}
	color := normalizeColor(in.Color)
	if color == "" {
		return nil, shared.NewValidationError("category", "color", "color must be a valid hex value like #A1B2C3")
	}
	return &Category{
		id:                 uuid.NewString(),
		localID:            in.LocalID,
		name:               strings.TrimSpace(in.Name),
		color:              color,
		admitsVariants:     in.AdmitsVariants,
		isExtraCategory:    in.IsExtraCategory,
		ordering:           in.Ordering,
		modifierCategoryID: in.ModifierCategoryID,
		version:            0,
	}, nil
}

func (c *Category) ID() string      { return c.id }
func (c *Category) Version() int    { return c.version }
func (c *Category) LocalID() string { return c.localID }
func (c *Category) Name() string    { return c.name }
func (c *Category) Color() string   { return c.color }
func (c *Category) AdmitsVariants() bool     { return c.admitsVariants }
func (c *Category) IsExtraCategory() bool    { return c.isExtraCategory }
func (c *Category) Ordering() int            { return c.ordering }
func (c *Category) ModifierCategoryID() *string { return c.modifierCategoryID }

func (c *Category) PullEvents() []shared.DomainEvent { return nil }

var _ shared.AggregateRoot = (*Category)(nil)

type CategoryDTO struct {
	ID                 string
	LocalID            string
	Name               string
	Color              string
	AdmitsVariants     bool
	IsExtraCategory    bool
	Ordering           int
	ModifierCategoryID *string
	Version            int
}

func RebuildCategoryFromDTO(dto CategoryDTO) *Category {
	return &Category{
		id: dto.ID, localID: dto.LocalID, name: dto.Name, color: dto.Color,
		admitsVariants: dto.AdmitsVariants, isExtraCategory: dto.IsExtraCategory,
		ordering: dto.Ordering, modifierCategoryID: dto.ModifierCategoryID, version: dto.Version,
	}
}

func (c *Category) ToDTO() CategoryDTO {
	return CategoryDTO{
		ID: c.id, LocalID: c.localID, Name: c.name, Color: c.color,
		AdmitsVariants: c.admitsVariants, IsExtraCategory: c.isExtraCategory,
		Ordering: c.ordering, ModifierCategoryID: c.modifierCategoryID, Version: c.version,
	}
}
