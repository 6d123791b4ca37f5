package variant

import (
	"testing"

	"comandas/domain/catalog"
	"comandas/domain/shared"
)

func mustProduct(t *testing.T, in catalog.NewProductInput) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(in)
	if err != nil {
		t.Fatalf("NewProduct: %v", err)
	}
	return p
}

func TestNormalize_StructuralExtraPromotesToExactSibling(t *testing.T) {
	group := "burgers"
	one, two, three := 1, 2, 3
	base := mustProduct(t, catalog.NewProductInput{LocalID: "burger-1", Name: "Burger", Price: shared.MoneyFromCents(1000), VariantGroupID: &group, StructuralModifierCount: &one})
	double := mustProduct(t, catalog.NewProductInput{LocalID: "burger-2", Name: "Double Burger", Price: shared.MoneyFromCents(1500), VariantGroupID: &group, StructuralModifierCount: &two})
	triple := mustProduct(t, catalog.NewProductInput{LocalID: "burger-3", Name: "Triple Burger", Price: shared.MoneyFromCents(2000), VariantGroupID: &group, StructuralModifierCount: &three})
	extraPatty := mustProduct(t, catalog.NewProductInput{LocalID: "extra-patty", Name: "Extra Patty", Price: shared.MoneyFromCents(300), IsExtra: true})

	structural := map[string]struct{}{extraPatty.ID(): {}}
	requested := []ExtraRequest{{ProductID: extraPatty.ID()}}
	siblings := []*catalog.Product{double, triple}

	result, err := Normalize(base, requested, siblings, structural)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if !result.ConversionHappened {
		t.Fatal("expected a conversion to the double burger")
	}
	if result.Product.ID() != double.ID() {
		t.Fatalf("expected sibling %q, got %q", double.Name(), result.Product.Name())
	}
	if len(result.FilteredExtras) != 0 {
		t.Fatalf("expected the structural extra to be absorbed, got %v", result.FilteredExtras)
	}

	// Idempotence: normalizing the already-normalized output changes nothing
	// further — the double burger already carries the absorbed modifier.
	again, err := Normalize(result.Product, result.FilteredExtras, siblings, structural)
	if err != nil {
		t.Fatalf("Normalize (second pass): %v", err)
	}
	if again.ConversionHappened {
		t.Fatal("expected no further conversion once the extras were already absorbed")
	}
	if again.Product.ID() != result.Product.ID() {
		t.Fatal("expected the product to remain stable across repeated normalization")
	}
	if len(again.FilteredExtras) != 0 {
		t.Fatalf("expected the extras list to remain empty, got %v", again.FilteredExtras)
	}
}

func TestNormalize_NoStructuralExtrasLeavesProductUnchanged(t *testing.T) {
	group := "burgers"
	one := 1
	base := mustProduct(t, catalog.NewProductInput{LocalID: "burger-1", Name: "Burger", Price: shared.MoneyFromCents(1000), VariantGroupID: &group, StructuralModifierCount: &one})
	cheese := mustProduct(t, catalog.NewProductInput{LocalID: "cheese", Name: "Cheese", Price: shared.MoneyFromCents(200), IsExtra: true})

	requested := []ExtraRequest{{ProductID: cheese.ID()}}
	result, err := Normalize(base, requested, nil, map[string]struct{}{})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if result.ConversionHappened {
		t.Fatal("a non-structural extra must not trigger a variant conversion")
	}
	if result.Product.ID() != base.ID() {
		t.Fatal("product must stay the selected one when nothing structural was requested")
	}
	if len(result.FilteredExtras) != 1 {
		t.Fatalf("expected the non-structural extra to pass through untouched, got %v", result.FilteredExtras)
	}
}

func TestNormalize_NonVariantProductIsAlwaysUnchanged(t *testing.T) {
	plain := mustProduct(t, catalog.NewProductInput{LocalID: "soda", Name: "Soda", Price: shared.MoneyFromCents(500)})
	requested := []ExtraRequest{{ProductID: "whatever"}}

	result, err := Normalize(plain, requested, nil, map[string]struct{}{"whatever": {}})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if result.ConversionHappened {
		t.Fatal("a product outside any variant group can never be converted")
	}
	if result.Product.ID() != plain.ID() || len(result.FilteredExtras) != 1 {
		t.Fatalf("expected the input to pass through untouched, got %+v", result)
	}
}

func TestNormalize_NoCompatibleSiblingFails(t *testing.T) {
	group := "burgers"
	one := 1
	base := mustProduct(t, catalog.NewProductInput{LocalID: "burger-1", Name: "Burger", Price: shared.MoneyFromCents(1000), VariantGroupID: &group, StructuralModifierCount: &one})
	extraPatty := mustProduct(t, catalog.NewProductInput{LocalID: "extra-patty", Name: "Extra Patty", Price: shared.MoneyFromCents(300), IsExtra: true})
	structural := map[string]struct{}{extraPatty.ID(): {}}
	requested := []ExtraRequest{{ProductID: extraPatty.ID()}}

	_, err := Normalize(base, requested, nil, structural)
	if err == nil {
		t.Fatal("expected an error when no sibling variant can absorb the structural extra")
	}
}

func TestNormalize_FallsBackToMaxCountSibling(t *testing.T) {
	group := "burgers"
	one, two := 1, 2
	base := mustProduct(t, catalog.NewProductInput{LocalID: "burger-1", Name: "Burger", Price: shared.MoneyFromCents(1000), VariantGroupID: &group, StructuralModifierCount: &one})
	double := mustProduct(t, catalog.NewProductInput{LocalID: "burger-2", Name: "Double Burger", Price: shared.MoneyFromCents(1500), VariantGroupID: &group, StructuralModifierCount: &two})
	extraPatty1 := mustProduct(t, catalog.NewProductInput{LocalID: "extra-patty", Name: "Extra Patty", Price: shared.MoneyFromCents(300), IsExtra: true})
	extraPatty2 := mustProduct(t, catalog.NewProductInput{LocalID: "extra-patty-2", Name: "Extra Patty 2", Price: shared.MoneyFromCents(300), IsExtra: true})

	structural := map[string]struct{}{extraPatty1.ID(): {}, extraPatty2.ID(): {}}
	// Two extra patties on a base burger (count 1) ask for target count 3,
	// but only a double (count 2) sibling exists: falls back to it.
	requested := []ExtraRequest{{ProductID: extraPatty1.ID()}, {ProductID: extraPatty2.ID()}}

	result, err := Normalize(base, requested, []*catalog.Product{double}, structural)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if result.Product.ID() != double.ID() {
		t.Fatalf("expected fallback to the highest-count sibling, got %q", result.Product.Name())
	}
	if len(result.FilteredExtras) != 1 {
		t.Fatalf("expected exactly one requested extra to survive (absorbed=1), got %v", result.FilteredExtras)
	}
}
