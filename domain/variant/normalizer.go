// Package variant implements the pure structural-variant normalizer: when a
// structural modifier (e.g. an extra meat patty) is requested as an extra,
// the normalizer resolves which sibling variant (e.g. double burger) the
// line should actually use, and strips the extras it absorbed.
package variant

import (
	"comandas/domain/catalog"
	"comandas/domain/shared"
)

// ExtraRequest is the minimal shape the normalizer needs from a requested
// extra: which product it is. The application layer (orderapp) maps its
// request DTOs into this; domain/order passes them to Normalize and
// reassembles the result afterward.
type ExtraRequest struct {
	ProductID string
}

// Result is the normalizer's pure output: the product the line should
// actually use, the filtered extra list, and whether a conversion happened
// at all (so the caller can decide whether to re-snapshot the line name).
type Result struct {
	Product           *catalog.Product
	FilteredExtras     []ExtraRequest
	ConversionHappened bool
}

// Normalize is a pure function of its inputs (spec §4.3): no repository
// access, no side effects. structuralModifierIDs is the set of product ids
// flagged IsStructuralModifier in the local's catalog.
func Normalize(selected *catalog.Product, requested []ExtraRequest, siblings []*catalog.Product, structuralModifierIDs map[string]struct{}) (Result, error) {
	if selected.VariantGroupID() == nil {
		return Result{Product: selected, FilteredExtras: requested, ConversionHappened: false}, nil
	}

	m := 0
	for _, e := range requested {
		if _, ok := structuralModifierIDs[e.ProductID]; ok {
			m++
		}
	}
	if m == 0 {
		return Result{Product: selected, FilteredExtras: requested, ConversionHappened: false}, nil
	}

	if selected.StructuralModifierCount() == nil {
		return Result{}, shared.NewStructuralExtraNotAllowedError(selected.Name())
	}
	target := *selected.StructuralModifierCount() + m

	winner, ok := pickSibling(siblings, target)
	if !ok {
		return Result{}, shared.NewStructuralExtraNotAllowedError(selected.Name())
	}

	absorbed := 0
	if winner.StructuralModifierCount() != nil {
		absorbed = *winner.StructuralModifierCount() - *selected.StructuralModifierCount()
	}
	if absorbed < 0 {
		absorbed = 0
	}

	filtered := make([]ExtraRequest, 0, len(requested))
	removed := 0
	for _, e := range requested {
		_, isStructural := structuralModifierIDs[e.ProductID]
		if isStructural && removed < absorbed {
			removed++
			continue
		}
		filtered = append(filtered, e)
	}

	return Result{Product: winner, FilteredExtras: filtered, ConversionHappened: true}, nil
}

// pickSibling implements steps 4 of spec §4.3: the sibling with count
// exactly equal to target, or failing that, the one with the maximum count.
func pickSibling(siblings []*catalog.Product, target int) (*catalog.Product, bool) {
	var maxProduct *catalog.Product
	maxCount := -1
	for _, s := range siblings {
		if s.StructuralModifierCount() == nil {
			continue
		}
		count := *s.StructuralModifierCount()
		if count == target {
			return s, true
		}
		if count > maxCount {
			maxCount = count
			maxProduct = s
		}
	}
	if maxProduct == nil {
		return nil, false
	}
	return maxProduct, true
}
