package promotion

import "comandas/domain/shared"

type ReferenceKind string

const (
	ReferenceProduct  ReferenceKind = "PRODUCT"
	ReferenceCategory ReferenceKind = "CATEGORY"
)

type Role string

const (
	RoleTarget  Role = "TARGET"
	RoleTrigger Role = "TRIGGER"
)

// ScopeItem is one member of a promotion's scope. Category expansion (a
// CATEGORY reference matching every product in that category) happens at
// scope-construction time in the application layer; the engine only ever
// sees opaque product-id membership (spec §4.2: "the engine treats scope
// as opaque membership").
type ScopeItem struct {
	ReferenceID   string
	ReferenceKind ReferenceKind
	Role          Role
}

type Scope []ScopeItem

// Validate enforces spec §3's scope invariants: no duplicate referenceId,
// at least one TARGET, and TRIGGERs only meaningful for ComboConditional
// (enforced by the caller, since the strategy isn't known here).
func (s Scope) Validate() error {
	seen := make(map[string]struct{}, len(s))
	hasTarget := false
	for _, item := range s {
		if _, dup := seen[item.ReferenceID]; dup {
			return shared.NewValidationError("promotion", "scope", "duplicate referenceId in scope: "+item.ReferenceID)
		}
		seen[item.ReferenceID] = struct{}{}
		if item.Role == RoleTarget {
			hasTarget = true
		}
	}
	if !hasTarget {
		return shared.NewValidationError("promotion", "scope", "scope must contain at least one TARGET")
	}
	return nil
}

// HasTarget reports whether productID is a TARGET member of the scope.
func (s Scope) HasTarget(productID string) bool {
	for _, item := range s {
		if item.Role == RoleTarget && item.ReferenceID == productID {
			return true
		}
	}
	return false
}

// TriggerQtyInOrder sums the quantity of every TRIGGER product present in
// productQtys (productID -> cumulative quantity in the order).
func (s Scope) TriggerQtyInOrder(productQtys map[string]int) int {
	total := 0
	for _, item := range s {
		if item.Role != RoleTrigger {
			continue
		}
		total += productQtys[item.ReferenceID]
	}
	return total
}

func (s Scope) HasTrigger() bool {
	for _, item := range s {
		if item.Role == RoleTrigger {
			return true
		}
	}
	return false
}
