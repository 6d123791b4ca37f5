package order

import "comandas/domain/shared"

func ErrNotFound(id string) error { return shared.NewNotFoundError("order", id) }

func ErrImmutable(orderID string) error { return shared.NewOrderImmutableError(orderID) }

func ErrPaymentMismatch(expected, given shared.Money) error {
	return shared.NewPaymentMismatchError(expected.String(), given.String())
}

func ErrStructuralExtraNotAllowed(productName string) error {
	return shared.NewStructuralExtraNotAllowedError(productName)
}

func ErrItemNotFound(itemID string) error {
	return shared.NewValidationError("order_item", "itemId", "item "+itemID+" not found on order")
}
