package table

import (
	"strconv"

	"comandas/domain/shared"
)

func ErrNotFound(id string) error { return shared.NewNotFoundError("table", id) }

func ErrNumberTaken(number int) error {
	return shared.NewConflictingNameError("table", strconv.Itoa(number))
}
