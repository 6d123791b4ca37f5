package promotion

import "comandas/domain/shared"

func ErrNotFound(id string) error { return shared.NewNotFoundError("promotion", id) }

func ErrNameTaken(name string) error { return shared.NewConflictingNameError("promotion", name) }
