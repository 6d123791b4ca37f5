package tableapp

import "comandas/domain/table"

type TableView struct {
	ID      string `json:"id"`
	Number  int    `json:"number"`
	State   string `json:"state"`
	IsOpen  bool   `json:"isOpen"`
}

func toTableView(t *table.Table) *TableView {
	return &TableView{
		ID:     t.ID(),
		Number: t.Number(),
		State:  string(t.State()),
		IsOpen: t.IsOpen(),
	}
}
