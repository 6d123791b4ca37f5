package po

import "comandas/domain/table"

type TablePO struct {
	ID      string `gorm:"primaryKey;size:64"`
	LocalID string `gorm:"size:64;index;not null"`
	Number  int    `gorm:"not null"`
	State   string `gorm:"size:20;not null"`
	Version int    `gorm:"not null"`
}

func (TablePO) TableName() string { return "tables" }

func FromTable(t *table.Table) *TablePO {
	dto := t.ToDTO()
	return &TablePO{
		ID:      dto.ID,
		LocalID: dto.LocalID,
		Number:  dto.Number,
		State:   string(dto.State),
		Version: dto.Version,
	}
}

func (p *TablePO) ToDomain() *table.Table {
	return table.RebuildFromDTO(table.TableDTO{
		ID:      p.ID,
		LocalID: p.LocalID,
		Number:  p.Number,
		State:   table.State(p.State),
		Version: p.Version,
	})
}
