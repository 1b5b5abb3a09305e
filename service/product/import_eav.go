package product

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"productimport.GO/service/product/data"
	"productimport.GO/service/product/meta"
)

// eavRow holds one EAV value. A nil Value is written as NULL.
type eavRow struct {
	EntityID    uint    `gorm:"column:entity_id"`
	AttributeID uint16  `gorm:"column:attribute_id"`
	StoreID     uint16  `gorm:"column:store_id"`
	Value       *string `gorm:"column:value"`
}

func (r eavRow) size() int {
	if r.Value == nil {
		return 24
	}
	return 24 + len(*r.Value)
}

// eavData holds collected EAV rows grouped by attribute code.
type eavData struct {
	groups map[string][]eavRow
	counts map[string]int
}

// collectEAV gathers plain values, tax classes and resolved options of all
// store views of products. Store views without a resolved store id are
// skipped.
func collectEAV(products []*data.Product, m *meta.MetaData) *eavData {
	d := &eavData{groups: map[string][]eavRow{}, counts: map[string]int{}}
	add := func(code string, p *data.Product, storeID uint, value *string) {
		attr, ok := m.Attribute(code)
		if !ok || attr.Table() == "" {
			return
		}
		d.groups[code] = append(d.groups[code], eavRow{
			EntityID:    p.ID,
			AttributeID: attr.ID,
			StoreID:     uint16(storeID),
			Value:       value,
		})
	}

	for _, p := range products {
		for _, sv := range p.StoreViews() {
			storeID, ok := sv.ResolvedStoreID()
			if !ok {
				continue
			}
			for _, code := range sv.AttributeCodes() {
				add(code, p, storeID, sv.Attributes()[code])
			}
			if id, ok := sv.TaxClass.Value(); ok {
				add("tax_class_id", p, storeID, strPtr(strconv.FormatUint(uint64(id), 10)))
			}
			for code, ref := range sv.Selects {
				if id, ok := ref.Value(); ok {
					add(code, p, storeID, strPtr(strconv.FormatUint(uint64(id), 10)))
				}
			}
			for code, ref := range sv.MultiSelects {
				if ids, ok := ref.Value(); ok {
					add(code, p, storeID, strPtr(joinIDs(ids)))
				}
			}
		}
	}
	return d
}

// flushEAV writes one multi-row upsert per attribute code, chunked by b.
func flushEAV(tx *gorm.DB, d *eavData, m *meta.MetaData, b rowBatcher[eavRow], raw bool) error {
	codes := make([]string, 0, len(d.groups))
	for code := range d.groups {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	upsert := clause.OnConflict{
		Columns:   []clause.Column{{Name: "entity_id"}, {Name: "attribute_id"}, {Name: "store_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}
	for _, code := range codes {
		attr, _ := m.Attribute(code)
		table := attr.Table()
		rows := d.groups[code]
		err := b.each(rows, func(chunk []eavRow) error {
			if raw {
				return rawBatchUpsert(tx, table, chunk)
			}
			return tx.Table(table).Clauses(upsert).Create(&chunk).Error
		})
		if err != nil {
			return fmt.Errorf("write %s: %w", code, err)
		}
		d.counts[attr.BackendType] += len(rows)
	}
	return nil
}

// rawBatchUpsert builds the multi-row statement by hand, skipping gorm's
// reflection for very large imports.
func rawBatchUpsert(tx *gorm.DB, table string, rows []eavRow) error {
	var b strings.Builder
	b.Grow(len(rows) * 60)
	b.WriteString("INSERT INTO ")
	b.WriteString(table)
	b.WriteString(" (entity_id, attribute_id, store_id, value) VALUES ")

	args := make([]interface{}, 0, len(rows)*4)
	for j, r := range rows {
		if j > 0 {
			b.WriteByte(',')
		}
		b.WriteString("(?,?,?,?)")
		args = append(args, r.EntityID, r.AttributeID, r.StoreID, r.Value)
	}
	if tx.Dialector.Name() == "mysql" {
		b.WriteString(" ON DUPLICATE KEY UPDATE value = VALUES(value)")
	} else {
		b.WriteString(" ON CONFLICT(entity_id, attribute_id, store_id) DO UPDATE SET value=excluded.value")
	}
	return tx.Exec(b.String(), args...).Error
}

func strPtr(s string) *string { return &s }

func joinIDs(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ",")
}
