package product

import (
	"fmt"

	"gorm.io/gorm"
)

// SchemaType is the key column of the EAV value tables.
type SchemaType int

const (
	SchemaUnknown SchemaType = iota
	SchemaEntityID
	SchemaRowID
)

func (s SchemaType) String() string {
	switch s {
	case SchemaEntityID:
		return "entity_id"
	case SchemaRowID:
		return "row_id"
	default:
		return "unknown"
	}
}

// DetectSchema inspects catalog_product_entity_varchar: Adobe Commerce with
// content staging keys EAV values by row_id, Open Source by entity_id.
func DetectSchema(db *gorm.DB) SchemaType {
	const table = "catalog_product_entity_varchar"
	m := db.Migrator()
	switch {
	case m.HasColumn(table, "row_id"):
		return SchemaRowID
	case m.HasColumn(table, "entity_id"):
		return SchemaEntityID
	default:
		return SchemaUnknown
	}
}

// CheckSchema refuses databases whose EAV tables are keyed by row_id.
func CheckSchema(db *gorm.DB) error {
	switch s := DetectSchema(db); s {
	case SchemaEntityID:
		return nil
	default:
		return fmt.Errorf("%w: eav tables keyed by %s", ErrUnsupportedSchema, s)
	}
}
