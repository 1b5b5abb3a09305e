package inventory

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventoryEntity "productimport.GO/model/entity/inventory"
)

type InventoryRepository struct {
	db *gorm.DB
}

// NewInventoryRepository works on db or on an open transaction.
func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// UpsertSourceItems writes MSI source items keyed by (source_code, sku).
// Existing items only get the listed columns updated; with none they are
// left as they are.
func (r *InventoryRepository) UpsertSourceItems(items []inventoryEntity.InventorySourceItem, columns []string, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	upsert := clause.OnConflict{Columns: []clause.Column{{Name: "source_code"}, {Name: "sku"}}}
	if len(columns) == 0 {
		upsert.DoNothing = true
	} else {
		upsert.DoUpdates = clause.AssignmentColumns(columns)
	}
	return r.db.Clauses(upsert).CreateInBatches(items, batchSize).Error
}

// GetBySourceAndSKU returns one source item, or nil when the sku has none
// at the source.
func (r *InventoryRepository) GetBySourceAndSKU(sourceCode, sku string) (*inventoryEntity.InventorySourceItem, error) {
	var items []inventoryEntity.InventorySourceItem
	err := r.db.Where("source_code = ? AND sku = ?", sourceCode, sku).Limit(1).Find(&items).Error
	if err != nil || len(items) == 0 {
		return nil, err
	}
	return &items[0], nil
}
