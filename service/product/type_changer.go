package product

import (
	"fmt"

	"gorm.io/gorm"

	"productimport.GO/service/product/data"
)

// typeChange is a planned conversion of an existing product.
type typeChange struct {
	product *data.Product
	oldType string
}

// typesLosingData are the types whose child rows are dropped on conversion.
var typesLosingData = map[string]bool{
	data.TypeGrouped:      true,
	data.TypeBundle:       true,
	data.TypeConfigurable: true,
	data.TypeDownloadable: true,
}

// TypeChanger checks type transitions of existing products against the
// configured policy and removes the child rows of the old type.
type TypeChanger struct {
	children map[string]ChildStorage
}

func NewTypeChanger(children map[string]ChildStorage) *TypeChanger {
	return &TypeChanger{children: children}
}

// loadTypes fetches the stored type_id of every product id.
func loadTypes(tx *gorm.DB, ids []uint) (map[uint]string, error) {
	type typeRow struct {
		EntityID uint   `gorm:"column:entity_id"`
		TypeID   string `gorm:"column:type_id"`
	}
	types := make(map[uint]string, len(ids))
	for _, chunk := range chunkIDs(ids, 1000) {
		var rows []typeRow
		if err := tx.Table("catalog_product_entity").Select("entity_id, type_id").
			Where("entity_id IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load product types: %w", err)
		}
		for _, r := range rows {
			types[r.EntityID] = r.TypeID
		}
	}
	return types, nil
}

// loadPlaceholders returns the ids among ids whose stored admin name is the
// placeholder name.
func loadPlaceholders(tx *gorm.DB, ids []uint, nameAttributeID uint16) (map[uint]bool, error) {
	out := map[uint]bool{}
	if len(ids) == 0 || nameAttributeID == 0 {
		return out, nil
	}
	for _, chunk := range chunkIDs(ids, 1000) {
		var found []uint
		if err := tx.Table("catalog_product_entity_varchar").
			Where("entity_id IN ? AND attribute_id = ? AND store_id = 0 AND value = ?", chunk, nameAttributeID, data.PlaceholderName).
			Pluck("entity_id", &found).Error; err != nil {
			return nil, fmt.Errorf("load placeholders: %w", err)
		}
		for _, id := range found {
			out[id] = true
		}
	}
	return out, nil
}

// Check compares the record type with the stored one. Records whose change
// is not allowed get an error; the allowed changes are returned.
func (c *TypeChanger) Check(products []*data.Product, oldTypes map[uint]string, placeholders map[uint]bool, policy string) []typeChange {
	var changes []typeChange
	for _, p := range products {
		if p.ID == 0 {
			continue
		}
		old, ok := oldTypes[p.ID]
		if !ok || old == p.Type {
			continue
		}
		if msg := c.policyViolation(p, old, placeholders[p.ID], policy); msg != "" {
			p.AddError(msg)
			continue
		}
		if old != data.TypeSimple && old != data.TypeVirtual && !typesLosingData[old] {
			p.AddError(fmt.Sprintf("Type conversion from %s to %s is not supported", old, p.Type))
			continue
		}
		changes = append(changes, typeChange{product: p, oldType: old})
	}
	return changes
}

func (c *TypeChanger) policyViolation(p *data.Product, old string, placeholder bool, policy string) string {
	switch policy {
	case TypeChangeForbidden:
		// a placeholder is replaced by its real record, whatever its type
		if placeholder || p.Name() == data.PlaceholderName {
			return ""
		}
		return "Type conversion is not allowed"
	case TypeChangeNonDestructive:
		if typesLosingData[old] || p.Type == data.TypeVirtual {
			return fmt.Sprintf("Type conversion losing data from %s to %s is not allowed", old, p.Type)
		}
	}
	return ""
}

// Apply removes the child rows of the old types. Only records still without
// errors are touched.
func (c *TypeChanger) Apply(tx *gorm.DB, changes []typeChange) error {
	byOldType := map[string][]*data.Product{}
	for _, ch := range changes {
		if !ch.product.OK() {
			continue
		}
		byOldType[ch.oldType] = append(byOldType[ch.oldType], ch.product)
	}
	for oldType, products := range byOldType {
		storage, ok := c.children[oldType]
		if !ok {
			continue
		}
		if err := storage.Remove(tx, products); err != nil {
			return fmt.Errorf("remove %s children: %w", oldType, err)
		}
	}
	return nil
}

// clearWeightForVirtual makes a product that becomes virtual lose its weight
// on every store view it carries.
func clearWeightForVirtual(changes []typeChange) {
	for _, ch := range changes {
		if ch.product.Type != data.TypeVirtual {
			continue
		}
		ch.product.Global()
		for _, sv := range ch.product.StoreViews() {
			sv.ClearAttribute("weight")
		}
	}
}
