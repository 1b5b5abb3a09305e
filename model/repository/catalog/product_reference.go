package catalog

import (
	"fmt"

	"gorm.io/gorm"

	"productimport.GO/core/cache"
	productEntity "productimport.GO/model/entity/product"
	"productimport.GO/service/product/data"
	"productimport.GO/service/product/meta"
)

const (
	statusDisabled = "2"
	lookupChunk    = 1000
)

// ProductReferenceResolver maps SKUs that records link to onto product ids.
// SKUs that do not exist yet get a disabled placeholder product; the real
// record replaces it when it is imported.
type ProductReferenceResolver struct {
	db    *gorm.DB
	meta  *meta.MetaData
	cache *cache.Cache
}

func NewProductReferenceResolver(db *gorm.DB, m *meta.MetaData, c *cache.Cache) *ProductReferenceResolver {
	return &ProductReferenceResolver{db: db, meta: m, cache: c}
}

func skuKey(sku string) string { return "sku:" + sku }

func (r *ProductReferenceResolver) ResolveSKUs(skus []string) (map[string]uint, error) {
	out := make(map[string]uint, len(skus))
	var lookup []string
	for _, sku := range skus {
		if id, ok := r.cache.Get(skuKey(sku)); ok {
			out[sku] = id.(uint)
			continue
		}
		lookup = append(lookup, sku)
	}

	found, err := LookupSKUs(r.db, lookup)
	if err != nil {
		return nil, err
	}
	var missing []string
	for _, sku := range lookup {
		if id, ok := found[sku]; ok {
			out[sku] = id
			r.cache.Set(skuKey(sku), id)
		} else {
			missing = append(missing, sku)
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	created, err := r.createPlaceholders(missing)
	if err != nil {
		return nil, err
	}
	for sku, id := range created {
		out[sku] = id
		r.cache.Set(skuKey(sku), id)
	}
	return out, nil
}

// LookupSKUs returns the entity ids of the skus that exist.
func LookupSKUs(db *gorm.DB, skus []string) (map[string]uint, error) {
	type skuRow struct {
		EntityID uint   `gorm:"column:entity_id"`
		SKU      string `gorm:"column:sku"`
	}
	ids := make(map[string]uint, len(skus))
	for i := 0; i < len(skus); i += lookupChunk {
		end := i + lookupChunk
		if end > len(skus) {
			end = len(skus)
		}
		var chunk []skuRow
		if err := db.Table("catalog_product_entity").Select("entity_id, sku").
			Where("sku IN ?", skus[i:end]).Find(&chunk).Error; err != nil {
			return nil, fmt.Errorf("lookup skus: %w", err)
		}
		for _, row := range chunk {
			ids[row.SKU] = row.EntityID
		}
	}
	return ids, nil
}

func (r *ProductReferenceResolver) createPlaceholders(skus []string) (map[string]uint, error) {
	var ids map[string]uint
	err := r.db.Transaction(func(tx *gorm.DB) error {
		rows := make([]productEntity.Product, 0, len(skus))
		for _, sku := range skus {
			rows = append(rows, productEntity.Product{
				SKU:            sku,
				TypeID:         data.TypeSimple,
				AttributeSetID: uint16(r.meta.DefaultAttributeSetID),
			})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return err
		}
		var err error
		if ids, err = LookupSKUs(tx, skus); err != nil {
			return err
		}

		name := data.PlaceholderName
		status := statusDisabled
		values := map[string]*string{"name": &name, "status": &status}
		for code, value := range values {
			attr, ok := r.meta.Attribute(code)
			if !ok || attr.Table() == "" {
				continue
			}
			type valueRow struct {
				EntityID    uint    `gorm:"column:entity_id"`
				AttributeID uint16  `gorm:"column:attribute_id"`
				StoreID     uint16  `gorm:"column:store_id"`
				Value       *string `gorm:"column:value"`
			}
			var vals []valueRow
			for _, id := range ids {
				vals = append(vals, valueRow{EntityID: id, AttributeID: attr.ID, Value: value})
			}
			if err := tx.Table(attr.Table()).Create(&vals).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create placeholders: %w", err)
	}
	return ids, nil
}
