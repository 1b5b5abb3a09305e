package price

import (
	"gorm.io/gorm"

	priceEntity "productimport.GO/model/entity/price"
)

// TierPriceRepository writes catalog_product_entity_tier_price.
type TierPriceRepository struct {
	db *gorm.DB
}

// NewTierPriceRepository works on db or on an open transaction.
func NewTierPriceRepository(db *gorm.DB) *TierPriceRepository {
	return &TierPriceRepository{db: db}
}

// ReplaceTierPrices removes every tier price of productIDs and writes rows.
// Products listed with no rows end up without tier prices.
func (r *TierPriceRepository) ReplaceTierPrices(productIDs []uint, rows []priceEntity.TierPrice, batchSize int) error {
	if len(productIDs) == 0 {
		return nil
	}
	if err := r.db.Where("entity_id IN ?", productIDs).Delete(&priceEntity.TierPrice{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return r.db.CreateInBatches(rows, batchSize).Error
}

// GetTierPricesByProductID returns the tier prices of a product by qty.
func (r *TierPriceRepository) GetTierPricesByProductID(productID uint) ([]TierPriceResult, error) {
	var rows []priceEntity.TierPrice
	if err := r.db.Where("entity_id = ?", productID).Order("qty ASC, customer_group_id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	results := make([]TierPriceResult, 0, len(rows))
	for _, tp := range rows {
		results = append(results, TierPriceResult{
			CustomerGroupID: tp.CustomerGroupID,
			Qty:             tp.Qty,
			Value:           tp.Value,
			AllGroups:       tp.AllGroups,
			WebsiteID:       tp.WebsiteID,
		})
	}
	return results, nil
}

// TierPriceResult holds tier price query result
type TierPriceResult struct {
	CustomerGroupID uint16  `json:"customer_group_id"`
	Qty             float64 `json:"qty"`
	Value           float64 `json:"value"`
	AllGroups       uint8   `json:"all_groups"`
	WebsiteID       uint16  `json:"website_id"`
}
