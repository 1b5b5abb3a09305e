package product

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	priceEntity "productimport.GO/model/entity/price"
	priceRepo "productimport.GO/model/repository/price"
	"productimport.GO/service/product/data"
)

// priceData holds the tier price rows of the records that carry tier prices.
type priceData struct {
	owners []uint
	rows   []priceEntity.TierPrice
}

// collectTierPrices converts resolved tier prices. A record with a tier
// price list replaces all stored tier prices of the product.
func collectTierPrices(products []*data.Product) *priceData {
	d := &priceData{}
	for _, p := range products {
		if p.TierPrices == nil {
			continue
		}
		d.owners = append(d.owners, p.ID)
		for _, tp := range p.TierPrices {
			qty, _ := decimal.NewFromString(tp.Qty)
			value, _ := decimal.NewFromString(tp.Value)
			row := priceEntity.TierPrice{
				EntityID:  p.ID,
				AllGroups: 1,
			}
			row.Qty, _ = qty.Float64()
			row.Value, _ = value.Float64()
			if id, ok := tp.CustomerGroup.Value(); ok && !tp.AllGroups {
				row.AllGroups = 0
				row.CustomerGroupID = uint16(id)
			}
			if id, ok := tp.Website.Value(); ok {
				row.WebsiteID = uint16(id)
			}
			d.rows = append(d.rows, row)
		}
	}
	return d
}

func flushTierPrices(tx *gorm.DB, d *priceData, batchSize int) error {
	return priceRepo.NewTierPriceRepository(tx).ReplaceTierPrices(d.owners, d.rows, batchSize)
}
