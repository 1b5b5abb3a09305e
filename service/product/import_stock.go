package product

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	inventoryEntity "productimport.GO/model/entity/inventory"
	productEntity "productimport.GO/model/entity/product"
	inventoryRepo "productimport.GO/model/repository/inventory"
	"productimport.GO/service/product/data"
)

const defaultStockID = 1

// stockGroup holds the rows of records that supplied the same stock fields.
// Only those fields are updated on existing rows.
type stockGroup struct {
	itemColumns   []string
	sourceColumns []string
	rows          []productEntity.StockItem
	sources       []inventoryEntity.InventorySourceItem
}

// stockData holds collected stock rows ready to flush.
type stockData struct {
	groups map[[3]bool]*stockGroup
	order  [][3]bool
}

func (d *stockData) group(s *data.StockItem) *stockGroup {
	key := [3]bool{s.Qty != "", s.IsInStock != nil, s.ManageStock != nil}
	if g, ok := d.groups[key]; ok {
		return g
	}
	g := &stockGroup{}
	if key[0] {
		g.itemColumns = append(g.itemColumns, "qty")
		g.sourceColumns = append(g.sourceColumns, "quantity")
	}
	if key[1] {
		g.itemColumns = append(g.itemColumns, "is_in_stock")
		g.sourceColumns = append(g.sourceColumns, "status")
	}
	if key[2] {
		g.itemColumns = append(g.itemColumns, "manage_stock")
	}
	d.groups[key] = g
	d.order = append(d.order, key)
	return g
}

// collectStock turns the stock fields of records into legacy stock items and
// MSI source items for the default source. New rows get qty 0, out of stock
// and managed stock for fields the record leaves out.
func collectStock(products []*data.Product) *stockData {
	d := &stockData{groups: map[[3]bool]*stockGroup{}}
	for _, p := range products {
		if p.Stock == nil {
			continue
		}
		var q float64
		if p.Stock.Qty != "" {
			qty, _ := decimal.NewFromString(p.Stock.Qty)
			q, _ = qty.Float64()
		}
		inStock := uint16(0)
		if p.Stock.IsInStock != nil {
			inStock = boolFlag(*p.Stock.IsInStock)
		}
		manage := uint16(1)
		if p.Stock.ManageStock != nil {
			manage = boolFlag(*p.Stock.ManageStock)
		}
		g := d.group(p.Stock)
		g.rows = append(g.rows, productEntity.StockItem{
			ProductID:   p.ID,
			StockID:     defaultStockID,
			Qty:         q,
			IsInStock:   inStock,
			ManageStock: manage,
			MinSaleQty:  1,
		})
		g.sources = append(g.sources, inventoryEntity.InventorySourceItem{
			SourceCode: inventoryEntity.DefaultSourceCode,
			SKU:        p.SKU(),
			Quantity:   q,
			Status:     uint8(inStock),
		})
	}
	return d
}

// flushStock writes buffered stock items and source items.
func flushStock(tx *gorm.DB, d *stockData, batchSize int) error {
	sources := inventoryRepo.NewInventoryRepository(tx)
	for _, key := range d.order {
		g := d.groups[key]
		upsert := clause.OnConflict{Columns: []clause.Column{{Name: "product_id"}, {Name: "stock_id"}}}
		if len(g.itemColumns) == 0 {
			upsert.DoNothing = true
		} else {
			upsert.DoUpdates = clause.AssignmentColumns(g.itemColumns)
		}
		if err := tx.Clauses(upsert).CreateInBatches(g.rows, batchSize).Error; err != nil {
			return err
		}
		if err := sources.UpsertSourceItems(g.sources, g.sourceColumns, batchSize); err != nil {
			return err
		}
	}
	return nil
}
