// Package resolvers loads what the GraphQL schema exposes: import log
// entries and the stored state of imported products.
package resolvers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"

	"productimport.GO/model/entity/importlog"
	inventoryEntity "productimport.GO/model/entity/inventory"
	productEntity "productimport.GO/model/entity/product"
	inventoryRepo "productimport.GO/model/repository/inventory"
	priceRepo "productimport.GO/model/repository/price"
	productService "productimport.GO/service/product"
)

type ImportRun struct {
	RunID   string
	Total   int32
	Failed  int32
	Entries []*ImportLogEntry
}

type ImportLogEntry struct {
	SKU       string
	ProductID int32
	Line      int32
	OK        bool
	Errors    []string
	CreatedAt string
}

type ImportedProduct struct {
	ID             int32
	SKU            string
	TypeID         string
	AttributeSetID int32
	Quantity       *float64
	TierPrices     []*TierPrice
	URLRewrites    []*UrlRewrite
}

type TierPrice struct {
	Qty             float64
	Value           float64
	AllGroups       bool
	CustomerGroupID int32
	WebsiteID       int32
}

type UrlRewrite struct {
	RequestPath  string
	TargetPath   string
	RedirectType int32
	StoreID      int32
	CategoryID   *int32
}

// Resolver runs the queries against one database.
type Resolver struct {
	db      *gorm.DB
	storeID uint16
}

func NewResolver(db *gorm.DB, storeID uint16) *Resolver {
	return &Resolver{db: db, storeID: storeID}
}

// ImportRun returns the log of runID. Total and Failed count every entry,
// Entries honours failedOnly.
func (r *Resolver) ImportRun(ctx context.Context, runID string, failedOnly bool) (*ImportRun, error) {
	var rows []importlog.ImportLog
	if err := r.db.WithContext(ctx).Where("run_id = ?", runID).Order("log_id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load import log: %w", err)
	}
	run := &ImportRun{RunID: runID, Total: int32(len(rows)), Entries: []*ImportLogEntry{}}
	for _, row := range rows {
		if !row.OK {
			run.Failed++
		} else if failedOnly {
			continue
		}
		entry := &ImportLogEntry{
			SKU:       row.SKU,
			ProductID: int32(row.ProductID),
			Line:      int32(row.LineNo),
			OK:        row.OK,
			Errors:    []string{},
			CreatedAt: row.CreatedAt.Format(time.RFC3339),
		}
		if len(row.Errors) > 0 {
			if err := json.Unmarshal(row.Errors, &entry.Errors); err != nil || entry.Errors == nil {
				entry.Errors = []string{}
			}
		}
		run.Entries = append(run.Entries, entry)
	}
	return run, nil
}

// Product returns the stored row, default source quantity, tier prices and
// url rewrites of sku, or nil when the
// sku does not exist.
func (r *Resolver) Product(ctx context.Context, sku string) (*ImportedProduct, error) {
	db := r.db.WithContext(ctx)
	var rows []productEntity.Product
	if err := db.Where("sku = ?", sku).Limit(1).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p := rows[0]

	q := db.Where("entity_type = ? AND entity_id = ?", "product", p.EntityID)
	if r.storeID != 0 {
		q = q.Where("store_id = ?", r.storeID)
	}
	var rewrites []productEntity.UrlRewrite
	if err := q.Order("store_id, request_path").Find(&rewrites).Error; err != nil {
		return nil, fmt.Errorf("load url rewrites: %w", err)
	}
	serializer, err := productService.NewValueSerializer(db, "")
	if err != nil {
		return nil, err
	}

	out := &ImportedProduct{
		ID:             int32(p.EntityID),
		SKU:            p.SKU,
		TypeID:         p.TypeID,
		AttributeSetID: int32(p.AttributeSetID),
		URLRewrites:    make([]*UrlRewrite, 0, len(rewrites)),
	}
	source, err := inventoryRepo.NewInventoryRepository(db).GetBySourceAndSKU(inventoryEntity.DefaultSourceCode, p.SKU)
	if err != nil {
		return nil, fmt.Errorf("load source item: %w", err)
	}
	if source != nil {
		qty := source.Quantity
		out.Quantity = &qty
	}
	prices, err := priceRepo.NewTierPriceRepository(db).GetTierPricesByProductID(p.EntityID)
	if err != nil {
		return nil, fmt.Errorf("load tier prices: %w", err)
	}
	out.TierPrices = make([]*TierPrice, 0, len(prices))
	for _, tp := range prices {
		out.TierPrices = append(out.TierPrices, &TierPrice{
			Qty:             tp.Qty,
			Value:           tp.Value,
			AllGroups:       tp.AllGroups == 1,
			CustomerGroupID: int32(tp.CustomerGroupID),
			WebsiteID:       int32(tp.WebsiteID),
		})
	}

	for _, rw := range rewrites {
		item := &UrlRewrite{
			RequestPath:  rw.RequestPath,
			TargetPath:   rw.TargetPath,
			RedirectType: int32(rw.RedirectType),
			StoreID:      int32(rw.StoreID),
		}
		if rw.Metadata != nil {
			if id, err := strconv.ParseInt(serializer.Extract(*rw.Metadata, "category_id"), 10, 32); err == nil {
				cid := int32(id)
				item.CategoryID = &cid
			}
		}
		out.URLRewrites = append(out.URLRewrites, item)
	}
	return out, nil
}
