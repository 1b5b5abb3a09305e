package product

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"productimport.GO/core/cache"
	productEntity "productimport.GO/model/entity/product"
	"productimport.GO/model/repository/catalog"
	"productimport.GO/service/product/data"
	"productimport.GO/service/product/meta"
)

// Storage writes batches of resolved products. Every batch is one
// transaction: it is stored completely or not at all.
type Storage struct {
	db       *gorm.DB
	meta     *meta.MetaData
	types    *TypeChanger
	children map[string]ChildStorage
	urlKeys  *urlKeyGenerator
	rewrites *urlRewriteStorage
}

// NewStorage wires the storage of one import run.
func NewStorage(db *gorm.DB, m *meta.MetaData, c *cache.Cache, s ValueSerializer, cfg ImportConfig) *Storage {
	children := defaultChildStorages()
	return &Storage{
		db:       db,
		meta:     m,
		types:    NewTypeChanger(children),
		children: children,
		urlKeys:  newURLKeyGenerator(db, m, c),
		rewrites: newURLRewriteStorage(m, s, cfg),
	}
}

// StoreProducts persists the records without errors and reports every
// record to the result callbacks. A non-nil error means the batch was
// rolled back.
func (s *Storage) StoreProducts(ctx context.Context, products []*data.Product, cfg ImportConfig) error {
	err := s.storeProducts(ctx, products, cfg)
	for _, p := range products {
		for _, cb := range cfg.ResultCallbacks {
			cb(p)
		}
	}
	return err
}

func (s *Storage) storeProducts(ctx context.Context, products []*data.Product, cfg ImportConfig) error {
	db := s.db.WithContext(ctx)

	if err := s.assignIDs(db, products); err != nil {
		return err
	}
	supplied := newSKUSupply(products)
	for _, p := range products {
		if p.ID != 0 || p.AttributeSet.State() != data.RefAbsent || s.meta.DefaultAttributeSetID == 0 {
			continue
		}
		if !supplied[p.SKU()].attributeSet {
			p.AttributeSet = data.Resolved[string, uint](s.meta.DefaultAttributeSetID)
		}
	}

	changes, err := s.checkTypes(db, products, cfg.ProductTypeChange)
	if err != nil {
		return err
	}
	if err := s.urlKeys.Generate(products, cfg); err != nil {
		return err
	}
	defer s.urlKeys.forget()
	validateProducts(products, s.meta)

	if cfg.DryRun {
		return nil
	}

	var valid []*data.Product
	existing := map[*data.Product]bool{}
	for _, p := range products {
		if p.OK() {
			valid = append(valid, p)
			existing[p] = p.ID != 0
		}
	}
	if len(valid) == 0 {
		return nil
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		return s.write(tx, valid, changes, cfg)
	})
	if err != nil {
		for _, p := range valid {
			if !existing[p] {
				p.ID = 0
			}
			p.AddError(fmt.Sprintf("batch failed: %v", err))
		}
		return fmt.Errorf("store batch: %w", err)
	}
	return nil
}

// assignIDs looks up the skus of the batch and gives existing records their
// id.
func (s *Storage) assignIDs(db *gorm.DB, products []*data.Product) error {
	skus := make([]string, 0, len(products))
	for _, p := range products {
		if p.SKU() != "" {
			skus = append(skus, p.SKU())
		}
	}
	ids, err := catalog.LookupSKUs(db, unique(skus))
	if err != nil {
		return err
	}
	for _, p := range products {
		if id, ok := ids[p.SKU()]; ok {
			p.ID = id
		}
	}
	return nil
}

func (s *Storage) checkTypes(db *gorm.DB, products []*data.Product, policy string) ([]typeChange, error) {
	ids := productIDs(products)
	if len(ids) == 0 {
		return nil, nil
	}
	oldTypes, err := loadTypes(db, ids)
	if err != nil {
		return nil, err
	}
	var nameID uint16
	if attr, ok := s.meta.Attribute("name"); ok {
		nameID = attr.ID
	}
	placeholders, err := loadPlaceholders(db, ids, nameID)
	if err != nil {
		return nil, err
	}
	changes := s.types.Check(products, oldTypes, placeholders, policy)
	clearWeightForVirtual(changes)
	return changes, nil
}

// write runs the batch inside tx in a fixed order: main rows, type cleanup,
// attributes, links, satellite tables, url rewrites.
func (s *Storage) write(tx *gorm.DB, products []*data.Product, changes []typeChange, cfg ImportConfig) error {
	var inserts, updates []*data.Product
	for _, p := range products {
		if p.ID == 0 {
			inserts = append(inserts, p)
		} else {
			updates = append(updates, p)
		}
	}

	snapshot, err := s.rewrites.Snapshot(tx, productIDs(updates))
	if err != nil {
		return err
	}
	if err := s.insertMainRows(tx, inserts, cfg.BatchSize); err != nil {
		return err
	}
	if err := s.updateMainRows(tx, updates, cfg.BatchSize); err != nil {
		return err
	}
	if err := s.types.Apply(tx, changes); err != nil {
		return err
	}

	eav := collectEAV(products, s.meta)
	batcher := newRowBatcher(cfg.BatchSize, cfg.MaxStatementBytes, eavRow.size)
	if err := flushEAV(tx, eav, s.meta, batcher, cfg.RawSQL); err != nil {
		return err
	}
	if err := s.linkCategories(tx, products, cfg.BatchSize); err != nil {
		return err
	}
	if err := s.linkWebsites(tx, products, cfg.BatchSize); err != nil {
		return err
	}
	if err := flushStock(tx, collectStock(products), cfg.BatchSize); err != nil {
		return fmt.Errorf("write stock: %w", err)
	}
	if err := flushTierPrices(tx, collectTierPrices(products), cfg.BatchSize); err != nil {
		return fmt.Errorf("write tier prices: %w", err)
	}
	if err := storeProductLinks(tx, products); err != nil {
		return fmt.Errorf("write product links: %w", err)
	}
	if err := s.storeChildren(tx, products); err != nil {
		return err
	}
	if err := s.rewrites.Update(tx, products, snapshot, cfg.SaveRewritesHistory); err != nil {
		return fmt.Errorf("write url rewrites: %w", err)
	}
	return nil
}

func mainRow(p *data.Product) productEntity.Product {
	row := productEntity.Product{EntityID: p.ID, SKU: p.SKU(), TypeID: p.Type}
	if id, ok := p.AttributeSet.Value(); ok {
		row.AttributeSetID = uint16(id)
	}
	if p.Type == data.TypeConfigurable || p.Type == data.TypeBundle {
		row.HasOptions = 1
		row.RequiredOptions = 1
	}
	return row
}

// insertMainRows creates catalog_product_entity rows for new skus and reads
// their ids back. Records sharing a sku share the row, which takes the
// attribute set of whichever record names one.
func (s *Storage) insertMainRows(tx *gorm.DB, products []*data.Product, batchSize int) error {
	if len(products) == 0 {
		return nil
	}
	index := map[string]int{}
	var rows []productEntity.Product
	var skus []string
	for _, p := range products {
		row := mainRow(p)
		if i, ok := index[p.SKU()]; ok {
			if rows[i].AttributeSetID == 0 {
				rows[i].AttributeSetID = row.AttributeSetID
			}
			continue
		}
		index[p.SKU()] = len(rows)
		rows = append(rows, row)
		skus = append(skus, p.SKU())
	}
	if err := tx.Session(&gorm.Session{SkipHooks: true}).CreateInBatches(&rows, batchSize).Error; err != nil {
		return fmt.Errorf("insert products: %w", err)
	}
	ids, err := catalog.LookupSKUs(tx, skus)
	if err != nil {
		return err
	}
	for _, p := range products {
		id, ok := ids[p.SKU()]
		if !ok {
			return fmt.Errorf("insert products: no id for sku %s", p.SKU())
		}
		p.ID = id
	}
	return nil
}

// updateMainRows upserts existing rows on their primary key. The attribute
// set is only touched when the record names one.
func (s *Storage) updateMainRows(tx *gorm.DB, products []*data.Product, batchSize int) error {
	seen := map[uint]bool{}
	var withSet, withoutSet []productEntity.Product
	for _, p := range products {
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		if p.AttributeSet.IsResolved() {
			withSet = append(withSet, mainRow(p))
		} else {
			withoutSet = append(withoutSet, mainRow(p))
		}
	}
	columns := []string{"type_id", "has_options", "required_options"}
	groups := []struct {
		rows    []productEntity.Product
		columns []string
	}{
		{withSet, append([]string{"attribute_set_id"}, columns...)},
		{withoutSet, columns},
	}
	for _, g := range groups {
		if len(g.rows) == 0 {
			continue
		}
		upsert := clause.OnConflict{
			Columns:   []clause.Column{{Name: "entity_id"}},
			DoUpdates: clause.AssignmentColumns(g.columns),
		}
		if err := tx.Session(&gorm.Session{SkipHooks: true}).Clauses(upsert).
			CreateInBatches(&g.rows, batchSize).Error; err != nil {
			return fmt.Errorf("update products: %w", err)
		}
	}
	return nil
}

// linkCategories adds category links that do not exist yet. Ids of unknown
// categories are skipped; they were reported while resolving.
func (s *Storage) linkCategories(tx *gorm.DB, products []*data.Product, batchSize int) error {
	var rows []productEntity.CategoryProduct
	for _, p := range products {
		ids, ok := p.Categories.Value()
		if !ok {
			continue
		}
		for _, id := range ids {
			if _, known := s.meta.Category(id); !known {
				continue
			}
			rows = append(rows, productEntity.CategoryProduct{CategoryID: id, ProductID: p.ID})
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, batchSize).Error; err != nil {
		return fmt.Errorf("link categories: %w", err)
	}
	return nil
}

func (s *Storage) linkWebsites(tx *gorm.DB, products []*data.Product, batchSize int) error {
	known := map[uint]bool{}
	for _, id := range s.meta.Websites {
		known[id] = true
	}
	var rows []productEntity.ProductWebsite
	for _, p := range products {
		ids, ok := p.Websites.Value()
		if !ok {
			continue
		}
		for _, id := range ids {
			if known[id] {
				rows = append(rows, productEntity.ProductWebsite{ProductID: p.ID, WebsiteID: uint16(id)})
			}
		}
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).CreateInBatches(&rows, batchSize).Error; err != nil {
		return fmt.Errorf("link websites: %w", err)
	}
	return nil
}

// storeChildren hands every record to the child storage of its type.
func (s *Storage) storeChildren(tx *gorm.DB, products []*data.Product) error {
	byType := map[string][]*data.Product{}
	for _, p := range products {
		byType[p.Type] = append(byType[p.Type], p)
	}
	for _, t := range []string{data.TypeGrouped, data.TypeConfigurable, data.TypeBundle, data.TypeDownloadable} {
		if len(byType[t]) == 0 {
			continue
		}
		if err := s.children[t].Store(tx, byType[t]); err != nil {
			return fmt.Errorf("write %s children: %w", t, err)
		}
	}
	return nil
}
