package product

import (
	"fmt"
	"sort"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	productEntity "productimport.GO/model/entity/product"
	"productimport.GO/service/product/data"
	"productimport.GO/service/product/meta"
)

const (
	rewriteEntityType = "product"
	productTargetPath = "catalog/product/view/id/"
)

// rewriteSnapshot holds url keys and category links of existing products as
// they were before the batch wrote anything.
type rewriteSnapshot struct {
	// urlKeys[productID][storeID]
	urlKeys    map[uint]map[uint]string
	categories map[uint]map[uint]bool
}

func (s *rewriteSnapshot) has(productID uint) bool {
	_, ok := s.urlKeys[productID]
	return ok
}

// existingRewrite is a stored url_rewrite row of a product.
type existingRewrite struct {
	UrlRewriteID uint    `gorm:"column:url_rewrite_id"`
	EntityID     uint    `gorm:"column:entity_id"`
	RequestPath  string  `gorm:"column:request_path"`
	TargetPath   string  `gorm:"column:target_path"`
	RedirectType uint16  `gorm:"column:redirect_type"`
	StoreID      uint16  `gorm:"column:store_id"`
	Metadata     *string `gorm:"column:metadata"`
}

// urlRewriteStorage regenerates the url_rewrite rows of products whose
// url_key or categories changed.
type urlRewriteStorage struct {
	meta       *meta.MetaData
	serializer ValueSerializer
	batcher    rowBatcher[productEntity.UrlRewrite]
}

func newURLRewriteStorage(m *meta.MetaData, s ValueSerializer, cfg ImportConfig) *urlRewriteStorage {
	return &urlRewriteStorage{
		meta:       m,
		serializer: s,
		batcher: newRowBatcher(cfg.BatchSize, cfg.MaxStatementBytes, func(r productEntity.UrlRewrite) int {
			n := len(r.RequestPath) + len(r.TargetPath) + 40
			if r.Metadata != nil {
				n += len(*r.Metadata)
			}
			return n
		}),
	}
}

// Snapshot reads the current url keys (all stores) and direct category
// links of the given existing products.
func (s *urlRewriteStorage) Snapshot(tx *gorm.DB, productIDs []uint) (*rewriteSnapshot, error) {
	snap := &rewriteSnapshot{urlKeys: map[uint]map[uint]string{}, categories: map[uint]map[uint]bool{}}
	if len(productIDs) == 0 {
		return snap, nil
	}
	keys, err := s.loadURLKeys(tx, productIDs)
	if err != nil {
		return nil, err
	}
	snap.urlKeys = keys
	cats, err := loadCategoryLinks(tx, productIDs)
	if err != nil {
		return nil, err
	}
	snap.categories = cats
	return snap, nil
}

func (s *urlRewriteStorage) loadURLKeys(tx *gorm.DB, productIDs []uint) (map[uint]map[uint]string, error) {
	out := map[uint]map[uint]string{}
	attr, ok := s.meta.Attribute("url_key")
	if !ok {
		return out, nil
	}
	for _, chunk := range chunkIDs(productIDs, 1000) {
		var rows []productEntity.ProductVarchar
		if err := tx.Where("attribute_id = ? AND entity_id IN ?", attr.ID, chunk).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load url keys: %w", err)
		}
		for _, r := range rows {
			if r.Value == nil {
				continue
			}
			if out[r.EntityID] == nil {
				out[r.EntityID] = map[uint]string{}
			}
			out[r.EntityID][uint(r.StoreID)] = *r.Value
		}
	}
	return out, nil
}

func loadCategoryLinks(tx *gorm.DB, productIDs []uint) (map[uint]map[uint]bool, error) {
	out := map[uint]map[uint]bool{}
	for _, chunk := range chunkIDs(productIDs, 1000) {
		var rows []productEntity.CategoryProduct
		if err := tx.Where("product_id IN ?", chunk).Find(&rows).Error; err != nil {
			return nil, fmt.Errorf("load category links: %w", err)
		}
		for _, r := range rows {
			if out[r.ProductID] == nil {
				out[r.ProductID] = map[uint]bool{}
			}
			out[r.ProductID][r.CategoryID] = true
		}
	}
	return out, nil
}

// changedProducts returns the ids of products that need new rewrites: those
// without a snapshot, those with a url_key that differs from the stored one
// in some store view, and those whose listed categories differ from the
// stored links.
func (s *urlRewriteStorage) changedProducts(products []*data.Product, snap *rewriteSnapshot) []uint {
	var ids []uint
	seen := map[uint]bool{}
	for _, p := range products {
		if p.ID == 0 || seen[p.ID] {
			continue
		}
		if isChanged(p, snap) {
			seen[p.ID] = true
			ids = append(ids, p.ID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func isChanged(p *data.Product, snap *rewriteSnapshot) bool {
	if !snap.has(p.ID) {
		return true
	}
	stored := snap.urlKeys[p.ID]
	for _, sv := range p.StoreViews() {
		storeID, ok := sv.ResolvedStoreID()
		if !ok {
			continue
		}
		key, set := sv.Attribute("url_key")
		if !set {
			continue
		}
		if old, ok := stored[storeID]; !ok || old != key {
			return true
		}
	}
	if ids, ok := p.Categories.Value(); ok {
		old := snap.categories[p.ID]
		listed := make(map[uint]bool, len(ids))
		for _, id := range ids {
			if !old[id] {
				return true
			}
			listed[id] = true
		}
		for id := range old {
			if !listed[id] {
				return true
			}
		}
	}
	return false
}

// Generate builds every rewrite the given products should have, from the
// url keys and category links now stored.
func (s *urlRewriteStorage) Generate(tx *gorm.DB, productIDs []uint) ([]*data.UrlRewrite, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	stored, err := s.loadURLKeys(tx, productIDs)
	if err != nil {
		return nil, err
	}
	links, err := loadCategoryLinks(tx, productIDs)
	if err != nil {
		return nil, err
	}
	storeIDs := s.meta.StoreViewIDs()

	var out []*data.UrlRewrite
	seen := map[string]bool{}
	add := func(r *data.UrlRewrite) {
		k := strconv.FormatUint(uint64(r.StoreID), 10) + "|" + r.RequestPath
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, r)
	}

	for _, productID := range productIDs {
		keys := expandURLKeys(stored[productID], storeIDs)
		categoryIDs := sortedIDs(links[productID])
		for _, storeID := range storeIDs {
			urlKey, ok := keys[storeID]
			if !ok || urlKey == "" {
				continue
			}
			short := urlKey + s.meta.ProductURLSuffix
			add(&data.UrlRewrite{
				ProductID:     productID,
				RequestPath:   short,
				TargetPath:    productTargetPath + strconv.FormatUint(uint64(productID), 10),
				RedirectType:  data.RedirectNone,
				StoreID:       storeID,
				Autogenerated: true,
			})
			for _, categoryID := range categoryIDs {
				for _, r := range s.categoryRewrites(productID, storeID, categoryID, short) {
					add(r)
				}
			}
		}
	}
	return out, nil
}

// categoryRewrites walks the category path below the store root and yields
// one rewrite per level.
func (s *urlRewriteStorage) categoryRewrites(productID, storeID, categoryID uint, short string) []*data.UrlRewrite {
	category, ok := s.meta.Category(categoryID)
	if !ok {
		return nil
	}
	var out []*data.UrlRewrite
	path := ""
	for i, ancestorID := range category.Path {
		if i == 0 {
			continue
		}
		ancestor, ok := s.meta.Category(ancestorID)
		if !ok {
			break
		}
		key := ancestor.URLKey(storeID)
		if key == "" {
			break
		}
		path += key + "/"
		cid := strconv.FormatUint(uint64(ancestorID), 10)
		out = append(out, &data.UrlRewrite{
			ProductID:     productID,
			RequestPath:   path + short,
			TargetPath:    productTargetPath + strconv.FormatUint(uint64(productID), 10) + "/category/" + cid,
			RedirectType:  data.RedirectNone,
			StoreID:       storeID,
			Metadata:      map[string]string{"category_id": cid},
			Autogenerated: true,
		})
	}
	return out
}

// expandURLKeys copies the admin url_key to every store view that has no
// url_key of its own.
func expandURLKeys(byStore map[uint]string, storeIDs []uint) map[uint]string {
	out := map[uint]string{}
	global, hasGlobal := byStore[0]
	for _, storeID := range storeIDs {
		if key, ok := byStore[storeID]; ok {
			out[storeID] = key
		} else if hasGlobal {
			out[storeID] = global
		}
	}
	return out
}

func sortedIDs(set map[uint]bool) []uint {
	ids := make([]uint, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Update regenerates the rewrites of changed products and reconciles them
// with the stored ones.
func (s *urlRewriteStorage) Update(tx *gorm.DB, products []*data.Product, snap *rewriteSnapshot, history bool) error {
	changed := s.changedProducts(products, snap)
	rewrites, err := s.Generate(tx, changed)
	if err != nil {
		return err
	}
	return s.reconcile(tx, rewrites, history)
}

func (s *urlRewriteStorage) loadExisting(tx *gorm.DB, rewrites []*data.UrlRewrite) (map[uint]map[string][]existingRewrite, error) {
	byStore := map[uint]map[uint]bool{}
	for _, r := range rewrites {
		if byStore[r.StoreID] == nil {
			byStore[r.StoreID] = map[uint]bool{}
		}
		byStore[r.StoreID][r.ProductID] = true
	}
	out := map[uint]map[string][]existingRewrite{}
	for storeID, ids := range byStore {
		out[storeID] = map[string][]existingRewrite{}
		for _, chunk := range chunkIDs(sortedIDs(ids), 1000) {
			var rows []existingRewrite
			if err := tx.Table("url_rewrite").
				Select("url_rewrite_id, entity_id, request_path, target_path, redirect_type, store_id, metadata").
				Where("entity_type = ? AND store_id = ? AND entity_id IN ?", rewriteEntityType, storeID, chunk).
				Order("url_rewrite_id").Find(&rows).Error; err != nil {
				return nil, fmt.Errorf("load url rewrites: %w", err)
			}
			for _, row := range rows {
				categoryID := ""
				if row.Metadata != nil {
					categoryID = s.serializer.Extract(*row.Metadata, "category_id")
				}
				key := data.RewriteKey(row.EntityID, categoryID)
				out[storeID][key] = append(out[storeID][key], row)
			}
		}
	}
	return out, nil
}

// reconcile replaces matched old rows by the new ones. Old rows become 301
// redirects to the new path unless history is off for direct rows or the
// path did not change.
func (s *urlRewriteStorage) reconcile(tx *gorm.DB, rewrites []*data.UrlRewrite, history bool) error {
	if len(rewrites) == 0 {
		return nil
	}
	existing, err := s.loadExisting(tx, rewrites)
	if err != nil {
		return err
	}

	var oldIDs []uint
	deleted := map[uint]bool{}
	var redirects []*data.UrlRewrite
	for _, r := range rewrites {
		for _, old := range existing[r.StoreID][r.Key()] {
			if !deleted[old.UrlRewriteID] {
				deleted[old.UrlRewriteID] = true
				oldIDs = append(oldIDs, old.UrlRewriteID)
			}
			if old.RedirectType == data.RedirectNone && !history {
				continue
			}
			if old.RequestPath == r.RequestPath {
				continue
			}
			metadata := r.Metadata
			if metadata == nil {
				metadata = map[string]string{}
			}
			redirects = append(redirects, &data.UrlRewrite{
				ProductID:    r.ProductID,
				RequestPath:  old.RequestPath,
				TargetPath:   r.RequestPath,
				RedirectType: data.RedirectPermanent,
				StoreID:      r.StoreID,
				Metadata:     metadata,
			})
		}
	}

	if err := deleteRewrites(tx, oldIDs); err != nil {
		return err
	}
	if err := s.insertDirect(tx, rewrites); err != nil {
		return err
	}
	return s.insert(tx, s.rows(redirects))
}

func deleteRewrites(tx *gorm.DB, ids []uint) error {
	for _, chunk := range chunkIDs(ids, 1000) {
		if err := tx.Where("url_rewrite_id IN ?", chunk).Delete(&productEntity.UrlRewriteProductCategory{}).Error; err != nil {
			return fmt.Errorf("delete rewrite categories: %w", err)
		}
		if err := tx.Where("url_rewrite_id IN ?", chunk).Delete(&productEntity.UrlRewrite{}).Error; err != nil {
			return fmt.Errorf("delete url rewrites: %w", err)
		}
	}
	return nil
}

func (s *urlRewriteStorage) rows(rewrites []*data.UrlRewrite) []productEntity.UrlRewrite {
	rows := make([]productEntity.UrlRewrite, 0, len(rewrites))
	for _, r := range rewrites {
		row := productEntity.UrlRewrite{
			EntityType:   rewriteEntityType,
			EntityID:     r.ProductID,
			RequestPath:  r.RequestPath,
			TargetPath:   r.TargetPath,
			RedirectType: r.RedirectType,
			StoreID:      uint16(r.StoreID),
		}
		if r.Autogenerated {
			row.IsAutogenerated = 1
		}
		if r.Metadata != nil {
			serialized := s.serializer.Serialize(r.Metadata)
			row.Metadata = &serialized
		}
		rows = append(rows, row)
	}
	return rows
}

// insert writes rows, skipping paths already taken in their store.
func (s *urlRewriteStorage) insert(tx *gorm.DB, rows []productEntity.UrlRewrite) error {
	return s.batcher.each(rows, func(chunk []productEntity.UrlRewrite) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&chunk).Error; err != nil {
			return fmt.Errorf("insert url rewrites: %w", err)
		}
		return nil
	})
}

// insertDirect writes the generated rows and indexes the category rows among
// them. Ids are read back by path so only rows this call created get
// indexed.
func (s *urlRewriteStorage) insertDirect(tx *gorm.DB, rewrites []*data.UrlRewrite) error {
	taken, err := takenPaths(tx, rewrites)
	if err != nil {
		return err
	}
	var fresh []*data.UrlRewrite
	for _, r := range rewrites {
		if !taken[r.StoreID][r.RequestPath] {
			fresh = append(fresh, r)
		}
	}
	if len(fresh) == 0 {
		return nil
	}
	if err := s.insert(tx, s.rows(fresh)); err != nil {
		return err
	}

	created, err := lookupRewrites(tx, fresh)
	if err != nil {
		return err
	}
	var index []productEntity.UrlRewriteProductCategory
	for _, r := range fresh {
		categoryID, err := strconv.ParseUint(r.CategoryID(), 10, 64)
		if err != nil {
			continue
		}
		row, ok := created[r.StoreID][r.RequestPath]
		if !ok || row.EntityID != r.ProductID || row.TargetPath != r.TargetPath {
			continue
		}
		index = append(index, productEntity.UrlRewriteProductCategory{
			UrlRewriteID: row.UrlRewriteID,
			CategoryID:   uint(categoryID),
			ProductID:    r.ProductID,
		})
	}
	for _, chunk := range chunkIDs(index, 1000) {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&chunk).Error; err != nil {
			return fmt.Errorf("index url rewrite categories: %w", err)
		}
	}
	return nil
}

func takenPaths(tx *gorm.DB, rewrites []*data.UrlRewrite) (map[uint]map[string]bool, error) {
	rows, err := lookupRewrites(tx, rewrites)
	if err != nil {
		return nil, err
	}
	out := map[uint]map[string]bool{}
	for storeID, paths := range rows {
		out[storeID] = map[string]bool{}
		for path := range paths {
			out[storeID][path] = true
		}
	}
	return out, nil
}

// lookupRewrites loads the stored rows at the request paths of rewrites.
func lookupRewrites(tx *gorm.DB, rewrites []*data.UrlRewrite) (map[uint]map[string]existingRewrite, error) {
	paths := map[uint][]string{}
	for _, r := range rewrites {
		paths[r.StoreID] = append(paths[r.StoreID], r.RequestPath)
	}
	out := map[uint]map[string]existingRewrite{}
	for storeID, list := range paths {
		out[storeID] = map[string]existingRewrite{}
		for _, chunk := range chunkIDs(list, 500) {
			var rows []existingRewrite
			if err := tx.Table("url_rewrite").
				Select("url_rewrite_id, entity_id, request_path, target_path, redirect_type, store_id, metadata").
				Where("store_id = ? AND request_path IN ?", storeID, chunk).Find(&rows).Error; err != nil {
				return nil, fmt.Errorf("lookup url rewrites: %w", err)
			}
			for _, row := range rows {
				out[storeID][row.RequestPath] = row
			}
		}
	}
	return out, nil
}
