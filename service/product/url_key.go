package product

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"productimport.GO/core/cache"
	"productimport.GO/core/text"
	"productimport.GO/service/product/data"
	"productimport.GO/service/product/meta"
)

// urlKeyGenerator fills in the admin url_key of records and settles
// collisions with keys of other products.
type urlKeyGenerator struct {
	db    *gorm.DB
	meta  *meta.MetaData
	cache *cache.Cache
	// claimed maps keys taken in the current batch to the owning sku
	claimed map[string]string
}

func newURLKeyGenerator(db *gorm.DB, m *meta.MetaData, c *cache.Cache) *urlKeyGenerator {
	return &urlKeyGenerator{db: db, meta: m, cache: c}
}

func (g *urlKeyGenerator) Generate(products []*data.Product, cfg ImportConfig) error {
	attr, ok := g.meta.Attribute("url_key")
	if !ok {
		return nil
	}
	g.claimed = map[string]string{}

	type candidate struct {
		product *data.Product
		key     string
	}
	var candidates []candidate
	var keyless []*data.Product
	for _, p := range products {
		if !p.OK() {
			continue
		}
		key, explicit := "", false
		if p.HasStoreView(data.GlobalStoreViewCode) {
			key, explicit = p.Global().Attribute("url_key")
			key = strings.TrimSpace(key)
		}
		if !explicit || key == "" {
			key = g.baseKey(p, cfg.URLKeyScheme)
		}
		if key == "" {
			if p.ID == 0 {
				keyless = append(keyless, p)
			}
			continue
		}
		candidates = append(candidates, candidate{product: p, key: key})
	}

	keys := make([]string, 0, len(candidates))
	for _, c := range candidates {
		keys = append(keys, c.key)
	}
	if err := g.preload(attr.ID, keys); err != nil {
		return err
	}

	bySKU := map[string]string{}
	for _, c := range candidates {
		p := c.product
		key := c.key
		if g.taken(key, p) {
			var err error
			if key, err = g.settle(attr.ID, key, p, cfg.DuplicateURLKeyStrategy); err != nil {
				return err
			}
			if key == "" {
				continue
			}
		}
		g.claimed[key] = p.SKU()
		bySKU[p.SKU()] = key
		p.Global().SetAttribute("url_key", key)
	}

	// a new record without a key source shares the key of a sibling
	for _, p := range keyless {
		key, ok := bySKU[p.SKU()]
		if !ok {
			p.AddError(fmt.Sprintf("url_key could not be generated: no %s", schemeSource(cfg.URLKeyScheme)))
			continue
		}
		if p.HasStoreView(data.GlobalStoreViewCode) {
			p.Global().SetAttribute("url_key", key)
		}
	}
	return nil
}

func schemeSource(scheme string) string {
	if scheme == URLKeyFromSKU {
		return "sku"
	}
	return "name"
}

func (g *urlKeyGenerator) baseKey(p *data.Product, scheme string) string {
	if scheme == URLKeyFromSKU {
		return text.Slugify(p.SKU())
	}
	return text.Slugify(p.Name())
}

// settle applies the duplicate strategy. An empty key means the record got
// an error.
func (g *urlKeyGenerator) settle(attributeID uint16, key string, p *data.Product, strategy string) (string, error) {
	switch strategy {
	case DuplicateURLKeyAddSKU:
		alt := key + "-" + text.Slugify(p.SKU())
		if err := g.preload(attributeID, []string{alt}); err != nil {
			return "", err
		}
		if !g.taken(alt, p) {
			return alt, nil
		}
	case DuplicateURLKeyAddSerial:
		for n := 1; n < 1000; n++ {
			alt := fmt.Sprintf("%s-%d", key, n)
			if err := g.preload(attributeID, []string{alt}); err != nil {
				return "", err
			}
			if !g.taken(alt, p) {
				return alt, nil
			}
		}
	}
	p.AddError(fmt.Sprintf("Duplicate url key: %s", key))
	return "", nil
}

func urlKeyCacheKey(key string) string { return "url_key:" + key }

// preload fetches the owners of keys not looked up before.
func (g *urlKeyGenerator) preload(attributeID uint16, keys []string) error {
	var missing []string
	for _, k := range keys {
		if _, ok := g.cache.Get(urlKeyCacheKey(k)); !ok {
			missing = append(missing, k)
		}
	}
	for _, chunk := range chunkIDs(unique(missing), 1000) {
		type ownerRow struct {
			EntityID uint   `gorm:"column:entity_id"`
			Value    string `gorm:"column:value"`
		}
		var rows []ownerRow
		if err := g.db.Table("catalog_product_entity_varchar").Select("entity_id, value").
			Where("attribute_id = ? AND value IN ?", attributeID, chunk).Find(&rows).Error; err != nil {
			return fmt.Errorf("lookup url keys: %w", err)
		}
		owners := map[string][]uint{}
		for _, r := range rows {
			owners[r.Value] = append(owners[r.Value], r.EntityID)
		}
		for _, k := range chunk {
			g.cache.Set(urlKeyCacheKey(k), owners[k], "url_key")
		}
	}
	return nil
}

// taken reports whether key belongs to another product, stored or in batch.
func (g *urlKeyGenerator) taken(key string, p *data.Product) bool {
	if sku, ok := g.claimed[key]; ok && sku != p.SKU() {
		return true
	}
	v, _ := g.cache.Get(urlKeyCacheKey(key))
	owners, _ := v.([]uint)
	for _, id := range owners {
		if id != p.ID {
			return true
		}
	}
	return false
}

// forget drops cached owners after a batch wrote new keys.
func (g *urlKeyGenerator) forget() {
	g.cache.DeleteByTag("url_key")
}
