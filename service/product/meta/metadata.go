// Package meta loads the catalog configuration an import run works against:
// attributes, store views, websites, attribute sets, tax classes, customer
// groups and the category tree. It is loaded once per run and passed around
// explicitly.
package meta

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gorm.io/gorm"

	entity "productimport.GO/model/entity"
	categoryEntity "productimport.GO/model/entity/category"
)

const (
	ProductEntityTypeID  uint16 = 4
	CategoryEntityTypeID uint16 = 3

	DefaultURLSuffix = ".html"
	urlSuffixPath    = "catalog/seo/product_url_suffix"
)

var ValueTables = map[string]string{
	"varchar":  "catalog_product_entity_varchar",
	"int":      "catalog_product_entity_int",
	"decimal":  "catalog_product_entity_decimal",
	"text":     "catalog_product_entity_text",
	"datetime": "catalog_product_entity_datetime",
}

// AttributeInfo describes one product EAV attribute.
type AttributeInfo struct {
	ID            uint16
	Code          string
	BackendType   string
	FrontendInput string
}

// Table returns the value table, or "" for static attributes.
func (a AttributeInfo) Table() string { return ValueTables[a.BackendType] }

func (a AttributeInfo) IsSelect() bool { return a.FrontendInput == "select" }

func (a AttributeInfo) IsMultiSelect() bool { return a.FrontendInput == "multiselect" }

// CategoryInfo is a node of the category tree. Path lists ancestor ids from
// the store root down to the category itself; the tree root is left out.
type CategoryInfo struct {
	ID       uint
	ParentID uint
	Path     []uint
	Level    int
	Name     string
	URLKeys  map[uint]string
	Children int
}

// URLKey returns the store's url_key, falling back to the admin value.
func (c *CategoryInfo) URLKey(storeID uint) string {
	if k, ok := c.URLKeys[storeID]; ok && k != "" {
		return k
	}
	return c.URLKeys[0]
}

// MetaData is the per-run catalog context.
type MetaData struct {
	ProductAttributes  map[string]AttributeInfo
	CategoryAttributes map[string]uint16

	StoreViews     map[string]uint
	StoreWebsites  map[uint]uint
	Websites       map[string]uint
	AttributeSets  map[string]uint
	TaxClasses     map[string]uint
	CustomerGroups map[string]uint

	DefaultAttributeSetID         uint
	DefaultCategoryAttributeSetID uint
	ProductURLSuffix              string

	mu         sync.RWMutex
	categories map[uint]*CategoryInfo
}

// Load reads all lookup tables.
func Load(db *gorm.DB) (*MetaData, error) {
	m := &MetaData{
		ProductAttributes:  map[string]AttributeInfo{},
		CategoryAttributes: map[string]uint16{},
		StoreViews:         map[string]uint{},
		StoreWebsites:      map[uint]uint{},
		Websites:           map[string]uint{},
		AttributeSets:      map[string]uint{},
		TaxClasses:         map[string]uint{},
		CustomerGroups:     map[string]uint{},
		ProductURLSuffix:   DefaultURLSuffix,
		categories:         map[uint]*CategoryInfo{},
	}
	loaders := []struct {
		name string
		fn   func(*gorm.DB) error
	}{
		{"attributes", m.loadAttributes},
		{"store views", m.loadStores},
		{"websites", m.loadWebsites},
		{"attribute sets", m.loadAttributeSets},
		{"tax classes", m.loadTaxClasses},
		{"customer groups", m.loadCustomerGroups},
		{"url suffix", m.loadURLSuffix},
		{"categories", m.loadCategories},
	}
	for _, l := range loaders {
		if err := l.fn(db); err != nil {
			return nil, fmt.Errorf("load %s: %w", l.name, err)
		}
	}
	return m, nil
}

func (m *MetaData) loadAttributes(db *gorm.DB) error {
	var attrs []entity.EavAttribute
	if err := db.Where("entity_type_id IN ?", []uint16{ProductEntityTypeID, CategoryEntityTypeID}).Find(&attrs).Error; err != nil {
		return err
	}
	for _, a := range attrs {
		if a.EntityTypeID == CategoryEntityTypeID {
			m.CategoryAttributes[a.AttributeCode] = a.AttributeID
			continue
		}
		m.ProductAttributes[a.AttributeCode] = AttributeInfo{
			ID:            a.AttributeID,
			Code:          a.AttributeCode,
			BackendType:   a.BackendType,
			FrontendInput: a.FrontendInput,
		}
	}
	return nil
}

func (m *MetaData) loadStores(db *gorm.DB) error {
	var stores []entity.Store
	if err := db.Find(&stores).Error; err != nil {
		return err
	}
	m.StoreViews["admin"] = 0
	for _, s := range stores {
		m.StoreViews[s.Code] = uint(s.StoreID)
		m.StoreWebsites[uint(s.StoreID)] = uint(s.WebsiteID)
	}
	return nil
}

func (m *MetaData) loadWebsites(db *gorm.DB) error {
	var websites []entity.StoreWebsite
	if err := db.Where("website_id > 0").Find(&websites).Error; err != nil {
		return err
	}
	for _, w := range websites {
		m.Websites[w.Code] = uint(w.WebsiteID)
	}
	return nil
}

func (m *MetaData) loadAttributeSets(db *gorm.DB) error {
	var sets []entity.EavAttributeSet
	if err := db.Where("entity_type_id IN ?", []uint16{ProductEntityTypeID, CategoryEntityTypeID}).
		Order("attribute_set_id").Find(&sets).Error; err != nil {
		return err
	}
	for _, s := range sets {
		if s.EntityTypeID == CategoryEntityTypeID {
			if m.DefaultCategoryAttributeSetID == 0 {
				m.DefaultCategoryAttributeSetID = uint(s.AttributeSetID)
			}
			continue
		}
		m.AttributeSets[s.AttributeSetName] = uint(s.AttributeSetID)
		if s.AttributeSetName == "Default" || m.DefaultAttributeSetID == 0 {
			m.DefaultAttributeSetID = uint(s.AttributeSetID)
		}
	}
	return nil
}

func (m *MetaData) loadTaxClasses(db *gorm.DB) error {
	var classes []entity.TaxClass
	if err := db.Where("class_type = ?", "PRODUCT").Find(&classes).Error; err != nil {
		return err
	}
	for _, c := range classes {
		m.TaxClasses[c.ClassName] = uint(c.ClassID)
	}
	return nil
}

func (m *MetaData) loadCustomerGroups(db *gorm.DB) error {
	var groups []entity.CustomerGroup
	if err := db.Find(&groups).Error; err != nil {
		return err
	}
	for _, g := range groups {
		m.CustomerGroups[g.CustomerGroupCode] = uint(g.CustomerGroupID)
	}
	return nil
}

func (m *MetaData) loadURLSuffix(db *gorm.DB) error {
	var rows []entity.CoreConfigData
	if err := db.Where("path = ? AND scope = ? AND scope_id = 0", urlSuffixPath, "default").Limit(1).Find(&rows).Error; err != nil {
		return err
	}
	if len(rows) > 0 && rows[0].Value != nil {
		m.ProductURLSuffix = *rows[0].Value
	}
	return nil
}

func (m *MetaData) loadCategories(db *gorm.DB) error {
	var cats []categoryEntity.Category
	if err := db.Order("level, position, entity_id").Find(&cats).Error; err != nil {
		return err
	}
	for _, c := range cats {
		m.categories[c.EntityID] = &CategoryInfo{
			ID:       c.EntityID,
			ParentID: c.ParentID,
			Path:     ParseCategoryPath(c.Path),
			Level:    c.Level,
			URLKeys:  map[uint]string{},
			Children: c.ChildrenCount,
		}
	}

	nameID, urlKeyID := m.CategoryAttributes["name"], m.CategoryAttributes["url_key"]
	if nameID == 0 && urlKeyID == 0 {
		return nil
	}
	var values []categoryEntity.CategoryVarchar
	if err := db.Where("attribute_id IN ?", []uint16{nameID, urlKeyID}).Find(&values).Error; err != nil {
		return err
	}
	for _, v := range values {
		c, ok := m.categories[v.EntityID]
		if !ok || v.Value == nil {
			continue
		}
		switch {
		case v.AttributeID == nameID && v.StoreID == 0:
			c.Name = *v.Value
		case v.AttributeID == urlKeyID:
			c.URLKeys[uint(v.StoreID)] = *v.Value
		}
	}
	return nil
}

// ParseCategoryPath turns "1/2/5" into [2 5]: the tree root is dropped.
func ParseCategoryPath(path string) []uint {
	parts := strings.Split(path, "/")
	out := make([]uint, 0, len(parts))
	for i, p := range parts {
		if i == 0 {
			continue
		}
		id, err := strconv.ParseUint(p, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, uint(id))
	}
	return out
}

// Category returns the category with the given id.
func (m *MetaData) Category(id uint) (*CategoryInfo, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.categories[id]
	return c, ok
}

// Children returns the direct children of parent ordered by id.
func (m *MetaData) Children(parent uint) []*CategoryInfo {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*CategoryInfo
	for _, c := range m.categories {
		if c.ParentID == parent {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddCategory registers a category created during the run.
func (m *MetaData) AddCategory(c *CategoryInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[c.ID] = c
	if parent, ok := m.categories[c.ParentID]; ok {
		parent.Children++
	}
}

// StoreViewIDs returns every real store view id (admin excluded), sorted.
func (m *MetaData) StoreViewIDs() []uint {
	out := make([]uint, 0, len(m.StoreViews))
	for _, id := range m.StoreViews {
		if id != 0 {
			out = append(out, id)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Attribute looks up a product attribute by code.
func (m *MetaData) Attribute(code string) (AttributeInfo, bool) {
	a, ok := m.ProductAttributes[code]
	return a, ok
}
