package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"productimport.GO/core/text"
	categoryEntity "productimport.GO/model/entity/category"
	"productimport.GO/service/product/meta"
)

// RootCategoryID is the invisible tree root every store root hangs under.
const RootCategoryID uint = 1

// CategoryImporter resolves name paths like "Default Category/Men/Shoes".
// The first segment names a store root category.
type CategoryImporter struct {
	db   *gorm.DB
	meta *meta.MetaData
}

func NewCategoryImporter(db *gorm.DB, m *meta.MetaData) *CategoryImporter {
	return &CategoryImporter{db: db, meta: m}
}

// ImportCategoryPaths returns the ids of the leaf categories of paths.
func (c *CategoryImporter) ImportCategoryPaths(paths []string, autoCreate bool, separator string) ([]uint, string, error) {
	ids := make([]uint, 0, len(paths))
	seen := map[uint]bool{}
	var missing []string
	for _, path := range paths {
		id, found, err := c.importPath(path, autoCreate, separator)
		if err != nil {
			return nil, "", err
		}
		if !found {
			missing = append(missing, path)
			continue
		}
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Sprintf("category not found: %s", strings.Join(missing, ", ")), nil
	}
	return ids, "", nil
}

func (c *CategoryImporter) importPath(path string, autoCreate bool, separator string) (uint, bool, error) {
	var names []string
	for _, n := range strings.Split(path, separator) {
		if n = strings.TrimSpace(n); n != "" {
			names = append(names, n)
		}
	}
	if len(names) == 0 {
		return 0, false, nil
	}

	parent := RootCategoryID
	for _, name := range names {
		child := c.findChild(parent, name)
		if child == nil {
			if !autoCreate {
				return 0, false, nil
			}
			var err error
			if child, err = c.create(parent, name); err != nil {
				return 0, false, fmt.Errorf("create category %q: %w", name, err)
			}
		}
		parent = child.ID
	}
	return parent, true, nil
}

func (c *CategoryImporter) findChild(parent uint, name string) *meta.CategoryInfo {
	for _, child := range c.meta.Children(parent) {
		if child.Name == name {
			return child
		}
	}
	return nil
}

func (c *CategoryImporter) create(parentID uint, name string) (*meta.CategoryInfo, error) {
	var parentPath []uint
	level := 1
	if parent, ok := c.meta.Category(parentID); ok {
		parentPath = parent.Path
		level = parent.Level + 1
	} else if parentID != RootCategoryID {
		return nil, fmt.Errorf("parent category %d not loaded", parentID)
	}
	position := len(c.meta.Children(parentID)) + 1
	urlKey := text.Slugify(name)

	cat := categoryEntity.Category{
		AttributeSetID: uint16(c.meta.DefaultCategoryAttributeSetID),
		ParentID:       parentID,
		Path:           "",
		Position:       position,
		Level:          level,
	}
	err := c.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cat).Error; err != nil {
			return err
		}
		cat.Path = categoryPathString(parentPath, cat.EntityID)
		if err := tx.Model(&categoryEntity.Category{}).Where("entity_id = ?", cat.EntityID).
			Update("path", cat.Path).Error; err != nil {
			return err
		}
		if err := tx.Model(&categoryEntity.Category{}).Where("entity_id = ?", parentID).
			UpdateColumn("children_count", gorm.Expr("children_count + 1")).Error; err != nil {
			return err
		}
		return c.writeValues(tx, cat.EntityID, name, urlKey)
	})
	if err != nil {
		return nil, err
	}

	info := &meta.CategoryInfo{
		ID:       cat.EntityID,
		ParentID: parentID,
		Path:     append(append([]uint{}, parentPath...), cat.EntityID),
		Level:    level,
		Name:     name,
		URLKeys:  map[uint]string{0: urlKey},
	}
	c.meta.AddCategory(info)
	return info, nil
}

func (c *CategoryImporter) writeValues(tx *gorm.DB, id uint, name, urlKey string) error {
	var varchars []categoryEntity.CategoryVarchar
	if attr, ok := c.meta.CategoryAttributes["name"]; ok {
		varchars = append(varchars, categoryEntity.CategoryVarchar{AttributeID: attr, EntityID: id, Value: &name})
	}
	if attr, ok := c.meta.CategoryAttributes["url_key"]; ok {
		varchars = append(varchars, categoryEntity.CategoryVarchar{AttributeID: attr, EntityID: id, Value: &urlKey})
	}
	if len(varchars) > 0 {
		if err := tx.Create(&varchars).Error; err != nil {
			return err
		}
	}
	one := 1
	var ints []categoryEntity.CategoryInt
	for _, code := range []string{"is_active", "include_in_menu"} {
		if attr, ok := c.meta.CategoryAttributes[code]; ok {
			ints = append(ints, categoryEntity.CategoryInt{AttributeID: attr, EntityID: id, Value: &one})
		}
	}
	if len(ints) > 0 {
		return tx.Create(&ints).Error
	}
	return nil
}

// categoryPathString rebuilds the stored "1/2/5" path.
func categoryPathString(parentPath []uint, id uint) string {
	parts := []string{strconv.FormatUint(uint64(RootCategoryID), 10)}
	for _, p := range parentPath {
		parts = append(parts, strconv.FormatUint(uint64(p), 10))
	}
	parts = append(parts, strconv.FormatUint(uint64(id), 10))
	return strings.Join(parts, "/")
}
