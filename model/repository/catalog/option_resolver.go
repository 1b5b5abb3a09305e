package catalog

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"productimport.GO/core/cache"
	entity "productimport.GO/model/entity"
	"productimport.GO/service/product/meta"
)

// OptionResolver maps admin option labels of select and multi-select
// attributes to option ids. Labels are loaded per attribute on first use.
type OptionResolver struct {
	db    *gorm.DB
	meta  *meta.MetaData
	cache *cache.Cache
}

func NewOptionResolver(db *gorm.DB, m *meta.MetaData, c *cache.Cache) *OptionResolver {
	return &OptionResolver{db: db, meta: m, cache: c}
}

func optionTag(code string) string { return "option:" + code }

func (r *OptionResolver) load(attr meta.AttributeInfo) error {
	if r.cache.HasTag(optionTag(attr.Code)) {
		return nil
	}
	type row struct {
		OptionID uint   `gorm:"column:option_id"`
		Value    string `gorm:"column:value"`
	}
	var rows []row
	err := r.db.Table("eav_attribute_option AS o").
		Select("o.option_id, v.value").
		Joins("JOIN eav_attribute_option_value AS v ON v.option_id = o.option_id AND v.store_id = 0").
		Where("o.attribute_id = ?", attr.ID).
		Scan(&rows).Error
	if err != nil {
		return fmt.Errorf("load options of %s: %w", attr.Code, err)
	}
	// the tag marks the attribute as loaded even when it has no options
	r.cache.TagKey("loaded:"+attr.Code, []string{optionTag(attr.Code)})
	for _, o := range rows {
		r.cache.SetN([]interface{}{attr.Code, o.Value}, o.OptionID, optionTag(attr.Code))
	}
	return nil
}

// ResolveOption returns the option id of label, creating the option when
// autoCreate is set.
func (r *OptionResolver) ResolveOption(code, label string, autoCreate bool) (uint, string, error) {
	attr, ok := r.meta.Attribute(code)
	if !ok {
		return 0, "", fmt.Errorf("attribute %q not found", code)
	}
	if err := r.load(attr); err != nil {
		return 0, "", err
	}
	label = strings.TrimSpace(label)
	if id, ok := r.cache.GetN(attr.Code, label); ok {
		return id.(uint), "", nil
	}
	if !autoCreate {
		return 0, fmt.Sprintf("option %q not found for attribute %s", label, code), nil
	}
	id, err := r.create(attr, label)
	if err != nil {
		return 0, "", err
	}
	return id, "", nil
}

// ResolveOptions resolves each label and reports all unknown labels together.
func (r *OptionResolver) ResolveOptions(code string, labels []string, autoCreate bool) ([]uint, string, error) {
	ids := make([]uint, 0, len(labels))
	var missing []string
	for _, label := range labels {
		id, msg, err := r.ResolveOption(code, label, autoCreate)
		if err != nil {
			return nil, "", err
		}
		if msg != "" {
			missing = append(missing, fmt.Sprintf("%q", strings.TrimSpace(label)))
			continue
		}
		ids = append(ids, id)
	}
	if len(missing) > 0 {
		return nil, fmt.Sprintf("options %s not found for attribute %s", strings.Join(missing, ", "), code), nil
	}
	return ids, "", nil
}

func (r *OptionResolver) create(attr meta.AttributeInfo, label string) (uint, error) {
	option := entity.EavAttributeOption{AttributeID: attr.ID}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&option).Error; err != nil {
			return err
		}
		return tx.Create(&entity.EavAttributeOptionValue{OptionID: option.OptionID, Value: label}).Error
	})
	if err != nil {
		return 0, fmt.Errorf("create option %q for %s: %w", label, attr.Code, err)
	}
	r.cache.SetN([]interface{}{attr.Code, label}, option.OptionID, optionTag(attr.Code))
	return option.OptionID, nil
}
