package product

import (
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	productEntity "productimport.GO/model/entity/product"
	"productimport.GO/service/product/data"
)

// ChildStorage writes and removes the rows a product type keeps besides
// its EAV values: bundle options, grouped members, configurable variants,
// downloadable links.
type ChildStorage interface {
	Store(tx *gorm.DB, products []*data.Product) error
	Remove(tx *gorm.DB, products []*data.Product) error
}

func defaultChildStorages() map[string]ChildStorage {
	return map[string]ChildStorage{
		data.TypeGrouped:      groupedStorage{},
		data.TypeConfigurable: configurableStorage{},
		data.TypeBundle:       bundleStorage{},
		data.TypeDownloadable: downloadableStorage{},
	}
}

func productIDs(products []*data.Product) []uint {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		if p.ID != 0 {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

func removeRelations(tx *gorm.DB, parentIDs []uint) error {
	return tx.Where("parent_id IN ?", parentIDs).Delete(&productEntity.ProductRelation{}).Error
}

func insertRelations(tx *gorm.DB, rows []productEntity.ProductRelation) error {
	if len(rows) == 0 {
		return nil
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}

type groupedStorage struct{}

func (groupedStorage) Store(tx *gorm.DB, products []*data.Product) error {
	var owners []*data.Product
	var links []productEntity.ProductLink
	var relations []productEntity.ProductRelation
	for _, p := range products {
		ids, ok := p.GroupedMembers.Value()
		if !ok {
			continue
		}
		owners = append(owners, p)
		for _, child := range ids {
			links = append(links, productEntity.ProductLink{ProductID: p.ID, LinkedProductID: child, LinkTypeID: productEntity.LinkTypeGrouped})
			relations = append(relations, productEntity.ProductRelation{ParentID: p.ID, ChildID: child})
		}
	}
	if len(owners) == 0 {
		return nil
	}
	if err := (groupedStorage{}).Remove(tx, owners); err != nil {
		return err
	}
	if len(links) > 0 {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			return err
		}
	}
	return insertRelations(tx, relations)
}

func (groupedStorage) Remove(tx *gorm.DB, products []*data.Product) error {
	ids := productIDs(products)
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("product_id IN ? AND link_type_id = ?", ids, productEntity.LinkTypeGrouped).
		Delete(&productEntity.ProductLink{}).Error; err != nil {
		return err
	}
	return removeRelations(tx, ids)
}

type configurableStorage struct{}

func (configurableStorage) Store(tx *gorm.DB, products []*data.Product) error {
	var owners []*data.Product
	var attrs []productEntity.SuperAttribute
	var links []productEntity.SuperLink
	var relations []productEntity.ProductRelation
	for _, p := range products {
		variants, ok := p.ConfigurableVariants.Value()
		if !ok {
			continue
		}
		owners = append(owners, p)
		superIDs, _ := p.SuperAttributes.Value()
		for i, attrID := range superIDs {
			attrs = append(attrs, productEntity.SuperAttribute{ProductID: p.ID, AttributeID: attrID, Position: uint16(i)})
		}
		for _, child := range variants {
			links = append(links, productEntity.SuperLink{ProductID: child, ParentID: p.ID})
			relations = append(relations, productEntity.ProductRelation{ParentID: p.ID, ChildID: child})
		}
	}
	if len(owners) == 0 {
		return nil
	}
	if err := (configurableStorage{}).Remove(tx, owners); err != nil {
		return err
	}
	if len(attrs) > 0 {
		if err := tx.Create(&attrs).Error; err != nil {
			return err
		}
	}
	if len(links) > 0 {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error; err != nil {
			return err
		}
	}
	return insertRelations(tx, relations)
}

func (configurableStorage) Remove(tx *gorm.DB, products []*data.Product) error {
	ids := productIDs(products)
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("parent_id IN ?", ids).Delete(&productEntity.SuperLink{}).Error; err != nil {
		return err
	}
	if err := tx.Where("product_id IN ?", ids).Delete(&productEntity.SuperAttribute{}).Error; err != nil {
		return err
	}
	return removeRelations(tx, ids)
}

type bundleStorage struct{}

func (bundleStorage) Store(tx *gorm.DB, products []*data.Product) error {
	var owners []*data.Product
	for _, p := range products {
		if len(p.BundleOptions) > 0 {
			owners = append(owners, p)
		}
	}
	if len(owners) == 0 {
		return nil
	}
	if err := (bundleStorage{}).Remove(tx, owners); err != nil {
		return err
	}

	var relations []productEntity.ProductRelation
	for _, p := range owners {
		for pos, o := range p.BundleOptions {
			option := productEntity.BundleOption{ParentID: p.ID, Required: boolFlag(o.Required), Position: uint(pos + 1), Type: o.InputType}
			if err := tx.Create(&option).Error; err != nil {
				return err
			}
			value := productEntity.BundleOptionValue{OptionID: option.OptionID, ParentProductID: p.ID, Title: o.Title}
			if err := tx.Create(&value).Error; err != nil {
				return err
			}
			var selections []productEntity.BundleSelection
			for spos, s := range o.Selections {
				child, ok := s.Product.Value()
				if !ok {
					continue
				}
				qty, _ := strconv.ParseFloat(s.Qty, 64)
				selections = append(selections, productEntity.BundleSelection{
					OptionID:              option.OptionID,
					ParentProductID:       p.ID,
					ProductID:             child,
					Position:              uint(spos + 1),
					IsDefault:             boolFlag(s.IsDefault),
					SelectionQty:          qty,
					SelectionCanChangeQty: int16(boolFlag(s.CanChange)),
				})
				relations = append(relations, productEntity.ProductRelation{ParentID: p.ID, ChildID: child})
			}
			if len(selections) > 0 {
				if err := tx.Create(&selections).Error; err != nil {
					return err
				}
			}
		}
	}
	return insertRelations(tx, relations)
}

func (bundleStorage) Remove(tx *gorm.DB, products []*data.Product) error {
	ids := productIDs(products)
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("parent_product_id IN ?", ids).Delete(&productEntity.BundleSelection{}).Error; err != nil {
		return err
	}
	if err := tx.Where("parent_product_id IN ?", ids).Delete(&productEntity.BundleOptionValue{}).Error; err != nil {
		return err
	}
	if err := tx.Where("parent_id IN ?", ids).Delete(&productEntity.BundleOption{}).Error; err != nil {
		return err
	}
	return removeRelations(tx, ids)
}

// downloadableStorage only cleans up; links and samples are not imported.
type downloadableStorage struct{}

func (downloadableStorage) Store(tx *gorm.DB, products []*data.Product) error { return nil }

func (downloadableStorage) Remove(tx *gorm.DB, products []*data.Product) error {
	ids := productIDs(products)
	if len(ids) == 0 {
		return nil
	}
	if err := tx.Where("product_id IN ?", ids).Delete(&productEntity.DownloadableLink{}).Error; err != nil {
		return err
	}
	return tx.Where("product_id IN ?", ids).Delete(&productEntity.DownloadableSample{}).Error
}

// storeProductLinks replaces related, up-sell and cross-sell links for the
// link types a record carries.
func storeProductLinks(tx *gorm.DB, products []*data.Product) error {
	linkTypeIDs := map[data.LinkType]uint16{
		data.LinkRelated:   productEntity.LinkTypeRelated,
		data.LinkUpSell:    productEntity.LinkTypeUpSell,
		data.LinkCrossSell: productEntity.LinkTypeCrossSell,
	}
	for _, t := range data.LinkTypes {
		var owners []uint
		var rows []productEntity.ProductLink
		for _, p := range products {
			linked, ok := p.Links[t].Value()
			if !ok {
				continue
			}
			owners = append(owners, p.ID)
			for _, id := range linked {
				rows = append(rows, productEntity.ProductLink{ProductID: p.ID, LinkedProductID: id, LinkTypeID: linkTypeIDs[t]})
			}
		}
		if len(owners) == 0 {
			continue
		}
		if err := tx.Where("product_id IN ? AND link_type_id = ?", owners, linkTypeIDs[t]).
			Delete(&productEntity.ProductLink{}).Error; err != nil {
			return err
		}
		if len(rows) > 0 {
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

func boolFlag(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}
