// Package catalog holds the database-backed collaborators the importer uses
// to turn names, codes and SKUs into ids.
package catalog

import (
	"fmt"
	"strings"

	"productimport.GO/service/product/meta"
)

// MapResolver resolves names against one of the metadata lookup maps.
type MapResolver struct {
	ids    map[string]uint
	format string
	extra  map[string]uint
}

func (r MapResolver) ResolveName(name string) (uint, string) {
	name = strings.TrimSpace(name)
	if id, ok := r.extra[name]; ok {
		return id, ""
	}
	if id, ok := r.ids[name]; ok {
		return id, ""
	}
	return 0, fmt.Sprintf(r.format, name)
}

// ResolveCodes resolves every code and reports all unknown ones at once.
func (r MapResolver) ResolveCodes(codes []string) ([]uint, string) {
	ids := make([]uint, 0, len(codes))
	var missing []string
	for _, c := range codes {
		id, msg := r.ResolveName(c)
		if msg != "" {
			missing = append(missing, strings.TrimSpace(c))
			continue
		}
		ids = append(ids, id)
	}
	if len(missing) > 0 {
		return nil, fmt.Sprintf(r.format, strings.Join(missing, ", "))
	}
	return ids, ""
}

func NewAttributeSetResolver(m *meta.MetaData) MapResolver {
	return MapResolver{ids: m.AttributeSets, format: "attribute set name not found: %s"}
}

func NewStoreViewResolver(m *meta.MetaData) MapResolver {
	return MapResolver{ids: m.StoreViews, format: "store view code not found: %s"}
}

func NewWebsiteResolver(m *meta.MetaData) MapResolver {
	return MapResolver{ids: m.Websites, format: "website code not found: %s"}
}

// NewTaxClassResolver accepts "None" for products without a tax class.
func NewTaxClassResolver(m *meta.MetaData) MapResolver {
	return MapResolver{ids: m.TaxClasses, format: "tax class name not found: %s", extra: map[string]uint{"None": 0}}
}

func NewCustomerGroupResolver(m *meta.MetaData) MapResolver {
	return MapResolver{ids: m.CustomerGroups, format: "customer group code not found: %s"}
}
