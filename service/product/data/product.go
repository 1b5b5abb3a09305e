package data

import "strings"

// Product types known to the importer.
const (
	TypeSimple       = "simple"
	TypeVirtual      = "virtual"
	TypeDownloadable = "downloadable"
	TypeConfigurable = "configurable"
	TypeGrouped      = "grouped"
	TypeBundle       = "bundle"
)

var knownTypes = map[string]bool{
	TypeSimple: true, TypeVirtual: true, TypeDownloadable: true,
	TypeConfigurable: true, TypeGrouped: true, TypeBundle: true,
}

// IsKnownType reports whether t is a product type the importer can store.
func IsKnownType(t string) bool { return knownTypes[t] }

const (
	// GlobalStoreViewCode is the code of the admin store view (store_id 0).
	GlobalStoreViewCode = "admin"
	// PlaceholderName is given to products created only to be linked to.
	PlaceholderName = "Product Placeholder"
)

// LinkType names a product-to-product association.
type LinkType string

const (
	LinkRelated   LinkType = "related"
	LinkUpSell    LinkType = "upsell"
	LinkCrossSell LinkType = "crosssell"
)

// LinkTypes lists the association types in write order.
var LinkTypes = []LinkType{LinkRelated, LinkUpSell, LinkCrossSell}

type SKURefs = Ref[[]string, []uint]

// Product is one input record. ID is 0 until the storage step finds or
// creates the catalog_product_entity row.
type Product struct {
	ID         uint
	sku        string
	Type       string
	LineNumber int

	AttributeSet Ref[string, uint]
	Categories   Ref[[]string, []uint]
	Websites     Ref[[]string, []uint]

	storeViews     map[string]*StoreView
	storeViewOrder []string

	TierPrices []*TierPrice
	Links      map[LinkType]SKURefs
	Stock      *StockItem

	GroupedMembers       SKURefs
	ConfigurableVariants SKURefs
	SuperAttributes      Ref[[]string, []uint16]
	BundleOptions        []*BundleOption

	errors []string
}

// NewProduct creates a record for sku. Type defaults to simple.
func NewProduct(sku, productType string) *Product {
	if productType == "" {
		productType = TypeSimple
	}
	return &Product{
		sku:        strings.TrimSpace(sku),
		Type:       productType,
		storeViews: map[string]*StoreView{},
		Links:      map[LinkType]SKURefs{},
	}
}

func (p *Product) SKU() string { return p.sku }

// Global returns the admin store view, creating it on first use.
func (p *Product) Global() *StoreView { return p.StoreView(GlobalStoreViewCode) }

// StoreView returns the store view with the given code, creating it on first use.
func (p *Product) StoreView(code string) *StoreView {
	if sv, ok := p.storeViews[code]; ok {
		return sv
	}
	sv := newStoreView(code)
	p.storeViews[code] = sv
	p.storeViewOrder = append(p.storeViewOrder, code)
	return sv
}

// HasStoreView reports whether the record carries values for code.
func (p *Product) HasStoreView(code string) bool {
	_, ok := p.storeViews[code]
	return ok
}

// StoreViews returns the store views in the order they were added.
func (p *Product) StoreViews() []*StoreView {
	out := make([]*StoreView, 0, len(p.storeViewOrder))
	for _, code := range p.storeViewOrder {
		out = append(out, p.storeViews[code])
	}
	return out
}

// AddError records a user-data problem. A record with errors is not stored.
func (p *Product) AddError(msg string) {
	p.errors = append(p.errors, msg)
}

func (p *Product) Errors() []string { return p.errors }

func (p *Product) OK() bool { return len(p.errors) == 0 }

// Name returns the admin store view name, or "".
func (p *Product) Name() string {
	sv, ok := p.storeViews[GlobalStoreViewCode]
	if !ok {
		return ""
	}
	v, _ := sv.Attribute("name")
	return v
}

// LinkedSKUs collects every SKU the record refers to that still needs an id.
func (p *Product) LinkedSKUs() []string {
	var out []string
	for _, t := range LinkTypes {
		if skus, ok := p.Links[t].Symbol(); ok {
			out = append(out, skus...)
		}
	}
	if skus, ok := p.ConfigurableVariants.Symbol(); ok {
		out = append(out, skus...)
	}
	if skus, ok := p.GroupedMembers.Symbol(); ok {
		out = append(out, skus...)
	}
	for _, o := range p.BundleOptions {
		for _, s := range o.Selections {
			if sku, ok := s.Product.Symbol(); ok {
				out = append(out, sku)
			}
		}
	}
	return out
}

// StockItem carries the default-stock fields of a record. An empty Qty or a
// nil flag leaves the stored value alone.
type StockItem struct {
	Qty         string
	IsInStock   *bool
	ManageStock *bool
}

// AllCustomerGroups as a tier price customer group applies the price to every
// group.
const AllCustomerGroups = "ALL GROUPS"

// TierPrice is a quantity discount. An empty customer group means all groups,
// an empty website means all websites.
type TierPrice struct {
	Qty           string
	Value         string
	CustomerGroup Ref[string, uint]
	Website       Ref[string, uint]
	AllGroups     bool
}

// BundleOption is one option of a bundle product with its selections.
type BundleOption struct {
	Title      string
	InputType  string
	Required   bool
	Selections []*BundleSelection
}

// BundleSelection is one product that can be picked for a bundle option.
type BundleSelection struct {
	Product   Ref[string, uint]
	Qty       string
	IsDefault bool
	CanChange bool
}
