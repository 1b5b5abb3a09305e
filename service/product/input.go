package product

import (
	"strings"

	"productimport.GO/service/product/data"
)

// ProductInput is the JSON shape of one product, as accepted by the import
// API and produced by the file reader.
type ProductInput struct {
	SKU          string   `json:"sku"`
	Type         string   `json:"type,omitempty"`
	AttributeSet string   `json:"attribute_set,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	Websites     []string `json:"websites,omitempty"`

	// Global holds the admin (store 0) values; StoreViews the overrides.
	Global     StoreViewInput            `json:"global"`
	StoreViews map[string]StoreViewInput `json:"store_views,omitempty"`

	TierPrices []TierPriceInput `json:"tier_prices,omitempty"`
	Related    []string         `json:"related_skus,omitempty"`
	UpSell     []string         `json:"upsell_skus,omitempty"`
	CrossSell  []string         `json:"crosssell_skus,omitempty"`
	Stock      *StockInput      `json:"stock,omitempty"`

	AssociatedSKUs         []string           `json:"associated_skus,omitempty"`
	ConfigurableSKUs       []string           `json:"configurable_skus,omitempty"`
	ConfigurableAttributes []string           `json:"configurable_attributes,omitempty"`
	BundleOptions          []BundleOptionInput `json:"bundle_options,omitempty"`

	LineNumber int `json:"-"`
}

// StoreViewInput carries the values of one store view. A nil attribute value
// removes the value.
type StoreViewInput struct {
	Attributes   map[string]*string  `json:"attributes,omitempty"`
	TaxClass     string              `json:"tax_class,omitempty"`
	Selects      map[string]string   `json:"selects,omitempty"`
	MultiSelects map[string][]string `json:"multi_selects,omitempty"`
}

func (in StoreViewInput) empty() bool {
	return len(in.Attributes) == 0 && in.TaxClass == "" && len(in.Selects) == 0 && len(in.MultiSelects) == 0
}

type TierPriceInput struct {
	Qty           string `json:"qty"`
	Value         string `json:"value"`
	CustomerGroup string `json:"customer_group,omitempty"`
	Website       string `json:"website,omitempty"`
}

type StockInput struct {
	Qty         string `json:"qty,omitempty"`
	IsInStock   *bool  `json:"is_in_stock,omitempty"`
	ManageStock *bool  `json:"manage_stock,omitempty"`
}

type BundleOptionInput struct {
	Title      string                 `json:"title"`
	InputType  string                 `json:"input_type,omitempty"`
	Required   bool                   `json:"required"`
	Selections []BundleSelectionInput `json:"selections"`
}

type BundleSelectionInput struct {
	SKU       string `json:"sku"`
	Qty       string `json:"qty,omitempty"`
	IsDefault bool   `json:"is_default,omitempty"`
	CanChange bool   `json:"can_change_qty,omitempty"`
}

// ToProduct builds the record the importer works on. Only fields present in
// the input become references; absent fields leave stored values alone.
func (in ProductInput) ToProduct() *data.Product {
	p := data.NewProduct(in.SKU, strings.TrimSpace(in.Type))
	p.LineNumber = in.LineNumber

	if name := strings.TrimSpace(in.AttributeSet); name != "" {
		p.AttributeSet = data.Unresolved[string, uint](name)
	}
	if paths := nonEmpty(in.Categories); len(paths) > 0 {
		p.Categories = data.Unresolved[[]string, []uint](paths)
	}
	if codes := nonEmpty(in.Websites); len(codes) > 0 {
		p.Websites = data.Unresolved[[]string, []uint](codes)
	}

	if !in.Global.empty() {
		applyStoreView(p.Global(), in.Global)
	}
	for code, sv := range in.StoreViews {
		code = strings.TrimSpace(code)
		if code == "" {
			continue
		}
		applyStoreView(p.StoreView(code), sv)
	}

	if in.TierPrices != nil {
		p.TierPrices = make([]*data.TierPrice, 0, len(in.TierPrices))
		for _, tp := range in.TierPrices {
			price := &data.TierPrice{Qty: tp.Qty, Value: tp.Value}
			if g := strings.TrimSpace(tp.CustomerGroup); g != "" && !strings.EqualFold(g, data.AllCustomerGroups) {
				price.CustomerGroup = data.Unresolved[string, uint](g)
			} else {
				price.AllGroups = true
			}
			if w := strings.TrimSpace(tp.Website); w != "" {
				price.Website = data.Unresolved[string, uint](w)
			}
			p.TierPrices = append(p.TierPrices, price)
		}
	}

	links := map[data.LinkType][]string{
		data.LinkRelated:   in.Related,
		data.LinkUpSell:    in.UpSell,
		data.LinkCrossSell: in.CrossSell,
	}
	for t, skus := range links {
		if skus != nil {
			p.Links[t] = data.Unresolved[[]string, []uint](nonEmpty(skus))
		}
	}

	if in.Stock != nil {
		p.Stock = &data.StockItem{
			Qty:         strings.TrimSpace(in.Stock.Qty),
			IsInStock:   in.Stock.IsInStock,
			ManageStock: in.Stock.ManageStock,
		}
	}

	if in.AssociatedSKUs != nil {
		p.GroupedMembers = data.Unresolved[[]string, []uint](nonEmpty(in.AssociatedSKUs))
	}
	if in.ConfigurableSKUs != nil {
		p.ConfigurableVariants = data.Unresolved[[]string, []uint](nonEmpty(in.ConfigurableSKUs))
	}
	if in.ConfigurableAttributes != nil {
		p.SuperAttributes = data.Unresolved[[]string, []uint16](nonEmpty(in.ConfigurableAttributes))
	}
	for _, o := range in.BundleOptions {
		option := &data.BundleOption{Title: o.Title, InputType: o.InputType, Required: o.Required}
		if option.InputType == "" {
			option.InputType = "select"
		}
		for _, s := range o.Selections {
			qty := s.Qty
			if qty == "" {
				qty = "1"
			}
			option.Selections = append(option.Selections, &data.BundleSelection{
				Product:   data.Unresolved[string, uint](strings.TrimSpace(s.SKU)),
				Qty:       qty,
				IsDefault: s.IsDefault,
				CanChange: s.CanChange,
			})
		}
		p.BundleOptions = append(p.BundleOptions, option)
	}
	return p
}

func applyStoreView(sv *data.StoreView, in StoreViewInput) {
	for code, value := range in.Attributes {
		if value == nil {
			sv.ClearAttribute(code)
		} else {
			sv.SetAttribute(code, *value)
		}
	}
	if tc := strings.TrimSpace(in.TaxClass); tc != "" {
		sv.TaxClass = data.Unresolved[string, uint](tc)
	}
	for code, label := range in.Selects {
		sv.Selects[code] = data.Unresolved[string, uint](label)
	}
	for code, labels := range in.MultiSelects {
		sv.MultiSelects[code] = data.Unresolved[[]string, []uint](labels)
	}
}
