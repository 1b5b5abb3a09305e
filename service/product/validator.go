package product

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"productimport.GO/service/product/data"
	"productimport.GO/service/product/meta"
)

const (
	maxSKULength     = 64
	maxVarcharLength = 255
)

var datetimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// skuSupply tells what the valid records of one new sku provide together.
// They share a single main row, so the name and attribute set may come from
// any of them.
type skuSupply struct {
	name         bool
	attributeSet bool
}

func newSKUSupply(products []*data.Product) map[string]skuSupply {
	out := map[string]skuSupply{}
	for _, p := range products {
		if p.ID != 0 || !p.OK() {
			continue
		}
		s := out[p.SKU()]
		s.name = s.name || p.Name() != ""
		s.attributeSet = s.attributeSet || p.AttributeSet.IsResolved()
		out[p.SKU()] = s
	}
	return out
}

// missingMainValues lists what a new record lacks that no sibling supplies.
func missingMainValues(p *data.Product, s skuSupply) []string {
	var out []string
	if !p.AttributeSet.IsResolved() && p.AttributeSet.State() != data.RefFailed && !s.attributeSet {
		out = append(out, "missing attribute set")
	}
	if p.Name() == "" && !s.name {
		out = append(out, "missing name")
	}
	return out
}

// validateProducts adds errors for records that would not store cleanly and
// normalizes decimal and datetime values.
func validateProducts(products []*data.Product, m *meta.MetaData) {
	supply := newSKUSupply(products)
	for _, p := range products {
		validateProduct(p, m, supply[p.SKU()])
	}
	// a record relying on a sibling fails when the sibling did
	for changed := true; changed; {
		changed = false
		supply = newSKUSupply(products)
		for _, p := range products {
			if p.ID != 0 || !p.OK() {
				continue
			}
			for _, msg := range missingMainValues(p, supply[p.SKU()]) {
				p.AddError(msg)
				changed = true
			}
		}
	}
}

func validateProduct(p *data.Product, m *meta.MetaData, supply skuSupply) {
	sku := p.SKU()
	switch {
	case sku == "":
		p.AddError("missing sku")
	case utf8.RuneCountInString(sku) > maxSKULength:
		p.AddError(fmt.Sprintf("sku has %d characters (max %d)", utf8.RuneCountInString(sku), maxSKULength))
	}
	if !data.IsKnownType(p.Type) {
		p.AddError(fmt.Sprintf("unknown product type: %s", p.Type))
	}
	if p.ID == 0 {
		for _, msg := range missingMainValues(p, supply) {
			p.AddError(msg)
		}
	}

	for _, sv := range p.StoreViews() {
		for _, code := range sv.AttributeCodes() {
			value, set := sv.Attribute(code)
			attr, ok := m.Attribute(code)
			if !ok {
				p.AddError(fmt.Sprintf("attribute not found: %s", code))
				continue
			}
			if attr.Table() == "" {
				p.AddError(fmt.Sprintf("attribute is not an eav attribute: %s", code))
				continue
			}
			if !set {
				continue
			}
			normalized, msg := normalizeValue(attr, value)
			if msg != "" {
				p.AddError(msg)
				continue
			}
			if normalized != value {
				sv.SetAttribute(code, normalized)
			}
		}
	}

	for _, tp := range p.TierPrices {
		if _, err := decimal.NewFromString(tp.Qty); err != nil {
			p.AddError(fmt.Sprintf("invalid tier price qty: %q", tp.Qty))
		}
		if _, err := decimal.NewFromString(tp.Value); err != nil {
			p.AddError(fmt.Sprintf("invalid tier price value: %q", tp.Value))
		}
	}
	if p.Stock != nil && p.Stock.Qty != "" {
		if _, err := decimal.NewFromString(p.Stock.Qty); err != nil {
			p.AddError(fmt.Sprintf("invalid qty: %q", p.Stock.Qty))
		}
	}
}

func normalizeValue(attr meta.AttributeInfo, value string) (string, string) {
	value = strings.TrimSpace(value)
	switch attr.BackendType {
	case "int":
		if _, err := strconv.ParseInt(value, 10, 64); err != nil {
			return "", fmt.Sprintf("invalid int value for %s: %q", attr.Code, value)
		}
		return value, ""
	case "decimal":
		d, err := decimal.NewFromString(value)
		if err != nil {
			return "", fmt.Sprintf("invalid decimal value for %s: %q", attr.Code, value)
		}
		return d.String(), ""
	case "datetime":
		for _, layout := range datetimeLayouts {
			if t, err := time.Parse(layout, value); err == nil {
				return t.Format("2006-01-02 15:04:05"), ""
			}
		}
		return "", fmt.Sprintf("invalid datetime value for %s: %q", attr.Code, value)
	case "varchar":
		if n := utf8.RuneCountInString(value); n > maxVarcharLength {
			return "", fmt.Sprintf("value for %s has %d characters (max %d)", attr.Code, n, maxVarcharLength)
		}
	}
	return value, ""
}
