package product

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"productimport.GO/service/product/data"
	"productimport.GO/service/product/meta"
)

func TestNormalizeValue(t *testing.T) {
	price := meta.AttributeInfo{Code: "price", BackendType: "decimal"}
	status := meta.AttributeInfo{Code: "status", BackendType: "int"}
	newsFrom := meta.AttributeInfo{Code: "news_from_date", BackendType: "datetime"}
	name := meta.AttributeInfo{Code: "name", BackendType: "varchar"}

	tests := []struct {
		name    string
		attr    meta.AttributeInfo
		in      string
		want    string
		wantErr string
	}{
		{"decimal trailing zeros", price, " 19.9900 ", "19.99", ""},
		{"decimal garbage", price, "cheap", "", `invalid decimal value for price: "cheap"`},
		{"int", status, "1", "1", ""},
		{"int garbage", status, "yes", "", `invalid int value for status: "yes"`},
		{"date only", newsFrom, "2024-03-01", "2024-03-01 00:00:00", ""},
		{"iso datetime", newsFrom, "2024-03-01T10:30:00", "2024-03-01 10:30:00", ""},
		{"bad datetime", newsFrom, "yesterday", "", `invalid datetime value for news_from_date: "yesterday"`},
		{"varchar", name, "Hat", "Hat", ""},
		{"varchar too long", name, strings.Repeat("x", 256), "", "value for name has 256 characters (max 255)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, msg := normalizeValue(tt.attr, tt.in)
			assert.Equal(t, tt.wantErr, msg)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateProduct(t *testing.T) {
	m := &meta.MetaData{ProductAttributes: map[string]meta.AttributeInfo{
		"price": {ID: 77, Code: "price", BackendType: "decimal"},
		"sku":   {ID: 74, Code: "sku", BackendType: "static"},
	}}

	t.Run("new product needs set and name", func(t *testing.T) {
		p := data.NewProduct("hat", "")
		validateProduct(p, m, skuSupply{})
		assert.ElementsMatch(t, []string{"missing attribute set", "missing name"}, p.Errors())
	})

	t.Run("existing product is checked per value", func(t *testing.T) {
		p := data.NewProduct("hat", "hovercraft")
		p.ID = 5
		p.Global().SetAttribute("price", "10.50")
		p.Global().SetAttribute("sku", "other")
		p.Global().SetAttribute("colour", "red")
		p.TierPrices = []*data.TierPrice{{Qty: "two", Value: "5"}}
		validateProduct(p, m, skuSupply{})

		assert.ElementsMatch(t, []string{
			"unknown product type: hovercraft",
			"attribute is not an eav attribute: sku",
			"attribute not found: colour",
			`invalid tier price qty: "two"`,
		}, p.Errors())
		v, _ := p.Global().Attribute("price")
		assert.Equal(t, "10.5", v)
	})

	t.Run("sku length", func(t *testing.T) {
		p := data.NewProduct(strings.Repeat("s", 65), "")
		p.ID = 1
		validateProduct(p, m, skuSupply{})
		assert.Equal(t, []string{"sku has 65 characters (max 64)"}, p.Errors())
	})
}

func TestValidateProducts_SiblingsShareMainValues(t *testing.T) {
	m := &meta.MetaData{ProductAttributes: map[string]meta.AttributeInfo{
		"name": {ID: 73, Code: "name", BackendType: "varchar"},
	}}
	records := func() (*data.Product, *data.Product) {
		global := data.NewProduct("hat", data.TypeSimple)
		global.AttributeSet = data.Resolved[string, uint](4)
		global.Global().SetAttribute("name", "Hat")
		dutch := data.NewProduct("hat", data.TypeSimple)
		dutch.StoreView("nl").SetAttribute("name", "Hoed")
		return global, dutch
	}

	global, dutch := records()
	validateProducts([]*data.Product{dutch, global}, m)
	assert.True(t, global.OK(), global.Errors())
	assert.True(t, dutch.OK(), dutch.Errors())

	global, dutch = records()
	global.AddError("Duplicate url key: hat")
	validateProducts([]*data.Product{global, dutch}, m)
	assert.ElementsMatch(t, []string{"missing attribute set", "missing name"}, dutch.Errors())

	other := data.NewProduct("cap", data.TypeSimple)
	other.StoreView("nl").SetAttribute("name", "Pet")
	global, _ = records()
	validateProducts([]*data.Product{global, other}, m)
	assert.ElementsMatch(t, []string{"missing attribute set", "missing name"}, other.Errors())
}
