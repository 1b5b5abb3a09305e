package product

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadProducts_CSVMergesStoreViewRows(t *testing.T) {
	csv := "\ufeffSKU,name,type,attribute_set,categories,store_view_code,qty,is_in_stock,select:color,related_skus,description\n" +
		"hat-1,Hat,simple,Default,\"Men/Hats, Sale\",,5,1,Red,scarf,__EMPTY__VALUE__\n" +
		"hat-1,Hoed,,,,nl,,,Rood,,\n" +
		",orphan,,,,,,,,,\n" +
		"hat-2,Cap,virtual,,,admin,,,,__EMPTY__VALUE__,\n"

	inputs, columns, err := ReadProducts(strings.NewReader(csv), "products.csv")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "description"}, columns)
	require.Len(t, inputs, 2)

	hat := inputs[0]
	assert.Equal(t, "hat-1", hat.SKU)
	assert.Equal(t, 2, hat.LineNumber)
	assert.Equal(t, "simple", hat.Type)
	assert.Equal(t, "Default", hat.AttributeSet)
	assert.Equal(t, []string{"Men/Hats", "Sale"}, hat.Categories)
	assert.Equal(t, "Hat", *hat.Global.Attributes["name"])
	assert.Nil(t, hat.Global.Attributes["description"])
	assert.Contains(t, hat.Global.Attributes, "description")
	assert.Equal(t, "Red", hat.Global.Selects["color"])
	assert.Equal(t, []string{"scarf"}, hat.Related)
	require.NotNil(t, hat.Stock)
	assert.Equal(t, "5", hat.Stock.Qty)
	require.NotNil(t, hat.Stock.IsInStock)
	assert.True(t, *hat.Stock.IsInStock)

	nl := hat.StoreViews["nl"]
	assert.Equal(t, "Hoed", *nl.Attributes["name"])
	assert.Equal(t, "Rood", nl.Selects["color"])

	virtual := inputs[1]
	assert.Equal(t, 5, virtual.LineNumber)
	assert.Equal(t, "virtual", virtual.Type)
	assert.NotNil(t, virtual.Related)
	assert.Empty(t, virtual.Related)
	assert.Nil(t, virtual.Stock)
}

func TestReadProducts_NoSKUColumn(t *testing.T) {
	_, _, err := ReadProducts(strings.NewReader("name\nHat\n"), "products.csv")
	assert.True(t, errors.Is(err, ErrNoSKUColumn))

	_, _, err = ReadProducts(strings.NewReader(""), "products.csv")
	assert.Error(t, err)
}

func TestReadProducts_XLSXPrefersProductsSheet(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	_, err := f.NewSheet("Products")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"notes"}))
	require.NoError(t, f.SetSheetRow("Products", "A1", &[]interface{}{"sku", "name", "price"}))
	require.NoError(t, f.SetSheetRow("Products", "A2", &[]interface{}{"hat-1", "Hat", "19.99"}))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	inputs, columns, err := ReadProducts(&buf, "catalog.XLSX")
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "price"}, columns)
	require.Len(t, inputs, 1)
	assert.Equal(t, "19.99", *inputs[0].Global.Attributes["price"])
}

func TestParseTierPrices(t *testing.T) {
	got := parseTierPrices("5:9.50|10:8:Wholesale:base")
	require.Len(t, got, 2)
	assert.Equal(t, TierPriceInput{Qty: "5", Value: "9.50"}, got[0])
	assert.Equal(t, TierPriceInput{Qty: "10", Value: "8", CustomerGroup: "Wholesale", Website: "base"}, got[1])

	cleared := parseTierPrices(EmptyValue)
	assert.NotNil(t, cleared)
	assert.Empty(t, cleared)
}

func TestParseBundleValues(t *testing.T) {
	got := parseBundleValues("Hat=hat-1;hat-2*2|Scarf=scarf-1|broken")
	require.Len(t, got, 2)
	assert.Equal(t, "Hat", got[0].Title)
	assert.True(t, got[0].Required)
	assert.Equal(t, []BundleSelectionInput{
		{SKU: "hat-1", IsDefault: true},
		{SKU: "hat-2", Qty: "2"},
	}, got[0].Selections)
	assert.Equal(t, "scarf-1", got[1].Selections[0].SKU)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "product_type", normalizeHeader(" Type_ID "))
	assert.Equal(t, "select:Color", normalizeHeader("Select: Color"))
	assert.Equal(t, "sku", normalizeHeader("\ufeffsku"))
}

func TestReadProducts_StockColumnsOnlyWhenFilled(t *testing.T) {
	csv := "sku,qty,is_in_stock\n" +
		"hat-1,,0\n" +
		"hat-2,4,\n" +
		"hat-3,,\n"
	inputs, _, err := ReadProducts(strings.NewReader(csv), "stock.csv")
	require.NoError(t, err)
	require.Len(t, inputs, 3)

	require.NotNil(t, inputs[0].Stock)
	assert.Empty(t, inputs[0].Stock.Qty)
	require.NotNil(t, inputs[0].Stock.IsInStock)
	assert.False(t, *inputs[0].Stock.IsInStock)

	require.NotNil(t, inputs[1].Stock)
	assert.Equal(t, "4", inputs[1].Stock.Qty)
	assert.Nil(t, inputs[1].Stock.IsInStock)

	assert.Nil(t, inputs[2].Stock)
}
