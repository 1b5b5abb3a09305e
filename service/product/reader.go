package product

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// EmptyValue in a cell removes the stored value of an attribute.
const EmptyValue = "__EMPTY__VALUE__"

const (
	selectPrefix      = "select:"
	multiSelectPrefix = "multiselect:"
	valueSeparator    = ","
	groupSeparator    = "|"
)

var ErrNoSKUColumn = errors.New("file must contain a 'sku' column")

// structuralColumns are handled by the reader itself; every other column is
// an attribute code.
var structuralColumns = map[string]bool{
	"sku": true, "product_type": true, "attribute_set_code": true, "store_view_code": true,
	"categories": true, "product_websites": true, "tax_class_name": true,
	"related_skus": true, "upsell_skus": true, "crosssell_skus": true,
	"associated_skus": true, "configurable_variations": true, "configurable_attributes": true,
	"bundle_values": true, "tier_prices": true, "qty": true, "is_in_stock": true,
}

// columnAliases maps alternative header spellings.
var columnAliases = map[string]string{
	"type":          "product_type",
	"type_id":       "product_type",
	"attribute_set": "attribute_set_code",
	"websites":      "product_websites",
	"store_view":    "store_view_code",
	"tax_class":     "tax_class_name",
}

// ReadProducts parses a CSV or XLSX product file. Rows are merged by sku:
// a row without store_view_code carries the global values, rows with one
// become store view overrides. The returned columns are the normalized
// attribute columns, for the caller to check against the catalog.
func ReadProducts(r io.Reader, name string) ([]ProductInput, []string, error) {
	var rows [][]string
	var err error
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		rows, err = readXLSX(r)
	} else {
		rows, err = readCSV(r)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("read header: %w", io.ErrUnexpectedEOF)
	}
	return mergeRows(rows)
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read CSV: %w", err)
	}
	return rows, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open Excel file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets found in Excel file")
	}
	sheetName := sheets[0]
	for _, name := range sheets {
		if strings.EqualFold(name, "Products") {
			sheetName = name
			break
		}
	}
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return rows, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	if strings.HasPrefix(strings.ToLower(h), selectPrefix) || strings.HasPrefix(strings.ToLower(h), multiSelectPrefix) {
		i := strings.Index(h, ":")
		return strings.ToLower(h[:i+1]) + strings.TrimSpace(h[i+1:])
	}
	h = strings.ToLower(h)
	if alias, ok := columnAliases[h]; ok {
		return alias
	}
	return h
}

func mergeRows(rows [][]string) ([]ProductInput, []string, error) {
	headers := make([]string, len(rows[0]))
	skuCol := -1
	var attributeColumns []string
	for i, h := range rows[0] {
		headers[i] = normalizeHeader(h)
		switch {
		case headers[i] == "sku":
			skuCol = i
		case headers[i] == "", structuralColumns[headers[i]]:
		case strings.HasPrefix(headers[i], selectPrefix), strings.HasPrefix(headers[i], multiSelectPrefix):
		default:
			attributeColumns = append(attributeColumns, headers[i])
		}
	}
	if skuCol < 0 {
		return nil, nil, ErrNoSKUColumn
	}

	index := map[string]int{}
	var inputs []ProductInput
	for n, record := range rows[1:] {
		row := make(map[string]string, len(headers))
		for i, value := range record {
			if i < len(headers) && headers[i] != "" {
				row[headers[i]] = strings.TrimSpace(value)
			}
		}
		sku := row["sku"]
		if sku == "" {
			continue
		}
		pos, ok := index[sku]
		if !ok {
			pos = len(inputs)
			index[sku] = pos
			inputs = append(inputs, ProductInput{SKU: sku, LineNumber: n + 2})
		}
		in := &inputs[pos]
		if code := row["store_view_code"]; code != "" && code != "admin" {
			if in.StoreViews == nil {
				in.StoreViews = map[string]StoreViewInput{}
			}
			sv := in.StoreViews[code]
			fillStoreView(&sv, row, headers)
			in.StoreViews[code] = sv
			continue
		}
		fillGlobal(in, row)
		fillStoreView(&in.Global, row, headers)
	}
	return inputs, attributeColumns, nil
}

func splitValues(s, sep string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, v := range strings.Split(s, sep) {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func fillGlobal(in *ProductInput, row map[string]string) {
	if v := row["product_type"]; v != "" {
		in.Type = v
	}
	if v := row["attribute_set_code"]; v != "" {
		in.AttributeSet = v
	}
	if v := row["categories"]; v != "" {
		in.Categories = splitValues(v, valueSeparator)
	}
	if v := row["product_websites"]; v != "" {
		in.Websites = splitValues(v, valueSeparator)
	}
	lists := map[string]*[]string{
		"related_skus":            &in.Related,
		"upsell_skus":             &in.UpSell,
		"crosssell_skus":          &in.CrossSell,
		"associated_skus":         &in.AssociatedSKUs,
		"configurable_variations": &in.ConfigurableSKUs,
		"configurable_attributes": &in.ConfigurableAttributes,
	}
	for col, dst := range lists {
		v, ok := row[col]
		switch {
		case !ok || v == "":
		case v == EmptyValue:
			*dst = []string{}
		default:
			*dst = splitValues(v, valueSeparator)
		}
	}
	if v := row["tier_prices"]; v != "" {
		in.TierPrices = parseTierPrices(v)
	}
	if v := row["bundle_values"]; v != "" {
		in.BundleOptions = parseBundleValues(v)
	}
	qty, inStock := row["qty"], row["is_in_stock"]
	if qty != "" || inStock != "" {
		in.Stock = &StockInput{Qty: qty}
		if inStock != "" {
			flag := inStock == "1" || strings.EqualFold(inStock, "yes")
			in.Stock.IsInStock = &flag
		}
	}
}

func fillStoreView(sv *StoreViewInput, row map[string]string, headers []string) {
	if v := row["tax_class_name"]; v != "" {
		sv.TaxClass = v
	}
	for _, h := range headers {
		v, ok := row[h]
		if !ok || v == "" || h == "" || structuralColumns[h] {
			continue
		}
		switch {
		case strings.HasPrefix(h, selectPrefix):
			if sv.Selects == nil {
				sv.Selects = map[string]string{}
			}
			sv.Selects[strings.TrimPrefix(h, selectPrefix)] = v
		case strings.HasPrefix(h, multiSelectPrefix):
			if sv.MultiSelects == nil {
				sv.MultiSelects = map[string][]string{}
			}
			sv.MultiSelects[strings.TrimPrefix(h, multiSelectPrefix)] = splitValues(v, valueSeparator)
		default:
			if sv.Attributes == nil {
				sv.Attributes = map[string]*string{}
			}
			if v == EmptyValue {
				sv.Attributes[h] = nil
			} else {
				value := v
				sv.Attributes[h] = &value
			}
		}
	}
}

// parseTierPrices reads "qty:value[:customer_group[:website]]" entries
// separated by "|". EmptyValue removes all tier prices.
func parseTierPrices(s string) []TierPriceInput {
	out := []TierPriceInput{}
	if s == EmptyValue {
		return out
	}
	for _, entry := range splitValues(s, groupSeparator) {
		parts := strings.Split(entry, ":")
		tp := TierPriceInput{Qty: strings.TrimSpace(parts[0])}
		if len(parts) > 1 {
			tp.Value = strings.TrimSpace(parts[1])
		}
		if len(parts) > 2 {
			tp.CustomerGroup = strings.TrimSpace(parts[2])
		}
		if len(parts) > 3 {
			tp.Website = strings.TrimSpace(parts[3])
		}
		out = append(out, tp)
	}
	return out
}

// parseBundleValues reads "Title=sku1;sku2|Other title=sku3". A selection
// may carry a quantity as "sku*2".
func parseBundleValues(s string) []BundleOptionInput {
	var out []BundleOptionInput
	for _, entry := range splitValues(s, groupSeparator) {
		title, skus, found := strings.Cut(entry, "=")
		if !found {
			continue
		}
		option := BundleOptionInput{Title: strings.TrimSpace(title), InputType: "select", Required: true}
		for i, sel := range splitValues(skus, ";") {
			sku, qty, _ := strings.Cut(sel, "*")
			option.Selections = append(option.Selections, BundleSelectionInput{
				SKU:       strings.TrimSpace(sku),
				Qty:       strings.TrimSpace(qty),
				IsDefault: i == 0,
			})
		}
		out = append(out, option)
	}
	return out
}
