package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"

	productService "productimport.GO/service/product"
)

const importEnvPrefix = "IMPORT_"

// importEnvKeys lists the IMPORT_* variables read into ImportConfig.
var importEnvKeys = []string{
	"dry_run", "batch_size", "max_statement_bytes", "auto_create_categories",
	"auto_create_option_attributes", "url_key_scheme", "duplicate_url_key_strategy",
	"product_type_change", "category_path_separator", "save_rewrites_history",
	"raw_sql", "magento_version",
}

// LoadImportConfig starts from the defaults and applies IMPORT_* variables,
// e.g. IMPORT_BATCH_SIZE=500 or IMPORT_AUTO_CREATE_OPTION_ATTRIBUTES=color,size.
func LoadImportConfig() (productService.ImportConfig, error) {
	values := map[string]interface{}{}
	for _, key := range importEnvKeys {
		if v, ok := os.LookupEnv(importEnvPrefix + strings.ToUpper(key)); ok {
			values[key] = v
		}
	}
	return DecodeImportOptions(productService.DefaultImportConfig(), values)
}

// DecodeImportOptions overlays options (env strings or JSON values) onto
// base.
func DecodeImportOptions(base productService.ImportConfig, options map[string]interface{}) (productService.ImportConfig, error) {
	cfg := base
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToSliceHookFunc(","),
			trimStringSliceHook(),
		),
		Result:  &cfg,
		TagName: "mapstructure",
	})
	if err != nil {
		return base, err
	}
	if err := dec.Decode(options); err != nil {
		return base, fmt.Errorf("%w: %v", productService.ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

func trimStringSliceHook() mapstructure.DecodeHookFunc {
	stringSliceType := reflect.TypeOf([]string(nil))
	return func(f, t reflect.Type, data interface{}) (interface{}, error) {
		if t != stringSliceType {
			return data, nil
		}
		v, ok := data.([]string)
		if !ok {
			return data, nil
		}
		out := make([]string, 0, len(v))
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	}
}
