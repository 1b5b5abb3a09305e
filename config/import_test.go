package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productService "productimport.GO/service/product"
)

func TestLoadImportConfig_FromEnv(t *testing.T) {
	t.Setenv("IMPORT_BATCH_SIZE", "250")
	t.Setenv("IMPORT_DRY_RUN", "1")
	t.Setenv("IMPORT_AUTO_CREATE_OPTION_ATTRIBUTES", "color, size")
	t.Setenv("IMPORT_URL_KEY_SCHEME", "from-sku")
	t.Setenv("IMPORT_SAVE_REWRITES_HISTORY", "false")

	cfg, err := LoadImportConfig()
	require.NoError(t, err)
	assert.Equal(t, 250, cfg.BatchSize)
	assert.True(t, cfg.DryRun)
	assert.Equal(t, []string{"color", "size"}, cfg.AutoCreateOptionAttributes)
	assert.Equal(t, productService.URLKeyFromSKU, cfg.URLKeyScheme)
	assert.False(t, cfg.SaveRewritesHistory)
	// untouched settings keep their defaults
	assert.Equal(t, productService.TypeChangeNonDestructive, cfg.ProductTypeChange)
	assert.True(t, cfg.AutoCreateCategories)
}

func TestDecodeImportOptions_JSONValues(t *testing.T) {
	cfg, err := DecodeImportOptions(productService.DefaultImportConfig(), map[string]interface{}{
		"batch_size":                 float64(10),
		"duplicate_url_key_strategy": "add-serial",
		"auto_create_categories":     false,
	})
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.BatchSize)
	assert.Equal(t, productService.DuplicateURLKeyAddSerial, cfg.DuplicateURLKeyStrategy)
	assert.False(t, cfg.AutoCreateCategories)
}

func TestDecodeImportOptions_Invalid(t *testing.T) {
	_, err := DecodeImportOptions(productService.DefaultImportConfig(), map[string]interface{}{
		"product_type_change": "sometimes",
	})
	assert.ErrorIs(t, err, productService.ErrInvalidConfig)
}
