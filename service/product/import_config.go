package product

import (
	"errors"
	"fmt"

	"productimport.GO/service/product/data"
)

// URL key generation schemes for products without an explicit url_key.
const (
	URLKeyFromName = "from-name"
	URLKeyFromSKU  = "from-sku"
)

// Strategies for a generated url_key that is already taken.
const (
	DuplicateURLKeyError     = "error"
	DuplicateURLKeyAddSKU    = "add-sku"
	DuplicateURLKeyAddSerial = "add-serial"
)

// Product type change policies.
const (
	TypeChangeForbidden      = "forbidden"
	TypeChangeNonDestructive = "non-destructive"
	TypeChangeAllowed        = "allowed"
)

var (
	// ErrUnknownAttribute is a contract violation: a select or multi-select
	// value was given for an attribute code the catalog does not know.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrUnsupportedSchema is returned for staging (row_id) databases.
	ErrUnsupportedSchema = errors.New("unsupported catalog schema")
	ErrInvalidConfig     = errors.New("invalid import config")
)

// ResultCallback is invoked once per input record after its batch finished.
type ResultCallback func(p *data.Product)

// ImportConfig controls a run.
type ImportConfig struct {
	DryRun                     bool     `mapstructure:"dry_run" json:"dry_run"`
	BatchSize                  int      `mapstructure:"batch_size" json:"batch_size"`
	MaxStatementBytes          int      `mapstructure:"max_statement_bytes" json:"max_statement_bytes"`
	AutoCreateCategories       bool     `mapstructure:"auto_create_categories" json:"auto_create_categories"`
	AutoCreateOptionAttributes []string `mapstructure:"auto_create_option_attributes" json:"auto_create_option_attributes"`
	URLKeyScheme               string   `mapstructure:"url_key_scheme" json:"url_key_scheme"`
	DuplicateURLKeyStrategy    string   `mapstructure:"duplicate_url_key_strategy" json:"duplicate_url_key_strategy"`
	ProductTypeChange          string   `mapstructure:"product_type_change" json:"product_type_change"`
	CategoryPathSeparator      string   `mapstructure:"category_path_separator" json:"category_path_separator"`
	SaveRewritesHistory        bool     `mapstructure:"save_rewrites_history" json:"save_rewrites_history"`
	RawSQL                     bool     `mapstructure:"raw_sql" json:"raw_sql"`
	// MagentoVersion picks the url_rewrite metadata format ("2.1" serializes
	// PHP-style). Empty means detect from stored rows.
	MagentoVersion string `mapstructure:"magento_version" json:"magento_version"`

	// RunID tags logs and result rows; empty means a new uuid per run.
	RunID           string           `mapstructure:"-" json:"-"`
	ResultCallbacks []ResultCallback `mapstructure:"-" json:"-"`
}

// DefaultImportConfig returns the settings used when nothing is configured.
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		BatchSize:               1000,
		MaxStatementBytes:       1 << 20,
		AutoCreateCategories:    true,
		URLKeyScheme:            URLKeyFromName,
		DuplicateURLKeyStrategy: DuplicateURLKeyError,
		ProductTypeChange:       TypeChangeNonDestructive,
		CategoryPathSeparator:   "/",
		SaveRewritesHistory:     true,
	}
}

// Validate checks enumerated settings and fills zero sizes with defaults.
func (c *ImportConfig) Validate() error {
	def := DefaultImportConfig()
	if c.BatchSize <= 0 {
		c.BatchSize = def.BatchSize
	}
	if c.MaxStatementBytes <= 0 {
		c.MaxStatementBytes = def.MaxStatementBytes
	}
	if c.CategoryPathSeparator == "" {
		c.CategoryPathSeparator = def.CategoryPathSeparator
	}
	switch c.URLKeyScheme {
	case URLKeyFromName, URLKeyFromSKU:
	case "":
		c.URLKeyScheme = def.URLKeyScheme
	default:
		return fmt.Errorf("%w: url key scheme %q", ErrInvalidConfig, c.URLKeyScheme)
	}
	switch c.DuplicateURLKeyStrategy {
	case DuplicateURLKeyError, DuplicateURLKeyAddSKU, DuplicateURLKeyAddSerial:
	case "":
		c.DuplicateURLKeyStrategy = def.DuplicateURLKeyStrategy
	default:
		return fmt.Errorf("%w: duplicate url key strategy %q", ErrInvalidConfig, c.DuplicateURLKeyStrategy)
	}
	switch c.ProductTypeChange {
	case TypeChangeForbidden, TypeChangeNonDestructive, TypeChangeAllowed:
	case "":
		c.ProductTypeChange = def.ProductTypeChange
	default:
		return fmt.Errorf("%w: product type change %q", ErrInvalidConfig, c.ProductTypeChange)
	}
	return nil
}

func (c *ImportConfig) autoCreatesOptions(attributeCode string) bool {
	for _, code := range c.AutoCreateOptionAttributes {
		if code == attributeCode {
			return true
		}
	}
	return false
}
