package product

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"productimport.GO/core/cache"
	"productimport.GO/model/repository/catalog"
	"productimport.GO/service/product/data"
	"productimport.GO/service/product/meta"
)

// ImportResult holds counters and timing from an import run.
type ImportResult struct {
	RunID    string        `json:"run_id"`
	Total    int           `json:"total"`
	Created  int           `json:"created"`
	Updated  int           `json:"updated"`
	Failed   int           `json:"failed"`
	Batches  int           `json:"batches"`
	Warnings []string      `json:"warnings,omitempty"`
	Elapsed  time.Duration `json:"elapsed"`
}

// Importer runs imports against one database.
type Importer struct {
	db     *gorm.DB
	cfg    ImportConfig
	logger *logrus.Entry
}

// NewImporter validates cfg and returns an importer. A nil logger logs to
// the standard logrus logger.
func NewImporter(db *gorm.DB, cfg ImportConfig, logger *logrus.Logger) (*Importer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Importer{db: db, cfg: cfg, logger: logger.WithField("component", "productimport")}, nil
}

// ImportFile reads a CSV or XLSX file and imports it. Attribute columns the
// catalog does not know are reported as warnings and skipped.
func (i *Importer) ImportFile(ctx context.Context, r io.Reader, name string) (*ImportResult, error) {
	inputs, columns, err := ReadProducts(r, name)
	if err != nil {
		return nil, err
	}
	m, err := meta.Load(i.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	var warnings []string
	unknown := map[string]bool{}
	for _, col := range columns {
		if _, ok := m.Attribute(col); !ok {
			unknown[col] = true
			warnings = append(warnings, fmt.Sprintf("column %q: unknown, skipping", col))
		}
	}
	products := make([]*data.Product, 0, len(inputs))
	for _, in := range inputs {
		stripAttributes(in.Global.Attributes, unknown)
		for _, sv := range in.StoreViews {
			stripAttributes(sv.Attributes, unknown)
		}
		products = append(products, in.ToProduct())
	}
	result, err := i.run(ctx, m, products)
	if result != nil {
		result.Warnings = append(warnings, result.Warnings...)
	}
	return result, err
}

func stripAttributes(attrs map[string]*string, unknown map[string]bool) {
	for code := range attrs {
		if unknown[code] {
			delete(attrs, code)
		}
	}
}

// Import stores products in batches of the configured size.
func (i *Importer) Import(ctx context.Context, products []*data.Product) (*ImportResult, error) {
	m, err := meta.Load(i.db.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	return i.run(ctx, m, products)
}

func (i *Importer) run(ctx context.Context, m *meta.MetaData, products []*data.Product) (*ImportResult, error) {
	start := time.Now()
	runID := i.cfg.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	result := &ImportResult{RunID: runID, Total: len(products)}
	defer func() { result.Elapsed = time.Since(start) }()
	logger := i.logger.WithField("run_id", result.RunID)

	db := i.db.WithContext(ctx)
	if err := CheckSchema(db); err != nil {
		return nil, err
	}
	serializer, err := NewValueSerializer(db, i.cfg.MagentoVersion)
	if err != nil {
		return nil, err
	}

	c := cache.NewCache()
	resolver := &ReferenceResolver{
		Meta:           m,
		AttributeSets:  catalog.NewAttributeSetResolver(m),
		StoreViews:     catalog.NewStoreViewResolver(m),
		TaxClasses:     catalog.NewTaxClassResolver(m),
		CustomerGroups: catalog.NewCustomerGroupResolver(m),
		Websites:       catalog.NewWebsiteResolver(m),
		Categories:     catalog.NewCategoryImporter(db, m),
		Options:        catalog.NewOptionResolver(db, m, c),
		Products:       catalog.NewProductReferenceResolver(db, m, c),
	}
	storage := NewStorage(i.db, m, c, serializer, i.cfg)

	cfg := i.cfg
	cfg.ResultCallbacks = append([]ResultCallback{}, i.cfg.ResultCallbacks...)
	var existing map[string]uint
	cfg.ResultCallbacks = append(cfg.ResultCallbacks, func(p *data.Product) {
		switch {
		case !p.OK():
			result.Failed++
		case cfg.DryRun:
		case existing[p.SKU()] != 0:
			result.Updated++
		default:
			result.Created++
		}
	})

	logger.WithFields(logrus.Fields{"products": len(products), "batch_size": cfg.BatchSize, "dry_run": cfg.DryRun}).Info("import started")
	for n, batch := range chunkIDs(products, cfg.BatchSize) {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		skus := make([]string, 0, len(batch))
		for _, p := range batch {
			skus = append(skus, p.SKU())
		}
		if existing, err = catalog.LookupSKUs(db, unique(skus)); err != nil {
			return result, err
		}

		batchLog := logger.WithField("batch", n+1)
		if err := resolver.ResolveExternalReferences(batch, cfg); err != nil {
			batchLog.WithError(err).Error("resolving references failed")
			return result, err
		}
		if err := resolver.ResolveProductReferences(batch, cfg); err != nil {
			batchLog.WithError(err).Error("resolving product references failed")
			return result, err
		}
		if err := storage.StoreProducts(ctx, batch, cfg); err != nil {
			batchLog.WithError(err).Error("batch rolled back")
			return result, err
		}
		result.Batches++
		batchLog.WithField("products", len(batch)).Debug("batch stored")
	}
	logger.WithFields(logrus.Fields{
		"created": result.Created,
		"updated": result.Updated,
		"failed":  result.Failed,
		"elapsed": time.Since(start).String(),
	}).Info("import finished")
	return result, nil
}
