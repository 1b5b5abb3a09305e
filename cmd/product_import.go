package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"productimport.GO/config"
	"productimport.GO/core/logger"
	productService "productimport.GO/service/product"
)

var importOpts struct {
	file               string
	dryRun             bool
	batchSize          int
	autoCreateCategory bool
	optionAttributes   []string
	urlKeyScheme       string
	duplicateStrategy  string
	typeChange         string
	categorySeparator  string
	noHistory          bool
	rawSQL             bool
	magentoVersion     string
	resultRedisKey     string
	logResults         bool
}

var importCmd = &cobra.Command{
	Use:   "products:import",
	Short: "Import products from a CSV or XLSX file into the Magento catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(importOpts.file)
		if err != nil {
			return fmt.Errorf("open file: %w", err)
		}
		defer f.Close()

		app := config.LoadAppConfig()
		log := logger.New(app.LogLevel, app.LogFormat)

		cfg, err := config.LoadImportConfig()
		if err != nil {
			return err
		}
		applyImportFlags(cmd, &cfg)
		cfg.RunID = uuid.NewString()

		db, err := config.NewDB()
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		cfg.ResultCallbacks = append(cfg.ResultCallbacks, productService.LogResultCallback(log, cfg.RunID))
		if importOpts.logResults {
			if err := productService.MigrateImportLog(db); err != nil {
				return err
			}
			cfg.ResultCallbacks = append(cfg.ResultCallbacks, productService.DBResultCallback(db, cfg.RunID, false))
		}
		if importOpts.resultRedisKey != "" {
			client, err := config.NewRedisClient(cmd.Context())
			if err != nil {
				return fmt.Errorf("--result-redis-key: %w", err)
			}
			defer client.Close()
			cfg.ResultCallbacks = append(cfg.ResultCallbacks,
				productService.RedisResultCallback(client, importOpts.resultRedisKey, cfg.RunID))
		}

		importer, err := productService.NewImporter(db, cfg, log)
		if err != nil {
			return err
		}
		res, err := importer.ImportFile(cmd.Context(), f, filepath.Base(importOpts.file))
		if res != nil {
			printImportReport(cmd, res, cfg.DryRun)
		}
		return err
	},
}

// applyImportFlags overrides the env config with flags given on the
// command line.
func applyImportFlags(cmd *cobra.Command, cfg *productService.ImportConfig) {
	flags := cmd.Flags()
	if flags.Changed("dry-run") {
		cfg.DryRun = importOpts.dryRun
	}
	if flags.Changed("batch-size") {
		cfg.BatchSize = importOpts.batchSize
	}
	if flags.Changed("auto-create-categories") {
		cfg.AutoCreateCategories = importOpts.autoCreateCategory
	}
	if flags.Changed("auto-create-options") {
		cfg.AutoCreateOptionAttributes = importOpts.optionAttributes
	}
	if flags.Changed("url-key-scheme") {
		cfg.URLKeyScheme = importOpts.urlKeyScheme
	}
	if flags.Changed("duplicate-url-key-strategy") {
		cfg.DuplicateURLKeyStrategy = importOpts.duplicateStrategy
	}
	if flags.Changed("type-change") {
		cfg.ProductTypeChange = importOpts.typeChange
	}
	if flags.Changed("category-separator") {
		cfg.CategoryPathSeparator = importOpts.categorySeparator
	}
	if importOpts.noHistory {
		cfg.SaveRewritesHistory = false
	}
	if flags.Changed("raw-sql") {
		cfg.RawSQL = importOpts.rawSQL
	}
	if flags.Changed("magento-version") {
		cfg.MagentoVersion = importOpts.magentoVersion
	}
}

func printImportReport(cmd *cobra.Command, res *productService.ImportResult, dryRun bool) {
	out := cmd.OutOrStdout()
	for _, w := range res.Warnings {
		fmt.Fprintf(out, "  [warn] %s\n", w)
	}
	fmt.Fprintf(out, `
=== Import Report ===
Run:            %s
Products:       %d
Created:        %d
Updated:        %d
Failed:         %d
Batches:        %d
Mode:           %s
Total time:     %s
=====================
`, res.RunID, res.Total, res.Created, res.Updated, res.Failed, res.Batches,
		map[bool]string{true: "dry run", false: "write"}[dryRun],
		res.Elapsed.Round(time.Millisecond))
}

func init() {
	f := importCmd.Flags()
	f.StringVarP(&importOpts.file, "file", "f", "", "CSV or XLSX file path (required)")
	importCmd.MarkFlagRequired("file")
	f.BoolVar(&importOpts.dryRun, "dry-run", false, "Resolve and validate without writing products")
	f.IntVar(&importOpts.batchSize, "batch-size", 1000, "Products per transaction")
	f.BoolVar(&importOpts.autoCreateCategory, "auto-create-categories", true, "Create missing categories")
	f.StringSliceVar(&importOpts.optionAttributes, "auto-create-options", nil, "Attribute codes whose missing options are created")
	f.StringVar(&importOpts.urlKeyScheme, "url-key-scheme", productService.URLKeyFromName, "from-name or from-sku")
	f.StringVar(&importOpts.duplicateStrategy, "duplicate-url-key-strategy", productService.DuplicateURLKeyError, "error, add-sku or add-serial")
	f.StringVar(&importOpts.typeChange, "type-change", productService.TypeChangeNonDestructive, "forbidden, non-destructive or allowed")
	f.StringVar(&importOpts.categorySeparator, "category-separator", "/", "Separator of category path levels")
	f.BoolVar(&importOpts.noHistory, "no-history", false, "Do not keep 301 redirects for changed url keys")
	f.BoolVar(&importOpts.rawSQL, "raw-sql", false, "Use raw SQL for EAV upserts")
	f.StringVar(&importOpts.magentoVersion, "magento-version", "", "Magento version, e.g. 2.1 for serialized rewrite metadata")
	f.StringVar(&importOpts.resultRedisKey, "result-redis-key", "", "Push per-product results as JSON onto this redis list")
	f.BoolVar(&importOpts.logResults, "log-results", false, "Write failed products to the import log table")
	rootCmd.AddCommand(importCmd)
}
