// Package jobs registers the scheduled jobs of the importer.
package jobs

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"productimport.GO/config"
	"productimport.GO/core/logger"
	"productimport.GO/cron"
	productService "productimport.GO/service/product"
)

// ProductImportJob is the name the drop-file import is registered under.
const ProductImportJob = "productimport"

func init() {
	c := config.LoadImportCron()
	if c.File == "" {
		return
	}
	cron.Register(ProductImportJob, c.Schedule, func(args ...string) {
		file := c.File
		if len(args) > 0 && args[0] != "" {
			file = args[0]
		}
		ImportDropFile(context.Background(), file)
	})
}

// ImportDropFile imports file and moves it to file.done (or file.failed).
// A missing file is not an error: nothing was dropped since the last run.
func ImportDropFile(ctx context.Context, file string) {
	app := config.LoadAppConfig()
	log := logger.New(app.LogLevel, app.LogFormat)
	entry := log.WithFields(logrus.Fields{"job": ProductImportJob, "file": file})

	f, err := os.Open(file)
	if os.IsNotExist(err) {
		entry.Debug("no drop file")
		return
	}
	if err != nil {
		entry.WithError(err).Error("open drop file")
		return
	}

	result, err := runImport(ctx, f, file, log)
	f.Close()
	suffix := ".done"
	if err != nil {
		suffix = ".failed"
		entry.WithError(err).Error("scheduled import failed")
	} else {
		entry.WithFields(logrus.Fields{
			"run_id":  result.RunID,
			"created": result.Created,
			"updated": result.Updated,
			"failed":  result.Failed,
		}).Info("scheduled import finished")
	}
	target := file + "." + time.Now().Format("20060102150405") + suffix
	if err := os.Rename(file, target); err != nil {
		entry.WithError(err).Warn("move drop file")
	}
}

func runImport(ctx context.Context, f *os.File, file string, log *logrus.Logger) (*productService.ImportResult, error) {
	cfg, err := config.LoadImportConfig()
	if err != nil {
		return nil, err
	}
	db, err := config.NewDB()
	if err != nil {
		return nil, err
	}
	importer, err := productService.NewImporter(db, cfg, log)
	if err != nil {
		return nil, err
	}
	return importer.ImportFile(ctx, f, filepath.Base(file))
}
