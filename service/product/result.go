package product

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"productimport.GO/model/entity/importlog"
	"productimport.GO/service/product/data"
)

// ProductResult is the outcome of one record as published by the result
// callbacks.
type ProductResult struct {
	RunID     string   `json:"run_id"`
	SKU       string   `json:"sku"`
	ProductID uint     `json:"product_id"`
	Line      int      `json:"line,omitempty"`
	OK        bool     `json:"ok"`
	Errors    []string `json:"errors,omitempty"`
}

func NewProductResult(runID string, p *data.Product) ProductResult {
	return ProductResult{
		RunID:     runID,
		SKU:       p.SKU(),
		ProductID: p.ID,
		Line:      p.LineNumber,
		OK:        p.OK(),
		Errors:    p.Errors(),
	}
}

// LogResultCallback logs failed records as warnings and stored ones at
// debug level.
func LogResultCallback(logger *logrus.Logger, runID string) ResultCallback {
	return func(p *data.Product) {
		entry := logger.WithFields(logrus.Fields{"run_id": runID, "sku": p.SKU(), "product_id": p.ID})
		if p.LineNumber > 0 {
			entry = entry.WithField("line", p.LineNumber)
		}
		if !p.OK() {
			entry.WithField("errors", p.Errors()).Warn("product not imported")
			return
		}
		entry.Debug("product imported")
	}
}

// RedisResultCallback pushes every result as JSON onto the list key.
func RedisResultCallback(client *redis.Client, key, runID string) ResultCallback {
	return func(p *data.Product) {
		b, err := json.Marshal(NewProductResult(runID, p))
		if err != nil {
			return
		}
		if err := client.RPush(context.Background(), key, b).Err(); err != nil {
			logrus.WithError(err).WithField("key", key).Warn("push import result")
		}
	}
}

// DBResultCallback writes failed records to the import log table. Passing
// all=true logs stored records too.
func DBResultCallback(db *gorm.DB, runID string, all bool) ResultCallback {
	return func(p *data.Product) {
		if p.OK() && !all {
			return
		}
		errs, _ := json.Marshal(p.Errors())
		row := importlog.ImportLog{
			RunID:     runID,
			SKU:       p.SKU(),
			ProductID: p.ID,
			LineNo:    p.LineNumber,
			OK:        p.OK(),
			Errors:    datatypes.JSON(errs),
		}
		if err := db.Create(&row).Error; err != nil {
			logrus.WithError(err).WithField("sku", p.SKU()).Warn("write import log")
		}
	}
}

// MigrateImportLog creates the import log table when it is missing.
func MigrateImportLog(db *gorm.DB) error {
	if err := db.AutoMigrate(&importlog.ImportLog{}); err != nil {
		return fmt.Errorf("migrate import log: %w", err)
	}
	return nil
}
