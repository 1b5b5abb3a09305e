package importlog

import (
	"time"

	"gorm.io/datatypes"
)

// ImportLog records the outcome of one product record of an import run.
type ImportLog struct {
	LogID     uint           `gorm:"column:log_id;primaryKey;autoIncrement" json:"log_id"`
	RunID     string         `gorm:"column:run_id;type:varchar(36);not null;index" json:"run_id"`
	SKU       string         `gorm:"column:sku;type:varchar(64);not null" json:"sku"`
	ProductID uint           `gorm:"column:product_id;not null;default:0" json:"product_id"`
	LineNo    int            `gorm:"column:line_no;not null;default:0" json:"line_no"`
	OK        bool           `gorm:"column:ok;not null" json:"ok"`
	Errors    datatypes.JSON `gorm:"column:errors" json:"errors,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (ImportLog) TableName() string {
	return "productimport_log"
}
