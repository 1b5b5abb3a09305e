package product

import "time"

// Product represents catalog_product_entity table
type Product struct {
	EntityID        uint      `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id"`
	AttributeSetID  uint16    `gorm:"column:attribute_set_id;type:smallint unsigned;not null;default:0" json:"attribute_set_id"`
	TypeID          string    `gorm:"column:type_id;type:varchar(32);not null;default:simple" json:"type_id"`
	SKU             string    `gorm:"column:sku;type:varchar(64);not null;uniqueIndex" json:"sku"`
	HasOptions      uint16    `gorm:"column:has_options;type:smallint;not null;default:0" json:"has_options"`
	RequiredOptions uint16    `gorm:"column:required_options;type:smallint unsigned;not null;default:0" json:"required_options"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string {
	return "catalog_product_entity"
}

// ProductVarchar represents catalog_product_entity_varchar table
type ProductVarchar struct {
	ValueID     uint    `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id"`
	AttributeID uint16  `gorm:"column:attribute_id;type:smallint unsigned;not null;uniqueIndex:idx_product_varchar_unq,priority:2" json:"attribute_id"`
	StoreID     uint16  `gorm:"column:store_id;type:smallint unsigned;not null;uniqueIndex:idx_product_varchar_unq,priority:3" json:"store_id"`
	EntityID    uint    `gorm:"column:entity_id;not null;uniqueIndex:idx_product_varchar_unq,priority:1" json:"entity_id"`
	Value       *string `gorm:"column:value;type:varchar(255)" json:"value"`
}

func (ProductVarchar) TableName() string {
	return "catalog_product_entity_varchar"
}

// ProductInt represents catalog_product_entity_int table
type ProductInt struct {
	ValueID     uint   `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id"`
	AttributeID uint16 `gorm:"column:attribute_id;type:smallint unsigned;not null;uniqueIndex:idx_product_int_unq,priority:2" json:"attribute_id"`
	StoreID     uint16 `gorm:"column:store_id;type:smallint unsigned;not null;uniqueIndex:idx_product_int_unq,priority:3" json:"store_id"`
	EntityID    uint   `gorm:"column:entity_id;not null;uniqueIndex:idx_product_int_unq,priority:1" json:"entity_id"`
	Value       *int   `gorm:"column:value" json:"value"`
}

func (ProductInt) TableName() string {
	return "catalog_product_entity_int"
}

// ProductDecimal represents catalog_product_entity_decimal table
type ProductDecimal struct {
	ValueID     uint     `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id"`
	AttributeID uint16   `gorm:"column:attribute_id;type:smallint unsigned;not null;uniqueIndex:idx_product_decimal_unq,priority:2" json:"attribute_id"`
	StoreID     uint16   `gorm:"column:store_id;type:smallint unsigned;not null;uniqueIndex:idx_product_decimal_unq,priority:3" json:"store_id"`
	EntityID    uint     `gorm:"column:entity_id;not null;uniqueIndex:idx_product_decimal_unq,priority:1" json:"entity_id"`
	Value       *float64 `gorm:"column:value;type:decimal(20,6)" json:"value"`
}

func (ProductDecimal) TableName() string {
	return "catalog_product_entity_decimal"
}

// ProductText represents catalog_product_entity_text table
type ProductText struct {
	ValueID     uint    `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id"`
	AttributeID uint16  `gorm:"column:attribute_id;type:smallint unsigned;not null;uniqueIndex:idx_product_text_unq,priority:2" json:"attribute_id"`
	StoreID     uint16  `gorm:"column:store_id;type:smallint unsigned;not null;uniqueIndex:idx_product_text_unq,priority:3" json:"store_id"`
	EntityID    uint    `gorm:"column:entity_id;not null;uniqueIndex:idx_product_text_unq,priority:1" json:"entity_id"`
	Value       *string `gorm:"column:value;type:mediumtext" json:"value"`
}

func (ProductText) TableName() string {
	return "catalog_product_entity_text"
}

// ProductDatetime represents catalog_product_entity_datetime table
type ProductDatetime struct {
	ValueID     uint    `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id"`
	AttributeID uint16  `gorm:"column:attribute_id;type:smallint unsigned;not null;uniqueIndex:idx_product_datetime_unq,priority:2" json:"attribute_id"`
	StoreID     uint16  `gorm:"column:store_id;type:smallint unsigned;not null;uniqueIndex:idx_product_datetime_unq,priority:3" json:"store_id"`
	EntityID    uint    `gorm:"column:entity_id;not null;uniqueIndex:idx_product_datetime_unq,priority:1" json:"entity_id"`
	Value       *string `gorm:"column:value;type:datetime" json:"value"`
}

func (ProductDatetime) TableName() string {
	return "catalog_product_entity_datetime"
}

// CategoryProduct represents catalog_category_product table
type CategoryProduct struct {
	EntityID   uint `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id"`
	CategoryID uint `gorm:"column:category_id;not null;default:0;uniqueIndex:idx_category_product_unq" json:"category_id"`
	ProductID  uint `gorm:"column:product_id;not null;default:0;uniqueIndex:idx_category_product_unq" json:"product_id"`
	Position   int  `gorm:"column:position;not null;default:0" json:"position"`
}

func (CategoryProduct) TableName() string {
	return "catalog_category_product"
}

// ProductWebsite represents catalog_product_website table
type ProductWebsite struct {
	ProductID uint   `gorm:"column:product_id;primaryKey;autoIncrement:false" json:"product_id"`
	WebsiteID uint16 `gorm:"column:website_id;primaryKey;autoIncrement:false;type:smallint unsigned" json:"website_id"`
}

func (ProductWebsite) TableName() string {
	return "catalog_product_website"
}

// StockItem represents cataloginventory_stock_item table
type StockItem struct {
	ItemID      uint    `gorm:"column:item_id;primaryKey;autoIncrement" json:"item_id"`
	ProductID   uint    `gorm:"column:product_id;not null;default:0;uniqueIndex:idx_stock_item_unq" json:"product_id"`
	StockID     uint16  `gorm:"column:stock_id;type:smallint unsigned;not null;default:0;uniqueIndex:idx_stock_item_unq" json:"stock_id"`
	Qty         float64 `gorm:"column:qty;type:decimal(12,4)" json:"qty"`
	MinQty      float64 `gorm:"column:min_qty;type:decimal(12,4);not null;default:0" json:"min_qty"`
	MinSaleQty  float64 `gorm:"column:min_sale_qty;type:decimal(12,4);not null" json:"min_sale_qty"`
	MaxSaleQty  float64 `gorm:"column:max_sale_qty;type:decimal(12,4);not null;default:0" json:"max_sale_qty"`
	IsInStock   uint16  `gorm:"column:is_in_stock;type:smallint unsigned;not null;default:0" json:"is_in_stock"`
	ManageStock uint16  `gorm:"column:manage_stock;type:smallint unsigned;not null;default:0" json:"manage_stock"`
	WebsiteID   uint16  `gorm:"column:website_id;type:smallint unsigned;not null;default:0" json:"website_id"`
}

func (StockItem) TableName() string {
	return "cataloginventory_stock_item"
}
