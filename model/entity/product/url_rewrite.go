package product

// UrlRewrite represents url_rewrite table
type UrlRewrite struct {
	UrlRewriteID    uint    `gorm:"column:url_rewrite_id;primaryKey;autoIncrement" json:"url_rewrite_id"`
	EntityType      string  `gorm:"column:entity_type;type:varchar(32);not null" json:"entity_type"`
	EntityID        uint    `gorm:"column:entity_id;not null;index" json:"entity_id"`
	RequestPath     string  `gorm:"column:request_path;type:varchar(255);uniqueIndex:idx_url_rewrite_request_path_store,priority:1" json:"request_path"`
	TargetPath      string  `gorm:"column:target_path;type:varchar(255)" json:"target_path"`
	RedirectType    uint16  `gorm:"column:redirect_type;type:smallint unsigned;not null;default:0" json:"redirect_type"`
	StoreID         uint16  `gorm:"column:store_id;type:smallint unsigned;not null;uniqueIndex:idx_url_rewrite_request_path_store,priority:2" json:"store_id"`
	Description     *string `gorm:"column:description;type:varchar(255)" json:"description,omitempty"`
	IsAutogenerated uint16  `gorm:"column:is_autogenerated;type:smallint unsigned;not null;default:0" json:"is_autogenerated"`
	Metadata        *string `gorm:"column:metadata;type:varchar(255)" json:"metadata,omitempty"`
}

func (UrlRewrite) TableName() string {
	return "url_rewrite"
}

// UrlRewriteProductCategory represents catalog_url_rewrite_product_category table
type UrlRewriteProductCategory struct {
	UrlRewriteID uint `gorm:"column:url_rewrite_id;primaryKey;autoIncrement:false" json:"url_rewrite_id"`
	CategoryID   uint `gorm:"column:category_id;primaryKey;autoIncrement:false" json:"category_id"`
	ProductID    uint `gorm:"column:product_id;not null;index" json:"product_id"`
}

func (UrlRewriteProductCategory) TableName() string {
	return "catalog_url_rewrite_product_category"
}
