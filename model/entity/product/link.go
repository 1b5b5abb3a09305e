package product

// Link type ids as shipped in catalog_product_link_type.
const (
	LinkTypeRelated   uint16 = 1
	LinkTypeGrouped   uint16 = 3
	LinkTypeUpSell    uint16 = 4
	LinkTypeCrossSell uint16 = 5
)

// ProductLink represents catalog_product_link table
type ProductLink struct {
	LinkID          uint   `gorm:"column:link_id;primaryKey;autoIncrement" json:"link_id"`
	ProductID       uint   `gorm:"column:product_id;not null;default:0;uniqueIndex:idx_product_link_unq" json:"product_id"`
	LinkedProductID uint   `gorm:"column:linked_product_id;not null;default:0;uniqueIndex:idx_product_link_unq" json:"linked_product_id"`
	LinkTypeID      uint16 `gorm:"column:link_type_id;type:smallint unsigned;not null;default:0;uniqueIndex:idx_product_link_unq" json:"link_type_id"`
}

func (ProductLink) TableName() string {
	return "catalog_product_link"
}

// ProductRelation represents catalog_product_relation table
type ProductRelation struct {
	ParentID uint `gorm:"column:parent_id;primaryKey;autoIncrement:false" json:"parent_id"`
	ChildID  uint `gorm:"column:child_id;primaryKey;autoIncrement:false" json:"child_id"`
}

func (ProductRelation) TableName() string {
	return "catalog_product_relation"
}

// SuperAttribute represents catalog_product_super_attribute table
type SuperAttribute struct {
	ProductSuperAttributeID uint   `gorm:"column:product_super_attribute_id;primaryKey;autoIncrement" json:"product_super_attribute_id"`
	ProductID               uint   `gorm:"column:product_id;not null;default:0;uniqueIndex:idx_super_attribute_unq" json:"product_id"`
	AttributeID             uint16 `gorm:"column:attribute_id;type:smallint unsigned;not null;default:0;uniqueIndex:idx_super_attribute_unq" json:"attribute_id"`
	Position                uint16 `gorm:"column:position;type:smallint unsigned;not null;default:0" json:"position"`
}

func (SuperAttribute) TableName() string {
	return "catalog_product_super_attribute"
}

// SuperLink represents catalog_product_super_link table
type SuperLink struct {
	LinkID    uint `gorm:"column:link_id;primaryKey;autoIncrement" json:"link_id"`
	ProductID uint `gorm:"column:product_id;not null;default:0;uniqueIndex:idx_super_link_unq" json:"product_id"`
	ParentID  uint `gorm:"column:parent_id;not null;default:0;uniqueIndex:idx_super_link_unq" json:"parent_id"`
}

func (SuperLink) TableName() string {
	return "catalog_product_super_link"
}

// BundleOption represents catalog_product_bundle_option table
type BundleOption struct {
	OptionID uint   `gorm:"column:option_id;primaryKey;autoIncrement" json:"option_id"`
	ParentID uint   `gorm:"column:parent_id;not null;index" json:"parent_id"`
	Required uint16 `gorm:"column:required;type:smallint unsigned;not null;default:0" json:"required"`
	Position uint   `gorm:"column:position;not null;default:0" json:"position"`
	Type     string `gorm:"column:type;type:varchar(255)" json:"type"`
}

func (BundleOption) TableName() string {
	return "catalog_product_bundle_option"
}

// BundleOptionValue represents catalog_product_bundle_option_value table
type BundleOptionValue struct {
	ValueID         uint   `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id"`
	OptionID        uint   `gorm:"column:option_id;not null;index" json:"option_id"`
	ParentProductID uint   `gorm:"column:parent_product_id;not null" json:"parent_product_id"`
	StoreID         uint16 `gorm:"column:store_id;type:smallint unsigned;not null" json:"store_id"`
	Title           string `gorm:"column:title;type:varchar(255)" json:"title"`
}

func (BundleOptionValue) TableName() string {
	return "catalog_product_bundle_option_value"
}

// BundleSelection represents catalog_product_bundle_selection table
type BundleSelection struct {
	SelectionID           uint    `gorm:"column:selection_id;primaryKey;autoIncrement" json:"selection_id"`
	OptionID              uint    `gorm:"column:option_id;not null;index" json:"option_id"`
	ParentProductID       uint    `gorm:"column:parent_product_id;not null;index" json:"parent_product_id"`
	ProductID             uint    `gorm:"column:product_id;not null" json:"product_id"`
	Position              uint    `gorm:"column:position;not null;default:0" json:"position"`
	IsDefault             uint16  `gorm:"column:is_default;type:smallint unsigned;not null;default:0" json:"is_default"`
	SelectionQty          float64 `gorm:"column:selection_qty;type:decimal(12,4)" json:"selection_qty"`
	SelectionCanChangeQty int16   `gorm:"column:selection_can_change_qty;not null;default:0" json:"selection_can_change_qty"`
}

func (BundleSelection) TableName() string {
	return "catalog_product_bundle_selection"
}

// DownloadableLink represents downloadable_link table
type DownloadableLink struct {
	LinkID    uint   `gorm:"column:link_id;primaryKey;autoIncrement" json:"link_id"`
	ProductID uint   `gorm:"column:product_id;not null;default:0;index" json:"product_id"`
	LinkURL   string `gorm:"column:link_url;type:varchar(255)" json:"link_url"`
	LinkType  string `gorm:"column:link_type;type:varchar(20)" json:"link_type"`
}

func (DownloadableLink) TableName() string {
	return "downloadable_link"
}

// DownloadableSample represents downloadable_sample table
type DownloadableSample struct {
	SampleID   uint   `gorm:"column:sample_id;primaryKey;autoIncrement" json:"sample_id"`
	ProductID  uint   `gorm:"column:product_id;not null;default:0;index" json:"product_id"`
	SampleURL  string `gorm:"column:sample_url;type:varchar(255)" json:"sample_url"`
	SampleType string `gorm:"column:sample_type;type:varchar(20)" json:"sample_type"`
}

func (DownloadableSample) TableName() string {
	return "downloadable_sample"
}
