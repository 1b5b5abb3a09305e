package entity

// Store represents store table (store views; store_id 0 is admin)
type Store struct {
	StoreID   uint16 `gorm:"column:store_id;primaryKey;autoIncrement:false" json:"store_id"`
	Code      string `gorm:"column:code;type:varchar(32);uniqueIndex" json:"code"`
	WebsiteID uint16 `gorm:"column:website_id;type:smallint unsigned;not null;default:0" json:"website_id"`
	GroupID   uint16 `gorm:"column:group_id;type:smallint unsigned;not null;default:0" json:"group_id"`
	Name      string `gorm:"column:name;type:varchar(255);not null" json:"name"`
	IsActive  uint16 `gorm:"column:is_active;type:smallint unsigned;not null;default:0" json:"is_active"`
}

func (Store) TableName() string {
	return "store"
}

// StoreWebsite represents store_website table
type StoreWebsite struct {
	WebsiteID uint16 `gorm:"column:website_id;primaryKey;autoIncrement:false" json:"website_id"`
	Code      string `gorm:"column:code;type:varchar(32);uniqueIndex" json:"code"`
	Name      string `gorm:"column:name;type:varchar(64)" json:"name"`
}

func (StoreWebsite) TableName() string {
	return "store_website"
}

// TaxClass represents tax_class table
type TaxClass struct {
	ClassID   uint16 `gorm:"column:class_id;primaryKey;autoIncrement" json:"class_id"`
	ClassName string `gorm:"column:class_name;type:varchar(255);not null" json:"class_name"`
	ClassType string `gorm:"column:class_type;type:varchar(8);not null;default:CUSTOMER" json:"class_type"`
}

func (TaxClass) TableName() string {
	return "tax_class"
}

// CustomerGroup represents customer_group table
type CustomerGroup struct {
	CustomerGroupID   uint16 `gorm:"column:customer_group_id;primaryKey;autoIncrement:false" json:"customer_group_id"`
	CustomerGroupCode string `gorm:"column:customer_group_code;type:varchar(32);not null" json:"customer_group_code"`
	TaxClassID        uint16 `gorm:"column:tax_class_id;not null;default:0" json:"tax_class_id"`
}

func (CustomerGroup) TableName() string {
	return "customer_group"
}

// CoreConfigData represents core_config_data table
type CoreConfigData struct {
	ConfigID uint    `gorm:"column:config_id;primaryKey;autoIncrement" json:"config_id"`
	Scope    string  `gorm:"column:scope;type:varchar(8);not null;default:default" json:"scope"`
	ScopeID  int     `gorm:"column:scope_id;not null;default:0" json:"scope_id"`
	Path     string  `gorm:"column:path;type:varchar(255);not null;default:general" json:"path"`
	Value    *string `gorm:"column:value;type:text" json:"value"`
}

func (CoreConfigData) TableName() string {
	return "core_config_data"
}
