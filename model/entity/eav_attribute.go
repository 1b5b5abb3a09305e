package entity

// EavAttribute represents eav_attribute table
type EavAttribute struct {
	AttributeID   uint16 `gorm:"column:attribute_id;primaryKey;autoIncrement" json:"attribute_id"`
	EntityTypeID  uint16 `gorm:"column:entity_type_id;type:smallint unsigned;not null;default:0;uniqueIndex:idx_eav_attribute_code" json:"entity_type_id"`
	AttributeCode string `gorm:"column:attribute_code;type:varchar(255);not null;uniqueIndex:idx_eav_attribute_code" json:"attribute_code"`
	BackendType   string `gorm:"column:backend_type;type:varchar(8);not null;default:static" json:"backend_type"`
	FrontendInput string `gorm:"column:frontend_input;type:varchar(50)" json:"frontend_input,omitempty"`
}

func (EavAttribute) TableName() string {
	return "eav_attribute"
}

// EavAttributeSet represents eav_attribute_set table
type EavAttributeSet struct {
	AttributeSetID   uint16 `gorm:"column:attribute_set_id;primaryKey;autoIncrement" json:"attribute_set_id"`
	EntityTypeID     uint16 `gorm:"column:entity_type_id;type:smallint unsigned;not null;default:0" json:"entity_type_id"`
	AttributeSetName string `gorm:"column:attribute_set_name;type:varchar(255)" json:"attribute_set_name"`
	SortOrder        int16  `gorm:"column:sort_order;not null;default:0" json:"sort_order"`
}

func (EavAttributeSet) TableName() string {
	return "eav_attribute_set"
}

// EavAttributeOption represents eav_attribute_option table
type EavAttributeOption struct {
	OptionID    uint   `gorm:"column:option_id;primaryKey;autoIncrement" json:"option_id"`
	AttributeID uint16 `gorm:"column:attribute_id;type:smallint unsigned;not null;default:0;index" json:"attribute_id"`
	SortOrder   uint16 `gorm:"column:sort_order;type:smallint unsigned;not null;default:0" json:"sort_order"`
}

func (EavAttributeOption) TableName() string {
	return "eav_attribute_option"
}

// EavAttributeOptionValue represents eav_attribute_option_value table
type EavAttributeOptionValue struct {
	ValueID  uint   `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id"`
	OptionID uint   `gorm:"column:option_id;not null;default:0;index" json:"option_id"`
	StoreID  uint16 `gorm:"column:store_id;type:smallint unsigned;not null;default:0" json:"store_id"`
	Value    string `gorm:"column:value;type:varchar(255)" json:"value"`
}

func (EavAttributeOptionValue) TableName() string {
	return "eav_attribute_option_value"
}
