package category

// Category represents catalog_category_entity table
type Category struct {
	EntityID       uint   `gorm:"column:entity_id;primaryKey;autoIncrement" json:"entity_id"`
	AttributeSetID uint16 `gorm:"column:attribute_set_id;type:smallint unsigned;not null;default:0" json:"attribute_set_id"`
	ParentID       uint   `gorm:"column:parent_id;not null;default:0" json:"parent_id"`
	Path           string `gorm:"column:path;type:varchar(255);not null" json:"path"`
	Position       int    `gorm:"column:position;not null" json:"position"`
	Level          int    `gorm:"column:level;not null;default:0" json:"level"`
	ChildrenCount  int    `gorm:"column:children_count;not null" json:"children_count"`
}

func (Category) TableName() string {
	return "catalog_category_entity"
}

// CategoryVarchar represents catalog_category_entity_varchar table
type CategoryVarchar struct {
	ValueID     uint    `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id"`
	AttributeID uint16  `gorm:"column:attribute_id;type:smallint unsigned;not null;uniqueIndex:idx_category_varchar_unq" json:"attribute_id"`
	StoreID     uint16  `gorm:"column:store_id;type:smallint unsigned;not null;uniqueIndex:idx_category_varchar_unq" json:"store_id"`
	EntityID    uint    `gorm:"column:entity_id;not null;uniqueIndex:idx_category_varchar_unq" json:"entity_id"`
	Value       *string `gorm:"column:value;type:varchar(255)" json:"value"`
}

func (CategoryVarchar) TableName() string {
	return "catalog_category_entity_varchar"
}

// CategoryInt represents catalog_category_entity_int table
type CategoryInt struct {
	ValueID     uint   `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id"`
	AttributeID uint16 `gorm:"column:attribute_id;type:smallint unsigned;not null;uniqueIndex:idx_category_int_unq" json:"attribute_id"`
	StoreID     uint16 `gorm:"column:store_id;type:smallint unsigned;not null;uniqueIndex:idx_category_int_unq" json:"store_id"`
	EntityID    uint   `gorm:"column:entity_id;not null;uniqueIndex:idx_category_int_unq" json:"entity_id"`
	Value       *int   `gorm:"column:value" json:"value"`
}

func (CategoryInt) TableName() string {
	return "catalog_category_entity_int"
}
