package price

// TierPrice represents catalog_product_entity_tier_price table.
// AllGroups=1 rows apply to every customer group; CustomerGroupID is then 0.
type TierPrice struct {
	ValueID         uint     `gorm:"column:value_id;primaryKey;autoIncrement" json:"value_id,omitempty"`
	EntityID        uint     `gorm:"column:entity_id;not null;uniqueIndex:idx_tier_price_unq" json:"entity_id"`
	AllGroups       uint8    `gorm:"column:all_groups;type:smallint unsigned;not null;uniqueIndex:idx_tier_price_unq" json:"all_groups"`
	CustomerGroupID uint16   `gorm:"column:customer_group_id;type:smallint unsigned;not null;default:0;uniqueIndex:idx_tier_price_unq" json:"customer_group_id"`
	Qty             float64  `gorm:"column:qty;type:decimal(12,4);not null;uniqueIndex:idx_tier_price_unq" json:"qty"`
	Value           float64  `gorm:"column:value;type:decimal(20,6);not null;default:0" json:"value"`
	WebsiteID       uint16   `gorm:"column:website_id;type:smallint unsigned;not null;uniqueIndex:idx_tier_price_unq" json:"website_id"`
	PercentageValue *float64 `gorm:"column:percentage_value;type:decimal(5,2)" json:"percentage_value,omitempty"`
}

func (TierPrice) TableName() string {
	return "catalog_product_entity_tier_price"
}
