// Package producttest provides a migrated SQLite catalog for importer tests,
// and the same catalog on a scratch MySQL schema when one is configured.
package producttest

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	entity "productimport.GO/model/entity"
	categoryEntity "productimport.GO/model/entity/category"
	"productimport.GO/model/entity/importlog"
	inventoryEntity "productimport.GO/model/entity/inventory"
	priceEntity "productimport.GO/model/entity/price"
	productEntity "productimport.GO/model/entity/product"
)

// Seeded ids.
const (
	AttrName        uint16 = 73
	AttrSKU         uint16 = 74
	AttrDescription uint16 = 75
	AttrPrice       uint16 = 77
	AttrWeight      uint16 = 82
	AttrColor       uint16 = 93
	AttrStatus      uint16 = 97
	AttrVisibility  uint16 = 99
	AttrNewsFrom    uint16 = 94
	AttrURLKey      uint16 = 121
	AttrTaxClass    uint16 = 132
	AttrMaterial    uint16 = 136

	CatAttrName          uint16 = 45
	CatAttrIsActive      uint16 = 46
	CatAttrIncludeInMenu uint16 = 69
	CatAttrURLKey        uint16 = 124

	StoreAdmin   uint16 = 0
	StoreDefault uint16 = 1
	StoreDutch   uint16 = 2

	WebsiteBase uint16 = 1

	AttributeSetDefault uint16 = 4
	AttributeSetBag     uint16 = 15

	TaxClassTaxable uint16 = 2
	GroupGeneral    uint16 = 1

	RootCategory    uint = 1
	DefaultCategory uint = 2

	ColorRed  uint = 10
	ColorBlue uint = 11
)

// Entities lists every table the importer reads or writes.
func Entities() []interface{} {
	return []interface{}{
		&entity.EavAttribute{},
		&entity.EavAttributeSet{},
		&entity.EavAttributeOption{},
		&entity.EavAttributeOptionValue{},
		&entity.Store{},
		&entity.StoreWebsite{},
		&entity.TaxClass{},
		&entity.CustomerGroup{},
		&entity.CoreConfigData{},
		&categoryEntity.Category{},
		&categoryEntity.CategoryVarchar{},
		&categoryEntity.CategoryInt{},
		&productEntity.Product{},
		&productEntity.ProductVarchar{},
		&productEntity.ProductInt{},
		&productEntity.ProductDecimal{},
		&productEntity.ProductText{},
		&productEntity.ProductDatetime{},
		&productEntity.CategoryProduct{},
		&productEntity.ProductWebsite{},
		&productEntity.StockItem{},
		&productEntity.ProductLink{},
		&productEntity.ProductRelation{},
		&productEntity.SuperAttribute{},
		&productEntity.SuperLink{},
		&productEntity.BundleOption{},
		&productEntity.BundleOptionValue{},
		&productEntity.BundleSelection{},
		&productEntity.DownloadableLink{},
		&productEntity.DownloadableSample{},
		&productEntity.UrlRewrite{},
		&productEntity.UrlRewriteProductCategory{},
		&priceEntity.TierPrice{},
		&inventoryEntity.InventorySourceItem{},
		&importlog.ImportLog{},
	}
}

// NewDB opens a migrated, empty database in a temp file.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	// a file so every pooled connection sees the same tables
	tmpFile := filepath.Join(t.TempDir(), fmt.Sprintf("catalog_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(tmpFile), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db.Exec("PRAGMA journal_mode=WAL")
	db.Exec("PRAGMA busy_timeout=5000")
	if err := db.AutoMigrate(Entities()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		os.Remove(tmpFile)
	})
	return db
}

// NewCatalog returns a database seeded with attributes, two store views on
// one website, attribute sets, a tax class, customer groups and the
// "Default Category" store root.
func NewCatalog(t testing.TB) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	Seed(t, db)
	return db
}

// MySQLDSNEnv names a scratch MySQL schema. Its catalog tables are dropped
// and recreated, so never point it at a real shop.
const MySQLDSNEnv = "TEST_MYSQL_DSN"

// NewMySQLCatalog seeds the catalog into the schema named by MySQLDSNEnv and
// skips the test when it is unset or unreachable.
func NewMySQLCatalog(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := os.Getenv(MySQLDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping MySQL integration test", MySQLDSNEnv)
	}
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Skipf("cannot connect to MySQL: %v, skipping integration test", err)
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		t.Skipf("cannot reach MySQL: %v, skipping integration test", err)
	}

	drop := func() {
		if err := db.Migrator().DropTable(Entities()...); err != nil {
			t.Logf("drop catalog tables: %v", err)
		}
	}
	drop()
	if err := db.AutoMigrate(Entities()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		drop()
		sqlDB.Close()
	})
	Seed(t, db)
	return db
}

func Seed(t testing.TB, db *gorm.DB) {
	t.Helper()
	attrs := []entity.EavAttribute{
		{AttributeID: AttrName, EntityTypeID: 4, AttributeCode: "name", BackendType: "varchar", FrontendInput: "text"},
		{AttributeID: AttrSKU, EntityTypeID: 4, AttributeCode: "sku", BackendType: "static", FrontendInput: "text"},
		{AttributeID: AttrDescription, EntityTypeID: 4, AttributeCode: "description", BackendType: "text", FrontendInput: "textarea"},
		{AttributeID: AttrPrice, EntityTypeID: 4, AttributeCode: "price", BackendType: "decimal", FrontendInput: "price"},
		{AttributeID: AttrWeight, EntityTypeID: 4, AttributeCode: "weight", BackendType: "decimal", FrontendInput: "weight"},
		{AttributeID: AttrColor, EntityTypeID: 4, AttributeCode: "color", BackendType: "int", FrontendInput: "select"},
		{AttributeID: AttrNewsFrom, EntityTypeID: 4, AttributeCode: "news_from_date", BackendType: "datetime", FrontendInput: "date"},
		{AttributeID: AttrStatus, EntityTypeID: 4, AttributeCode: "status", BackendType: "int", FrontendInput: "select"},
		{AttributeID: AttrVisibility, EntityTypeID: 4, AttributeCode: "visibility", BackendType: "int", FrontendInput: "select"},
		{AttributeID: AttrURLKey, EntityTypeID: 4, AttributeCode: "url_key", BackendType: "varchar", FrontendInput: "text"},
		{AttributeID: AttrTaxClass, EntityTypeID: 4, AttributeCode: "tax_class_id", BackendType: "int", FrontendInput: "select"},
		{AttributeID: AttrMaterial, EntityTypeID: 4, AttributeCode: "material", BackendType: "varchar", FrontendInput: "multiselect"},
		{AttributeID: CatAttrName, EntityTypeID: 3, AttributeCode: "name", BackendType: "varchar", FrontendInput: "text"},
		{AttributeID: CatAttrIsActive, EntityTypeID: 3, AttributeCode: "is_active", BackendType: "int", FrontendInput: "select"},
		{AttributeID: CatAttrIncludeInMenu, EntityTypeID: 3, AttributeCode: "include_in_menu", BackendType: "int", FrontendInput: "select"},
		{AttributeID: CatAttrURLKey, EntityTypeID: 3, AttributeCode: "url_key", BackendType: "varchar", FrontendInput: "text"},
	}
	must(t, db.Create(&attrs).Error)

	must(t, db.Create(&[]entity.StoreWebsite{
		{WebsiteID: 0, Code: "admin", Name: "Admin"},
		{WebsiteID: WebsiteBase, Code: "base", Name: "Main Website"},
	}).Error)
	must(t, db.Create(&[]entity.Store{
		{StoreID: StoreAdmin, Code: "admin", WebsiteID: 0, Name: "Admin", IsActive: 1},
		{StoreID: StoreDefault, Code: "default", WebsiteID: WebsiteBase, GroupID: 1, Name: "Default Store View", IsActive: 1},
		{StoreID: StoreDutch, Code: "nl", WebsiteID: WebsiteBase, GroupID: 1, Name: "Dutch", IsActive: 1},
	}).Error)
	must(t, db.Create(&[]entity.EavAttributeSet{
		{AttributeSetID: 3, EntityTypeID: 3, AttributeSetName: "Default"},
		{AttributeSetID: AttributeSetDefault, EntityTypeID: 4, AttributeSetName: "Default"},
		{AttributeSetID: AttributeSetBag, EntityTypeID: 4, AttributeSetName: "Bag"},
	}).Error)
	must(t, db.Create(&entity.TaxClass{ClassID: TaxClassTaxable, ClassName: "Taxable Goods", ClassType: "PRODUCT"}).Error)
	must(t, db.Create(&[]entity.CustomerGroup{
		{CustomerGroupID: 0, CustomerGroupCode: "NOT LOGGED IN", TaxClassID: 3},
		{CustomerGroupID: GroupGeneral, CustomerGroupCode: "General", TaxClassID: 3},
	}).Error)

	must(t, db.Create(&[]categoryEntity.Category{
		{EntityID: RootCategory, Path: "1", Level: 0, ChildrenCount: 1},
		{EntityID: DefaultCategory, ParentID: RootCategory, AttributeSetID: 3, Path: "1/2", Position: 1, Level: 1},
	}).Error)
	name, urlKey := "Default Category", "default-category"
	must(t, db.Create(&[]categoryEntity.CategoryVarchar{
		{AttributeID: CatAttrName, EntityID: DefaultCategory, Value: &name},
		{AttributeID: CatAttrURLKey, EntityID: DefaultCategory, Value: &urlKey},
	}).Error)

	must(t, db.Create(&[]entity.EavAttributeOption{
		{OptionID: ColorRed, AttributeID: AttrColor},
		{OptionID: ColorBlue, AttributeID: AttrColor, SortOrder: 1},
	}).Error)
	must(t, db.Create(&[]entity.EavAttributeOptionValue{
		{OptionID: ColorRed, Value: "Red"},
		{OptionID: ColorBlue, Value: "Blue"},
	}).Error)
}

// CreateProduct inserts a bare catalog_product_entity row.
func CreateProduct(t testing.TB, db *gorm.DB, sku, typeID string) uint {
	t.Helper()
	row := productEntity.Product{SKU: sku, TypeID: typeID, AttributeSetID: AttributeSetDefault}
	must(t, db.Create(&row).Error)
	return row.EntityID
}

// SetVarchar stores an admin-level varchar value.
func SetVarchar(t testing.TB, db *gorm.DB, productID uint, attributeID uint16, storeID uint16, value string) {
	t.Helper()
	must(t, db.Create(&productEntity.ProductVarchar{
		EntityID: productID, AttributeID: attributeID, StoreID: storeID, Value: &value,
	}).Error)
}

// Varchar reads one varchar value; ok is false when the row is missing.
func Varchar(t testing.TB, db *gorm.DB, productID uint, attributeID uint16, storeID uint16) (string, bool) {
	t.Helper()
	var rows []productEntity.ProductVarchar
	must(t, db.Where("entity_id = ? AND attribute_id = ? AND store_id = ?", productID, attributeID, storeID).Find(&rows).Error)
	if len(rows) == 0 || rows[0].Value == nil {
		return "", false
	}
	return *rows[0].Value, true
}

// ProductID returns the id of sku, or 0.
func ProductID(t testing.TB, db *gorm.DB, sku string) uint {
	t.Helper()
	var rows []productEntity.Product
	must(t, db.Where("sku = ?", sku).Find(&rows).Error)
	if len(rows) == 0 {
		return 0
	}
	return rows[0].EntityID
}

// Count returns the number of rows of model matching the optional where.
func Count(t testing.TB, db *gorm.DB, model interface{}, where ...interface{}) int64 {
	t.Helper()
	q := db.Model(model)
	if len(where) > 0 {
		q = q.Where(where[0], where[1:]...)
	}
	var n int64
	must(t, q.Count(&n).Error)
	return n
}

func must(t testing.TB, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
}
