package product

import (
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"productimport.GO/service/product/producttest"
)

func TestCheckSchema_EntityID(t *testing.T) {
	db := producttest.NewDB(t)
	assert.Equal(t, SchemaEntityID, DetectSchema(db))
	assert.NoError(t, CheckSchema(db))
}

func TestCheckSchema_RefusesStagingAndUnknown(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "staging.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	assert.Equal(t, SchemaUnknown, DetectSchema(db))
	assert.ErrorIs(t, CheckSchema(db), ErrUnsupportedSchema)

	require.NoError(t, db.Exec("CREATE TABLE catalog_product_entity_varchar (value_id INTEGER PRIMARY KEY, row_id INTEGER NOT NULL, value TEXT)").Error)
	assert.Equal(t, SchemaRowID, DetectSchema(db))
	err = CheckSchema(db)
	assert.ErrorIs(t, err, ErrUnsupportedSchema)
	assert.ErrorContains(t, err, "keyed by row_id")
}

func TestSchemaType_String(t *testing.T) {
	assert.Equal(t, "entity_id", SchemaEntityID.String())
	assert.Equal(t, "row_id", SchemaRowID.String())
	assert.Equal(t, "unknown", SchemaUnknown.String())
}
