package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"productimport.GO/core/cache"
	entity "productimport.GO/model/entity"
	categoryEntity "productimport.GO/model/entity/category"
	productEntity "productimport.GO/model/entity/product"
	"productimport.GO/service/product/data"
	"productimport.GO/service/product/meta"
	"productimport.GO/service/product/producttest"
)

func loadMeta(t *testing.T) (*meta.MetaData, *gorm.DB) {
	t.Helper()
	db := producttest.NewCatalog(t)
	m, err := meta.Load(db)
	require.NoError(t, err)
	return m, db
}

func TestMapResolver(t *testing.T) {
	m, _ := loadMeta(t)

	id, msg := NewAttributeSetResolver(m).ResolveName(" Bag ")
	assert.Empty(t, msg)
	assert.EqualValues(t, producttest.AttributeSetBag, id)

	_, msg = NewAttributeSetResolver(m).ResolveName("Shoes")
	assert.Equal(t, "attribute set name not found: Shoes", msg)

	id, msg = NewTaxClassResolver(m).ResolveName("None")
	assert.Empty(t, msg)
	assert.Zero(t, id)

	ids, msg := NewWebsiteResolver(m).ResolveCodes([]string{"base", "eu", "us"})
	assert.Nil(t, ids)
	assert.Equal(t, "website code not found: eu, us", msg)

	ids, msg = NewStoreViewResolver(m).ResolveCodes([]string{"nl", "default"})
	assert.Empty(t, msg)
	assert.Equal(t, []uint{uint(producttest.StoreDutch), uint(producttest.StoreDefault)}, ids)
}

func TestCategoryImporter(t *testing.T) {
	m, db := loadMeta(t)
	c := NewCategoryImporter(db, m)

	ids, msg, err := c.ImportCategoryPaths([]string{"Default Category/Men/Shoes"}, false, "/")
	require.NoError(t, err)
	assert.Nil(t, ids)
	assert.Equal(t, "category not found: Default Category/Men/Shoes", msg)

	ids, msg, err = c.ImportCategoryPaths([]string{"Default Category/Men/Shoes", "Default Category / Men"}, true, "/")
	require.NoError(t, err)
	assert.Empty(t, msg)
	require.Len(t, ids, 2)

	shoes, ok := m.Category(ids[0])
	require.True(t, ok)
	men, ok := m.Category(ids[1])
	require.True(t, ok)
	assert.Equal(t, men.ID, shoes.ParentID)
	assert.Equal(t, []uint{uint(producttest.DefaultCategory), men.ID, shoes.ID}, shoes.Path)
	assert.Equal(t, "shoes", shoes.URLKey(1))

	var stored categoryEntity.Category
	require.NoError(t, db.First(&stored, shoes.ID).Error)
	assert.Equal(t, categoryPathString([]uint{2, men.ID}, shoes.ID), stored.Path)
	assert.Equal(t, 3, stored.Level)

	var parent categoryEntity.Category
	require.NoError(t, db.First(&parent, men.ID).Error)
	assert.Equal(t, 1, parent.ChildrenCount)

	again, _, err := c.ImportCategoryPaths([]string{"Default Category/Men/Shoes"}, true, "/")
	require.NoError(t, err)
	assert.Equal(t, []uint{shoes.ID}, again)
	assert.Equal(t, int64(4), producttest.Count(t, db, &categoryEntity.Category{}))
}

func TestOptionResolver(t *testing.T) {
	m, db := loadMeta(t)
	r := NewOptionResolver(db, m, cache.NewCache())

	id, msg, err := r.ResolveOption("color", "Blue", false)
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.EqualValues(t, producttest.ColorBlue, id)

	_, msg, err = r.ResolveOption("color", "Green", false)
	require.NoError(t, err)
	assert.Equal(t, `option "Green" not found for attribute color`, msg)

	_, _, err = r.ResolveOption("colour", "Green", false)
	assert.Error(t, err)

	ids, msg, err := r.ResolveOptions("color", []string{"Red", "Pink", "Teal"}, false)
	require.NoError(t, err)
	assert.Nil(t, ids)
	assert.Equal(t, `options "Pink", "Teal" not found for attribute color`, msg)

	green, msg, err := r.ResolveOption("color", "Green", true)
	require.NoError(t, err)
	assert.Empty(t, msg)
	assert.NotZero(t, green)
	assert.Equal(t, int64(1), producttest.Count(t, db, &entity.EavAttributeOptionValue{}, "value = ?", "Green"))

	again, _, err := r.ResolveOption("color", "Green", true)
	require.NoError(t, err)
	assert.Equal(t, green, again)
}

func TestProductReferenceResolver_CreatesPlaceholders(t *testing.T) {
	m, db := loadMeta(t)
	existing := producttest.CreateProduct(t, db, "hat-1", data.TypeSimple)
	r := NewProductReferenceResolver(db, m, cache.NewCache())

	ids, err := r.ResolveSKUs([]string{"hat-1", "scarf-1"})
	require.NoError(t, err)
	assert.Equal(t, existing, ids["hat-1"])
	require.NotZero(t, ids["scarf-1"])

	name, ok := producttest.Varchar(t, db, ids["scarf-1"], producttest.AttrName, 0)
	require.True(t, ok)
	assert.Equal(t, data.PlaceholderName, name)

	var row productEntity.Product
	require.NoError(t, db.First(&row, ids["scarf-1"]).Error)
	assert.Equal(t, data.TypeSimple, row.TypeID)
	assert.EqualValues(t, producttest.AttributeSetDefault, row.AttributeSetID)

	again, err := r.ResolveSKUs([]string{"scarf-1"})
	require.NoError(t, err)
	assert.Equal(t, ids["scarf-1"], again["scarf-1"])
	assert.Equal(t, int64(2), producttest.Count(t, db, &productEntity.Product{}))
}

func TestLookupSKUs(t *testing.T) {
	_, db := loadMeta(t)
	id := producttest.CreateProduct(t, db, "hat-1", data.TypeSimple)

	ids, err := LookupSKUs(db, []string{"hat-1", "nope"})
	require.NoError(t, err)
	assert.Equal(t, map[string]uint{"hat-1": id}, ids)

	ids, err = LookupSKUs(db, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
