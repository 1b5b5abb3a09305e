package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCategoryPath(t *testing.T) {
	assert.Equal(t, []uint{2, 5}, ParseCategoryPath("1/2/5"))
	assert.Equal(t, []uint{}, ParseCategoryPath("1"))
	assert.Equal(t, []uint{2}, ParseCategoryPath("1/x/2"))
}

func TestCategoryInfo_URLKey(t *testing.T) {
	c := &CategoryInfo{URLKeys: map[uint]string{0: "shoes", 2: "schoenen"}}
	assert.Equal(t, "shoes", c.URLKey(1))
	assert.Equal(t, "schoenen", c.URLKey(2))
}

func TestMetaData_Categories(t *testing.T) {
	m := &MetaData{
		StoreViews: map[string]uint{"admin": 0, "nl": 2, "default": 1},
		categories: map[uint]*CategoryInfo{2: {ID: 2, ParentID: 1, Path: []uint{2}}},
	}
	m.AddCategory(&CategoryInfo{ID: 9, ParentID: 2, Path: []uint{2, 9}})
	m.AddCategory(&CategoryInfo{ID: 7, ParentID: 2, Path: []uint{2, 7}})

	parent, ok := m.Category(2)
	assert.True(t, ok)
	assert.Equal(t, 2, parent.Children)

	children := m.Children(2)
	if assert.Len(t, children, 2) {
		assert.EqualValues(t, 7, children[0].ID)
		assert.EqualValues(t, 9, children[1].ID)
	}
	assert.Equal(t, []uint{1, 2}, m.StoreViewIDs())
}
