package product

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"productimport.GO/service/product/data"
)

func TestExpandURLKeys(t *testing.T) {
	got := expandURLKeys(map[uint]string{0: "hat", 2: "hoed"}, []uint{1, 2, 3})
	assert.Equal(t, map[uint]string{1: "hat", 2: "hoed", 3: "hat"}, got)

	got = expandURLKeys(map[uint]string{2: "hoed"}, []uint{1, 2})
	assert.Equal(t, map[uint]string{2: "hoed"}, got)
}

func TestIsChanged(t *testing.T) {
	snap := &rewriteSnapshot{
		urlKeys:    map[uint]map[uint]string{7: {0: "hat", 2: "hoed"}},
		categories: map[uint]map[uint]bool{7: {5: true}},
	}
	product := func() *data.Product {
		p := data.NewProduct("hat", "")
		p.ID = 7
		return p
	}

	t.Run("unknown product", func(t *testing.T) {
		p := data.NewProduct("new", "")
		p.ID = 8
		assert.True(t, isChanged(p, snap))
	})
	t.Run("nothing relevant", func(t *testing.T) {
		p := product()
		p.Global().SetAttribute("name", "Hat")
		p.Global().SetAttribute("url_key", "hat")
		assert.False(t, isChanged(p, snap))
	})
	t.Run("global url key", func(t *testing.T) {
		p := product()
		p.Global().SetAttribute("url_key", "cap")
		assert.True(t, isChanged(p, snap))
	})
	t.Run("new store view url key", func(t *testing.T) {
		p := product()
		sv := p.StoreView("default")
		sv.StoreID.Resolve(1)
		sv.SetAttribute("url_key", "hat")
		assert.True(t, isChanged(p, snap))
	})
	t.Run("unresolved store view is ignored", func(t *testing.T) {
		p := product()
		p.StoreView("gone").SetAttribute("url_key", "x")
		assert.False(t, isChanged(p, snap))
	})
	t.Run("known category", func(t *testing.T) {
		p := product()
		p.Categories = data.Resolved[[]string, []uint]([]uint{5})
		assert.False(t, isChanged(p, snap))
	})
	t.Run("added category", func(t *testing.T) {
		p := product()
		p.Categories = data.Resolved[[]string, []uint]([]uint{5, 6})
		assert.True(t, isChanged(p, snap))
	})
	t.Run("dropped category", func(t *testing.T) {
		p := product()
		p.Categories = data.Resolved[[]string, []uint]([]uint{})
		assert.True(t, isChanged(p, snap))
	})
}

func TestChangedProductsSkipsNewAndDuplicates(t *testing.T) {
	s := &urlRewriteStorage{}
	snap := &rewriteSnapshot{urlKeys: map[uint]map[uint]string{}, categories: map[uint]map[uint]bool{}}
	a := data.NewProduct("a", "")
	a.ID = 9
	b := data.NewProduct("b", "")
	b.ID = 3
	twin := data.NewProduct("a", "")
	twin.ID = 9
	unsaved := data.NewProduct("c", "")

	assert.Equal(t, []uint{3, 9}, s.changedProducts([]*data.Product{a, b, twin, unsaved}, snap))
}
