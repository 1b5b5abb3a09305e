package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRef_Lifecycle(t *testing.T) {
	var absent Ref[string, uint]
	assert.Equal(t, RefAbsent, absent.State())
	_, ok := absent.Symbol()
	assert.False(t, ok)

	r := Unresolved[string, uint]("Default")
	sym, ok := r.Symbol()
	assert.True(t, ok)
	assert.Equal(t, "Default", sym)
	_, ok = r.Value()
	assert.False(t, ok)

	r.Resolve(4)
	v, ok := r.Value()
	assert.True(t, ok)
	assert.EqualValues(t, 4, v)
	_, ok = r.Symbol()
	assert.False(t, ok)
}

func TestRef_FailClearsEverything(t *testing.T) {
	r := Unresolved[[]string, []uint]([]string{"a", "b"})
	r.Fail("linked product skus not found: a, b")

	assert.Equal(t, RefFailed, r.State())
	assert.Equal(t, "failed", r.State().String())
	sym, ok := r.Symbol()
	assert.False(t, ok)
	assert.Nil(t, sym)
	v, ok := r.Value()
	assert.False(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, "linked product skus not found: a, b", r.Message())
}

func TestProduct_StoreViews(t *testing.T) {
	p := NewProduct("hat-1", "")
	assert.Equal(t, TypeSimple, p.Type)
	assert.False(t, p.HasStoreView(GlobalStoreViewCode))

	p.Global().SetAttribute("name", "Hat")
	p.StoreView("nl").SetAttribute("name", "Hoed")
	assert.Equal(t, "Hat", p.Name())

	id, ok := p.Global().ResolvedStoreID()
	assert.True(t, ok)
	assert.Zero(t, id)
	_, ok = p.StoreView("nl").ResolvedStoreID()
	assert.False(t, ok)

	p.Global().ClearAttribute("description")
	_, set := p.Global().Attribute("description")
	assert.False(t, set)
	assert.True(t, p.Global().HasAttribute("description"))
}

func TestProduct_LinkedSKUs(t *testing.T) {
	p := NewProduct("hat-set", TypeGrouped)
	p.Links[LinkRelated] = Unresolved[[]string, []uint]([]string{"scarf"})
	p.GroupedMembers = Unresolved[[]string, []uint]([]string{"hat-1", "hat-2"})
	assert.ElementsMatch(t, []string{"scarf", "hat-1", "hat-2"}, p.LinkedSKUs())

	p.AddError("boom")
	assert.False(t, p.OK())
	assert.Equal(t, []string{"boom"}, p.Errors())
}

func TestUrlRewrite_Key(t *testing.T) {
	direct := &UrlRewrite{ProductID: 7}
	inCategory := &UrlRewrite{ProductID: 7, Metadata: map[string]string{"category_id": "12"}}
	assert.Equal(t, "", direct.CategoryID())
	assert.Equal(t, "12", inCategory.CategoryID())
	assert.NotEqual(t, direct.Key(), inCategory.Key())
	assert.Equal(t, RewriteKey(7, "12"), inCategory.Key())
}
