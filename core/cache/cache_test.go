package cache

import (
	"testing"
)

func TestSet_Get(t *testing.T) {
	c := NewCache()
	c.Set("sku:ABC", uint(12))
	got, ok := c.Get("sku:ABC")
	if !ok {
		t.Fatal("Get: want true")
	}
	if got != uint(12) {
		t.Errorf("Get = %v, want 12", got)
	}
}

func TestGet_Missing(t *testing.T) {
	c := NewCache()
	if _, ok := c.Get("nonexistent"); ok {
		t.Error("Get missing key: want false")
	}
}

func TestInstancesAreIndependent(t *testing.T) {
	a, b := NewCache(), NewCache()
	a.Set("k", 1)
	if _, ok := b.Get("k"); ok {
		t.Error("value leaked between cache instances")
	}
}

func TestSetN_GetN(t *testing.T) {
	c := NewCache()
	c.SetN([]interface{}{"color", "Red"}, uint(5))
	got, ok := c.GetN("color", "Red")
	if !ok || got != uint(5) {
		t.Errorf("GetN = %v,%v want 5,true", got, ok)
	}
	if _, ok := c.Get("color|Red"); !ok {
		t.Error("composite key should be joined with |")
	}
}

func TestDeleteByTag(t *testing.T) {
	c := NewCache()
	c.SetN([]interface{}{"color", "Red"}, uint(5), "option:color")
	c.SetN([]interface{}{"color", "Blue"}, uint(6), "option:color")
	c.SetN([]interface{}{"size", "L"}, uint(7), "option:size")

	c.DeleteByTag("option:color")
	if _, ok := c.GetN("color", "Red"); ok {
		t.Error("tagged entry should be gone")
	}
	if c.HasTag("option:color") {
		t.Error("tag should be gone")
	}
	if _, ok := c.GetN("size", "L"); !ok {
		t.Error("other tag must survive")
	}
}
