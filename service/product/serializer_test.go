package product

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"productimport.GO/service/product/producttest"
)

func TestJSONSerializer(t *testing.T) {
	s := JSONSerializer{}
	assert.Equal(t, "[]", s.Serialize(nil))
	assert.Equal(t, `{"category_id":"12"}`, s.Serialize(map[string]string{"category_id": "12"}))

	assert.Equal(t, "12", s.Extract(`{"category_id":"12"}`, "category_id"))
	assert.Equal(t, "12", s.Extract(`{"category_id":12}`, "category_id"))
	assert.Equal(t, "", s.Extract("[]", "category_id"))
	assert.Equal(t, "", s.Extract("", "category_id"))
}

func TestPHPSerializer(t *testing.T) {
	s := PHPSerializer{}
	assert.Equal(t, "a:0:{}", s.Serialize(nil))

	out := s.Serialize(map[string]string{"category_id": "12"})
	assert.Equal(t, `a:1:{s:11:"category_id";s:2:"12";}`, out)
	assert.Equal(t, "12", s.Extract(out, "category_id"))

	assert.Equal(t, "7", s.Extract(`a:1:{s:11:"category_id";i:7;}`, "category_id"))
	assert.Equal(t, "", s.Extract("not serialized", "category_id"))
	assert.Equal(t, "", s.Extract(`a:1:{s:40:"category_id";}`, "category_id"))
}

func TestIsMagento21(t *testing.T) {
	for version, want := range map[string]bool{
		"2.1":    true,
		"2.1.18": true,
		"2.0.9":  true,
		"2.2":    false,
		"2.4.7":  false,
		"dev":    false,
	} {
		assert.Equal(t, want, isMagento21(version), version)
	}
}

func TestNewValueSerializer(t *testing.T) {
	db := producttest.NewDB(t)

	s, err := NewValueSerializer(db, "2.1")
	require.NoError(t, err)
	assert.IsType(t, PHPSerializer{}, s)

	s, err = NewValueSerializer(db, "")
	require.NoError(t, err)
	assert.IsType(t, JSONSerializer{}, s, "empty url_rewrite defaults to JSON")

	require.NoError(t, db.Exec(
		`INSERT INTO url_rewrite (entity_type, entity_id, request_path, target_path, redirect_type, store_id, is_autogenerated, metadata)
		 VALUES ('product', 1, 'a.html', 'catalog/product/view/id/1', 0, 1, 1, ?)`,
		`a:1:{s:11:"category_id";s:1:"3";}`).Error)
	s, err = NewValueSerializer(db, "")
	require.NoError(t, err)
	assert.IsType(t, PHPSerializer{}, s)
}
