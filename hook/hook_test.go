package hook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	assert.Equal(t, "before_get", BeforeGet.String())
	assert.Equal(t, "after_get", AfterGet.String())
	assert.Equal(t, "before_save", BeforeSave.String())
	assert.Equal(t, "after_save", AfterSave.String())
	assert.Equal(t, "before_delete", BeforeDelete.String())
	assert.Equal(t, "after_delete", AfterDelete.String())
	assert.Equal(t, "hook.Type(42)", Type(42).String())
}

func TestTypeValid(t *testing.T) {
	for typ := BeforeGet; typ < numTypes; typ++ {
		assert.True(t, typ.Valid(), typ.String())
	}
	assert.False(t, Type(-1).Valid())
	assert.False(t, numTypes.Valid())
	assert.False(t, Type(100).Valid())
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("after_delete")
	require.NoError(t, err)
	assert.Equal(t, AfterDelete, typ)

	_, err = ParseType("on_save")
	assert.Error(t, err)
}

func TestParseTypeRoundTrips(t *testing.T) {
	for typ := BeforeGet; typ < numTypes; typ++ {
		parsed, err := ParseType(typ.String())
		require.NoError(t, err)
		assert.Equal(t, typ, parsed)
	}
}

func TestHandlerFunc(t *testing.T) {
	var gotKey, gotValue []byte
	h := HandlerFunc(func(key, value []byte) {
		gotKey, gotValue = key, value
	})
	h.Invoke([]byte("k"), []byte("v"))
	assert.Equal(t, []byte("k"), gotKey)
	assert.Equal(t, []byte("v"), gotValue)
}
