package entities

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptional_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Name Optional[string] `json:"name"`
	}

	t.Run("absent key stays unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Name.Set)
		assert.False(t, p.Name.Valid)
	})

	t.Run("explicit null is set but not valid", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name": null}`), &p))
		assert.True(t, p.Name.Set)
		assert.False(t, p.Name.Valid)
	})

	t.Run("value is set and valid", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name": "Borges"}`), &p))
		assert.True(t, p.Name.Set)
		assert.True(t, p.Name.Valid)
		assert.Equal(t, "Borges", p.Name.Value)
	})

	t.Run("wrong type fails", func(t *testing.T) {
		var p payload
		assert.Error(t, json.Unmarshal([]byte(`{"name": 42}`), &p))
	})
}

func TestLooseInt_UnmarshalJSON(t *testing.T) {
	type payload struct {
		Year LooseInt `json:"year"`
	}

	t.Run("absent key stays unset", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Year.Set)
	})

	t.Run("number", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"year": 1929}`), &p))
		assert.True(t, p.Year.Set)
		assert.True(t, p.Year.Valid)
		assert.Equal(t, 1929, p.Year.Value)
	})

	t.Run("numeric string", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"year": " 1929 "}`), &p))
		assert.True(t, p.Year.Valid)
		assert.Equal(t, 1929, p.Year.Value)
	})

	t.Run("non-numeric string normalizes to null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"year": "abc"}`), &p))
		assert.True(t, p.Year.Set)
		assert.False(t, p.Year.Valid)
	})

	t.Run("explicit null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"year": null}`), &p))
		assert.True(t, p.Year.Set)
		assert.False(t, p.Year.Valid)
	})

	t.Run("other shapes normalize to null", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"year": [1929]}`), &p))
		assert.True(t, p.Year.Set)
		assert.False(t, p.Year.Valid)
	})
}

func TestLooseInt_Ptr(t *testing.T) {
	valid := LooseInt{Set: true, Valid: true, Value: 7}
	require.NotNil(t, valid.Ptr())
	assert.Equal(t, 7, *valid.Ptr())

	null := LooseInt{Set: true}
	assert.Nil(t, null.Ptr())
}
