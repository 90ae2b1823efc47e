package ncodec_test

import (
	"testing"

	"github.com/muir/nroute/ncodec"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemModel struct {
	Name  string   `json:"name"`
	Count int      `json:"count"`
	Note  *string  `json:"note"`
	Tags  []string `json:"tags"`
}

func TestJSONDecodes(t *testing.T) {
	var got itemModel
	err := ncodec.JSON([]byte(`{"name":"bolt","count":3,"note":"m4","tags":["a"]}`), &got)
	require.NoError(t, err)
	assert.Equal(t, "bolt", got.Name)
	assert.Equal(t, 3, got.Count)
	require.NotNil(t, got.Note)
	assert.Equal(t, "m4", *got.Note)
}

func TestJSONUnknownField(t *testing.T) {
	var got itemModel
	err := ncodec.JSON([]byte(`{"name":"bolt","count":3,"tags":[],"color":"red"}`), &got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "color")
}

func TestJSONMissingRequired(t *testing.T) {
	var got itemModel
	err := ncodec.JSON([]byte(`{"name":"bolt","tags":[]}`), &got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count")
}

func TestJSONPointerFieldsOptional(t *testing.T) {
	t.Run("absent", func(t *testing.T) {
		var got itemModel
		err := ncodec.JSON([]byte(`{"name":"bolt","count":3,"tags":[]}`), &got)
		require.NoError(t, err)
		assert.Nil(t, got.Note)
	})
	t.Run("null", func(t *testing.T) {
		var got itemModel
		err := ncodec.JSON([]byte(`{"name":"bolt","count":3,"note":null,"tags":[]}`), &got)
		require.NoError(t, err)
		assert.Nil(t, got.Note)
	})
}

func TestJSONTrailingData(t *testing.T) {
	var got itemModel
	err := ncodec.JSON([]byte(`{"name":"bolt","count":3,"tags":[]} {"x":1}`), &got)
	assert.Error(t, err)
}

func TestJSONUntaggedFields(t *testing.T) {
	var got struct {
		Name  string
		Count int
	}
	t.Run("exact keys", func(t *testing.T) {
		require.NoError(t, ncodec.JSON([]byte(`{"Name":"a","Count":1}`), &got))
	})
	t.Run("case folded keys", func(t *testing.T) {
		require.NoError(t, ncodec.JSON([]byte(`{"name":"a","count":1}`), &got))
	})
}

func TestJSONNonStructTarget(t *testing.T) {
	var got []string
	err := ncodec.JSON([]byte(`["a","b"]`), &got)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)
}
