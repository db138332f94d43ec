package mockdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateShape(t *testing.T) {
	data := Generate(1)

	store, ok := data["store"].(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, store["name"])

	products, ok := data["products"].([]map[string]interface{})
	require.True(t, ok)
	assert.Len(t, products, 6)
	for _, p := range products {
		assert.NotEmpty(t, p["name"])
	}

	orders, ok := data["orders"].([]map[string]interface{})
	require.True(t, ok)
	assert.Len(t, orders, 4)
}

func TestGenerateDeterministic(t *testing.T) {
	assert.Equal(t, Generate(42), Generate(42))
	assert.NotEqual(t, Generate(1), Generate(2))
}
