package registry

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinHelpers(t *testing.T) {
	reg := NewHelperRegistry()
	funcs := reg.FuncMap()

	formatCurrency, ok := funcs["formatCurrency"].(func(float64) string)
	require.True(t, ok)
	assert.Equal(t, "R$ 1234,50", formatCurrency(1234.5))
	assert.Equal(t, "R$ 0,00", formatCurrency(0))

	formatDate, ok := funcs["formatDate"].(func(time.Time) string)
	require.True(t, ok)
	assert.Equal(t, "25/12/2025", formatDate(time.Date(2025, 12, 25, 10, 0, 0, 0, time.UTC)))

	truncate, ok := funcs["truncate"].(func(string, int) string)
	require.True(t, ok)
	assert.Equal(t, "Promoção…", truncate("Promoção de verão", 8))
	assert.Equal(t, "oi", truncate("oi", 10))

	pluralize, ok := funcs["pluralize"].(func(int, string, string) string)
	require.True(t, ok)
	assert.Equal(t, "item", pluralize(1, "item", "itens"))
	assert.Equal(t, "itens", pluralize(3, "item", "itens"))
}

func TestRegisterCustomHelper(t *testing.T) {
	reg := NewHelperRegistry()
	require.NoError(t, reg.Register("shout", func(s string) string { return s + "!" }))

	funcs := reg.FuncMap()
	shout, ok := funcs["shout"].(func(string) string)
	require.True(t, ok)
	assert.Equal(t, "oi!", shout("oi"))
}

func TestRegisterAfterFreezeFails(t *testing.T) {
	reg := NewHelperRegistry()
	reg.Freeze()

	err := reg.Register("late", func() string { return "" })
	assert.Error(t, err)
}

func TestFuncMapReturnsCopy(t *testing.T) {
	reg := NewHelperRegistry()
	funcs := reg.FuncMap()
	funcs["injected"] = func() string { return "" }

	_, present := reg.FuncMap()["injected"]
	assert.False(t, present)
}
