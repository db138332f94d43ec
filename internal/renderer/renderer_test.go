package renderer

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partirhq/partir/internal/registry"
	"github.com/partirhq/partir/internal/types"
)

func newTestRenderer(opts types.RenderOptions) *Progressive {
	return NewProgressive(registry.NewHelperRegistry(), opts, nil)
}

func TestRenderSubstitutesData(t *testing.T) {
	p := newTestRenderer(types.DefaultRenderOptions())

	out, err := p.Render(context.Background(), "<p>{{.name}}</p>", map[string]interface{}{
		"name": "Loja Aurora",
	})

	require.NoError(t, err)
	assert.Contains(t, out, "Loja Aurora")
}

func TestRenderAppliesHelpers(t *testing.T) {
	p := newTestRenderer(types.DefaultRenderOptions())

	out, err := p.Render(context.Background(),
		`<span>{{formatCurrency .price}}</span><b>{{upper .name}}</b>`,
		map[string]interface{}{"price": 1234.5, "name": "promo"})

	require.NoError(t, err)
	assert.Contains(t, out, "R$ 1234,50")
	assert.Contains(t, out, "PROMO")
}

func TestRenderMissingKeysAreTolerated(t *testing.T) {
	p := newTestRenderer(types.DefaultRenderOptions())

	_, err := p.Render(context.Background(), "<p>{{.absent}}</p>", map[string]interface{}{})
	assert.NoError(t, err)
}

func TestRenderPlainFragmentPassesThrough(t *testing.T) {
	p := newTestRenderer(types.DefaultRenderOptions())

	shell := "<p>plain fragment with no components</p>"
	out, err := p.Render(context.Background(), shell, nil)

	require.NoError(t, err)
	assert.Equal(t, shell, out)
}

func TestRenderAssignsPriorityTiers(t *testing.T) {
	opts := types.DefaultRenderOptions()
	opts.PriorityLevels = 2
	p := newTestRenderer(opts)

	shell := `<html><body>` +
		`<div class="card">a</div>` +
		`<div class="card">b</div>` +
		`<div class="card">c</div>` +
		`<div class="card">d</div>` +
		`</body></html>`

	out, err := p.Render(context.Background(), shell, nil)
	require.NoError(t, err)

	// First half tier 0, second half tier 1, in document order.
	assert.Equal(t, 2, strings.Count(out, `data-priority="0"`))
	assert.Equal(t, 2, strings.Count(out, `data-priority="1"`))
	assert.Less(t,
		strings.Index(out, `data-priority="0"`),
		strings.Index(out, `data-priority="1"`))
}

func TestRenderSkeletonLoadingMarksLowestTier(t *testing.T) {
	opts := types.DefaultRenderOptions()
	opts.PriorityLevels = 2
	opts.SkeletonLoading = true
	p := newTestRenderer(opts)

	shell := `<html><body>` +
		`<div class="card">visible</div>` +
		`<div class="card">deferred</div>` +
		`</body></html>`

	out, err := p.Render(context.Background(), shell, nil)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "partir-skeleton"))
	assert.Contains(t, out, `aria-busy="true"`)
	// Content of deferred regions is kept, not discarded.
	assert.Contains(t, out, "deferred")
}

func TestRenderFeedbackMarker(t *testing.T) {
	opts := types.DefaultRenderOptions()
	opts.FeedbackEnabled = true
	p := newTestRenderer(opts)

	out, err := p.Render(context.Background(),
		`<html><body><div class="card">x</div></body></html>`, nil)
	require.NoError(t, err)

	assert.Contains(t, out, "partir-feedback")
}

func TestRenderInvalidTemplateFails(t *testing.T) {
	p := newTestRenderer(types.DefaultRenderOptions())

	_, err := p.Render(context.Background(), "{{if}}", nil)
	assert.Error(t, err)
}

func TestRenderHonorsContextCancellation(t *testing.T) {
	p := newTestRenderer(types.DefaultRenderOptions())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Render(ctx, "<p>x</p>", nil)
	assert.ErrorIs(t, err, context.Canceled)

	ctx2, cancel2 := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel2()
	time.Sleep(time.Millisecond)

	_, err = p.Render(ctx2, "<p>x</p>", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestHelperRegistryFrozenAfterConstruction(t *testing.T) {
	helpers := registry.NewHelperRegistry()
	NewProgressive(helpers, types.DefaultRenderOptions(), nil)

	err := helpers.Register("late", func() string { return "" })
	assert.Error(t, err)
}
