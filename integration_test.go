package main

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/partirhq/partir/internal/config"
	"github.com/partirhq/partir/internal/datafile"
	"github.com/partirhq/partir/internal/engine"
	"github.com/partirhq/partir/internal/types"
)

// TestIntegration_DashboardRender runs the whole pipeline on a realistic
// dashboard template with the generated demo context: config defaults,
// analysis, split decision, assembly and helper substitution.
func TestIntegration_DashboardRender(t *testing.T) {
	viper.Reset()
	cfg, err := config.Load()
	require.NoError(t, err)

	source := `<header><nav><h1>{{.store.name}}</h1></nav></header>
<main>
  <section class="row">
    <div class="card"><p>Visitantes: {{.visitors}}</p></div>
    <div class="card"><p>Receita: {{formatCurrency .revenue}}</p></div>
  </section>
  <table><tr><th>Produto</th></tr></table>
</main>
<footer><p>{{.store.email}}</p></footer>`

	data, err := datafile.Load("")
	require.NoError(t, err)

	eng := engine.New(nil, cfg.Render, nil)
	artifacts, err := eng.RenderToArtifacts(context.Background(), source, data)
	require.NoError(t, err)
	require.Len(t, artifacts, 1)

	content := artifacts[0].Content
	assert.Equal(t, types.BaseTitle, artifacts[0].Title)
	assert.Contains(t, content, "R$ ")
	assert.Contains(t, content, "Visitantes:")
	assert.NotContains(t, content, "{{")
}

// TestIntegration_LargeTemplateSplits drives a template past the size
// ceiling and checks that every produced part is self-contained.
func TestIntegration_LargeTemplateSplits(t *testing.T) {
	viper.Reset()
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Render.ArtifactMaxSize = 4000

	// ~12KB of markup against a 4000-byte ceiling forces several chunks.
	var b strings.Builder
	for i := 0; i < 200; i++ {
		fmt.Fprintf(&b, `<div class="card"><p>Pedido %d: {{.store.name}}</p></div>`, i)
	}
	source := b.String()

	data, err := datafile.Load("")
	require.NoError(t, err)

	eng := engine.New(nil, cfg.Render, nil)
	artifacts, err := eng.RenderToArtifacts(context.Background(), source, data)
	require.NoError(t, err)
	require.Greater(t, len(artifacts), 1)

	total := len(artifacts)
	for i, artifact := range artifacts {
		assert.Equal(t, fmt.Sprintf("%s (Parte %d de %d)", types.BaseTitle, i+1, total), artifact.Title)
		assert.Contains(t, artifact.Content, "<!DOCTYPE html>")
		assert.Contains(t, artifact.Content, "partir-nav")
		assert.NotContains(t, artifact.Content, "{{")
	}
}
