// Package assembler turns a split plan into the final ordered list of
// self-contained artifacts.
//
// For every planned chunk it extracts the relevant markup, wraps it in a
// minimal HTML shell carrying the shared styles and cross-part navigation,
// and pushes the shell through the progressive renderer. Chunks render
// strictly sequentially in document order so that artifact indices are
// deterministic; a failure on any chunk aborts the whole call without
// returning a partial list.
package assembler

import (
	"context"
	"fmt"
	"strings"

	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"

	"github.com/partirhq/partir/internal/errors"
	"github.com/partirhq/partir/internal/logging"
	"github.com/partirhq/partir/internal/renderer"
	"github.com/partirhq/partir/internal/splitter"
	"github.com/partirhq/partir/internal/types"
)

// Assembler builds artifacts from split plans. It owns no persistent state;
// file and network I/O belong to the calling layer.
type Assembler struct {
	renderer *renderer.Progressive
	logger   logging.Logger
	minifier *minify.M
}

// New creates an assembler around the given progressive renderer.
func New(r *renderer.Progressive, logger logging.Logger) *Assembler {
	if logger == nil {
		logger = logging.Discard()
	}

	m := minify.New()
	m.AddFunc("text/html", minhtml.Minify)
	m.AddFunc("text/css", mincss.Minify)

	return &Assembler{
		renderer: r,
		logger:   logger.WithComponent("assembler"),
		minifier: m,
	}
}

// Assemble executes the plan against the template source and data context.
// The returned artifacts follow document order; index i of N is stable and
// reflected in both the title suffix and the navigation controls.
func (a *Assembler) Assemble(ctx context.Context, plan splitter.Plan, source string, data map[string]interface{}, opts types.RenderOptions) ([]types.Artifact, error) {
	switch plan.Kind {
	case splitter.Logical:
		return a.assembleLogical(ctx, plan, source, data, opts)
	case splitter.Automatic:
		return a.assembleAutomatic(ctx, plan, source, data, opts)
	default:
		return a.assembleSingle(ctx, source, data, opts)
	}
}

// assembleSingle renders the template as one artifact with no part suffix.
func (a *Assembler) assembleSingle(ctx context.Context, source string, data map[string]interface{}, opts types.RenderOptions) ([]types.Artifact, error) {
	content, err := a.renderer.Render(ctx, source, data)
	if err != nil {
		return nil, errors.Wrap(errors.StageRender, "rendering single artifact", err)
	}

	return []types.Artifact{{
		Type:    types.ArtifactTypeHTML,
		Title:   types.BaseTitle,
		Content: a.finalize(ctx, content, opts),
	}}, nil
}

// assembleLogical extracts each named section and renders it as its own
// artifact. Sections without matching markup are skipped silently; if every
// point misses, the template degrades to single-artifact rendering rather
// than returning an empty list.
func (a *Assembler) assembleLogical(ctx context.Context, plan splitter.Plan, source string, data map[string]interface{}, opts types.RenderOptions) ([]types.Artifact, error) {
	type fragment struct {
		section types.Section
		markup  string
	}

	fragments := make([]fragment, 0, len(plan.Points))
	for _, point := range plan.Points {
		markup, ok := extractSection(source, point)
		if !ok {
			a.logger.Debug(ctx, "division point without matching markup, skipped", "section", string(point))
			continue
		}
		fragments = append(fragments, fragment{section: point, markup: markup})
	}

	if len(fragments) == 0 {
		a.logger.Warn(ctx, nil, "no logical section could be extracted, falling back to single artifact")
		return a.assembleSingle(ctx, source, data, opts)
	}

	total := len(fragments)
	styles := extractStyles(source)
	labels := make([]string, total)
	for i, frag := range fragments {
		labels[i] = sectionLabel(frag.section)
	}

	artifacts := make([]types.Artifact, 0, total)
	for i, frag := range fragments {
		shell := buildShell(shellParams{
			Title:    partTitle(i, total),
			Styles:   styles,
			Nav:      buildNavigationLabeled(i, total, labels),
			Banner:   partBanner(i, total, labels[i]),
			Fragment: frag.markup,
		})

		content, err := a.renderer.Render(ctx, shell, data)
		if err != nil {
			return nil, errors.WrapPart(errors.StageRender, i+1, total, "rendering logical section", err)
		}

		artifacts = append(artifacts, types.Artifact{
			Type:    types.ArtifactTypeHTML,
			Title:   partTitle(i, total),
			Content: a.finalize(ctx, content, opts),
		})
	}

	a.logger.Info(ctx, "logical division assembled", "artifacts", total)
	return artifacts, nil
}

// assembleAutomatic chunks the template by recognizable block components,
// falling back to byte-offset windows of the body when too few components
// exist to fill the target count. The original head block is carried on
// every chunk shell so each artifact stays self-contained.
func (a *Assembler) assembleAutomatic(ctx context.Context, plan splitter.Plan, source string, data map[string]interface{}, opts types.RenderOptions) ([]types.Artifact, error) {
	target := plan.TargetCount
	if target < 1 {
		target = 1
	}

	chunks := componentChunks(source, target)
	if chunks == nil {
		a.logger.Debug(ctx, "component chunking not possible, using byte-offset windows", "target", target)
		chunks = byteChunks(extractBody(source), target)
	}

	total := len(chunks)
	if total == 1 {
		return a.assembleSingle(ctx, source, data, opts)
	}

	styles := extractStyles(source)
	head := extractHead(source)

	artifacts := make([]types.Artifact, 0, total)
	for i, chunk := range chunks {
		shell := buildShell(shellParams{
			Title:     partTitle(i, total),
			HeadExtra: head,
			Styles:    styles,
			Nav:       buildNavigation(i, total),
			Banner:    partBanner(i, total, ""),
			Fragment:  chunk,
		})

		content, err := a.renderer.Render(ctx, shell, data)
		if err != nil {
			return nil, errors.WrapPart(errors.StageRender, i+1, total, "rendering chunk", err)
		}

		artifacts = append(artifacts, types.Artifact{
			Type:    types.ArtifactTypeHTML,
			Title:   partTitle(i, total),
			Content: a.finalize(ctx, content, opts),
		})
	}

	a.logger.Info(ctx, "automatic division assembled", "artifacts", total)
	return artifacts, nil
}

// finalize optionally minifies the rendered content. Minification failures
// are logged and ignored, the unminified document is still valid output.
func (a *Assembler) finalize(ctx context.Context, content string, opts types.RenderOptions) string {
	if !opts.Minify {
		return content
	}

	minified, err := a.minifier.String("text/html", content)
	if err != nil {
		a.logger.Warn(ctx, err, "minification failed, keeping original content")
		return content
	}
	return minified
}

// partTitle builds the artifact title. Single-part outputs carry no suffix.
func partTitle(index, total int) string {
	if total <= 1 {
		return types.BaseTitle
	}
	return fmt.Sprintf("%s (Parte %d de %d)", types.BaseTitle, index+1, total)
}

// partBanner builds the alert banner announcing which part the reader is
// looking at.
func partBanner(index, total int, label string) string {
	if total <= 1 {
		return ""
	}
	text := fmt.Sprintf("Parte %d de %d", index+1, total)
	if label != "" {
		text = fmt.Sprintf("%s: %s", text, label)
	}
	return fmt.Sprintf(`<div class="partir-alert" role="alert">%s</div>`, text)
}

// shellParams carries everything buildShell needs for one chunk document.
type shellParams struct {
	Title     string
	HeadExtra string
	Styles    string
	Nav       string
	Banner    string
	Fragment  string
}

// buildShell wraps a fragment in a minimal self-contained HTML document:
// doctype, head with the shared styles, navigation block, part banner and
// the fragment itself. The shell is what the progressive renderer executes,
// so Handlebars-style expressions inside the fragment are still substituted.
func buildShell(p shellParams) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"pt-BR\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	b.WriteString("<title>")
	b.WriteString(p.Title)
	b.WriteString("</title>\n")
	if p.HeadExtra != "" {
		b.WriteString(p.HeadExtra)
		b.WriteString("\n")
	}
	b.WriteString("<style>\n")
	b.WriteString(p.Styles)
	b.WriteString("\n</style>\n</head>\n<body>\n")
	if p.Nav != "" {
		b.WriteString(p.Nav)
		b.WriteString("\n")
	}
	if p.Banner != "" {
		b.WriteString(p.Banner)
		b.WriteString("\n")
	}
	b.WriteString(`<div id="partir-fragment">`)
	b.WriteString(p.Fragment)
	b.WriteString("</div>\n</body>\n</html>")
	return b.String()
}
