// Package renderer provides the progressive rendering primitive consumed by
// the artifact assembler.
//
// A render pass executes the template shell against the data context with the
// injected helper set, then schedules the recognizable components of the
// resulting document into visual-priority tiers: earlier components get
// higher priority, and the lowest tier can be marked for skeleton loading.
// The renderer produces one coherent document per call; chunk orchestration
// lives in the assembler.
package renderer

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/partirhq/partir/internal/logging"
	"github.com/partirhq/partir/internal/registry"
	"github.com/partirhq/partir/internal/types"
)

// componentSelector matches the block components the priority scheduler
// recognizes, by class naming convention.
const componentSelector = `[class*="container"],[class*="section"],[class*="row"],[class*="col"],[class*="card"],[class*="component"]`

// Progressive renders a single template+data pair with priority-ordered
// component scheduling. The helper registry is frozen at construction and
// never mutated afterwards, so one Progressive instance is safe for any
// number of sequential render calls.
type Progressive struct {
	funcs  template.FuncMap
	opts   types.RenderOptions
	logger logging.Logger
}

// NewProgressive creates a renderer around a helper registry. The registry
// is frozen here; late registrations fail rather than racing with renders.
func NewProgressive(helpers *registry.HelperRegistry, opts types.RenderOptions, logger logging.Logger) *Progressive {
	if logger == nil {
		logger = logging.Discard()
	}
	helpers.Freeze()

	return &Progressive{
		funcs:  helpers.FuncMap(),
		opts:   opts,
		logger: logger.WithComponent("renderer"),
	}
}

// Render executes the shell against the data context and applies the
// priority pass. The call is synchronous: it returns only when the chunk's
// final markup has been produced, which keeps multi-chunk assembly strictly
// sequential and artifact indices deterministic.
func (p *Progressive) Render(ctx context.Context, shell string, data map[string]interface{}) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	tmpl, err := template.New("shell").Funcs(p.funcs).Option("missingkey=zero").Parse(shell)
	if err != nil {
		return "", fmt.Errorf("parsing template shell: %w", err)
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template shell: %w", err)
	}
	rendered := buf.String()

	if err := ctx.Err(); err != nil {
		return "", err
	}

	return p.prioritize(ctx, rendered)
}

// prioritize assigns each recognizable component to a priority tier in
// document order. Documents without recognizable components pass through
// byte-for-byte, so plain fragments are never reserialized.
func (p *Progressive) prioritize(ctx context.Context, rendered string) (string, error) {
	levels := p.opts.PriorityLevels
	if levels < 1 {
		levels = 1
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		// Tolerant by contract: an unparseable document is returned as-is
		// rather than failing the whole chunk.
		p.logger.Warn(ctx, err, "priority pass skipped, document not parseable")
		return rendered, nil
	}

	components := doc.Find(componentSelector)
	total := components.Length()
	if total == 0 {
		return rendered, nil
	}

	components.Each(func(i int, s *goquery.Selection) {
		tier := i * levels / total
		s.SetAttr("data-priority", fmt.Sprintf("%d", tier))

		if p.opts.SkeletonLoading && tier == levels-1 && levels > 1 {
			s.AddClass("partir-skeleton")
			s.SetAttr("aria-busy", "true")
		}
	})

	if p.opts.FeedbackEnabled {
		doc.Find("body").PrependHtml(fmt.Sprintf(
			`<div class="partir-feedback" role="status" data-components="%d">Renderização progressiva ativa</div>`,
			total,
		))
	}

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("serializing prioritized document: %w", err)
	}

	p.logger.Debug(ctx, "priority pass applied", "components", total, "levels", levels)
	return out, nil
}
