// Package visualizer is the degraded rendering path used when the
// progressive pipeline fails.
//
// It produces exactly one best-effort HTML artifact: plain template
// substitution without splitting, priority scheduling or navigation. By
// contract it never returns an error for the template itself; if even plain
// substitution fails the raw source becomes the artifact content, so the
// caller always has something to display.
package visualizer

import (
	"context"
	"html/template"
	"strings"

	"github.com/partirhq/partir/internal/logging"
	"github.com/partirhq/partir/internal/types"
)

// Visualizer creates single fallback artifacts.
type Visualizer struct {
	logger logging.Logger
}

// New creates a fallback visualizer.
func New(logger logging.Logger) *Visualizer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Visualizer{logger: logger.WithComponent("visualizer")}
}

// CreateHTMLArtifact renders the template as one plain artifact. Context
// cancellation is the only error path; template problems degrade to the raw
// source instead of failing.
func (v *Visualizer) CreateHTMLArtifact(ctx context.Context, source string, data map[string]interface{}) (types.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return types.Artifact{}, err
	}

	content := source
	tmpl, err := template.New("fallback").Option("missingkey=zero").Parse(source)
	if err != nil {
		v.logger.Warn(ctx, err, "fallback parse failed, returning raw template")
	} else {
		var buf strings.Builder
		if err := tmpl.Execute(&buf, data); err != nil {
			v.logger.Warn(ctx, err, "fallback execution failed, returning raw template")
		} else {
			content = buf.String()
		}
	}

	return types.Artifact{
		Type:    types.ArtifactTypeHTML,
		Title:   types.BaseTitle,
		Content: content,
	}, nil
}
