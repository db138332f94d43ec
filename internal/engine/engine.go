// Package engine wires the rendering pipeline together and exposes the
// single inbound entry point, RenderToArtifacts.
//
// The pipeline is analyze -> decide -> assemble. If any stage of the
// progressive path fails, the engine falls back to the plain visualizer so
// the caller always receives at least one artifact; raw failures never
// escape to the consumer of the artifact list.
package engine

import (
	"context"

	"github.com/partirhq/partir/internal/analyzer"
	"github.com/partirhq/partir/internal/assembler"
	"github.com/partirhq/partir/internal/logging"
	"github.com/partirhq/partir/internal/registry"
	"github.com/partirhq/partir/internal/renderer"
	"github.com/partirhq/partir/internal/splitter"
	"github.com/partirhq/partir/internal/types"
	"github.com/partirhq/partir/internal/visualizer"
)

// Engine renders templates into ordered artifact lists.
type Engine struct {
	assembler  *assembler.Assembler
	visualizer *visualizer.Visualizer
	opts       types.RenderOptions
	logger     logging.Logger
}

// New builds an engine with the given options. The helper registry may be
// nil, in which case the built-in helpers are used; either way it is frozen
// before the first render.
func New(helpers *registry.HelperRegistry, opts types.RenderOptions, logger logging.Logger) *Engine {
	if helpers == nil {
		helpers = registry.NewHelperRegistry()
	}
	if logger == nil {
		logger = logging.Discard()
	}

	progressive := renderer.NewProgressive(helpers, opts, logger)

	return &Engine{
		assembler:  assembler.New(progressive, logger),
		visualizer: visualizer.New(logger),
		opts:       opts,
		logger:     logger.WithComponent("engine"),
	}
}

// Options returns the engine's render options.
func (e *Engine) Options() types.RenderOptions {
	return e.opts
}

// RenderToArtifacts analyzes the template, decides the split plan and
// assembles the artifacts. The caller supplies already-loaded template text
// and a fully resolved data context; no file or network I/O happens here.
//
// The progressive path failing is not fatal: the engine logs the error and
// returns one degraded artifact from the fallback visualizer. The returned
// error is non-nil only when the context is cancelled.
func (e *Engine) RenderToArtifacts(ctx context.Context, source string, data map[string]interface{}) ([]types.Artifact, error) {
	profile := analyzer.Analyze(source)
	plan := splitter.Decide(profile, e.opts)

	e.logger.Debug(ctx, "split decision made",
		"components", profile.ComponentCount,
		"size", profile.Size,
		"score", profile.ComplexityScore,
		"plan", plan.String(),
	)

	artifacts, err := e.assembler.Assemble(ctx, plan, source, data, e.opts)
	if err == nil {
		return artifacts, nil
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	e.logger.Error(ctx, err, "progressive rendering failed, using fallback visualizer")

	fallback, ferr := e.visualizer.CreateHTMLArtifact(ctx, source, data)
	if ferr != nil {
		return nil, ferr
	}
	return []types.Artifact{fallback}, nil
}

// Analyze exposes the complexity profile and the plan that would be chosen
// for a template, without rendering. Used by the analyze command and the
// preview server.
func (e *Engine) Analyze(source string) (types.ComplexityProfile, splitter.Plan) {
	profile := analyzer.Analyze(source)
	return profile, splitter.Decide(profile, e.opts)
}
