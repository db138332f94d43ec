// Package splitter decides how a template should be divided into artifacts.
//
// Given a complexity profile and the render options it produces a Plan: keep
// the template whole, split it along detected logical sections, or fall back
// to automatic size/component-driven chunking. Logical boundaries are
// preferred whenever they cleanly cover the number of parts the size budget
// requires, since header/main/footer splits read better than arbitrary
// byte-offset windows.
package splitter

import (
	"fmt"
	"math"

	"github.com/partirhq/partir/internal/types"
)

// sizeHeadroom is the fraction of the artifact ceiling a template may fill
// before splitting kicks in. Rendering overhead (shell, styles, navigation)
// consumes the remaining 20%.
const sizeHeadroom = 0.8

// Kind is the tag of a split plan variant.
type Kind int

const (
	// NoSplit renders the template as a single artifact
	NoSplit Kind = iota
	// Logical splits along detected header/main/footer boundaries
	Logical
	// Automatic chunks by component groups or byte offsets
	Automatic
)

// String returns the string representation of the plan kind
func (k Kind) String() string {
	switch k {
	case NoSplit:
		return "no-split"
	case Logical:
		return "logical"
	case Automatic:
		return "automatic"
	default:
		return "unknown"
	}
}

// Plan is the split decision consumed by the assembler.
type Plan struct {
	// Kind tags the variant
	Kind Kind
	// Points holds the logical sections to extract, in document order.
	// Populated only for Logical plans.
	Points []types.Section
	// TargetCount is the number of chunks automatic division should
	// produce. Populated only for Automatic plans, always >= 1.
	TargetCount int
}

// String describes the plan for logs and the analyze command.
func (p Plan) String() string {
	switch p.Kind {
	case Logical:
		return fmt.Sprintf("logical (%d points)", len(p.Points))
	case Automatic:
		return fmt.Sprintf("automatic (%d chunks)", p.TargetCount)
	default:
		return p.Kind.String()
	}
}

// EstimatedArtifactCount returns how many artifacts the size budget requires
// for a template of the given size, never less than one.
func EstimatedArtifactCount(size int, opts types.RenderOptions) int {
	budget := float64(opts.ArtifactMaxSize) * sizeHeadroom
	if budget <= 0 {
		return 1
	}
	estimated := int(math.Ceil(float64(size) / budget))
	if estimated < 1 {
		return 1
	}
	return estimated
}

// Decide evaluates the split rule against one complexity profile.
//
// The rule is ordered: first check whether splitting is needed at all
// (component count over threshold, or size over 80% of the artifact
// ceiling); then prefer logical division when the detected section points
// cleanly cover the required number of parts (or the caller asked for
// logical division and any points exist); otherwise chunk automatically.
func Decide(profile types.ComplexityProfile, opts types.RenderOptions) Plan {
	shouldSplit := profile.ComponentCount > opts.SplitThreshold ||
		float64(profile.Size) > float64(opts.ArtifactMaxSize)*sizeHeadroom
	if !shouldSplit {
		return Plan{Kind: NoSplit}
	}

	estimated := EstimatedArtifactCount(profile.Size, opts)

	points := profile.DivisionPoints
	if len(points) > 0 && (len(points) <= estimated || opts.UseLogicalDivision) {
		return Plan{Kind: Logical, Points: points}
	}

	return Plan{Kind: Automatic, TargetCount: estimated}
}
