// Package types provides common type definitions used throughout the partir
// renderer. This package contains shared types to avoid circular dependencies
// between packages.
package types

// ArtifactTypeHTML is the content type tag carried by HTML artifacts.
const ArtifactTypeHTML = "text/html"

// BaseTitle is the title given to every progressive visualization artifact.
// Multi-part outputs append a " (Parte N de M)" suffix.
const BaseTitle = "Visualização Progressiva"

// Artifact is a self-contained, independently renderable output document.
// Every artifact can be displayed without access to its siblings; navigation
// controls between parts are inert placeholders.
type Artifact struct {
	// Type is a MIME-like tag describing the content (e.g. "text/html")
	Type string `yaml:"type" json:"type"`
	// Title is the human-readable label, including the part suffix when
	// the output was split into multiple artifacts
	Title string `yaml:"title" json:"title"`
	// Content is the fully self-contained markup, including head, injected
	// styles, navigation and the body fragment
	Content string `yaml:"-" json:"-"`
}

// Section identifies a logical division point of a template.
type Section string

const (
	SectionHeader Section = "header"
	SectionMain   Section = "main"
	SectionFooter Section = "footer"
)

// ComplexityProfile is the structural analysis snapshot of one template.
// It is created fresh per render request, never mutated, and discarded once
// the split decision has been made.
type ComplexityProfile struct {
	// ComponentCount is the number of div opening tags
	ComponentCount int
	// ImageCount is the number of img tags
	ImageCount int
	// TableCount is the number of table opening tags
	TableCount int
	// FormCount is the number of form opening tags
	FormCount int
	// ScriptCount is the number of script opening tags
	ScriptCount int
	// HasHeader reports whether a header or nav region was detected
	HasHeader bool
	// HasMainContent reports whether a main, section or article region was detected
	HasMainContent bool
	// HasFooter reports whether a footer region was detected
	HasFooter bool
	// ComplexityScore is the weighted structural score, rounded to the
	// nearest integer
	ComplexityScore int
	// DivisionPoints lists detected logical sections in fixed
	// header, main, footer order
	DivisionPoints []Section
	// Size is the character length of the source template
	Size int
}

// RenderOptions configures one progressive rendering pass.
type RenderOptions struct {
	// PriorityLevels is the number of visual-priority tiers the renderer
	// schedules components into
	PriorityLevels int `mapstructure:"priority_levels" yaml:"priority_levels" validate:"gte=1,lte=20"`
	// SkeletonLoading marks low-priority regions with skeleton placeholders
	SkeletonLoading bool `mapstructure:"skeleton_loading" yaml:"skeleton_loading"`
	// FeedbackEnabled emits inline progress feedback markers
	FeedbackEnabled bool `mapstructure:"feedback_enabled" yaml:"feedback_enabled"`
	// ArtifactMaxSize is the soft byte ceiling per output artifact
	ArtifactMaxSize int `mapstructure:"artifact_max_size" yaml:"artifact_max_size" validate:"gt=0"`
	// SplitThreshold is the component count above which splitting is
	// preferred even when the template fits under the size ceiling
	SplitThreshold int `mapstructure:"split_threshold" yaml:"split_threshold" validate:"gte=0"`
	// UseLogicalDivision hints that section-based splitting should be
	// preferred whenever division points are available
	UseLogicalDivision bool `mapstructure:"use_logical_division" yaml:"use_logical_division"`
	// Minify compresses artifact markup before it is returned
	Minify bool `mapstructure:"minify" yaml:"minify"`
}

// DefaultRenderOptions returns the standard option set: five priority tiers,
// 500KB artifacts and a split threshold of 100 components.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		PriorityLevels:  5,
		ArtifactMaxSize: 500000,
		SplitThreshold:  100,
	}
}
