//go:build property
// +build property

package analyzer

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/partirhq/partir/internal/types"
)

// TestAnalyzerProperties tests invariant properties of the complexity analyzer
func TestAnalyzerProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property 1: Analyzing the same source twice yields identical profiles
	properties.Property("analyzer idempotency", prop.ForAll(
		func(source string) bool {
			first := Analyze(source)
			second := Analyze(source)

			if first.ComponentCount != second.ComponentCount ||
				first.ImageCount != second.ImageCount ||
				first.TableCount != second.TableCount ||
				first.FormCount != second.FormCount ||
				first.ScriptCount != second.ScriptCount ||
				first.ComplexityScore != second.ComplexityScore ||
				first.Size != second.Size {
				return false
			}
			if len(first.DivisionPoints) != len(second.DivisionPoints) {
				return false
			}
			for i := range first.DivisionPoints {
				if first.DivisionPoints[i] != second.DivisionPoints[i] {
					return false
				}
			}
			return true
		},
		gen.AnyString(),
	))

	// Property 2: Counts and score are never negative, size matches the input
	properties.Property("non-negative counts", prop.ForAll(
		func(source string) bool {
			profile := Analyze(source)
			return profile.ComponentCount >= 0 &&
				profile.ImageCount >= 0 &&
				profile.TableCount >= 0 &&
				profile.FormCount >= 0 &&
				profile.ScriptCount >= 0 &&
				profile.ComplexityScore >= 0 &&
				profile.Size == len(source)
		},
		gen.AnyString(),
	))

	// Property 3: Division points always appear in header, main, footer order
	properties.Property("division point ordering", prop.ForAll(
		func(parts []string) bool {
			profile := Analyze(strings.Join(parts, "\n"))

			order := map[types.Section]int{
				types.SectionHeader: 0,
				types.SectionMain:   1,
				types.SectionFooter: 2,
			}
			for i := 1; i < len(profile.DivisionPoints); i++ {
				if order[profile.DivisionPoints[i-1]] >= order[profile.DivisionPoints[i]] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.OneConstOf(
			"<header>h</header>",
			"<main>m</main>",
			"<footer>f</footer>",
			"<div>d</div>",
		)),
	))

	// Property 4: Adding a div to any source never lowers the component count
	properties.Property("component count monotonicity", prop.ForAll(
		func(source string) bool {
			base := Analyze(source)
			extended := Analyze(source + "<div></div>")
			return extended.ComponentCount == base.ComponentCount+1
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
