//go:build property
// +build property

package assembler

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestNavigationProperties tests invariant properties of the navigation
// injector and the chunking helpers
func TestNavigationProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	// Property 1: navigation for N parts always has N controls with exactly
	// one active, for every valid index
	properties.Property("navigation symmetry", prop.ForAll(
		func(total int) bool {
			for index := 0; index < total; index++ {
				nav := buildNavigation(index, total)
				if total <= 1 {
					return nav == ""
				}
				if strings.Count(nav, "<button") != total {
					return false
				}
				if strings.Count(nav, "partir-nav-active") != 1 {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 30),
	))

	// Property 2: byte chunks always reconstruct the body exactly
	properties.Property("byte chunk reconstruction", prop.ForAll(
		func(body string, target int) bool {
			chunks := byteChunks(body, target)
			return strings.Join(chunks, "") == body
		},
		gen.AnyString(),
		gen.IntRange(1, 10),
	))

	// Property 3: chunk count never exceeds the target for tag-free bodies
	properties.Property("byte chunk count bound", prop.ForAll(
		func(body string, target int) bool {
			if strings.ContainsAny(body, "<>") {
				return true
			}
			chunks := byteChunks(body, target)
			return len(chunks) >= 1 && len(chunks) <= target
		},
		gen.AlphaString(),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}
