// Package analyzer computes the structural complexity profile of a raw HTML
// or Handlebars template.
//
// The analyzer is a pure function over the template source: it counts
// structural elements, detects logical page regions (header, main, footer)
// and produces a weighted complexity score. It is built on the x/net/html
// tokenizer, which never fails on malformed markup; absent constructs simply
// count zero. The profile drives the split decision and is discarded
// afterwards.
package analyzer

import (
	"math"
	"strings"

	"golang.org/x/net/html"

	"github.com/partirhq/partir/internal/types"
)

// Weights of each structural element in the complexity score.
const (
	weightComponent = 0.1
	weightImage     = 0.2
	weightTable     = 0.5
	weightForm      = 0.3
	weightScript    = 0.3
)

// Analyze scans the template source and returns its complexity profile.
// It never fails: malformed markup degrades to whatever the tokenizer can
// recognize, and an empty template yields an all-zero profile with no
// division points.
func Analyze(templateSource string) types.ComplexityProfile {
	profile := types.ComplexityProfile{
		Size: len(templateSource),
	}

	tokenizer := html.NewTokenizer(strings.NewReader(templateSource))
	for {
		tokenType := tokenizer.Next()
		if tokenType == html.ErrorToken {
			// EOF or unrecoverable garbage; either way we keep what we
			// counted so far.
			break
		}
		if tokenType != html.StartTagToken && tokenType != html.SelfClosingTagToken {
			continue
		}

		name, _ := tokenizer.TagName()
		switch string(name) {
		case "div":
			profile.ComponentCount++
		case "img":
			profile.ImageCount++
		case "table":
			profile.TableCount++
		case "form":
			profile.FormCount++
		case "script":
			profile.ScriptCount++
		case "header", "nav":
			profile.HasHeader = true
		case "main", "section", "article":
			profile.HasMainContent = true
		case "footer":
			profile.HasFooter = true
		}
	}

	profile.ComplexityScore = score(profile)
	profile.DivisionPoints = divisionPoints(profile)

	return profile
}

// score computes the weighted structural score, rounded to the nearest
// integer.
func score(p types.ComplexityProfile) int {
	weighted := float64(p.ComponentCount)*weightComponent +
		float64(p.ImageCount)*weightImage +
		float64(p.TableCount)*weightTable +
		float64(p.FormCount)*weightForm +
		float64(p.ScriptCount)*weightScript
	return int(math.Round(weighted))
}

// divisionPoints lists detected logical sections in fixed header, main,
// footer order. Only sections actually present in the template appear.
func divisionPoints(p types.ComplexityProfile) []types.Section {
	points := make([]types.Section, 0, 3)
	if p.HasHeader {
		points = append(points, types.SectionHeader)
	}
	if p.HasMainContent {
		points = append(points, types.SectionMain)
	}
	if p.HasFooter {
		points = append(points, types.SectionFooter)
	}
	return points
}
