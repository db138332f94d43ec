package assembler

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/partirhq/partir/internal/types"
)

// componentSelector matches the block components automatic division can
// distribute across chunks, by class naming convention. It mirrors the
// selector the progressive renderer schedules by.
const componentSelector = `[class*="container"],[class*="section"],[class*="row"],[class*="col"],[class*="card"],[class*="component"]`

// sectionSelectors maps a logical division point to the selector of its
// first matching block.
var sectionSelectors = map[types.Section]string{
	types.SectionHeader: "header,nav",
	types.SectionMain:   "main,section,article",
	types.SectionFooter: "footer",
}

// extractSection returns the markup of the first block matching the given
// logical section. The boolean reports whether a match was found; a miss is
// expected for templates lacking that optional region and is not an error.
func extractSection(source string, section types.Section) (string, bool) {
	selector, ok := sectionSelectors[section]
	if !ok {
		return "", false
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return "", false
	}

	match := doc.Find(selector).First()
	if match.Length() == 0 {
		return "", false
	}

	markup, err := goquery.OuterHtml(match)
	if err != nil {
		return "", false
	}
	return markup, true
}

// componentChunks extracts the top-level recognizable components and
// distributes them evenly across the target count. It returns nil when
// fewer components exist than chunks are needed, signalling the caller to
// fall back to byte-offset windows.
func componentChunks(source string, target int) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return nil
	}

	// Only top-level components count: nested matches travel with their
	// containing component.
	components := doc.Find(componentSelector).FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.ParentsFiltered(componentSelector).Length() == 0
	})

	total := components.Length()
	if total < target {
		return nil
	}

	markups := make([]string, 0, total)
	components.Each(func(_ int, s *goquery.Selection) {
		if markup, err := goquery.OuterHtml(s); err == nil {
			markups = append(markups, markup)
		}
	})
	if len(markups) < target {
		return nil
	}

	perChunk := (len(markups) + target - 1) / target
	chunks := make([]string, 0, target)
	for start := 0; start < len(markups); start += perChunk {
		end := start + perChunk
		if end > len(markups) {
			end = len(markups)
		}
		chunks = append(chunks, strings.Join(markups[start:end], "\n"))
	}
	return chunks
}

// byteChunks slices the body content into equal-size windows. Cut points
// are nudged forward so they never land inside a tag or a multi-byte rune;
// concatenating the chunks always reconstructs the input exactly.
func byteChunks(body string, target int) []string {
	if target <= 1 || len(body) == 0 {
		return []string{body}
	}

	size := (len(body) + target - 1) / target
	chunks := make([]string, 0, target)
	start := 0
	for start < len(body) {
		end := start + size
		if end >= len(body) {
			end = len(body)
		} else {
			end = adjustCut(body, end)
		}
		chunks = append(chunks, body[start:end])
		start = end
	}
	return chunks
}

// adjustCut moves a cut point forward to the nearest safe boundary: the
// start of a rune, and outside any open tag.
func adjustCut(body string, cut int) int {
	for cut < len(body) && !utf8.RuneStart(body[cut]) {
		cut++
	}

	// If the last '<' before the cut has no matching '>', the cut sits
	// inside a tag; advance past the tag's end.
	open := strings.LastIndexByte(body[:cut], '<')
	if open >= 0 && strings.IndexByte(body[open:cut], '>') < 0 {
		if close := strings.IndexByte(body[cut:], '>'); close >= 0 {
			return cut + close + 1
		}
		return len(body)
	}
	return cut
}

// extractBody returns the content between the body tags, or the whole
// source when no body element is present. String scanning keeps the
// original bytes intact for later reconstruction.
func extractBody(source string) string {
	lower := strings.ToLower(source)

	open := strings.Index(lower, "<body")
	if open < 0 {
		return source
	}
	openEnd := strings.IndexByte(source[open:], '>')
	if openEnd < 0 {
		return source
	}
	start := open + openEnd + 1

	closeIdx := strings.LastIndex(lower, "</body>")
	if closeIdx < start {
		return source[start:]
	}
	return source[start:closeIdx]
}

// extractHead returns the inner content of the head element, empty when the
// template has none. It is prepended unsplit to every automatic chunk shell.
func extractHead(source string) string {
	lower := strings.ToLower(source)

	open := strings.Index(lower, "<head")
	if open < 0 {
		return ""
	}
	openEnd := strings.IndexByte(source[open:], '>')
	if openEnd < 0 {
		return ""
	}
	start := open + openEnd + 1

	closeIdx := strings.Index(lower[start:], "</head>")
	if closeIdx < 0 {
		return ""
	}
	return source[start : start+closeIdx]
}
