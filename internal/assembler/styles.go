package assembler

import (
	"regexp"
	"strings"
)

// styleBlockPattern captures the body of inline style blocks. Tolerant by
// design: a template without styles simply contributes nothing.
var styleBlockPattern = regexp.MustCompile(`(?is)<style[^>]*>(.*?)</style>`)

// navigationCSS is the fixed rule block appended to every chunk so that
// navigation, banners and skeleton placeholders look the same across parts.
const navigationCSS = `
.partir-nav { display: flex; gap: 8px; padding: 12px 16px; background: #f5f5f5; border-bottom: 1px solid #ddd; }
.partir-nav-item { padding: 6px 14px; border: 1px solid #ccc; border-radius: 4px; background: #fff; cursor: pointer; font-size: 14px; }
.partir-nav-item.partir-nav-active { background: #007acc; border-color: #007acc; color: #fff; }
.partir-alert { margin: 12px 16px; padding: 10px 14px; border-left: 4px solid #007acc; background: #eef6fb; font-size: 14px; }
.partir-feedback { padding: 6px 16px; background: #fff8e1; font-size: 13px; color: #7a5c00; }
.partir-skeleton { position: relative; min-height: 40px; background: linear-gradient(90deg, #eee 25%, #f7f7f7 50%, #eee 75%); background-size: 200% 100%; animation: partir-shimmer 1.2s infinite; }
@keyframes partir-shimmer { 0% { background-position: 200% 0; } 100% { background-position: -200% 0; } }
`

// extractStyles concatenates all inline style block bodies found in the
// source, in document order, and appends the fixed navigation CSS. Injecting
// the result into every chunk keeps the parts visually consistent with the
// original template.
func extractStyles(source string) string {
	var b strings.Builder

	for _, match := range styleBlockPattern.FindAllStringSubmatch(source, -1) {
		b.WriteString(strings.TrimSpace(match[1]))
		b.WriteString("\n")
	}

	b.WriteString(navigationCSS)
	return b.String()
}
