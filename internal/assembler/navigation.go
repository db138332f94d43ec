package assembler

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/partirhq/partir/internal/types"
)

var titleCaser = cases.Title(language.BrazilianPortuguese)

// sectionLabels maps the known logical sections to their display names.
var sectionLabels = map[types.Section]string{
	types.SectionHeader: "Cabeçalho",
	types.SectionMain:   "Conteúdo principal",
	types.SectionFooter: "Rodapé",
}

// sectionLabel returns the display name of a section, title-casing the raw
// identifier when no translation exists.
func sectionLabel(section types.Section) string {
	if label, ok := sectionLabels[section]; ok {
		return label
	}
	return titleCaser.String(string(section))
}

// buildNavigation emits the cross-part navigation block for the artifact at
// the given zero-based index. Single-artifact output needs no navigation, so
// total <= 1 yields an empty string. Controls are inert placeholders: each
// artifact stays viewable on its own.
func buildNavigation(index, total int) string {
	return buildNavigationLabeled(index, total, nil)
}

// buildNavigationLabeled is buildNavigation with custom control labels, used
// by logical division to show section names instead of bare part numbers.
// When labels is non-nil it must have exactly total entries.
func buildNavigationLabeled(index, total int, labels []string) string {
	if total <= 1 {
		return ""
	}

	var b strings.Builder
	b.WriteString(`<nav class="partir-nav" aria-label="Navegação entre partes">`)
	for i := 0; i < total; i++ {
		class := "partir-nav-item"
		current := ""
		if i == index {
			class += " partir-nav-active"
			current = ` aria-current="page"`
		}

		label := fmt.Sprintf("Parte %d", i+1)
		if labels != nil && labels[i] != "" {
			label = labels[i]
		}

		b.WriteString(fmt.Sprintf(
			`<button type="button" class="%s" data-part="%d"%s>%s</button>`,
			class, i+1, current, label,
		))
	}
	b.WriteString("</nav>")
	return b.String()
}
