package server

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"

	"github.com/partirhq/partir/internal/splitter"
	"github.com/partirhq/partir/internal/types"
)

const indexCSS = `
body { font-family: system-ui, sans-serif; margin: 0; background: #f5f5f7; color: #1a1a2e; }
header { background: #1a1a2e; color: #fff; padding: 16px 24px; }
header h1 { margin: 0; font-size: 1.2rem; }
header p { margin: 4px 0 0; opacity: 0.7; font-size: 0.85rem; }
main { max-width: 960px; margin: 24px auto; padding: 0 16px; }
.partir-profile { display: flex; flex-wrap: wrap; gap: 12px; margin-bottom: 24px; }
.partir-profile dl { background: #fff; border-radius: 8px; padding: 12px 16px; margin: 0; min-width: 120px; }
.partir-profile dt { font-size: 0.75rem; text-transform: uppercase; opacity: 0.6; }
.partir-profile dd { margin: 4px 0 0; font-size: 1.1rem; font-weight: 600; }
.partir-artifact-list { list-style: none; padding: 0; }
.partir-artifact-list li { background: #fff; border-radius: 8px; margin-bottom: 8px; }
.partir-artifact-list a { display: flex; justify-content: space-between; padding: 14px 16px; color: inherit; text-decoration: none; }
.partir-artifact-list a:hover { background: #eef; border-radius: 8px; }
.partir-artifact-size { opacity: 0.6; font-size: 0.85rem; }
`

// indexPage lists the artifacts rendered from the watched template along
// with its complexity profile and the chosen split plan.
func indexPage(templatePath string, artifacts []types.Artifact, profile types.ComplexityProfile, plan splitter.Plan) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html>\n<html lang=\"pt-BR\">\n<head>\n<meta charset=\"utf-8\">\n<title>partir preview</title>\n<style>"+indexCSS+"</style>\n</head>\n<body>\n"); err != nil {
			return err
		}

		headerComp := pageHeader(templatePath, plan)
		if err := headerComp.Render(ctx, w); err != nil {
			return err
		}

		if _, err := io.WriteString(w, "<main>\n"); err != nil {
			return err
		}
		if err := profileCard(profile).Render(ctx, w); err != nil {
			return err
		}
		if err := artifactList(artifacts).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</main>\n"); err != nil {
			return err
		}

		if err := reloadClient().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "</body>\n</html>\n")
		return err
	})
}

func pageHeader(templatePath string, plan splitter.Plan) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, "<header>\n<h1>partir preview</h1>\n<p>%s · plano: %s</p>\n</header>\n",
			html.EscapeString(templatePath), html.EscapeString(plan.String()))
		return err
	})
}

func profileCard(profile types.ComplexityProfile) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		entries := []struct {
			label string
			value int
		}{
			{"Componentes", profile.ComponentCount},
			{"Complexidade", profile.ComplexityScore},
			{"Tamanho (bytes)", profile.Size},
			{"Tabelas", profile.TableCount},
			{"Imagens", profile.ImageCount},
			{"Formulários", profile.FormCount},
		}

		if _, err := io.WriteString(w, `<section class="partir-profile">`+"\n"); err != nil {
			return err
		}
		for _, entry := range entries {
			if _, err := fmt.Fprintf(w, "<dl><dt>%s</dt><dd>%d</dd></dl>\n", html.EscapeString(entry.label), entry.value); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</section>\n")
		return err
	})
}

func artifactList(artifacts []types.Artifact) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<ul class="partir-artifact-list">`+"\n"); err != nil {
			return err
		}
		for i, artifact := range artifacts {
			if _, err := fmt.Fprintf(w,
				"<li><a href=\"/artifacts/%d\" target=\"_blank\"><span>%s</span><span class=\"partir-artifact-size\">%d bytes</span></a></li>\n",
				i, html.EscapeString(artifact.Title), len(artifact.Content)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>\n")
		return err
	})
}

// reloadClient is the same live-reload snippet injected into artifacts,
// exposed as a component for the index page.
func reloadClient() templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return templ.Raw(injectReloadScript("")).Render(ctx, w)
	})
}
