package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/partirhq/partir/internal/engine"
	"github.com/partirhq/partir/internal/splitter"
	"github.com/partirhq/partir/internal/types"
)

var analyzeFormat string

var analyzeCmd = &cobra.Command{
	Use:     "analyze <template>",
	Aliases: []string{"a"},
	Short:   "Show a template's complexity profile and split plan",
	Long: `Analyze inspects the template without rendering it: component counts,
the weighted complexity score, detected logical sections and the split plan
that a render would use.

Examples:
  partir analyze loja.html
  partir analyze loja.html --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "table", "output format (table, yaml)")
	analyzeCmd.Flags().Int("max-size", 0, "soft byte ceiling per artifact")
	analyzeCmd.Flags().Int("split-threshold", 0, "component count above which splitting is preferred")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	if maxSize, _ := cmd.Flags().GetInt("max-size"); maxSize > 0 {
		cfg.Render.ArtifactMaxSize = maxSize
	}
	if cmd.Flags().Changed("split-threshold") {
		cfg.Render.SplitThreshold, _ = cmd.Flags().GetInt("split-threshold")
	}

	source, err := os.ReadFile(filepath.Clean(args[0]))
	if err != nil {
		return fmt.Errorf("reading template %s: %w", args[0], err)
	}

	eng := engine.New(nil, cfg.Render, logger)
	profile, plan := eng.Analyze(string(source))

	switch analyzeFormat {
	case "yaml":
		return printAnalysisYAML(cmd, args[0], profile, plan)
	case "table":
		return printAnalysisTable(cmd, args[0], profile, plan)
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, yaml)", analyzeFormat)
	}
}

func printAnalysisTable(cmd *cobra.Command, path string, profile types.ComplexityProfile, plan splitter.Plan) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Template:\t%s\n", path)
	fmt.Fprintf(w, "Tamanho:\t%d bytes\n", profile.Size)
	fmt.Fprintf(w, "Componentes:\t%d\n", profile.ComponentCount)
	fmt.Fprintf(w, "Imagens:\t%d\n", profile.ImageCount)
	fmt.Fprintf(w, "Tabelas:\t%d\n", profile.TableCount)
	fmt.Fprintf(w, "Formulários:\t%d\n", profile.FormCount)
	fmt.Fprintf(w, "Scripts:\t%d\n", profile.ScriptCount)
	fmt.Fprintf(w, "Complexidade:\t%d\n", profile.ComplexityScore)
	fmt.Fprintf(w, "Seções:\t%s\n", sectionList(profile.DivisionPoints))
	fmt.Fprintf(w, "Plano:\t%s\n", plan.String())

	return w.Flush()
}

func printAnalysisYAML(cmd *cobra.Command, path string, profile types.ComplexityProfile, plan splitter.Plan) error {
	sections := make([]string, 0, len(profile.DivisionPoints))
	for _, section := range profile.DivisionPoints {
		sections = append(sections, string(section))
	}

	doc := map[string]interface{}{
		"template": path,
		"profile": map[string]interface{}{
			"size":             profile.Size,
			"component_count":  profile.ComponentCount,
			"image_count":      profile.ImageCount,
			"table_count":      profile.TableCount,
			"form_count":       profile.FormCount,
			"script_count":     profile.ScriptCount,
			"complexity_score": profile.ComplexityScore,
			"division_points":  sections,
		},
		"plan": plan.String(),
	}

	raw, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(raw)
	return err
}

func sectionList(points []types.Section) string {
	if len(points) == 0 {
		return "nenhuma"
	}
	out := ""
	for i, point := range points {
		if i > 0 {
			out += ", "
		}
		out += string(point)
	}
	return out
}
