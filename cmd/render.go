package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/partirhq/partir/internal/datafile"
	"github.com/partirhq/partir/internal/engine"
	"github.com/partirhq/partir/internal/types"
)

var renderCmd = &cobra.Command{
	Use:     "render <template>",
	Aliases: []string{"r"},
	Short:   "Render a template into progressive artifacts",
	Long: `Render analyzes the template, decides how to split it and writes one
HTML file per artifact into the output directory, plus a manifest listing
every part.

Examples:
  partir render loja.html                         # demo data context
  partir render loja.html --data context.yaml     # explicit data context
  partir render loja.html --max-size 200000       # tighter size ceiling
  partir render loja.html --logical --skeleton`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringP("data", "d", "", "YAML or JSON data context file (default: generated demo data)")
	renderCmd.Flags().StringP("out", "o", "", "output directory (default: artifacts)")
	renderCmd.Flags().Int("max-size", 0, "soft byte ceiling per artifact")
	renderCmd.Flags().Int("split-threshold", 0, "component count above which splitting is preferred")
	renderCmd.Flags().Int("priority-levels", 0, "number of visual-priority tiers")
	renderCmd.Flags().Bool("skeleton", false, "mark low-priority regions with skeleton placeholders")
	renderCmd.Flags().Bool("feedback", false, "emit inline progress feedback markers")
	renderCmd.Flags().Bool("minify", false, "minify artifact markup")
	renderCmd.Flags().Bool("logical", false, "prefer section-based splitting when division points exist")
}

// bindRenderFlags maps the shared render flags onto viper keys so the config
// loader sees them with flag precedence. Called at run time so render and
// preview do not fight over the same keys during init.
func bindRenderFlags(cmd *cobra.Command) {
	viper.BindPFlag("render.artifact_max_size", cmd.Flags().Lookup("max-size"))
	viper.BindPFlag("render.split_threshold", cmd.Flags().Lookup("split-threshold"))
	viper.BindPFlag("render.priority_levels", cmd.Flags().Lookup("priority-levels"))
	viper.BindPFlag("render.skeleton_loading", cmd.Flags().Lookup("skeleton"))
	viper.BindPFlag("render.feedback_enabled", cmd.Flags().Lookup("feedback"))
	viper.BindPFlag("render.minify", cmd.Flags().Lookup("minify"))
	viper.BindPFlag("render.use_logical_division", cmd.Flags().Lookup("logical"))
}

func runRender(cmd *cobra.Command, args []string) error {
	bindRenderFlags(cmd)

	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	templatePath := args[0]
	source, err := os.ReadFile(filepath.Clean(templatePath))
	if err != nil {
		return fmt.Errorf("reading template %s: %w", templatePath, err)
	}

	dataPath, _ := cmd.Flags().GetString("data")
	data, err := datafile.Load(dataPath)
	if err != nil {
		return err
	}

	outDir := cfg.Output.Dir
	if flagOut, _ := cmd.Flags().GetString("out"); flagOut != "" {
		outDir = flagOut
	}

	eng := engine.New(nil, cfg.Render, logger)
	artifacts, err := eng.RenderToArtifacts(cmd.Context(), string(source), data)
	if err != nil {
		return err
	}

	if err := writeArtifacts(outDir, artifacts); err != nil {
		return err
	}
	if cfg.Output.Manifest {
		if err := writeManifest(outDir, templatePath, artifacts); err != nil {
			return err
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d artefato(s) escrito(s) em %s\n", len(artifacts), outDir)
	return nil
}

// writeArtifacts writes artifact-1.html .. artifact-N.html into dir.
func writeArtifacts(dir string, artifacts []types.Artifact) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	for i, artifact := range artifacts {
		path := filepath.Join(dir, fmt.Sprintf("artifact-%d.html", i+1))
		if err := os.WriteFile(path, []byte(artifact.Content), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}
	return nil
}

// manifest is the index document written next to the artifacts.
type manifest struct {
	Template  string             `yaml:"template"`
	Artifacts []manifestArtifact `yaml:"artifacts"`
}

type manifestArtifact struct {
	File  string `yaml:"file"`
	Type  string `yaml:"type"`
	Title string `yaml:"title"`
	Size  int    `yaml:"size"`
}

func writeManifest(dir, templatePath string, artifacts []types.Artifact) error {
	doc := manifest{Template: templatePath}
	for i, artifact := range artifacts {
		doc.Artifacts = append(doc.Artifacts, manifestArtifact{
			File:  fmt.Sprintf("artifact-%d.html", i+1),
			Type:  artifact.Type,
			Title: artifact.Title,
			Size:  len(artifact.Content),
		})
	}

	raw, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding manifest: %w", err)
	}
	path := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
