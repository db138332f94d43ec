package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/partirhq/partir/internal/engine"
	"github.com/partirhq/partir/internal/server"
)

var previewCmd = &cobra.Command{
	Use:     "preview <template>",
	Aliases: []string{"p"},
	Short:   "Serve a live preview of a template's artifacts",
	Long: `Preview starts a local server that renders the template on demand,
lists the resulting artifacts and reloads connected browsers whenever the
template or data file changes.

Examples:
  partir preview loja.html
  partir preview loja.html --data context.yaml --port 9000`,
	Args: cobra.ExactArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().StringP("data", "d", "", "YAML or JSON data context file (default: generated demo data)")
	previewCmd.Flags().String("host", "", "host to bind")
	previewCmd.Flags().Int("port", 0, "port to bind")
	previewCmd.Flags().Int("max-size", 0, "soft byte ceiling per artifact")
	previewCmd.Flags().Int("split-threshold", 0, "component count above which splitting is preferred")
	previewCmd.Flags().Int("priority-levels", 0, "number of visual-priority tiers")
	previewCmd.Flags().Bool("skeleton", false, "mark low-priority regions with skeleton placeholders")
	previewCmd.Flags().Bool("feedback", false, "emit inline progress feedback markers")
	previewCmd.Flags().Bool("minify", false, "minify artifact markup")
	previewCmd.Flags().Bool("logical", false, "prefer section-based splitting when division points exist")
}

func runPreview(cmd *cobra.Command, args []string) error {
	bindRenderFlags(cmd)
	viper.BindPFlag("preview.host", cmd.Flags().Lookup("host"))
	viper.BindPFlag("preview.port", cmd.Flags().Lookup("port"))

	cfg, logger, err := loadConfigAndLogger()
	if err != nil {
		return err
	}

	dataPath, _ := cmd.Flags().GetString("data")

	eng := engine.New(nil, cfg.Render, logger)
	srv, err := server.New(cfg.Preview, eng, args[0], dataPath, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Preview em http://%s:%d\n", cfg.Preview.Host, cfg.Preview.Port)
	if err := srv.Start(ctx); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
