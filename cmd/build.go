package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/coursesite/internal/config"
	"github.com/ziadkadry99/coursesite/internal/progress"
	"github.com/ziadkadry99/coursesite/internal/site"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Generate the static course website",
	Long:  `Renders the landing page, one page per day, the code panel chunks, the search index and the assets into the output directory.`,
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().String("output", "", "override output directory")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.OutputDir = out
	}

	n, err := buildSite(cmd.Context(), cfg, false, progress.NewReporter())
	if err != nil {
		return err
	}
	log.Info().Int("pages", n).Dur("took", time.Since(start)).Msg("site built")
	fmt.Printf("Static site generated: %s (%d pages)\n", cfg.OutputDir, n)
	return nil
}

// buildSite loads the course and renders it into cfg.OutputDir.
func buildSite(ctx context.Context, cfg *config.Config, liveReload bool, reporter progress.Reporter) (int, error) {
	course, err := loadCourse(cfg)
	if err != nil {
		return 0, err
	}
	gen, err := site.NewGenerator(site.Options{
		OutputDir:  cfg.OutputDir,
		Language:   cfg.Language,
		LightStyle: cfg.LightStyle,
		DarkStyle:  cfg.DarkStyle,
		LiveReload: liveReload,
		Reporter:   reporter,
	})
	if err != nil {
		return 0, fmt.Errorf("preparing generator: %w", err)
	}
	n, err := gen.Generate(ctx, course)
	if err != nil {
		return 0, fmt.Errorf("generating site: %w", err)
	}
	return n, nil
}
