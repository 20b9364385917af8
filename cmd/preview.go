package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/coursesite/internal/highlight"
	"github.com/ziadkadry99/coursesite/internal/logging"
	"github.com/ziadkadry99/coursesite/internal/tui"
)

var previewCmd = &cobra.Command{
	Use:   "preview [day-slug]",
	Short: "Preview a day page in the terminal",
	Long: `Opens an interactive preview of one day: open sessions with enter,
switch the theme with t and retry a failed highlighter with r. Logs go to
preview.log in the data directory while the preview owns the terminal.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	course, err := loadCourse(cfg)
	if err != nil {
		return err
	}
	if len(course.Days) == 0 {
		return fmt.Errorf("course has no days")
	}
	day := &course.Days[0]
	if len(args) == 1 {
		if day, err = course.Day(args[0]); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	logFile, err := logging.OpenFile(logLevel(cfg.LogLevel), filepath.Join(cfg.DataDir, "preview.log"))
	if err != nil {
		return err
	}
	defer logFile.Close()

	stateDB, store, err := openThemeStore(cfg)
	if err != nil {
		return err
	}
	defer stateDB.Close()

	ctx := cmd.Context()
	t, err := store.Load(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("loading theme preference")
	}

	dispatcher := tui.NewDispatcher()
	loader := highlight.NewLoader(
		tui.LoadEngines(cfg.Language, cfg.LightStyle, cfg.DarkStyle),
		highlight.WithDispatcher(dispatcher.Post),
		highlight.WithTimeout(cfg.LoadTimeout),
	)
	model := tui.NewModel(ctx, tui.Options{
		Day:    day,
		Loader: loader,
		Saver:  store,
		Theme:  t,
	})
	log.Info().Str("day", day.Slug).Str("theme", t.String()).Msg("starting preview")
	return tui.NewApp(model, dispatcher).Run(ctx)
}
