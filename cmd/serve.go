package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/coursesite/internal/config"
	"github.com/ziadkadry99/coursesite/internal/progress"
	"github.com/ziadkadry99/coursesite/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve it locally",
	Long:  `Builds the site and serves it over HTTP. With --watch, content changes rebuild the site and reload open pages.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port for the dev server (overrides config)")
	serveCmd.Flags().Bool("watch", false, "rebuild and reload on content changes")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Serve.Port = port
	}
	if cmd.Flags().Changed("watch") {
		cfg.Serve.Watch, _ = cmd.Flags().GetBool("watch")
	}
	watch := cfg.Serve.Watch && cfg.ContentDir != ""
	if cfg.Serve.Watch && !watch {
		log.Warn().Msg("watch needs content_dir; serving the sample course without reload")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if _, err := buildSite(ctx, cfg, watch, progress.NewReporter()); err != nil {
		return err
	}

	srv := server.New(server.Config{
		Port:       cfg.Serve.Port,
		Dir:        cfg.OutputDir,
		AllowAll:   true,
		LiveReload: watch,
	})

	errc := make(chan error, 1)
	if watch {
		w := server.NewWatcher(cfg.ContentDir, cfg.Serve.WatchPatterns, cfg.Serve.Debounce,
			rebuildFunc(cfg), srv.Hub().Broadcast)
		go func() {
			if err := w.Run(ctx); err != nil {
				errc <- fmt.Errorf("watching content: %w", err)
				stop()
			}
		}()
	}

	fmt.Printf("Serving %s at http://localhost:%d (Ctrl+C to stop)\n", cfg.OutputDir, cfg.Serve.Port)
	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}
	select {
	case err := <-errc:
		return err
	default:
		return nil
	}
}

func rebuildFunc(cfg *config.Config) server.RebuildFunc {
	return func(ctx context.Context) error {
		n, err := buildSite(ctx, cfg, true, progress.Discard{})
		if err != nil {
			return err
		}
		log.Info().Int("pages", n).Msg("site rebuilt")
		return nil
	}
}
