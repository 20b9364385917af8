package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/coursesite/internal/config"
	"github.com/ziadkadry99/coursesite/internal/logging"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "coursesite",
	Short: "Build, serve and preview a programming course website",
	Long: `Coursesite turns a course described in YAML into a static website with
collapsible sessions, lazily highlighted code examples and a light and
dark theme. It can serve the site with live reload and preview a day in
the terminal.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return logging.Init(logLevel(""), os.Stderr)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.FileName, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// logLevel returns the effective level: --verbose wins over the configured
// one.
func logLevel(configured string) string {
	if verbose {
		return "debug"
	}
	return configured
}
