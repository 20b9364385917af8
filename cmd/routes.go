package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the pages of the course site",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		course, err := loadCourse(cfg)
		if err != nil {
			return err
		}
		base := strings.TrimRight(cfg.BaseURL, "/")
		for _, r := range course.Routes() {
			fmt.Println(base + r)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
