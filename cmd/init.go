package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/coursesite/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize coursesite configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure coursesite for your course and writes a .coursesite.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
