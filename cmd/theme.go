package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ziadkadry99/coursesite/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme [light|dark|toggle]",
	Short: "Show or change the saved theme preference",
	Long:  `Without an argument, prints the saved theme. With light or dark, saves it. With toggle, switches to the other variant.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	stateDB, store, err := openThemeStore(cfg)
	if err != nil {
		return err
	}
	defer stateDB.Close()

	ctx := cmd.Context()
	current, err := store.Load(ctx)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		fmt.Println(current)
		return nil
	}

	var next theme.Theme
	switch arg := strings.ToLower(strings.TrimSpace(args[0])); arg {
	case "toggle":
		next = current.Toggle()
	case string(theme.Light), string(theme.Dark):
		next = theme.Parse(arg)
	default:
		return fmt.Errorf("unknown theme %q (want light, dark or toggle)", args[0])
	}
	if err := store.Save(ctx, next); err != nil {
		return err
	}
	fmt.Println(next)
	return nil
}
