package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// contentMarkers identify an existing course content directory.
var contentMarkers = []string{"content/course.yml", "course.yml"}

// detectContentDir checks the current directory for course content.
func detectContentDir() string {
	for _, marker := range contentMarkers {
		if _, err := os.Stat(marker); err == nil {
			if dir, _, ok := strings.Cut(marker, "/"); ok {
				return dir
			}
			return "."
		}
	}
	return ""
}

// languages offered by the wizard. Any chroma lexer name is accepted in the
// file itself.
var languages = []string{"dart", "go", "kotlin", "swift", "typescript", "python"}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .coursesite.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to coursesite! Let's configure your course.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Content directory.
	contentDir := detectContentDir()
	if contentDir != "" {
		fmt.Printf("Found course content in %s\n\n", contentDir)
	}
	contentPrompt := promptui.Prompt{
		Label:   "Content directory (blank for the built-in sample course)",
		Default: contentDir,
	}
	contentDir, err := contentPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	cfg.ContentDir = strings.TrimSpace(contentDir)

	// 2. Code panel language.
	languagePrompt := promptui.Select{
		Label: "Language of the code panels",
		Items: languages,
	}
	_, cfg.Language, err = languagePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("language selection: %w", err)
	}

	// 3. Output directory.
	outputPrompt := promptui.Prompt{
		Label:   "Output directory for the generated site",
		Default: cfg.OutputDir,
	}
	cfg.OutputDir, err = outputPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("output dir: %w", err)
	}

	// 4. Dev server port.
	portPrompt := promptui.Prompt{
		Label:   "Port for coursesite serve",
		Default: strconv.Itoa(cfg.Serve.Port),
		Validate: func(s string) error {
			if _, err := parsePort(s); err != nil {
				return err
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Serve.Port, _ = parsePort(portStr)

	// 5. Extra watch patterns.
	watchPrompt := promptui.Prompt{
		Label:   "Extra watch patterns (comma-separated, leave blank for defaults)",
		Default: "",
	}
	watchStr, err := watchPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("watch patterns: %w", err)
	}
	if extra := splitAndTrim(watchStr); len(extra) > 0 {
		cfg.Serve.WatchPatterns = append(append([]string{}, DefaultWatchPatterns...), extra...)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := cfg.Save(FileName); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", FileName)
	return cfg, nil
}

func parsePort(s string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || port < 1 || port > 65535 {
		return 0, fmt.Errorf("port must be a number between 1 and 65535")
	}
	return port, nil
}

// splitAndTrim splits a comma-separated string and drops empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if token := strings.TrimSpace(part); token != "" {
			result = append(result, token)
		}
	}
	return result
}
