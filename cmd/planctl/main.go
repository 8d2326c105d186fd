// Package main implements the planctl CLI for generating and reviewing
// implementation plans without an editor attached.
package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var (
	// configPath overrides the config file location.
	configPath string
	// workspaceRoot overrides workspace discovery.
	workspaceRoot string
	// outputJSONFlag switches output to raw JSON.
	outputJSONFlag bool

	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "planctl",
	Short: "Generate and review implementation plans",
	Long: `planctl turns a free-text task description into a structured
implementation plan using workspace context and a hosted language model.`,
	Version: version,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: ~/.config/plannerd/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&workspaceRoot, "workspace", "", "workspace root (default: discover from cwd)")
	rootCmd.PersistentFlags().BoolVar(&outputJSONFlag, "json", false, "print raw JSON instead of formatted output")
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(historyCmd)
}

// outputJSON prints v as indented JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// truncate shortens s to maxLen runes with an ellipsis.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}
