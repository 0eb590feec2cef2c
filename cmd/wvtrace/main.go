package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"wvtrace/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "wvtrace",
	Short: "Terminal viewer for recorded function-call traces",
	Long:  `wvtrace reads JSONL call-trace logs written by an instrumentation decorator and renders them as a navigable tree of runs and calls, correlated with source lines.`,
}

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(atCmd)
	rootCmd.AddCommand(restoreCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("runs-dir", "", "runs directory (overrides wvtrace.toml)")

	cobra.OnInitialize(configureColor)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func configureColor() {
	mode, _ := rootCmd.PersistentFlags().GetString("color")
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	default:
		color.NoColor = !isTerminal(os.Stdout)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
