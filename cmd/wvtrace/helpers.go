package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"wvtrace/internal/project"
)

// resolveRuns determines the runs directory and viewer settings for a
// command. Precedence: positional dir argument, then --runs-dir, then
// wvtrace.toml, then the built-in default.
func resolveRuns(args []string) (project.Resolved, error) {
	override := ""
	if len(args) > 0 {
		override = args[len(args)-1]
	}
	if override == "" {
		override, _ = rootCmd.PersistentFlags().GetString("runs-dir")
	}
	return project.Resolve(".", override)
}

// parseFileLine splits "path/to/file.py:42" into its file and 1-based
// line parts.
func parseFileLine(arg string) (file string, line int, err error) {
	idx := strings.LastIndex(arg, ":")
	if idx <= 0 || idx == len(arg)-1 {
		return "", 0, fmt.Errorf("expected <file>:<line>, got %q", arg)
	}
	line, err = strconv.Atoi(arg[idx+1:])
	if err != nil || line < 1 {
		return "", 0, fmt.Errorf("invalid line number in %q", arg)
	}
	return arg[:idx], line, nil
}

// confirm prints a yes/no prompt and reads a single line from stdin.
func confirm(prompt string) bool {
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
