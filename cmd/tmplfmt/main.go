package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"tmplfmt/internal/config"
	"tmplfmt/internal/version"
)

// newRootCmd builds the command tree. main and the tests share it.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tmplfmt [flags] [path...]",
		Short: "Reformat template instantiations from compiler diagnostics",
		Long: `tmplfmt reads compiler output, shortens verbose template spellings and
breaks large parameter lists one parameter per line.
With no path, or with "-", it reads standard input.`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runFormat,
	}

	rootCmd.Flags().IntP("min-params", "k", 5, "minimum parameter count that breaks a list across lines")
	rootCmd.Flags().Int("indent", 2, "spaces per indentation level")
	rootCmd.Flags().Bool("no-rewrite", false, "skip template name rewriting")
	rootCmd.Flags().Bool("preserve-lines", false, "keep input line breaks, collapsing whitespace per line")
	rootCmd.Flags().Int("max-passes", 100, "rewrite pass ceiling")
	rootCmd.Flags().String("config", "", "configuration file (default: nearest "+config.FileName+")")
	rootCmd.Flags().Bool("cache", false, "reuse results from the on-disk cache")
	rootCmd.Flags().Bool("clear-cache", false, "remove cached results before processing")
	rootCmd.Flags().Bool("stats", false, "print rewrite hit counts to stderr")
	rootCmd.Flags().String("ui", "auto", "progress view on stderr (auto|on|off)")

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("path-mode", "relative", "path display in diagnostics (relative|absolute|basename|auto)")
	rootCmd.PersistentFlags().String("trace", "", "trace output path (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "events kept in ring mode")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newPatternsCmd())
	return rootCmd
}

// main builds the command tree and executes it.
// If command execution returns an error, the process exits with status code 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves --color against the terminal state of stdout.
func useColor(cmd *cobra.Command) (bool, error) {
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return false, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto":
		out, ok := cmd.OutOrStdout().(*os.File)
		return ok && isTerminal(out), nil
	default:
		return false, fmt.Errorf("invalid --color %q (expected auto|on|off)", colorFlag)
	}
}
