package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"rtgen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "rtgen",
	Short: "Runtime generics hierarchy toolkit",
	Long:  `rtgen arms class hierarchies from manifests and answers parametrization queries`,
}

// main initializes the CLI by setting the command version, registering
// subcommands and persistent flags, and then executes the root command.
func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	// Добавляем команды
	rootCmd.AddCommand(parentsCmd)
	rootCmd.AddCommand(mroCmd)
	rootCmd.AddCommand(paramsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(vetCmd)
	rootCmd.AddCommand(uiCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().String("manifest", "", "path to rtgen.toml (default: search upward)")
	rootCmd.PersistentFlags().String("trace", "", "trace output path (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|advisory|registry|query)")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
