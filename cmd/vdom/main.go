package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/vdom/internal/config"
	"github.com/vango-dev/vdom/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┬  ┬┌┬┐┌─┐┌┬┐
  └┐┌┘ │││ ││││
   └┘ ─┴┘└─┘┴ ┴
`

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "vdom",
		Short: "Keyed virtual tree reconciler",
		Long: `vdom diffs virtual element trees and applies the minimal set of
host operations that turns one into the other.

  • Keyed child reconciliation with moves instead of re-creates
  • Mutation journal with a compact binary wire format
  • Live server streaming patches to WebSocket clients`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to vdom.json or vdom.toml")

	loadConfig := func() (*config.Config, error) {
		return resolveConfig(configPath)
	}

	// Add commands
	rootCmd.AddCommand(
		patchCmd(),
		serveCmd(loadConfig),
		validateCmd(),
		versionCmd(),
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// resolveConfig loads the config at path, or the nearest vdom.json or
// vdom.toml above the working directory. Defaults apply when neither exists.
func resolveConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	dir, err := config.FindProjectRoot(".")
	if err != nil {
		return config.New(), nil
	}
	return config.Load(dir)
}

// printBanner prints the vdom ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "\033[31m✗\033[0m %s\n", fmt.Sprintf(format, args...))
}
