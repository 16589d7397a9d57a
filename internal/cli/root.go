// Package cli implements the raggrep command-line surface with cobra,
// wired to the orchestrator engine and viper-backed configuration.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgDir     string
	quietFlag  bool
	noFreshFlag bool
)

// rootCmd is the base command when raggrep is called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "raggrep",
	Short: "raggrep - local code search fusing BM25, identifiers, and grep",
	Long: `raggrep indexes a codebase into a local, on-disk index and serves
ranked search over it by fusing BM25 keyword scoring, identifier-aware
literal/vocabulary matching, and grep-style literal search.`,
}

// Execute adds all child commands to rootCmd and runs it. Called once by
// cmd/raggrep/main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "root", "", "project root directory (default: current directory)")
	rootCmd.PersistentFlags().BoolVarP(&quietFlag, "quiet", "q", false, "disable progress bars and non-error output")
}

// rootDirOrWD resolves the directory raggrep should treat as the project root.
func rootDirOrWD() (string, error) {
	if cfgDir != "" {
		return cfgDir, nil
	}
	return os.Getwd()
}
