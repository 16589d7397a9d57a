package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Run the staleness sweep without searching",
	Long: `Cleanup compares every indexed file's recorded content hash against
what's on disk, re-indexing anything that changed and removing anything
that's gone, without running a search.`,
	RunE: runCleanup,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	for id, eng := range sess.Engines {
		result, err := eng.Cleanup(sess.RootDir, sess.Config.Extensions, sess.Config.IgnorePaths)
		if err != nil {
			return fmt.Errorf("raggrep: cleanup module %q: %w", id, err)
		}
		if !quietFlag {
			fmt.Printf("module %q: kept %d, removed %d\n", id, result.Kept, result.Removed)
		}
	}
	return nil
}
