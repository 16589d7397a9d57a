package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/raggrep/raggrep/internal/chunk"
	"github.com/raggrep/raggrep/internal/config"
	"github.com/raggrep/raggrep/internal/orchestrator"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index the project for search",
	Long: `Index walks the project tree, chunks every matching file, extracts
symbols and literals, and builds the BM25 and literal indexes for every
enabled module.

Examples:
  # Index the current directory
  raggrep index

  # Index a specific project root
  raggrep index --root /path/to/project`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\ninterrupted, cancelling indexing...")
		cancel()
	}()

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	if len(sess.Engines) == 0 {
		fmt.Fprintln(os.Stderr, "no enabled modules in configuration; nothing to index")
		return nil
	}

	for id, eng := range sess.Engines {
		if !quietFlag {
			fmt.Printf("indexing module %q...\n", id)
		}

		var bar *progressbar.ProgressBar
		onProgress := func(done, total int) {
			if bar == nil {
				bar = progressbar.NewOptions(total,
					progressbar.OptionSetDescription("indexing "+id),
					progressbar.OptionSetWidth(40),
					progressbar.OptionShowCount(),
					progressbar.OptionShowIts(),
					progressbar.OptionSetItsString("files/s"),
					progressbar.OptionThrottle(65*time.Millisecond),
					progressbar.OptionShowElapsedTimeOnFinish(),
					progressbar.OptionOnCompletion(func() { fmt.Println() }),
				)
			}
			_ = bar.Set(done)
		}

		var result orchestrator.IndexResult
		var err error
		if !quietFlag && showProgress(sess.Config, id) {
			result, err = eng.Index(ctx, sess.RootDir, sess.Config.Extensions, sess.Config.IgnorePaths, map[string]chunk.Options{}, onProgress)
		} else {
			result, err = eng.Index(ctx, sess.RootDir, sess.Config.Extensions, sess.Config.IgnorePaths, map[string]chunk.Options{})
		}
		if err != nil {
			return fmt.Errorf("raggrep: index module %q: %w", id, err)
		}
		if !quietFlag {
			fmt.Printf("  indexed %d files, %d errors\n", result.Indexed, result.Errors)
			for rel, msg := range result.Failures {
				fmt.Printf("  FAILED %s: %s\n", rel, msg)
			}
		}
	}

	return nil
}

// showProgress reports the `showProgress` option for moduleID, defaulting
// to true when unset.
func showProgress(cfg *config.Config, moduleID string) bool {
	for _, m := range cfg.Modules {
		if m.ID != moduleID {
			continue
		}
		if raw, ok := m.Options["showProgress"]; ok {
			if b, ok := raw.(bool); ok {
				return b
			}
		}
	}
	return true
}
