package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/raggrep/raggrep/internal/orchestrator"
)

var (
	topKFlag    int
	minScoreFlag float64
	pathFlags   []string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the indexed project",
	Long: `Search fuses BM25, identifier-aware literal matching, and grep-style
literal search into one ranked result list.

Examples:
  raggrep search "hashPassword"
  raggrep search "error handling" --top-k 20 --min-score 0.1
  raggrep search "HashPassword" --path src/auth --no-fresh`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&topKFlag, "top-k", 10, "maximum number of results")
	searchCmd.Flags().Float64Var(&minScoreFlag, "min-score", 0, "drop results below this fused score")
	searchCmd.Flags().StringArrayVar(&pathFlags, "path", nil, "restrict results to a glob or path prefix (repeatable)")
	searchCmd.Flags().BoolVar(&noFreshFlag, "no-fresh", false, "skip the staleness sweep before searching")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := args[0]

	sess, err := openSession()
	if err != nil {
		return err
	}
	defer sess.Close()

	opts := orchestrator.SearchOptions{
		TopK: topKFlag, MinScore: minScoreFlag, PathFilters: pathFlags,
		EnsureFresh: !noFreshFlag,
	}

	var all []orchestrator.SearchResult
	for _, eng := range sess.Engines {
		results, err := eng.Search(context.Background(), query, opts, sess.RootDir, sess.Config.Extensions, sess.Config.IgnorePaths)
		if err != nil {
			return fmt.Errorf("raggrep: search module %q: %w", eng.ModuleID, err)
		}
		all = append(all, results...)
	}

	sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })
	if len(all) > topKFlag && topKFlag > 0 {
		all = all[:topKFlag]
	}

	if len(all) == 0 {
		fmt.Println("no results")
		return nil
	}

	for i, r := range all {
		fmt.Printf("%2d. %s:%d-%d  score=%.3f\n", i+1, r.FilePath, r.StartLine, r.EndLine, r.Score)
	}
	return nil
}
