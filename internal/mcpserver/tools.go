package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/raggrep/raggrep/internal/chunk"
	"github.com/raggrep/raggrep/internal/orchestrator"
)

// AddSearchTool registers raggrep_search: the same query-analysis,
// multi-track retrieval, and fusion pipeline the CLI `search` command
// drives, composable with the other Add*Tool registrations.
func AddSearchTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"raggrep_search",
		mcp.WithDescription("Search the indexed project by fusing BM25 keyword scoring, identifier-aware literal/vocabulary matching, and grep-style literal search. Returns ranked chunks with per-source contribution breakdowns."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Natural-language description, partial identifier, or quoted literal")),
		mcp.WithNumber("top_k", mcp.Description("Maximum number of results to return (default 10)")),
		mcp.WithNumber("min_score", mcp.Description("Drop results below this fused score (default 0)")),
		mcp.WithArray("path", mcp.Description("Restrict results to these glob patterns or path prefixes")),
		mcp.WithBoolean("no_fresh", mcp.Description("Skip the staleness sweep before searching (default false)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
	s.AddTool(tool, createSearchHandler(srv))
}

// AddIndexTool registers raggrep_index: runs a full indexing batch over
// every enabled module.
func AddIndexTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"raggrep_index",
		mcp.WithDescription("Index (or re-index) the project tree: chunk every matching file, extract symbols and literals, and build the BM25 and literal indexes for every enabled module."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
	)
	s.AddTool(tool, createIndexHandler(srv))
}

// AddCleanupTool registers raggrep_cleanup: the standalone staleness
// sweep.
func AddCleanupTool(s *server.MCPServer, srv *Server) {
	tool := mcp.NewTool(
		"raggrep_cleanup",
		mcp.WithDescription("Sweep stale manifest entries: re-index files whose content changed, and remove entries (and their BM25/literal postings) for files no longer on disk."),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
	)
	s.AddTool(tool, createCleanupHandler(srv))
}

func argMap(request mcp.CallToolRequest) (map[string]interface{}, bool) {
	m, ok := request.Params.Arguments.(map[string]interface{})
	return m, ok
}

func createSearchHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, ok := argMap(request)
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		query, ok := args["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}

		opts := orchestrator.SearchOptions{TopK: 10, EnsureFresh: true}
		if v, ok := args["top_k"].(float64); ok {
			opts.TopK = int(v)
		}
		if v, ok := args["min_score"].(float64); ok {
			opts.MinScore = v
		}
		if v, ok := args["no_fresh"].(bool); ok {
			opts.EnsureFresh = !v
		}
		if raw, ok := args["path"].([]interface{}); ok {
			for _, p := range raw {
				if s, ok := p.(string); ok {
					opts.PathFilters = append(opts.PathFilters, s)
				}
			}
		}

		var all []orchestrator.SearchResult
		for _, eng := range srv.engines {
			results, err := eng.Search(ctx, query, opts, srv.rootDir, srv.config.Extensions, srv.config.IgnorePaths)
			if err != nil {
				return nil, fmt.Errorf("raggrep: search module %q: %w", eng.ModuleID, err)
			}
			all = append(all, results...)
		}
		sort.SliceStable(all, func(i, j int) bool { return all[i].Score > all[j].Score })
		if opts.TopK > 0 && len(all) > opts.TopK {
			all = all[:opts.TopK]
		}

		jsonData, err := json.Marshal(map[string]interface{}{
			"query":   query,
			"results": all,
		})
		if err != nil {
			return nil, fmt.Errorf("raggrep: marshal search response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func createIndexHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary := make(map[string]orchestrator.IndexResult, len(srv.engines))
		for id, eng := range srv.engines {
			result, err := eng.Index(ctx, srv.rootDir, srv.config.Extensions, srv.config.IgnorePaths, map[string]chunk.Options{})
			if err != nil {
				return nil, fmt.Errorf("raggrep: index module %q: %w", id, err)
			}
			summary[id] = result
		}
		jsonData, err := json.Marshal(summary)
		if err != nil {
			return nil, fmt.Errorf("raggrep: marshal index response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

func createCleanupHandler(srv *Server) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		summary := make(map[string]orchestrator.CleanupResult, len(srv.engines))
		for id, eng := range srv.engines {
			result, err := eng.Cleanup(srv.rootDir, srv.config.Extensions, srv.config.IgnorePaths)
			if err != nil {
				return nil, fmt.Errorf("raggrep: cleanup module %q: %w", id, err)
			}
			summary[id] = result
		}
		jsonData, err := json.Marshal(summary)
		if err != nil {
			return nil, fmt.Errorf("raggrep: marshal cleanup response: %w", err)
		}
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
