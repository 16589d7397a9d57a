// Command raggrep-mcp serves raggrep's index/search/cleanup operations as
// an MCP server over stdio, a supplemental surface alongside the `raggrep`
// CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/raggrep/raggrep/internal/mcpserver"
)

func main() {
	rootDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "raggrep-mcp:", err)
		os.Exit(1)
	}
	if len(os.Args) > 1 {
		rootDir = os.Args[1]
	}

	srv, err := mcpserver.New(rootDir)
	if err != nil {
		fmt.Fprintln(os.Stderr, "raggrep-mcp:", err)
		os.Exit(1)
	}
	defer srv.Close()

	if err := srv.Serve(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "raggrep-mcp:", err)
		os.Exit(1)
	}
}
