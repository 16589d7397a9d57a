// Command raggrep is the CLI entrypoint: index, search, cleanup, and
// config validate.
package main

import "github.com/raggrep/raggrep/internal/cli"

func main() {
	cli.Execute()
}
