package cli

import (
	"fmt"

	"github.com/raggrep/raggrep/internal/session"
)

// openSession resolves the root directory and opens the shared project
// session (config, store, hash cache, per-module engines).
func openSession() (*session.Project, error) {
	rootDir, err := rootDirOrWD()
	if err != nil {
		return nil, fmt.Errorf("raggrep: resolve root directory: %w", err)
	}
	return session.Open(rootDir)
}
