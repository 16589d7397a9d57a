package orchestrator

import (
	"os"
	"path/filepath"
	"strings"
)

// discoverFiles walks rootDir, returning paths relative to rootDir whose
// extension is in extensions and that don't sit under an ignorePaths
// directory segment.
func discoverFiles(rootDir string, extensions, ignorePaths []string) ([]string, error) {
	extSet := make(map[string]bool, len(extensions))
	for _, e := range extensions {
		extSet[e] = true
	}
	ignoreSet := make(map[string]bool, len(ignorePaths))
	for _, p := range ignorePaths {
		ignoreSet[p] = true
	}

	var out []string
	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(rootDir, path)
		if relErr != nil {
			return relErr
		}
		rel = filepath.ToSlash(rel)

		if info.IsDir() {
			if rel != "." && ignoreSet[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}

		for _, seg := range strings.Split(rel, "/") {
			if ignoreSet[seg] {
				return nil
			}
		}

		if extSet[strings.ToLower(filepath.Ext(path))] {
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
