package symbols

import "strings"

// Extract returns the symbols defined in content: for each line, every
// language-family pattern that applies to the file's extension is tried,
// and the union of matches is kept with duplicates (same name+kind+line)
// dropped.
func Extract(path, content string) []Symbol {
	lines := strings.Split(content, "\n")
	families := familyFor(path)

	type key struct {
		name string
		kind Kind
		line int
	}
	seen := make(map[key]bool)
	var out []Symbol

	for i, raw := range lines {
		line := strings.TrimRight(raw, "\r")
		trimmed := strings.TrimLeft(line, " \t")
		lineNum := i + 1

		for _, fam := range families {
			for _, pat := range fam.patterns {
				name := nameFromMatch(pat.re, trimmed)
				if name == "" {
					continue
				}
				k := key{name: name, kind: pat.kind, line: lineNum}
				if seen[k] {
					continue
				}
				seen[k] = true
				out = append(out, Symbol{
					Name:       name,
					Kind:       pat.kind,
					Line:       lineNum,
					IsExported: fam.exported(trimmed, name),
				})
			}
		}
	}

	return out
}
