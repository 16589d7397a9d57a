package literal

import (
	"regexp"
	"strings"

	"github.com/raggrep/raggrep/internal/symbols"
	"github.com/raggrep/raggrep/internal/vocab"
)

var (
	identifierRE = regexp.MustCompile(`[A-Za-z_][A-Za-z0-9_]*`)
	importLineRE = regexp.MustCompile(`^\s*(?:import|from)\b`)
	quotedRE     = regexp.MustCompile(`"([^"]+)"|'([^']+)'`)
)

var commonKeywords = map[string]bool{
	"func": true, "package": true, "import": true, "return": true, "if": true,
	"else": true, "for": true, "range": true, "var": true, "const": true,
	"type": true, "struct": true, "interface": true, "switch": true,
	"case": true, "default": true, "break": true, "continue": true, "go": true,
	"defer": true, "select": true, "map": true, "chan": true, "nil": true,
	"true": true, "false": true, "from": true, "import_as": true, "class": true,
	"def": true, "public": true, "private": true, "static": true, "void": true,
	"this": true, "self": true, "new": true, "null": true, "undefined": true,
	"export": true, "let": true, "function": true,
}

func typeFromKind(k symbols.Kind) LiteralType {
	switch k {
	case symbols.KindFunction, symbols.KindMethod:
		return TypeFunctionName
	case symbols.KindClass:
		return TypeClassName
	case symbols.KindInterface:
		return TypeInterfaceName
	case symbols.KindType:
		return TypeTypeName
	case symbols.KindEnum:
		return TypeEnumName
	case symbols.KindVariable:
		return TypeVariableName
	default:
		return TypeIdentifier
	}
}

// ExtractFromChunk derives ExtractedLiterals for one chunk: a definition
// literal per symbol inside the chunk's range, an import literal per
// import-shaped line, and a reference literal per remaining
// identifier-shaped token.
func ExtractFromChunk(content string, startLine int, syms []symbols.Symbol) []ExtractedLiteral {
	var out []ExtractedLiteral
	seen := make(map[string]bool)

	add := func(value string, t LiteralType, mt MatchType) {
		key := value + "\x00" + string(mt)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, ExtractedLiteral{
			Value:      value,
			Type:       t,
			MatchType:  mt,
			Vocabulary: vocab.ExtractVocabulary(value),
		})
	}

	endLine := startLine + strings.Count(content, "\n")
	definitionNames := make(map[string]bool)
	for _, s := range syms {
		if s.Line < startLine || s.Line > endLine {
			continue
		}
		add(s.Name, typeFromKind(s.Kind), MatchDefinition)
		definitionNames[s.Name] = true
	}

	for _, line := range strings.Split(content, "\n") {
		if importLineRE.MatchString(line) {
			for _, m := range quotedRE.FindAllStringSubmatch(line, -1) {
				val := m[1]
				if val == "" {
					val = m[2]
				}
				if val != "" {
					add(val, TypePackageName, MatchImport)
				}
			}
			for _, m := range identifierRE.FindAllString(line, -1) {
				if m != "import" && m != "from" && !commonKeywords[m] {
					add(m, TypePackageName, MatchImport)
				}
			}
			continue
		}

		for _, m := range identifierRE.FindAllString(line, -1) {
			if len(m) < 3 || commonKeywords[m] || definitionNames[m] {
				continue
			}
			add(m, TypeIdentifier, MatchReference)
		}
	}

	return out
}
