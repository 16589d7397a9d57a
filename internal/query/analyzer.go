package query

import (
	"regexp"
	"strings"
)

// Intent classifies the broad purpose of a query.
type Intent string

const (
	IntentNeutral        Intent = "neutral"
	IntentDocumentation   Intent = "documentation"
	IntentImplementation Intent = "implementation"
)

// documentationTerms and implementationTerms drive DetectIntent.
var documentationTerms = map[string]bool{
	"documentation": true, "docs": true, "readme": true, "guide": true,
	"tutorial": true, "explain": true, "explanation": true, "overview": true,
	"howto": true, "manual": true, "reference": true, "usage": true,
}

var implementationTerms = map[string]bool{
	"implementation": true, "implement": true, "logic": true, "algorithm": true,
	"code": true, "source": true, "internals": true, "handler": true,
	"service": true, "cache": true, "engine": true, "worker": true,
}

var (
	backtickRE = regexp.MustCompile("`([^`]+)`")
	dquoteRE   = regexp.MustCompile(`"([^"]+)"`)
	nonWordRun = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// ParsedQuery is the result of ParseQuery.
type ParsedQuery struct {
	DetectedLiterals []DetectedLiteral
	RemainingQuery   string
	Intent           Intent
}

// ParseQuery detects literals, classifies intent, and computes the
// remaining free-text query.
func ParseQuery(q string) ParsedQuery {
	trimmed := strings.TrimSpace(q)

	var literals []DetectedLiteral
	remaining := trimmed

	if m := backtickRE.FindStringSubmatchIndex(trimmed); m != nil {
		value := trimmed[m[2]:m[3]]
		literals = append(literals, DetectedLiteral{
			Value: value, RawValue: trimmed[m[0]:m[1]],
			Confidence: ConfidenceHigh, DetectionMethod: MethodExplicitBacktick,
		})
		remaining = strings.TrimSpace(trimmed[:m[0]] + " " + trimmed[m[1]:])
	} else if m := dquoteRE.FindStringSubmatchIndex(trimmed); m != nil {
		value := trimmed[m[2]:m[3]]
		literals = append(literals, DetectedLiteral{
			Value: value, RawValue: trimmed[m[0]:m[1]],
			Confidence: ConfidenceHigh, DetectionMethod: MethodExplicitQuote,
		})
		remaining = strings.TrimSpace(trimmed[:m[0]] + " " + trimmed[m[1]:])
	} else {
		fields := strings.Fields(trimmed)
		singleToken := len(fields) == 1
		var kept []string
		for _, tok := range fields {
			if looksLikeIdentifier(tok) {
				conf := ConfidenceMedium
				if singleToken {
					conf = ConfidenceHigh
				}
				literals = append(literals, DetectedLiteral{
					Value: tok, RawValue: tok,
					Confidence: conf, DetectionMethod: MethodImplicitCasing,
				})
				continue
			}
			kept = append(kept, tok)
		}
		remaining = strings.Join(kept, " ")
	}

	return ParsedQuery{
		DetectedLiterals: literals,
		RemainingQuery:   strings.TrimSpace(remaining),
		Intent:           DetectIntent(intentTokens(trimmed)),
	}
}

// intentTokens splits a raw query into lowercase words for intent
// classification. Unlike vocab.ExtractQueryVocabulary (used for the
// vocabulary-match retrieval track), this does not drop query stop words:
// terms like "implementation" and "code" are themselves intent signals and
// must survive into DetectIntent rather than being filtered out as noise.
func intentTokens(q string) []string {
	normalized := nonWordRun.ReplaceAllString(q, " ")
	return strings.Fields(strings.ToLower(normalized))
}

// DetectIntent classifies intent from lowercased tokens of length > 2;
// documentation wins ties over implementation.
func DetectIntent(tokens []string) Intent {
	hasDoc := false
	hasImpl := false
	for _, t := range tokens {
		if len(t) <= 2 {
			continue
		}
		lower := strings.ToLower(t)
		if documentationTerms[lower] {
			hasDoc = true
		}
		if implementationTerms[lower] {
			hasImpl = true
		}
	}
	switch {
	case hasDoc:
		return IntentDocumentation
	case hasImpl:
		return IntentImplementation
	default:
		return IntentNeutral
	}
}

// IsIdentifierQuery reports whether q contains at least one detectable
// literal.
func IsIdentifierQuery(q string) bool {
	return len(ParseQuery(q).DetectedLiterals) > 0
}

// ExtractSearchLiteral returns the value of the first explicitly quoted
// literal in the query; failing that, the first literal detected by casing;
// and, when no literal is detected at all, the trimmed query itself.
func ExtractSearchLiteral(q string) string {
	parsed := ParseQuery(q)
	for _, l := range parsed.DetectedLiterals {
		if l.DetectionMethod == MethodExplicitBacktick || l.DetectionMethod == MethodExplicitQuote {
			return l.Value
		}
	}
	if len(parsed.DetectedLiterals) > 0 {
		return parsed.DetectedLiterals[0].Value
	}
	return strings.TrimSpace(q)
}
