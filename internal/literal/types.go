// Package literal implements the exact-match and vocabulary-word index
// mapping identifiers to chunk references.
package literal

// LiteralType enumerates the syntactic role of an extracted literal.
type LiteralType string

const (
	TypeClassName     LiteralType = "className"
	TypeFunctionName   LiteralType = "functionName"
	TypeVariableName   LiteralType = "variableName"
	TypeInterfaceName  LiteralType = "interfaceName"
	TypeTypeName       LiteralType = "typeName"
	TypeEnumName       LiteralType = "enumName"
	TypePackageName    LiteralType = "packageName"
	TypeIdentifier     LiteralType = "identifier"
)

// MatchType enumerates how a literal relates to its occurrence.
type MatchType string

const (
	MatchDefinition MatchType = "definition"
	MatchReference  MatchType = "reference"
	MatchImport     MatchType = "import"
)

// priority orders MatchType by specificity: definition > reference > import.
func (m MatchType) priority() int {
	switch m {
	case MatchDefinition:
		return 3
	case MatchReference:
		return 2
	case MatchImport:
		return 1
	default:
		return 0
	}
}

// ExtractedLiteral is a literal extracted from indexed source.
type ExtractedLiteral struct {
	Value      string
	Type       LiteralType
	MatchType  MatchType
	Vocabulary []string
}

// Entry is one indexed occurrence of a literal in a chunk (LiteralIndexEntry).
type Entry struct {
	ChunkID        string
	FilePath       string
	OriginalCasing string
	Type           LiteralType
	MatchType      MatchType
	Vocabulary     []string
}

// Match is one hit produced by FindMatches.
type Match struct {
	QueryLiteral    string
	IndexedLiteral  Entry
	ChunkID         string
	FilePath        string
	ExactMatch      bool
}
