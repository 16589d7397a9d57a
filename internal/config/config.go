// Package config loads and validates the RAGgrep configuration file.
package config

// ModuleConfig is one entry of the top-level modules[] list.
type ModuleConfig struct {
	ID      string         `mapstructure:"id"`
	Enabled bool           `mapstructure:"enabled"`
	Options map[string]any `mapstructure:"options"`
}

// Config is the root configuration document.
type Config struct {
	Version     string         `mapstructure:"version"`
	IndexDir    string         `mapstructure:"indexDir"`
	Extensions  []string       `mapstructure:"extensions"`
	IgnorePaths []string       `mapstructure:"ignorePaths"`
	Modules     []ModuleConfig `mapstructure:"modules"`
}

// knownEmbeddingModels is the recognized-but-accepted set for the
// `embeddingModel` module option; anything else emits an info issue but
// is still accepted.
var knownEmbeddingModels = map[string]bool{
	"none": true, "local-minilm": true, "openai-text-embedding-3-small": true,
	"openai-text-embedding-3-large": true,
}

var knownVocabularyExpansion = map[string]bool{
	"conservative": true, "moderate": true, "aggressive": true, "none": true,
}

// Default returns the built-in configuration defaults.
func Default() *Config {
	return &Config{
		Version:  "1.0.0",
		IndexDir: ".raggrep",
		Extensions: []string{
			".go", ".ts", ".tsx", ".js", ".jsx", ".py", ".java", ".rs",
			".md", ".mdx", ".txt",
		},
		IgnorePaths: []string{"node_modules", ".git", "vendor", "dist", "build"},
		Modules: []ModuleConfig{
			{ID: "core", Enabled: true},
		},
	}
}
