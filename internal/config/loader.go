package config

import (
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/raggrep/raggrep/internal/rerr"
)

// Loader loads configuration from defaults, an optional file, and
// environment variables, in that priority order (env wins).
type Loader interface {
	Load() (*Config, error)
	// LoadRaw parses configuration without rejecting ERROR-severity
	// validation findings, so callers (the `config validate` command) can
	// inspect and print every finding themselves.
	LoadRaw() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a configuration loader rooted at rootDir, where
// <rootDir>/.raggrep/config.yml (or .yaml) is searched for.
func NewLoader(rootDir string) Loader {
	return &loader{rootDir: rootDir}
}

// Load reads configuration with priority (highest to lowest):
// 1. Environment variables (RAGGREP_*)
// 2. Config file (.raggrep/config.yml or .yaml)
// 3. Default values
//
// It fails closed if validation reports any ERROR-severity issue.
func (l *loader) Load() (*Config, error) {
	cfg, err := l.LoadRaw()
	if err != nil {
		return nil, err
	}
	if errs := Validate(cfg); HasErrors(errs) {
		return nil, rerr.Wrap(rerr.KindValidation, "invalid configuration", errs.Err())
	}
	return cfg, nil
}

// LoadRaw reads configuration the same way Load does, but returns it
// regardless of validation findings.
func (l *loader) LoadRaw() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, DefaultIndexDirName)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("RAGGREP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("indexDir", "RAGGREP_INDEX_DIR")
	v.BindEnv("version")
	v.BindEnv("extensions")
	v.BindEnv("ignorePaths")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, rerr.Wrap(rerr.KindIO, "read config file", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, rerr.Wrap(rerr.KindValidation, "unmarshal config", err)
	}

	return cfg, nil
}

// DefaultIndexDirName names the on-disk directory viper searches for a
// config file; it matches Config.IndexDir's default value.
const DefaultIndexDirName = ".raggrep"

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("version", d.Version)
	v.SetDefault("indexDir", d.IndexDir)
	v.SetDefault("extensions", d.Extensions)
	v.SetDefault("ignorePaths", d.IgnorePaths)
	v.SetDefault("modules", d.Modules)
}
