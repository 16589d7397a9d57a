package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/raggrep/raggrep/internal/rerr"
)

// Severity classifies one validation Issue.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Issue is one validation finding. Kind defaults to rerr.KindValidation;
// set explicitly where a finding maps to a different rerr.Kind (e.g. a
// duplicate module id is a conflict, not a plain validation failure).
type Issue struct {
	Severity Severity
	Message  string
	Kind     rerr.Kind
}

// Issues is an ordered collection of validation findings.
type Issues []Issue

// HasErrors reports whether any issue has ERROR severity.
func HasErrors(issues Issues) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Err joins every ERROR-severity issue into a single error, or nil if none.
func (issues Issues) Err() error {
	var errs []error
	for _, i := range issues {
		if i.Severity == SeverityError {
			kind := i.Kind
			if kind == "" {
				kind = rerr.KindValidation
			}
			errs = append(errs, rerr.New(kind, i.Message))
		}
	}
	return errors.Join(errs...)
}

var (
	// ErrDuplicateModuleID indicates two modules[] entries share an id.
	ErrDuplicateModuleID = errors.New("duplicate module id")
	// ErrBadExtension indicates an extensions[] entry missing its leading dot.
	ErrBadExtension = errors.New("extension must start with '.'")
	// ErrBadVocabularyExpansion indicates an out-of-enum vocabularyExpansion option.
	ErrBadVocabularyExpansion = errors.New("invalid vocabularyExpansion")
)

// Validate checks cfg and returns every finding, from ERROR down to INFO.
func Validate(cfg *Config) Issues {
	var issues Issues

	seen := make(map[string]bool, len(cfg.Modules))
	for _, m := range cfg.Modules {
		if seen[m.ID] {
			issues = append(issues, Issue{SeverityError, fmt.Sprintf("%v: %q", ErrDuplicateModuleID, m.ID), rerr.KindConflict})
		}
		seen[m.ID] = true
		issues = append(issues, validateModuleOptions(m)...)
	}

	if len(cfg.Modules) == 0 {
		issues = append(issues, Issue{SeverityWarning, "modules[] is empty: nothing will be indexed", rerr.KindValidation})
	}

	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			issues = append(issues, Issue{SeverityError, fmt.Sprintf("%v: %q", ErrBadExtension, ext), rerr.KindValidation})
		}
	}

	return issues
}

func validateModuleOptions(m ModuleConfig) Issues {
	var issues Issues

	if raw, ok := m.Options["embeddingModel"]; ok {
		if name, ok := raw.(string); ok && !knownEmbeddingModels[name] {
			issues = append(issues, Issue{SeverityInfo, fmt.Sprintf("module %q: unrecognized embeddingModel %q, accepted as-is", m.ID, name), rerr.KindValidation})
		}
	}

	if raw, ok := m.Options["vocabularyExpansion"]; ok {
		if name, ok := raw.(string); ok && !knownVocabularyExpansion[name] {
			issues = append(issues, Issue{SeverityError, fmt.Sprintf("module %q: %v: %q", m.ID, ErrBadVocabularyExpansion, name), rerr.KindValidation})
		}
	}

	return issues
}
