package classify

import (
	"path/filepath"
	"strings"

	"curator/internal/config"
)

// Rules is the immutable category table built from configuration. Category
// order is fixed at construction so lookups break ties deterministically.
type Rules struct {
	categories []string
	extensions map[string]string
}

// NewRules builds a Rules table from validated configuration. Extensions are
// assumed normalized (lowercase, dot-prefixed, non-overlapping) by config
// load.
func NewRules(cfg *config.Config) Rules {
	categories := cfg.CategoryNames()
	extensions := make(map[string]string, 16)
	for _, label := range categories {
		for _, ext := range cfg.Rules[label] {
			if _, claimed := extensions[ext]; claimed {
				// Overlaps are rejected at config load; first match wins if
				// a hand-built table carries one anyway.
				continue
			}
			extensions[ext] = label
		}
	}
	return Rules{categories: categories, extensions: extensions}
}

// Categories returns the configured labels in lookup order.
func (r Rules) Categories() []string {
	out := make([]string, len(r.categories))
	copy(out, r.categories)
	return out
}

// Lookup returns the category owning the file name's extension, or the
// fallback label when nothing matches. Total and deterministic.
func (r Rules) Lookup(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if label, ok := r.extensions[ext]; ok && ext != "" {
		return label
	}
	return config.FallbackCategory
}

// Valid reports whether label is a configured category or the fallback.
func (r Rules) Valid(label string) bool {
	if label == config.FallbackCategory {
		return true
	}
	for _, category := range r.categories {
		if category == label {
			return true
		}
	}
	return false
}
