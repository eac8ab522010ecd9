package config

import (
	"fmt"
	"strings"

	"curator/internal/services"
)

// FallbackCategory is the label assigned when no rule matches. It is reserved
// and may not appear as a configured category.
const FallbackCategory = "Others"

// Validate ensures the configuration is usable. Rule problems are detected
// here, at load time, not per file.
func (c *Config) Validate() error {
	if err := c.validateRules(); err != nil {
		return err
	}
	if err := c.validateOrganize(); err != nil {
		return err
	}
	if err := c.validateModel(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateRules() error {
	if len(c.Rules) == 0 {
		return configError("rules", "at least one category must be configured")
	}
	claimed := make(map[string]string, 16)
	for _, label := range c.categoryNames {
		if label == "" {
			return configError("rules", "category label must not be empty")
		}
		if strings.EqualFold(label, FallbackCategory) {
			return configError("rules", fmt.Sprintf("category label %q is reserved for the fallback", FallbackCategory))
		}
		extensions := c.Rules[label]
		if len(extensions) == 0 {
			return configError("rules", fmt.Sprintf("category %q has no extensions", label))
		}
		for _, ext := range extensions {
			if other, ok := claimed[ext]; ok {
				return configError("rules", fmt.Sprintf("extension %q claimed by both %q and %q", ext, other, label))
			}
			claimed[ext] = label
		}
	}
	return nil
}

func (c *Config) validateOrganize() error {
	switch c.Organize.OnCollision {
	case "suffix", "overwrite", "skip":
		return nil
	default:
		return configError("organize", fmt.Sprintf("on_collision must be suffix, overwrite, or skip (got %q)", c.Organize.OnCollision))
	}
}

func (c *Config) validateModel() error {
	switch c.Model.Provider {
	case "rules":
		return nil
	case "llm":
		if c.Model.APIKey == "" {
			return configError("model", "api_key must be set when provider is llm (or set CURATOR_MODEL_API_KEY)")
		}
		return nil
	default:
		return configError("model", fmt.Sprintf("provider must be rules or llm (got %q)", c.Model.Provider))
	}
}

func configError(section, message string) error {
	return services.Wrap(services.ErrConfiguration, "config", section, message, nil)
}
