package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeRules()
	c.normalizeOrganize()
	c.normalizeModel()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if c.Paths.SourceDir, err = expandPath(c.Paths.SourceDir); err != nil {
		return fmt.Errorf("paths.source_dir: %w", err)
	}
	if c.Paths.TargetDir, err = expandPath(c.Paths.TargetDir); err != nil {
		return fmt.Errorf("paths.target_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.KeyFile) == "" {
		c.Paths.KeyFile = defaultKeyFile
	}
	if c.Paths.KeyFile, err = expandPath(c.Paths.KeyFile); err != nil {
		return fmt.Errorf("paths.key_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.OperationLog) == "" {
		c.Paths.OperationLog = defaultOperationLog
	}
	if c.Paths.OperationLog, err = expandPath(c.Paths.OperationLog); err != nil {
		return fmt.Errorf("paths.operation_log: %w", err)
	}
	return nil
}

func (c *Config) normalizeRules() {
	if len(c.Rules) == 0 {
		c.Rules = DefaultRules()
	}
	normalized := make(map[string][]string, len(c.Rules))
	names := make([]string, 0, len(c.Rules))
	for label, extensions := range c.Rules {
		label = strings.TrimSpace(label)
		seen := make(map[string]struct{}, len(extensions))
		exts := make([]string, 0, len(extensions))
		for _, ext := range extensions {
			ext = strings.ToLower(strings.TrimSpace(ext))
			if ext == "" {
				continue
			}
			if !strings.HasPrefix(ext, ".") {
				ext = "." + ext
			}
			if _, ok := seen[ext]; ok {
				continue
			}
			seen[ext] = struct{}{}
			exts = append(exts, ext)
		}
		sort.Strings(exts)
		normalized[label] = exts
		names = append(names, label)
	}
	sort.Strings(names)
	c.Rules = normalized
	c.categoryNames = names
}

func (c *Config) normalizeOrganize() {
	c.Organize.OnCollision = strings.ToLower(strings.TrimSpace(c.Organize.OnCollision))
	if c.Organize.OnCollision == "" {
		c.Organize.OnCollision = defaultOnCollision
	}
}

func (c *Config) normalizeModel() {
	c.Model.Provider = strings.ToLower(strings.TrimSpace(c.Model.Provider))
	if c.Model.Provider == "" {
		c.Model.Provider = defaultModelProvider
	}
	c.Model.BaseURL = strings.TrimSpace(c.Model.BaseURL)
	if c.Model.BaseURL == "" {
		c.Model.BaseURL = defaultModelBaseURL
	}
	c.Model.Name = strings.TrimSpace(c.Model.Name)
	if c.Model.Name == "" {
		c.Model.Name = defaultModelName
	}
	if c.Model.TimeoutSeconds <= 0 {
		c.Model.TimeoutSeconds = defaultModelTimeoutSeconds
	}
	c.Model.APIKey = strings.TrimSpace(c.Model.APIKey)
	if c.Model.APIKey == "" {
		if value, ok := os.LookupEnv("CURATOR_MODEL_API_KEY"); ok {
			c.Model.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.Model.APIKey = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
