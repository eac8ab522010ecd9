package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory and fixed-file configuration.
type Paths struct {
	SourceDir    string `toml:"source_dir"`
	TargetDir    string `toml:"target_dir"`
	LogDir       string `toml:"log_dir"`
	KeyFile      string `toml:"key_file"`
	OperationLog string `toml:"operation_log"`
}

// Organize contains configuration for file relocation.
type Organize struct {
	// OnCollision selects what happens when the destination filename is
	// already taken: "suffix" (allocate name-1.ext), "overwrite", or "skip".
	OnCollision string `toml:"on_collision"`
}

// Duplicates contains configuration for duplicate detection.
type Duplicates struct {
	// VerifyContent confirms byte-for-byte equality before reporting a pair,
	// so a hash collision between distinct files is never reported.
	VerifyContent bool `toml:"verify_content"`
}

// Model contains configuration for the classification model.
type Model struct {
	// Provider selects the classifier: "rules" for the static extension
	// table, "llm" for the remote predictive model.
	Provider       string `toml:"provider"`
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Name           string `toml:"name"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for curator.
//
// Sections by subsystem:
//   - Paths: source/target directories, log directory, key file, operation log
//   - Rules: category label to extension list mapping
//   - Organize: relocation collision policy
//   - Duplicates: duplicate detection behaviour
//   - Model: classification model selection and LLM connection settings
//   - Logging: log format and level
type Config struct {
	Paths      Paths               `toml:"paths"`
	Rules      map[string][]string `toml:"rules"`
	Organize   Organize            `toml:"organize"`
	Duplicates Duplicates          `toml:"duplicates"`
	Model      Model               `toml:"model"`
	Logging    Logging             `toml:"logging"`

	// categoryNames holds the rule labels in sorted order so lookup
	// tie-breaking stays deterministic across runs.
	categoryNames []string
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/curator/config.toml")
}

// Load locates, parses, normalizes, and validates a configuration file. The
// returned config has all path fields expanded and rule extensions lowercased.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("curator.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// CategoryNames returns the configured rule labels in sorted order.
func (c *Config) CategoryNames() []string {
	out := make([]string, len(c.categoryNames))
	copy(out, c.categoryNames)
	return out
}

// EnsureLogDir creates the log directory when configured.
func (c *Config) EnsureLogDir() error {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return nil
	}
	if err := os.MkdirAll(c.Paths.LogDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.LogDir, err)
	}
	return nil
}

// LockFilePath returns the watch-daemon lock file location.
func (c *Config) LockFilePath() string {
	return filepath.Join(c.Paths.LogDir, "curatord.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
