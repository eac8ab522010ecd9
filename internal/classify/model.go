package classify

import (
	"context"

	"curator/internal/config"
	"curator/internal/services"
	"curator/internal/services/llm"
)

// Model is the capability every classifier variant satisfies: map file
// metadata to exactly one category label. Implementations hold no mutable
// state between calls.
type Model interface {
	PredictCategory(ctx context.Context, meta FileMetadata) (string, error)
}

// NewModelFromConfig selects the classifier variant named by configuration.
func NewModelFromConfig(cfg *config.Config) (Model, error) {
	rules := NewRules(cfg)
	switch cfg.Model.Provider {
	case "rules":
		return NewRuleModel(rules), nil
	case "llm":
		client := llm.NewClient(llm.Config{
			APIKey:         cfg.Model.APIKey,
			BaseURL:        cfg.Model.BaseURL,
			Model:          cfg.Model.Name,
			TimeoutSeconds: cfg.Model.TimeoutSeconds,
		})
		return NewLLMModel(client, rules), nil
	default:
		return nil, services.Wrap(services.ErrConfiguration, "classify", "select model", "unknown provider "+cfg.Model.Provider, nil)
	}
}

// RuleModel classifies by extension-table lookup.
type RuleModel struct {
	rules Rules
}

// NewRuleModel constructs the static-table classifier.
func NewRuleModel(rules Rules) *RuleModel {
	return &RuleModel{rules: rules}
}

// PredictCategory is a pure function of the file name; it never fails for
// well-formed metadata.
func (m *RuleModel) PredictCategory(_ context.Context, meta FileMetadata) (string, error) {
	return m.rules.Lookup(meta.Name), nil
}
