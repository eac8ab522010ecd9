package classify

import (
	"context"

	"curator/internal/services"
	"curator/internal/services/llm"
)

// Predictor is the slice of the LLM client the model adapter needs.
type Predictor interface {
	ClassifyFile(ctx context.Context, categories []string, description string) (llm.Classification, error)
}

// LLMModel delegates classification to a remote predictive model while
// holding it to the same contract as the rule table: one label from the
// configured set or the fallback, or a hard error.
type LLMModel struct {
	client Predictor
	rules  Rules
}

// NewLLMModel constructs the external-model adapter.
func NewLLMModel(client Predictor, rules Rules) *LLMModel {
	return &LLMModel{client: client, rules: rules}
}

// PredictCategory asks the model for a label and validates it against the
// configured categories. A transport failure or an out-of-set label is a
// classification error for the caller to handle, never a silent fallback.
func (m *LLMModel) PredictCategory(ctx context.Context, meta FileMetadata) (string, error) {
	result, err := m.client.ClassifyFile(ctx, m.rules.Categories(), meta.Description())
	if err != nil {
		return "", services.Wrap(services.ErrClassification, "classify", "predict", "model request failed for "+meta.Name, err)
	}
	if !m.rules.Valid(result.Category) {
		return "", services.Wrap(services.ErrClassification, "classify", "predict", "model returned unknown category "+result.Category+" for "+meta.Name, nil)
	}
	return result.Category, nil
}
