package llm

import (
	"fmt"
	"strings"
)

func classificationPrompt(categories []string) string {
	return fmt.Sprintf(`You are a file-organization assistant. The user describes one file
(name, size, MIME type). Choose the single best destination category for it.

Allowed categories: %s, Others.

Respond with JSON only, no prose:
{"category": "<one allowed category>", "reason": "<short justification>"}

Use "Others" when none of the categories fits. Never invent a new category.`,
		strings.Join(categories, ", "))
}
