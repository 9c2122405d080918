package feedback

import "github.com/abhisek/wordiz/internal/llm"

// ExplanationSchema defines the JSON schema for LLM answer explanations.
var ExplanationSchema = &llm.Schema{
	Name:        "answer-feedback",
	Description: "Short explanation of why a learner's English sentence differs from the target",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two sentences explaining the difference, addressed to the learner",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One short, memorable tip for getting it right next time",
			},
		},
		"required":             []any{"explanation", "tip"},
		"additionalProperties": false,
	},
}
