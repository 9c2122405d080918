package feedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/abhisek/wordiz/internal/llm"
)

// ExplainerConfig holds configuration for the LLM explainer.
type ExplainerConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultExplainerConfig returns sensible defaults.
func DefaultExplainerConfig() ExplainerConfig {
	return ExplainerConfig{
		MaxTokens:   256,
		Temperature: 0.3,
	}
}

// Explainer asks an LLM to explain a wrong answer.
type Explainer struct {
	provider llm.Provider
	cfg      ExplainerConfig
}

// NewExplainer creates an LLM-based explainer.
func NewExplainer(provider llm.Provider, cfg ExplainerConfig) *Explainer {
	return &Explainer{provider: provider, cfg: cfg}
}

// ExplainRequest is the input for an explanation.
type ExplainRequest struct {
	Source   string // sentence in the learner's language, may be empty
	Target   string
	Given    string
	Note     string
	Category Category
}

type explanationOutput struct {
	Explanation string `json:"explanation"`
	Tip         string `json:"tip"`
}

// Explain sends a wrong answer to the LLM and returns its explanation.
func (e *Explainer) Explain(ctx context.Context, req *ExplainRequest) (*Result, error) {
	userMsg, err := buildExplainMessage(req)
	if err != nil {
		return nil, fmt.Errorf("build feedback prompt: %w", err)
	}

	resp, err := e.provider.Complete(ctx, llm.Prompt{
		Purpose:     "feedback",
		System:      explainSystemPrompt,
		User:        userMsg,
		Schema:      ExplanationSchema,
		MaxTokens:   e.cfg.MaxTokens,
		Temperature: e.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM feedback failed: %w", err)
	}

	var raw explanationOutput
	if err := json.Unmarshal(resp.JSON, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse feedback response: %w", err)
	}
	if strings.TrimSpace(raw.Explanation) == "" {
		return nil, fmt.Errorf("empty explanation")
	}

	category := req.Category
	if category == "" {
		category = CategoryUnclassified
	}
	return &Result{
		Category:       category,
		ClassifierName: "llm",
		Explanation:    strings.TrimSpace(raw.Explanation),
		Tip:            strings.TrimSpace(raw.Tip),
	}, nil
}

const explainSystemPrompt = `You are a friendly English tutor for learners whose first language is Korean. The learner tried to produce an English sentence and got it wrong.

Instructions:
- Explain the difference between the learner's sentence and the target in plain, simple English.
- Focus on the grammar or word choice that matters, not on punctuation or capitalization.
- Do not rewrite the whole lesson; one or two sentences is enough.
- The tip must be short and easy to remember.`

var explainUserTemplate = template.Must(template.New("feedback").Parse(`{{if .Source}}Meaning: {{.Source}}
{{end}}Target sentence: {{.Target}}
Learner's sentence: {{.Given}}
{{if .Note}}Teacher's note: {{.Note}}
{{end}}{{if .Category}}Detected mistake: {{.Category}}
{{end}}`))

func buildExplainMessage(req *ExplainRequest) (string, error) {
	var buf bytes.Buffer
	if err := explainUserTemplate.Execute(&buf, req); err != nil {
		return "", err
	}
	return buf.String(), nil
}
