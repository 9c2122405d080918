package llm

import "strings"

// ModelCost is USD per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost prices one call or an aggregate of calls.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return (float64(inputTokens)*c.InputPerMTok + float64(outputTokens)*c.OutputPerMTok) / 1e6
}

// modelFamilies are priced by model ID prefix so dated snapshots
// ("claude-haiku-4-5-20251001", "gpt-4o-2024-08-06") resolve without a row
// each. The longest matching prefix wins.
var modelFamilies = []struct {
	prefix string
	cost   ModelCost
}{
	{"claude-3-5-haiku", ModelCost{0.8, 4}},
	{"claude-3-haiku", ModelCost{0.25, 1.25}},
	{"claude-haiku-4-5", ModelCost{1, 5}},
	{"claude-sonnet-4", ModelCost{3, 15}},
	{"claude-3-7-sonnet", ModelCost{3, 15}},
	{"claude-opus-4-5", ModelCost{5, 25}},
	{"claude-opus-4", ModelCost{15, 75}},

	{"gpt-4o-mini", ModelCost{0.15, 0.6}},
	{"gpt-4o", ModelCost{2.5, 10}},
	{"gpt-4.1-nano", ModelCost{0.1, 0.4}},
	{"gpt-4.1-mini", ModelCost{0.4, 1.6}},
	{"gpt-4.1", ModelCost{2, 8}},
	{"gpt-5-nano", ModelCost{0.05, 0.4}},
	{"gpt-5-mini", ModelCost{0.25, 2}},
	{"gpt-5", ModelCost{1.25, 10}},
	{"o4-mini", ModelCost{1.1, 4.4}},

	{"gemini-2.0-flash-lite", ModelCost{0.075, 0.3}},
	{"gemini-2.0-flash", ModelCost{0.1, 0.4}},
	{"gemini-2.5-flash-lite", ModelCost{0.1, 0.4}},
	{"gemini-2.5-flash", ModelCost{0.3, 2.5}},
	{"gemini-2.5-pro", ModelCost{1.25, 10}},
}

// LookupCost prices a model ID as recorded in LLM events. OpenRouter IDs
// carry a vendor prefix ("google/...") that is ignored. Unknown models
// return false.
func LookupCost(modelID string) (ModelCost, bool) {
	if i := strings.LastIndexByte(modelID, '/'); i >= 0 {
		modelID = modelID[i+1:]
	}
	var best ModelCost
	bestLen := 0
	for _, f := range modelFamilies {
		if len(f.prefix) > bestLen && strings.HasPrefix(modelID, f.prefix) {
			best, bestLen = f.cost, len(f.prefix)
		}
	}
	return best, bestLen > 0
}
