package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  ModelCost
	}{
		{"gpt-4o-mini", ModelCost{0.15, 0.6}},
		{"gpt-4o-mini-2024-07-18", ModelCost{0.15, 0.6}},
		{"gpt-4o-2024-08-06", ModelCost{2.5, 10}},
		{"claude-haiku-4-5-20251001", ModelCost{1, 5}},
		{"claude-opus-4-5-20251101", ModelCost{5, 25}},
		{"claude-opus-4-1-20250805", ModelCost{15, 75}},
		{"google/gemini-2.0-flash-001", ModelCost{0.1, 0.4}},
		{"gemini-2.0-flash-lite", ModelCost{0.075, 0.3}},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			got, ok := LookupCost(tt.model)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := LookupCost("mock")
	assert.False(t, ok)
}

func TestModelCost_Cost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	assert.InDelta(t, 0.006, c.Cost(1000, 1000), 1e-12)
	assert.Zero(t, c.Cost(0, 0))
}
