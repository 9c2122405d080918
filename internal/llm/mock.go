package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
)

// MockReply is one scripted outcome for MockProvider.
type MockReply struct {
	JSON         json.RawMessage
	InputTokens  int
	OutputTokens int
	Err          error
}

// MockProvider replays scripted replies in order and keeps every prompt it
// was given. Replies go through the same schema check as real providers.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockReply
	prompts []Prompt
}

func NewMockProvider(replies ...MockReply) *MockProvider {
	return &MockProvider{replies: replies}
}

func (m *MockProvider) Model() string { return "mock" }

func (m *MockProvider) Complete(_ context.Context, p Prompt) (*Completion, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, p)
	if len(m.replies) == 0 {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{Err: errors.New("mock: no replies queued")}
	}
	r := m.replies[0]
	m.replies = m.replies[1:]
	m.mu.Unlock()

	if r.Err != nil {
		return nil, r.Err
	}
	return finish(p, &Completion{
		JSON:         r.JSON,
		Model:        "mock",
		InputTokens:  r.InputTokens,
		OutputTokens: r.OutputTokens,
	})
}

// Queue appends replies.
func (m *MockProvider) Queue(replies ...MockReply) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, replies...)
}

// Prompts returns a copy of the prompts received so far.
func (m *MockProvider) Prompts() []Prompt {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Prompt(nil), m.prompts...)
}
