package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider(t *testing.T) {
	m := NewMockProvider(MockReply{JSON: json.RawMessage(`{"ok":true}`), InputTokens: 3})
	m.Queue(MockReply{Err: errors.New("scripted")})

	c, err := m.Complete(context.Background(), Prompt{User: "one"})
	require.NoError(t, err)
	assert.Equal(t, 3, c.InputTokens)
	assert.Equal(t, "mock", c.Model)

	_, err = m.Complete(context.Background(), Prompt{User: "two"})
	assert.EqualError(t, err, "scripted")

	_, err = m.Complete(context.Background(), Prompt{User: "three"})
	var down *ErrProviderUnavailable
	assert.ErrorAs(t, err, &down)

	prompts := m.Prompts()
	require.Len(t, prompts, 3)
	assert.Equal(t, "two", prompts[1].User)
}
