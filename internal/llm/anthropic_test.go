package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":            "msg_1",
		"type":          "message",
		"role":          "assistant",
		"model":         "claude-haiku-4-5-20251001",
		"content":       []map[string]any{{"type": "text", "text": text}},
		"stop_reason":   stop,
		"stop_sequence": nil,
		"usage":         map[string]any{"input_tokens": 31, "output_tokens": 9},
	}
}

func TestAnthropic_Complete(t *testing.T) {
	var sent map[string]any
	srv := jsonServer(t, http.StatusOK, anthropicMessage(`{"ok":true}`, "end_turn"), func(r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &sent)
	})

	p, err := openAnthropic(context.Background(), Config{APIKey: "k", BaseURL: srv.URL}, "claude-haiku-4-5-20251001")
	require.NoError(t, err)

	c, err := p.Complete(context.Background(), Prompt{System: "be brief", User: "hi", Schema: okSchema, MaxTokens: 64})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(c.JSON))
	assert.Equal(t, 31, c.InputTokens)
	assert.Equal(t, 9, c.OutputTokens)
	assert.Equal(t, "claude-haiku-4-5-20251001", c.Model)

	assert.Equal(t, "claude-haiku-4-5-20251001", sent["model"])
	assert.EqualValues(t, 64, sent["max_tokens"])
	msgs, _ := sent["messages"].([]any)
	require.Len(t, msgs, 1)
}

func TestAnthropic_Truncated(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, anthropicMessage(`{"ok":`, "max_tokens"), nil)
	p, err := openAnthropic(context.Background(), Config{APIKey: "k", BaseURL: srv.URL}, "m")
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), Prompt{User: "hi", Schema: okSchema, MaxTokens: 2})
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
}

func TestAnthropic_SchemaMismatch(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, anthropicMessage(`{"ok":"yes"}`, "end_turn"), nil)
	p, err := openAnthropic(context.Background(), Config{APIKey: "k", BaseURL: srv.URL}, "m")
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), Prompt{User: "hi", Schema: okSchema, MaxTokens: 64})
	var invalid *ErrInvalidResponse
	assert.ErrorAs(t, err, &invalid)
}

func TestAnthropic_RateLimitCarriesRetryAfter(t *testing.T) {
	srv := httptestServerWithHeader(t, http.StatusTooManyRequests, "Retry-After", "7")
	p, err := openAnthropic(context.Background(), Config{APIKey: "k", BaseURL: srv.URL}, "m")
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), Prompt{User: "hi", MaxTokens: 64})
	var rl *ErrRateLimit
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 7*time.Second, rl.RetryAfter)
}

func TestAnthropic_StatusClassification(t *testing.T) {
	tests := []struct {
		status int
		check  func(*testing.T, error)
	}{
		{http.StatusUnauthorized, func(t *testing.T, err error) {
			var rejected *ErrRequestRejected
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, http.StatusUnauthorized, rejected.Status)
		}},
		{http.StatusInternalServerError, func(t *testing.T, err error) {
			var down *ErrProviderUnavailable
			assert.ErrorAs(t, err, &down)
		}},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			srv := httptestServerWithHeader(t, tt.status, "", "")
			p, err := openAnthropic(context.Background(), Config{APIKey: "k", BaseURL: srv.URL}, "m")
			require.NoError(t, err)
			_, err = p.Complete(context.Background(), Prompt{User: "hi", MaxTokens: 64})
			tt.check(t, err)
		})
	}
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 3*time.Second, parseRetryAfter("3"))
	assert.Zero(t, parseRetryAfter(""))
	assert.Zero(t, parseRetryAfter("-1"))
	assert.Zero(t, parseRetryAfter("Wed, 21 Oct 2015 07:28:00 GMT"))
}
