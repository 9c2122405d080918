package llm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini-2024-07-18",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 12, "total_tokens": 52},
	}
}

func TestOpenAI_Complete(t *testing.T) {
	var sent struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		ResponseFormat struct {
			Type       string `json:"type"`
			JSONSchema struct {
				Name   string `json:"name"`
				Strict bool   `json:"strict"`
			} `json:"json_schema"`
		} `json:"response_format"`
	}
	srv := jsonServer(t, http.StatusOK, chatCompletion(`{"ok":true}`, "stop"), func(r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &sent)
	})

	p, err := openOpenAI(context.Background(), Config{APIKey: "k", BaseURL: srv.URL + "/v1"}, "gpt-4o-mini")
	require.NoError(t, err)

	c, err := p.Complete(context.Background(), Prompt{System: "sys", User: "question", Schema: okSchema, MaxTokens: 50})
	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(c.JSON))
	assert.Equal(t, "gpt-4o-mini-2024-07-18", c.Model)
	assert.Equal(t, 40, c.InputTokens)
	assert.Equal(t, 12, c.OutputTokens)

	assert.Equal(t, "gpt-4o-mini", sent.Model)
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, "system", sent.Messages[0].Role)
	assert.Equal(t, "question", sent.Messages[1].Content)
	assert.Equal(t, "json_schema", sent.ResponseFormat.Type)
	assert.Equal(t, "ok", sent.ResponseFormat.JSONSchema.Name)
	assert.True(t, sent.ResponseFormat.JSONSchema.Strict)
}

func TestOpenAI_NoSystemMessageWhenEmpty(t *testing.T) {
	var roles []string
	srv := jsonServer(t, http.StatusOK, chatCompletion("plain", "stop"), func(r *http.Request) {
		var body struct {
			Messages []struct {
				Role string `json:"role"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		for _, m := range body.Messages {
			roles = append(roles, m.Role)
		}
	})
	p, err := openOpenAI(context.Background(), Config{APIKey: "k", BaseURL: srv.URL + "/v1"}, "gpt-4o-mini")
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), Prompt{User: "hi", MaxTokens: 10})
	require.NoError(t, err)
	assert.Equal(t, []string{"user"}, roles)
}

func TestOpenAI_Truncated(t *testing.T) {
	srv := jsonServer(t, http.StatusOK, chatCompletion(`{"ok":`, "length"), nil)
	p, err := openOpenAI(context.Background(), Config{APIKey: "k", BaseURL: srv.URL + "/v1"}, "gpt-4o-mini")
	require.NoError(t, err)

	_, err = p.Complete(context.Background(), Prompt{User: "hi", Schema: okSchema, MaxTokens: 2})
	var truncated *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &truncated)
}

func TestOpenAI_ErrorClassification(t *testing.T) {
	body := map[string]any{"error": map[string]any{"message": "nope", "type": "server_error"}}
	tests := []struct {
		name   string
		status int
		target any
	}{
		{"rate limit", http.StatusTooManyRequests, new(*ErrRateLimit)},
		{"bad key", http.StatusUnauthorized, new(*ErrRequestRejected)},
		{"server", http.StatusBadGateway, new(*ErrProviderUnavailable)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := jsonServer(t, tt.status, body, nil)
			p, err := openOpenAI(context.Background(), Config{APIKey: "k", BaseURL: srv.URL + "/v1"}, "gpt-4o-mini")
			require.NoError(t, err)

			_, err = p.Complete(context.Background(), Prompt{User: "hi", MaxTokens: 10})
			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestOpenRouter_DefaultsBaseURL(t *testing.T) {
	p, err := openOpenRouter(context.Background(), Config{APIKey: "k"}, "google/gemini-2.0-flash-001")
	require.NoError(t, err)
	assert.Equal(t, "google/gemini-2.0-flash-001", p.Model())

	_, err = openOpenRouter(context.Background(), Config{}, "m")
	assert.Error(t, err)
}
