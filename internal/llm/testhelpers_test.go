package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhisek/wordiz/internal/store"
)

var okSchema = &Schema{
	Name: "ok",
	Definition: map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"ok": map[string]any{"type": "boolean"}},
		"required":             []any{"ok"},
		"additionalProperties": false,
	},
}

func jsonServer(t *testing.T, status int, body any, inspect func(*http.Request)) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if inspect != nil {
			inspect(r)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// fakeEvents captures LLM request events; other EventRepo methods are not
// used by the recorder.
type fakeEvents struct {
	store.EventRepo
	got []store.LLMRequestEventData
	err error
}

// AppendLLMRequest rejects a done context the way a database write would.
func (f *fakeEvents) AppendLLMRequest(ctx context.Context, d store.LLMRequestEventData) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.got = append(f.got, d)
	return f.err
}

func httptestServerWithHeader(t *testing.T, status int, key, value string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key != "" {
			w.Header().Set(key, value)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"type":"error","error":{"type":"api_error","message":"nope"}}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}
