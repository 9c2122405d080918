package feedback

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/wordiz/internal/answer"
	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/sentence"
)

var testItem = sentence.Item{
	ID:     "1-3",
	Level:  1,
	Source: "나는 행복해요.",
	Target: "I am happy.",
	Note:   "be동사",
}

func verdict(given string) answer.Verdict {
	return answer.NewEvaluator().Check(answer.InputTyped, given, testItem.Target)
}

func TestService_CorrectAnswerHasNoFeedback(t *testing.T) {
	svc := NewService(nil)
	defer svc.Close()

	if r := svc.Analyze(context.Background(), testItem, verdict("i am happy"), nil); r != nil {
		t.Errorf("Analyze = %+v, want nil", r)
	}
	if r := svc.Analyze(context.Background(), testItem, verdict(""), nil); r != nil {
		t.Errorf("Analyze(empty) = %+v, want nil", r)
	}
}

func TestService_RuleBased(t *testing.T) {
	svc := NewService(nil)
	defer svc.Close()

	r := svc.Analyze(context.Background(), testItem, verdict("am I happy"), nil)
	if r.Category != CategoryWordOrder {
		t.Errorf("got %q, want %q", r.Category, CategoryWordOrder)
	}
	if svc.HasExplainer() {
		t.Error("HasExplainer = true without a provider")
	}
}

func TestService_UnclassifiedWithoutLLM(t *testing.T) {
	svc := NewService(nil)
	defer svc.Close()

	r := svc.Analyze(context.Background(), testItem, verdict("hello"), nil)
	if r.Category != CategoryUnclassified {
		t.Errorf("got %q, want %q", r.Category, CategoryUnclassified)
	}
	if r.ClassifierName != "none" {
		t.Errorf("got classifier %q, want none", r.ClassifierName)
	}
}

func TestService_LLMExplanation(t *testing.T) {
	resp := json.RawMessage(`{"explanation":"Use 'am' with 'I', not 'is'.","tip":"I am, you are, he is."}`)
	mock := llm.NewMockProvider(llm.MockReply{JSON: resp})
	svc := NewService(mock)
	defer svc.Close()

	var mu sync.Mutex
	var asyncResult *Result
	done := make(chan struct{})

	cb := func(r *Result) {
		mu.Lock()
		asyncResult = r
		mu.Unlock()
		close(done)
	}

	syncResult := svc.Analyze(context.Background(), testItem, verdict("I is happy"), cb)
	if syncResult.Category != CategoryWrongWord {
		t.Errorf("sync result: got %q, want %q", syncResult.Category, CategoryWrongWord)
	}

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for async explanation")
	}

	mu.Lock()
	defer mu.Unlock()

	if asyncResult == nil {
		t.Fatal("async result is nil")
	}
	if asyncResult.Category != CategoryWrongWord {
		t.Errorf("async category = %q, want %q", asyncResult.Category, CategoryWrongWord)
	}
	if !strings.Contains(asyncResult.Explanation, "am") {
		t.Errorf("explanation = %q", asyncResult.Explanation)
	}
	if asyncResult.Tip == "" {
		t.Error("tip is empty")
	}

	prompt := mock.Prompts()[0].User
	for _, want := range []string{"I am happy.", "i is happy", "나는 행복해요.", "wrong-word"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
}

func TestService_AnalyzeAfterClose(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock)
	svc.Close()
	svc.Close()

	r := svc.Analyze(context.Background(), testItem, verdict("I is happy"), func(*Result) {
		t.Error("callback fired after Close")
	})
	if r == nil {
		t.Fatal("rule-based result missing after Close")
	}
}

func TestExplainer_EmptyExplanation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockReply{JSON: json.RawMessage(`{"explanation":" ","tip":""}`)})
	e := NewExplainer(mock, DefaultExplainerConfig())

	if _, err := e.Explain(context.Background(), &ExplainRequest{Target: "Hi.", Given: "hello"}); err == nil {
		t.Error("Explain accepted an empty explanation")
	}
	if mock.Prompts()[0].Schema != ExplanationSchema {
		t.Error("request did not carry the explanation schema")
	}
}
