package feedback

import (
	"context"
	"sync"

	"github.com/abhisek/wordiz/internal/answer"
	"github.com/abhisek/wordiz/internal/llm"
	"github.com/abhisek/wordiz/internal/sentence"
)

// Service coordinates rule-based classification and optional LLM
// explanations.
type Service struct {
	classifiers []Classifier
	explainer   *Explainer
	pending     chan explainJob

	mu     sync.Mutex
	closed bool
}

type explainJob struct {
	ctx context.Context
	req *ExplainRequest
	cb  func(*Result)
}

// NewService creates a feedback service. If provider is nil, only
// rule-based classification is available.
func NewService(provider llm.Provider) *Service {
	s := &Service{
		classifiers: DefaultClassifiers(),
		pending:     make(chan explainJob, 32),
	}
	if provider != nil {
		s.explainer = NewExplainer(provider, DefaultExplainerConfig())
		go s.processLoop()
	}
	return s
}

// HasExplainer reports whether LLM explanations are available.
func (s *Service) HasExplainer() bool {
	return s.explainer != nil
}

// Analyze classifies a wrong answer synchronously. When an LLM is
// available an explanation is requested in the background and cb fires
// with it. Returns nil for correct or empty answers.
func (s *Service) Analyze(ctx context.Context, item sentence.Item, v answer.Verdict, cb func(*Result)) *Result {
	if v.Correct || v.Empty {
		return nil
	}

	result := RunClassifiers(s.classifiers, NewClassifyInput(v))
	if result == nil {
		result = &Result{
			Category:       CategoryUnclassified,
			Confidence:     0,
			ClassifierName: "none",
		}
	}

	if s.explainer != nil {
		s.dispatch(ctx, &ExplainRequest{
			Source:   item.Source,
			Target:   item.Target,
			Given:    v.Given,
			Note:     item.Note,
			Category: result.Category,
		}, cb)
	}
	return result
}

func (s *Service) dispatch(ctx context.Context, req *ExplainRequest, cb func(*Result)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	select {
	case s.pending <- explainJob{ctx: ctx, req: req, cb: cb}:
	default:
		// Queue full; explanations are optional.
	}
}

func (s *Service) processLoop() {
	for job := range s.pending {
		result, err := s.explainer.Explain(job.ctx, job.req)
		if err != nil || result == nil {
			continue
		}
		if job.cb != nil {
			job.cb(result)
		}
	}
}

// Close shuts down the async processing loop.
func (s *Service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.closed {
		s.closed = true
		close(s.pending)
	}
}
