package llm

import (
	"context"
	"regexp"
	"sync"
)

// ScriptedResponse is one canned reply for the scripted client.
type ScriptedResponse struct {
	// QuestionPattern is matched (regex) against the question. Empty
	// matches any question.
	QuestionPattern string
	Response        string
	Err             error
	Repeatable      bool

	used bool
}

// Call records one Generate invocation for verification in tests.
type Call struct {
	ContextText string
	Question    string
}

// ScriptedClient implements Client with scripted responses. It exists for
// tests: the orchestrator can be exercised without any remote model.
type ScriptedClient struct {
	mu       sync.Mutex
	scripts  []ScriptedResponse
	calls    []Call
	fallback string
}

// NewScriptedClient creates a scripted client with an optional fallback
// response used when no script matches.
func NewScriptedClient(fallback string) *ScriptedClient {
	return &ScriptedClient{fallback: fallback}
}

// Script appends a scripted response.
func (s *ScriptedClient) Script(r ScriptedResponse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scripts = append(s.scripts, r)
}

// Generate returns the first unused matching script, or the fallback.
func (s *ScriptedClient) Generate(ctx context.Context, contextText, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, Call{ContextText: contextText, Question: question})

	for i := range s.scripts {
		script := &s.scripts[i]
		if script.used && !script.Repeatable {
			continue
		}
		if script.QuestionPattern != "" {
			matched, err := regexp.MatchString(script.QuestionPattern, question)
			if err != nil || !matched {
				continue
			}
		}
		script.used = true
		if script.Err != nil {
			return "", script.Err
		}
		return script.Response, nil
	}

	return s.fallback, nil
}

// Calls returns a copy of all recorded invocations.
func (s *ScriptedClient) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Call, len(s.calls))
	copy(out, s.calls)
	return out
}
