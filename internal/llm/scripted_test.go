package llm

import (
	"context"
	"errors"
	"testing"
)

func TestScriptedClient_MatchesByPattern(t *testing.T) {
	client := NewScriptedClient("fallback")
	client.Script(ScriptedResponse{QuestionPattern: "balance", Response: "about your balance"})
	client.Script(ScriptedResponse{QuestionPattern: "saving", Response: "about saving"})

	ctx := context.Background()

	got, err := client.Generate(ctx, "", "how do I start saving?")
	if err != nil {
		t.Fatal(err)
	}
	if got != "about saving" {
		t.Errorf("Generate = %q, want pattern-matched response", got)
	}

	got, _ = client.Generate(ctx, "", "something unrelated")
	if got != "fallback" {
		t.Errorf("Generate = %q, want fallback for unmatched question", got)
	}
}

func TestScriptedClient_SingleUseUnlessRepeatable(t *testing.T) {
	client := NewScriptedClient("fallback")
	client.Script(ScriptedResponse{Response: "once"})

	ctx := context.Background()
	first, _ := client.Generate(ctx, "", "q")
	second, _ := client.Generate(ctx, "", "q")

	if first != "once" || second != "fallback" {
		t.Errorf("responses = %q, %q; want script consumed after first use", first, second)
	}
}

func TestScriptedClient_Error(t *testing.T) {
	client := NewScriptedClient("fallback")
	client.Script(ScriptedResponse{Err: ErrUnavailable, Repeatable: true})

	_, err := client.Generate(context.Background(), "", "q")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Generate err = %v, want ErrUnavailable", err)
	}

	_, err = client.Generate(context.Background(), "", "q")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("repeatable error script should keep failing, got %v", err)
	}
}

func TestScriptedClient_RecordsCalls(t *testing.T) {
	client := NewScriptedClient("ok")

	client.Generate(context.Background(), "some context", "first")
	client.Generate(context.Background(), "other context", "second")

	calls := client.Calls()
	if len(calls) != 2 {
		t.Fatalf("calls = %d, want 2", len(calls))
	}
	if calls[0].ContextText != "some context" || calls[0].Question != "first" {
		t.Errorf("calls[0] = %+v", calls[0])
	}
	if calls[1].Question != "second" {
		t.Errorf("calls[1] = %+v", calls[1])
	}
}

func TestScriptedClient_CanceledContext(t *testing.T) {
	client := NewScriptedClient("ok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := client.Generate(ctx, "", "q"); err == nil {
		t.Error("Generate with canceled context should fail")
	}
	if len(client.Calls()) != 0 {
		t.Error("canceled call should not be recorded")
	}
}
