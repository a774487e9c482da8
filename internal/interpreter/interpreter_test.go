package interpreter

import (
	"testing"
	"time"
)

var testNow = time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)

func TestInterpret_StructuredExpenses(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantDesc string
		wantCents int64
		wantDate time.Time
	}{
		{
			name:      "spent today",
			input:     "spent 200 on groceries today",
			wantDesc:  "groceries",
			wantCents: 20000,
			wantDate:  testNow,
		},
		{
			name:      "spent yesterday",
			input:     "spent 50 on coffee yesterday",
			wantDesc:  "coffee",
			wantCents: 5000,
			wantDate:  testNow.AddDate(0, 0, -1),
		},
		{
			name:      "spent n days ago",
			input:     "spent 75 on books 3 days ago",
			wantDesc:  "books",
			wantCents: 7500,
			wantDate:  testNow.AddDate(0, 0, -3),
		},
		{
			name:      "singular day ago",
			input:     "spent 5 on gum 1 day ago",
			wantDesc:  "gum",
			wantCents: 500,
			wantDate:  testNow.AddDate(0, 0, -1),
		},
		{
			name:      "uppercase input is normalized",
			input:     "SPENT 10 ON SNACKS TODAY",
			wantDesc:  "snacks",
			wantCents: 1000,
			wantDate:  testNow,
		},
		{
			name:      "multi-word description",
			input:     "spent 120 on dinner with friends yesterday",
			wantDesc:  "dinner with friends",
			wantCents: 12000,
			wantDate:  testNow.AddDate(0, 0, -1),
		},
		{
			name:      "embedded in sentence",
			input:     "i think i spent 30 on lunch today, right?",
			wantDesc:  "lunch",
			wantCents: 3000,
			wantDate:  testNow,
		},
	}

	interp := NewPattern()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := interp.Interpret(tt.input, testNow)
			if got.Kind != KindExpense {
				t.Fatalf("Interpret(%q) kind = %v, want KindExpense", tt.input, got.Kind)
			}
			if got.Description != tt.wantDesc {
				t.Errorf("description = %q, want %q", got.Description, tt.wantDesc)
			}
			if got.Amount.Cents != tt.wantCents {
				t.Errorf("amount cents = %d, want %d", got.Amount.Cents, tt.wantCents)
			}
			if !got.EffectiveDate.Equal(tt.wantDate) {
				t.Errorf("effective date = %v, want %v", got.EffectiveDate, tt.wantDate)
			}
		})
	}
}

func TestInterpret_FreeForm(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"greeting", "hello"},
		{"question", "how much did I spend this week?"},
		{"missing amount", "spent on groceries today"},
		{"missing time anchor", "spent 200 on groceries"},
		{"decimal amount breaks the pattern", "spent 200.50 on groceries today"},
		{"negative amount breaks the pattern", "spent -200 on groceries today"},
		{"wrong anchor word", "spent 200 on groceries tomorrow"},
		{"empty", ""},
	}

	interp := NewPattern()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := interp.Interpret(tt.input, testNow)
			if got.Kind != KindChat {
				t.Fatalf("Interpret(%q) kind = %v, want KindChat", tt.input, got.Kind)
			}
			if got.Text != tt.input {
				t.Errorf("text = %q, want original input %q", got.Text, tt.input)
			}
		})
	}
}

func TestInterpret_ZeroAmountStillClassifies(t *testing.T) {
	// A zero amount is syntactically valid; rejecting it is the
	// orchestrator's job, not the classifier's.
	got := NewPattern().Interpret("spent 0 on nothing today", testNow)
	if got.Kind != KindExpense {
		t.Fatalf("kind = %v, want KindExpense", got.Kind)
	}
	if got.Amount.Cents != 0 {
		t.Errorf("amount cents = %d, want 0", got.Amount.Cents)
	}
}

func TestInterpret_Idempotent(t *testing.T) {
	interp := NewPattern()
	inputs := []string{
		"spent 200 on groceries today",
		"hello there",
		"spent 15 on tea 7 days ago",
	}
	for _, input := range inputs {
		first := interp.Interpret(input, testNow)
		second := interp.Interpret(input, testNow)
		if first != second {
			t.Errorf("Interpret(%q) not idempotent: %+v vs %+v", input, first, second)
		}
	}
}

func TestInterpret_HugeAmountFallsThrough(t *testing.T) {
	got := NewPattern().Interpret("spent 99999999999999999999 on yachts today", testNow)
	if got.Kind != KindChat {
		t.Fatalf("kind = %v, want KindChat for unparseable amount", got.Kind)
	}
}
