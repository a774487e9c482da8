package chat

import (
	"fmt"
	"strings"

	"smartspend/internal/core"
)

// BuildContext renders the financial summary handed to the language model:
// initial funds (balance plus everything spent), total spent, current
// balance and an itemized list of every expense. It is a read-only
// projection and deterministic for a given ledger snapshot.
func BuildContext(balance core.Money, expenses []core.Expense) string {
	var totalSpent core.Money
	for _, e := range expenses {
		totalSpent = totalSpent.Add(e.Amount)
	}
	initial := balance.Add(totalSpent)

	var b strings.Builder
	fmt.Fprintf(&b, "Initial money: %s\n", initial)
	fmt.Fprintf(&b, "Total spent: %s\n", totalSpent)
	fmt.Fprintf(&b, "Current balance: %s\n", balance)
	b.WriteString("\nExpense breakdown:\n")
	for _, e := range expenses {
		fmt.Fprintf(&b, "- %s: %s\n", e.Description, e.Amount)
	}
	return b.String()
}
