package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/google/subcommands"
)

func TestAddCmd(t *testing.T) {
	cfg := tempConfig(t, "")
	captureStdout(t)

	status := execute(t, &addCmd{}, cfg, "-d", "2025-03-01", "-c", "income", "-a", "100", "-m", "salary")
	if status != subcommands.ExitSuccess {
		t.Fatalf("add: got status %v, want success", status)
	}
	if got := readStorage(t, cfg); got != salary {
		t.Errorf("storage file = %q, want %q", got, salary)
	}
}

func TestAddCmd_Errors(t *testing.T) {
	testCases := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"missing amount", []string{"-c", "income"}, subcommands.ExitUsageError},
		{"invalid amount", []string{"-a", "ten"}, subcommands.ExitFailure},
		{"invalid date", []string{"-a", "10", "-d", "03/01/2025"}, subcommands.ExitFailure},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := tempConfig(t, "")
			captureStdout(t)
			if got := execute(t, &addCmd{}, cfg, tc.args...); got != tc.want {
				t.Errorf("add %v: got status %v, want %v", tc.args, got, tc.want)
			}
		})
	}
}

func TestListCmd(t *testing.T) {
	cfg := tempConfig(t, salary+groceries)
	out := captureStdout(t)

	if status := execute(t, &listCmd{}, cfg); status != subcommands.ExitSuccess {
		t.Fatalf("list: got status %v, want success", status)
	}
	want := `| # | Date | Category | Amount | Description |
|--:|------|----------|-------:|-------------|
| 1 | 2025-03-01 | income | $100.00 | salary |
| 2 | 2025-03-02 | expense | $30.50 | groceries |

`
	if got := out.String(); got != want {
		t.Errorf("list output:\n%s\nwant:\n%s", got, want)
	}
}

func TestListCmd_Period(t *testing.T) {
	april := "Date: 2025-04-01\nCategory: income\nAmount: 100\nDescription: salary\n---\n"
	cfg := tempConfig(t, salary+groceries+april)
	out := captureStdout(t)

	if status := execute(t, &listCmd{}, cfg, "-p", "month", "-on", "2025-04-15"); status != subcommands.ExitSuccess {
		t.Fatalf("list: got status %v, want success", status)
	}
	got := out.String()
	assertContains(t, got, "# 2025-04-01 to 2025-04-30", "| 3 | 2025-04-01 | income | $100.00 | salary |")
	if strings.Contains(got, "groceries") {
		t.Errorf("list -p month shows records out of the period:\n%s", got)
	}
}

func TestListCmd_HeadTail(t *testing.T) {
	cfg := tempConfig(t, salary+groceries)

	out := captureStdout(t)
	execute(t, &listCmd{}, cfg, "-head", "1")
	if got := out.String(); !strings.Contains(got, "salary") || strings.Contains(got, "groceries") {
		t.Errorf("list -head 1:\n%s", got)
	}

	out = captureStdout(t)
	execute(t, &listCmd{}, cfg, "-tail", "1")
	if got := out.String(); strings.Contains(got, "salary") || !strings.Contains(got, "| 2 |") {
		t.Errorf("list -tail 1:\n%s", got)
	}

	if status := execute(t, &listCmd{}, cfg, "-head", "1", "-tail", "1"); status != subcommands.ExitUsageError {
		t.Errorf("list -head -tail: got status %v, want usage error", status)
	}
}

func TestEditCmd(t *testing.T) {
	cfg := tempConfig(t, salary+groceries)
	captureStdout(t)

	if status := execute(t, &editCmd{}, cfg, "-n", "1", "-a", "120.00"); status != subcommands.ExitSuccess {
		t.Fatalf("edit: got status %v, want success", status)
	}
	want := strings.Replace(salary, "Amount: 100\n", "Amount: 120\n", 1) + groceries
	if got := readStorage(t, cfg); got != want {
		t.Errorf("storage file = %q, want %q", got, want)
	}

	if status := execute(t, &editCmd{}, cfg, "-n", "3", "-m", "x"); status != subcommands.ExitFailure {
		t.Errorf("edit unknown record: got status %v, want failure", status)
	}
	if status := execute(t, &editCmd{}, cfg, "-n", "1", "-d", "soon"); status != subcommands.ExitFailure {
		t.Errorf("edit with invalid date: got status %v, want failure", status)
	}
	if got := readStorage(t, cfg); got != want {
		t.Errorf("failed edits changed the storage file: %q", got)
	}
}

func TestDeleteCmd(t *testing.T) {
	cfg := tempConfig(t, salary+groceries)
	captureStdout(t)

	if status := execute(t, &deleteCmd{}, cfg, "-n", "2"); status != subcommands.ExitSuccess {
		t.Fatalf("delete: got status %v, want success", status)
	}
	if got := readStorage(t, cfg); got != salary {
		t.Errorf("storage file = %q, want %q", got, salary)
	}
	if status := execute(t, &deleteCmd{}, cfg); status != subcommands.ExitUsageError {
		t.Errorf("delete without -n: got status %v, want usage error", status)
	}
}

func TestSearchCmd(t *testing.T) {
	cfg := tempConfig(t, salary+groceries)

	out := captureStdout(t)
	execute(t, &searchCmd{}, cfg, "-a", "30.50")
	if got := out.String(); !strings.Contains(got, "groceries") || strings.Contains(got, "salary") {
		t.Errorf("search -a 30.50:\n%s", got)
	}

	out = captureStdout(t)
	execute(t, &searchCmd{}, cfg, "-c", "Income", "-d", "2025-03-02")
	if got, want := out.String(), "No records found.\n\n"; got != want {
		t.Errorf("search with no match = %q, want %q", got, want)
	}
}

func TestSubCentAmounts(t *testing.T) {
	cfg := tempConfig(t, "")
	captureStdout(t)
	if status := execute(t, &addCmd{}, cfg, "-d", "2025-03-01", "-c", "expense", "-a", "0.004", "-m", "fee"); status != subcommands.ExitSuccess {
		t.Fatalf("add: got status %v, want success", status)
	}

	out := captureStdout(t)
	execute(t, &listCmd{}, cfg)
	assertContains(t, out.String(), "| 1 | 2025-03-01 | expense | 0.004 USD | fee |")

	// The amount shown by list finds the record.
	out = captureStdout(t)
	execute(t, &searchCmd{}, cfg, "-a", "0.004")
	assertContains(t, out.String(), "| 1 | 2025-03-01 | expense | 0.004 USD | fee |")
}

func TestBalanceCmd(t *testing.T) {
	cfg := tempConfig(t, salary+groceries)
	cfg.Currency = "EUR"
	out := captureStdout(t)

	if status := execute(t, &balanceCmd{}, cfg, "-p", "day", "-on", "2025-03-02"); status != subcommands.ExitSuccess {
		t.Fatalf("balance: got status %v, want success", status)
	}
	assertContains(t, out.String(),
		"# 2025-03-02",
		"| Income | €0.00 |",
		"| Expense | €30.50 |",
		"1 records.",
	)
}

func TestFmtCmd(t *testing.T) {
	cfg := tempConfig(t, groceries+"\nDate: 2025-3-1\nCategory: income\nAmount: 100.00\nDescription: salary\n---\n")
	captureStdout(t)

	if status := execute(t, &fmtCmd{}, cfg, "-sort"); status != subcommands.ExitSuccess {
		t.Fatalf("fmt: got status %v, want success", status)
	}
	if got := readStorage(t, cfg); got != salary+groceries {
		t.Errorf("storage file = %q, want %q", got, salary+groceries)
	}
}

func TestQueryCmd(t *testing.T) {
	cfg := tempConfig(t, salary+groceries)
	out := captureStdout(t)

	if status := execute(t, &queryCmd{}, cfg, "-compact", "$[*].description"); status != subcommands.ExitSuccess {
		t.Fatalf("query: got status %v, want success", status)
	}
	if got, want := out.String(), "[\"salary\",\"groceries\"]\n"; got != want {
		t.Errorf("query output = %q, want %q", got, want)
	}

	if status := execute(t, &queryCmd{}, cfg); status != subcommands.ExitUsageError {
		t.Errorf("query without expression: got status %v, want usage error", status)
	}
}

func TestTopicCmd(t *testing.T) {
	out := captureStdout(t)
	if status := execute(t, &topicCmd{}, Config{}, "menu"); status != subcommands.ExitSuccess {
		t.Fatalf("topic menu: got status %v, want success", status)
	}
	if !strings.HasPrefix(out.String(), "# ") {
		t.Errorf("topic menu does not start with a heading:\n%s", out.String())
	}
	if status := execute(t, &topicCmd{}, Config{}, "nope"); status != subcommands.ExitFailure {
		t.Errorf("topic nope: got status %v, want failure", status)
	}
}

func TestCommands_ConfigError(t *testing.T) {
	captureStdout(t)
	c := &listCmd{}
	f := flagSet(t, c)
	if status := c.Execute(context.Background(), f, Config{}, ErrNoStoragePath); status != subcommands.ExitFailure {
		t.Errorf("list without storage path: got status %v, want failure", status)
	}
}
