package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestSummaryCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"summary", "--now", "2024-02-03"})
	t.Cleanup(func() { summaryNow = "" })

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("summary: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"Total expenses:  $484.44",
		"This month:      $0.00 (February 2024)",
		"Monthly change:  -$484.44 down",
		"Food & Dining",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestSummaryCommandRejectsBadDate(t *testing.T) {
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"summary", "--now", "yesterday"})
	t.Cleanup(func() { summaryNow = "" })

	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected an error for an unparsable date")
	}
}

func TestCategoriesCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"categories"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("categories: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 9 || lines[0] != "Food & Dining" || lines[8] != "Other" {
		t.Fatalf("categories = %q", lines)
	}
}
