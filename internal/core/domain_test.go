package core

import (
	"testing"
	"time"
)

func TestDraftComplete(t *testing.T) {
	good := Draft{Title: "Coffee", Amount: "3.50", Category: CategoryFood, Date: "2024-01-12"}
	if !good.Complete() {
		t.Fatalf("expected complete draft")
	}

	cases := []struct {
		name string
		d    Draft
	}{
		{"missing title", Draft{Amount: "1", Category: CategoryFood, Date: "2024-01-12"}},
		{"blank title", Draft{Title: "   ", Amount: "1", Category: CategoryFood, Date: "2024-01-12"}},
		{"missing amount", Draft{Title: "t", Category: CategoryFood, Date: "2024-01-12"}},
		{"bad amount", Draft{Title: "t", Amount: "abc", Category: CategoryFood, Date: "2024-01-12"}},
		{"negative amount", Draft{Title: "t", Amount: "-2", Category: CategoryFood, Date: "2024-01-12"}},
		{"missing category", Draft{Title: "t", Amount: "1", Date: "2024-01-12"}},
		{"unknown category", Draft{Title: "t", Amount: "1", Category: "Groceries", Date: "2024-01-12"}},
		{"category differs in case", Draft{Title: "t", Amount: "1", Category: "healthcare", Date: "2024-01-12"}},
		{"missing date", Draft{Title: "t", Amount: "1", Category: CategoryFood}},
		{"bad date", Draft{Title: "t", Amount: "1", Category: CategoryFood, Date: "2024-13-40"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if tc.d.Complete() {
				t.Fatalf("expected incomplete draft: %+v", tc.d)
			}
			if _, ok := tc.d.Expense("x"); ok {
				t.Fatalf("expected Expense to refuse incomplete draft")
			}
		})
	}
}

func TestDraftExpense(t *testing.T) {
	d := Draft{Title: " Lunch ", Amount: "28,75", Category: CategoryFood, Date: "2024-01-09", Description: " meeting "}
	e, ok := d.Expense("abc")
	if !ok {
		t.Fatalf("expected conversion to succeed")
	}
	if e.ID != "abc" || e.Title != "Lunch" || e.Description != "meeting" {
		t.Fatalf("unexpected expense: %+v", e)
	}
	if !e.Amount.Equal(MustAmount("28.75")) {
		t.Fatalf("amount = %s, want 28.75", e.Amount)
	}
	if e.Month() != "2024-01" {
		t.Fatalf("month = %q", e.Month())
	}
	if got := e.Day(); !got.Equal(time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("day = %v", got)
	}
}

func TestEmptyDescriptionIsAbsent(t *testing.T) {
	d := Draft{Title: "t", Amount: "1", Category: CategoryOther, Date: "2024-01-01"}
	e, _ := d.Expense("1")
	if e.HasDescription() {
		t.Fatalf("expected no description")
	}
}

func TestCategoryStyleFallback(t *testing.T) {
	if len(Categories()) != 9 {
		t.Fatalf("expected nine categories, got %d", len(Categories()))
	}
	for _, c := range Categories() {
		if !IsCategory(c) {
			t.Fatalf("%q should be a category", c)
		}
	}
	if got, want := CategoryStyle("Groceries"), CategoryStyle(CategoryOther); got != want {
		t.Fatalf("fallback style = %+v, want %+v", got, want)
	}
	if CategoryStyle(CategoryFood) == CategoryStyle(CategoryOther) {
		t.Fatalf("food should have its own style")
	}
}

func TestMonthHelpers(t *testing.T) {
	cases := []struct {
		now       time.Time
		current   string
		previous  string
		prevLabel string
	}{
		{time.Date(2024, 3, 31, 12, 0, 0, 0, time.UTC), "2024-03", "2024-02", "February 2024"},
		{time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC), "2025-01", "2024-12", "December 2024"},
		{time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), "2026-10", "2026-09", "September 2026"},
	}
	for _, tc := range cases {
		if got := MonthBucket(tc.now); got != tc.current {
			t.Fatalf("MonthBucket(%v) = %q, want %q", tc.now, got, tc.current)
		}
		prev := PreviousMonth(tc.now)
		if got := MonthBucket(prev); got != tc.previous {
			t.Fatalf("previous bucket of %v = %q, want %q", tc.now, got, tc.previous)
		}
		if got := MonthLabel(prev); got != tc.prevLabel {
			t.Fatalf("label = %q, want %q", got, tc.prevLabel)
		}
	}
}
