package ledger

import (
	"fmt"
	"sync"
	"testing"

	"expensetracker/internal/core"
)

func sequentialIDs() Option {
	n := 0
	return WithIDGenerator(func() string {
		n++
		return fmt.Sprintf("gen-%d", n)
	})
}

func TestAddInsertsAtHead(t *testing.T) {
	s := NewSeeded(sequentialIDs())
	before := s.Len()

	v := s.Version()
	ev, ok := s.Add(core.Draft{Title: "Train", Amount: "9.90", Category: core.CategoryTransport, Date: "2024-02-01"})
	if !ok {
		t.Fatalf("expected add to succeed")
	}
	e := ev.Expense
	if ev.Kind != EventAdded || ev.Version != v+1 {
		t.Fatalf("event = %+v, want added at version %d", ev, v+1)
	}
	if e.ID != "gen-1" {
		t.Fatalf("id = %q, want gen-1", e.ID)
	}
	if s.Len() != before+1 {
		t.Fatalf("len = %d, want %d", s.Len(), before+1)
	}
	if got := s.All()[0]; got.ID != e.ID {
		t.Fatalf("head = %q, want %q", got.ID, e.ID)
	}
}

func TestAddRejectsIncompleteDraftsSilently(t *testing.T) {
	base := core.Draft{Title: "t", Amount: "1", Category: core.CategoryOther, Date: "2024-01-01"}
	drafts := map[string]core.Draft{}
	d := base
	d.Title = ""
	drafts["title"] = d
	d = base
	d.Amount = ""
	drafts["amount"] = d
	d = base
	d.Category = ""
	drafts["category"] = d
	d = base
	d.Date = ""
	drafts["date"] = d
	d = base
	d.Category = "Groceries"
	drafts["unknown category"] = d

	for field, draft := range drafts {
		t.Run(field, func(t *testing.T) {
			s := NewSeeded()
			v := s.Version()
			ev, ok := s.Add(draft)
			if ok {
				t.Fatalf("expected rejection for %s", field)
			}
			if ev.Kind != "" || ev.Version != v {
				t.Fatalf("rejection event = %+v, want bare version %d", ev, v)
			}
			if s.Len() != 10 || s.Version() != v {
				t.Fatalf("store mutated: len=%d version=%d", s.Len(), s.Version())
			}
		})
	}
}

func TestRemove(t *testing.T) {
	s := NewSeeded()
	v := s.Version()
	ev, ok := s.Remove("5")
	if !ok {
		t.Fatalf("expected removal of 5")
	}
	if ev.Kind != EventRemoved || ev.Expense.Title != "Electricity Bill" || ev.Version != v+1 {
		t.Fatalf("event = %+v", ev)
	}
	if s.Len() != 9 {
		t.Fatalf("len = %d, want 9", s.Len())
	}
	if ev, ok := s.Remove("5"); ok || ev.Version != v+1 {
		t.Fatalf("second removal should be a no-op, got %+v ok=%v", ev, ok)
	}
	if s.Len() != 9 {
		t.Fatalf("len after second remove = %d, want 9", s.Len())
	}
	if _, ok := s.Remove("missing"); ok {
		t.Fatalf("unknown id should be a no-op")
	}

	want := []string{"1", "2", "3", "4", "6", "7", "8", "9", "10"}
	for i, e := range s.All() {
		if e.ID != want[i] {
			t.Fatalf("order[%d] = %q, want %q", i, e.ID, want[i])
		}
	}
}

func TestInsertRefusesDuplicateAndEmptyIDs(t *testing.T) {
	s := NewSeeded()
	if s.Insert(core.Expense{ID: "1", Title: "dup"}) {
		t.Fatalf("duplicate id accepted")
	}
	if s.Insert(core.Expense{Title: "no id"}) {
		t.Fatalf("empty id accepted")
	}
}

func TestInsertKeepsCategoriesOutsideTheEnumeration(t *testing.T) {
	s := New()
	if !s.Insert(core.Expense{ID: "a", Title: "Imported", Category: "Groceries", Date: "2024-01-01"}) {
		t.Fatalf("insert refused a free-form category")
	}
	if got, _ := s.Get("a"); got.Category != "Groceries" {
		t.Fatalf("category = %q", got.Category)
	}
}

func TestAddRetriesOnIDCollision(t *testing.T) {
	ids := []string{"1", "1", "fresh"}
	s := NewSeeded(WithIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]
		return id
	}))
	ev, ok := s.Add(core.Draft{Title: "t", Amount: "1", Category: core.CategoryOther, Date: "2024-01-01"})
	if !ok || ev.Expense.ID != "fresh" {
		t.Fatalf("got id %q ok=%v, want fresh", ev.Expense.ID, ok)
	}
}

func TestConcurrentMutationsReportTheirOwnVersion(t *testing.T) {
	s := New()
	const n = 50
	versions := make(chan uint64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ev, ok := s.Add(core.Draft{Title: "t", Amount: "1", Category: core.CategoryOther, Date: "2024-01-01"})
			if ok {
				versions <- ev.Version
			}
		}()
	}
	wg.Wait()
	close(versions)

	seen := map[uint64]bool{}
	for v := range versions {
		if v < 1 || v > n || seen[v] {
			t.Fatalf("version %d reported twice or out of range", v)
		}
		seen[v] = true
	}
	if len(seen) != n {
		t.Fatalf("distinct versions = %d, want %d", len(seen), n)
	}
}

func TestSeedData(t *testing.T) {
	s := NewSeeded()
	all := s.All()
	if len(all) != 10 {
		t.Fatalf("seed len = %d, want 10", len(all))
	}
	for i, e := range all {
		if want := fmt.Sprint(i + 1); e.ID != want {
			t.Fatalf("seed[%d].ID = %q, want %q", i, e.ID, want)
		}
	}
	if !core.Sum(all).Equal(core.MustAmount("484.44")) {
		t.Fatalf("seed total = %s, want 484.44", core.Sum(all))
	}
}

func TestConcurrentAdds(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add(core.Draft{Title: "t", Amount: "1", Category: core.CategoryOther, Date: "2024-01-01"})
		}()
	}
	wg.Wait()
	if s.Len() != 50 {
		t.Fatalf("len = %d, want 50", s.Len())
	}
	seen := map[string]bool{}
	for _, e := range s.All() {
		if seen[e.ID] {
			t.Fatalf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
	}
}

func TestSnapshotMatchesVersion(t *testing.T) {
	s := NewSeeded()
	items, v := s.Snapshot()
	if len(items) != 10 || v != s.Version() {
		t.Fatalf("snapshot = %d items at v%d, store at v%d", len(items), v, s.Version())
	}
	items[0].Title = "mutated"
	if s.All()[0].Title == "mutated" {
		t.Fatalf("snapshot shares backing array with the store")
	}
}
