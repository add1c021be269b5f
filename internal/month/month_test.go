package month

import (
	"sort"
	"testing"
	"time"
)

func mustParse(t *testing.T, key string) time.Time {
	t.Helper()
	d, err := Parse(key)
	if err != nil {
		t.Fatalf("Parse(%q): %v", key, err)
	}
	return d
}

func TestKeyRoundTrip(t *testing.T) {
	d := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.Local)
	key := Key(d)
	if key != "2026-03" {
		t.Fatalf("Key = %q, want 2026-03", key)
	}
	back := mustParse(t, key)
	if !back.Equal(d) {
		t.Fatalf("Parse(Key(d)) = %v, want %v", back, d)
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, key := range []string{"", "2026", "2026-3", "03-2026", "2026-13", "garbage"} {
		if _, err := Parse(key); err == nil {
			t.Errorf("Parse(%q) succeeded, want error", key)
		}
	}
}

func TestAddCrossesYearBoundary(t *testing.T) {
	d := mustParse(t, "2025-11")
	if got := Key(Add(d, 3)); got != "2026-02" {
		t.Fatalf("Add(2025-11, 3) = %q, want 2026-02", got)
	}
	if got := Key(Add(d, -11)); got != "2024-12" {
		t.Fatalf("Add(2025-11, -11) = %q, want 2024-12", got)
	}
}

func TestRange(t *testing.T) {
	got := Range(mustParse(t, "2025-11"), 4)
	want := []string{"2025-11", "2025-12", "2026-01", "2026-02"}
	if len(got) != len(want) {
		t.Fatalf("Range len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Range[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestBeforeIsForwardOrdered(t *testing.T) {
	got := Before(mustParse(t, "2026-01"), 3)
	want := []string{"2025-10", "2025-11", "2025-12"}
	if len(got) != len(want) {
		t.Fatalf("Before len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Before[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestKeysSortLexicographically(t *testing.T) {
	keys := Range(mustParse(t, "2024-09"), 30)
	if !sort.StringsAreSorted(keys) {
		t.Fatal("consecutive month keys are not lexicographically sorted")
	}
}

func TestIndex(t *testing.T) {
	from := mustParse(t, "2026-01")

	tests := []struct {
		key  string
		want int
	}{
		{"2026-01", 0},
		{"2026-02", 1},
		{"2027-01", 12},
		{"2025-12", -1},
		{"2024-11", -14},
	}
	for _, tc := range tests {
		got, err := Index(tc.key, from)
		if err != nil {
			t.Fatalf("Index(%q): %v", tc.key, err)
		}
		if got != tc.want {
			t.Errorf("Index(%q) = %d, want %d", tc.key, got, tc.want)
		}
	}

	if _, err := Index("not-a-month", from); err == nil {
		t.Fatal("Index with malformed key succeeded, want error")
	}
}

func TestLabelKey(t *testing.T) {
	if got := LabelKey("2026-01"); got != "Jan 2026" {
		t.Fatalf("LabelKey = %q, want Jan 2026", got)
	}
	if got := LabelKey("bogus"); got != "bogus" {
		t.Fatalf("LabelKey(bogus) = %q, want bogus passthrough", got)
	}
}
