package leveltable

import (
	"strings"
	"testing"
)

func mustTable(t *testing.T, entries []Entry) *Table {
	t.Helper()
	table, err := New(entries)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return table
}

func TestNewRejectsInvalidTables(t *testing.T) {
	cases := []struct {
		name    string
		entries []Entry
	}{
		{"empty", nil},
		{"duplicate level", []Entry{{1, 0}, {1, 10}}},
		{"decreasing exp", []Entry{{1, 0}, {2, 100}, {3, 50}}},
		{"level below 1", []Entry{{0, 0}}},
		{"negative exp", []Entry{{1, -5}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.entries); err == nil {
				t.Errorf("New(%v) = nil error, want error", tc.entries)
			}
		})
	}
}

func TestNewSortsEntries(t *testing.T) {
	table := mustTable(t, []Entry{{3, 250}, {1, 0}, {2, 100}})
	if got := table.CumulativeExp(2); got != 100 {
		t.Errorf("CumulativeExp(2) = %d, want 100", got)
	}
	if got := table.MaxLevel(); got != 3 {
		t.Errorf("MaxLevel() = %d, want 3", got)
	}
}

func TestLookupMissingLevel(t *testing.T) {
	table := mustTable(t, []Entry{{2, 100}, {3, 250}})

	if exp, ok := table.Lookup(1); ok || exp != 0 {
		t.Errorf("Lookup(1) = (%d, %v), want (0, false)", exp, ok)
	}
	// Absent levels read as zero requirement, e.g. level 1 with no
	// explicit zero entry.
	if got := table.CumulativeExp(1); got != 0 {
		t.Errorf("CumulativeExp(1) = %d, want 0", got)
	}
}

func TestMonotonicLookup(t *testing.T) {
	table := mustTable(t, []Entry{{1, 0}, {2, 100}, {3, 250}, {4, 500}})
	prev := -1
	for level := 1; level <= 4; level++ {
		exp := table.CumulativeExp(level)
		if exp < prev {
			t.Errorf("CumulativeExp(%d) = %d, below previous %d", level, exp, prev)
		}
		prev = exp
	}
}

func TestHighestReachable(t *testing.T) {
	table := mustTable(t, []Entry{{1, 0}, {2, 100}, {3, 250}})

	cases := []struct {
		totalExp   int
		startLevel int
		want       int
	}{
		{0, 1, 1},
		{99, 1, 1},
		{100, 1, 2},
		{249, 1, 2},
		{250, 1, 3},
		{100, 2, 2},
		// Nothing at or above the start level qualifies: the start
		// level is returned unchanged.
		{0, 2, 2},
		{0, 5, 5},
		// Past the last tabulated level the max level is the answer.
		{99999, 1, 3},
	}
	for _, tc := range cases {
		got := table.HighestReachable(tc.totalExp, tc.startLevel)
		if got != tc.want {
			t.Errorf("HighestReachable(%d, %d) = %d, want %d", tc.totalExp, tc.startLevel, got, tc.want)
		}
		if got < tc.startLevel {
			t.Errorf("HighestReachable(%d, %d) = %d, below start level", tc.totalExp, tc.startLevel, got)
		}
		// Idempotent: same inputs, same answer.
		if again := table.HighestReachable(tc.totalExp, tc.startLevel); again != got {
			t.Errorf("HighestReachable(%d, %d) second call = %d, want %d", tc.totalExp, tc.startLevel, again, got)
		}
	}
}

func TestLoad(t *testing.T) {
	csv := "level,cumulative_exp\n1,0\n2,100\n3,250\n"
	table, err := Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := table.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if got := table.CumulativeExp(3); got != 250 {
		t.Errorf("CumulativeExp(3) = %d, want 250", got)
	}
}

func TestLoadReorderedColumnsAndBOM(t *testing.T) {
	csv := "\uFEFFcumulative_exp,level\n0,1\n100,2\n"
	table, err := Load(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := table.CumulativeExp(2); got != 100 {
		t.Errorf("CumulativeExp(2) = %d, want 100", got)
	}
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		name string
		csv  string
	}{
		{"missing columns", "lvl,exp\n1,0\n"},
		{"bad level", "level,cumulative_exp\nx,0\n"},
		{"bad exp", "level,cumulative_exp\n1,x\n"},
		{"empty body", "level,cumulative_exp\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Load(strings.NewReader(tc.csv)); err == nil {
				t.Error("Load = nil error, want error")
			}
		})
	}
}
