package leveltable

import (
	"fmt"
	"sort"
)

// Entry maps a level to the cumulative experience required to reach it.
type Entry struct {
	Level         int
	CumulativeExp int
}

// Table answers level lookups over a list of entries sorted once at
// construction. It is immutable after New returns.
type Table struct {
	entries []Entry
}

// New builds a Table from entries. It sorts them by level and validates the
// staircase invariant: levels are unique and >= 1, and cumulative experience
// never decreases as level increases.
func New(entries []Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("level table is empty")
	}

	sorted := make([]Entry, len(entries))
	copy(sorted, entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Level < sorted[j].Level })

	for i, e := range sorted {
		if e.Level < 1 {
			return nil, fmt.Errorf("invalid level %d", e.Level)
		}
		if e.CumulativeExp < 0 {
			return nil, fmt.Errorf("negative cumulative experience at level %d", e.Level)
		}
		if i == 0 {
			continue
		}
		prev := sorted[i-1]
		if e.Level == prev.Level {
			return nil, fmt.Errorf("duplicate level %d", e.Level)
		}
		if e.CumulativeExp < prev.CumulativeExp {
			return nil, fmt.Errorf("cumulative experience decreases from level %d to %d", prev.Level, e.Level)
		}
	}

	return &Table{entries: sorted}, nil
}

// Lookup returns the cumulative experience required to reach level and
// whether the table has an entry for it.
func (t *Table) Lookup(level int) (int, bool) {
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].Level >= level })
	if i < len(t.entries) && t.entries[i].Level == level {
		return t.entries[i].CumulativeExp, true
	}
	return 0, false
}

// CumulativeExp returns the requirement for level, or 0 when the level is
// not tabulated (e.g. level 1 with no explicit zero entry).
func (t *Table) CumulativeExp(level int) int {
	exp, _ := t.Lookup(level)
	return exp
}

// HighestReachable returns the largest tabulated level >= startLevel whose
// requirement is <= totalExp. If no entry at or above startLevel qualifies,
// startLevel is returned unchanged. Both scans are binary searches; the
// staircase invariant makes requirements non-decreasing within the
// level-ordered slice.
func (t *Table) HighestReachable(totalExp, startLevel int) int {
	lo := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].Level >= startLevel })
	hi := lo + sort.Search(len(t.entries)-lo, func(i int) bool { return t.entries[lo+i].CumulativeExp > totalExp })
	if hi == lo {
		return startLevel
	}
	return t.entries[hi-1].Level
}

// MaxLevel returns the highest tabulated level.
func (t *Table) MaxLevel() int {
	return t.entries[len(t.entries)-1].Level
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.entries)
}
