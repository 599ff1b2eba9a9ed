package favor

import (
	"github.com/arantir/favorcalc/internal/catalog"
	"github.com/arantir/favorcalc/internal/leveltable"
	"github.com/arantir/favorcalc/internal/profile"
)

// Config holds the linked-mode override constants. Linked mode suppresses
// every tier preference and substitutes this single gift/value pair.
type Config struct {
	LinkedGiftID int
	LinkedExp    int
}

// DefaultConfig returns the stock override: gift 100008 yields 20 experience
// for linked students.
func DefaultConfig() Config {
	return Config{
		LinkedGiftID: 100008,
		LinkedExp:    20,
	}
}

// Engine resolves per-gift experience yields under a profile's preference
// rules and projects level progression over the level table. Resolution is a
// pure function of its inputs; the only internal state is a read-through
// ruleset cache keyed by profile identity and version.
type Engine struct {
	cfg     Config
	catalog *catalog.Catalog
	table   *leveltable.Table

	cacheProfile *profile.Profile
	cacheVersion uint64
	cacheRules   Ruleset
}

// New creates an Engine over a loaded catalog and level table.
func New(cfg Config, cat *catalog.Catalog, table *leveltable.Table) *Engine {
	return &Engine{cfg: cfg, catalog: cat, table: table}
}

// Table returns the level table the engine projects over.
func (e *Engine) Table() *leveltable.Table { return e.table }

// Catalog returns the gift catalog the engine resolves against.
func (e *Engine) Catalog() *catalog.Catalog { return e.catalog }

// Ruleset is the preference state resolution reads: the linked flag plus
// tier membership. It is derived from a profile (or from the transient
// fallback toggle), never mutated in place.
type Ruleset struct {
	Linked bool

	tier40  map[int]bool
	tier60  map[int]bool
	tier180 map[int]bool
	tier240 map[int]bool
}

// FallbackRules is the no-active-profile path: resolution sees only a
// transient linked toggle and no tier preferences. Preserved for
// compatibility with the original behavior.
func FallbackRules(linked bool) Ruleset {
	return Ruleset{Linked: linked}
}

// RulesFor derives the ruleset for p. The result is cached and reused while
// the same profile value sits at the same version; any mutation, or a switch
// to a different profile (including a recreated one under the old name),
// invalidates it. A nil profile yields the fallback ruleset with linked off.
func (e *Engine) RulesFor(p *profile.Profile) Ruleset {
	if p == nil {
		return FallbackRules(false)
	}
	if e.cacheProfile == p && e.cacheVersion == p.Version() {
		return e.cacheRules
	}

	r := Ruleset{
		Linked:  p.Linked(),
		tier40:  tierSet(p, profile.Tier40),
		tier60:  tierSet(p, profile.Tier60),
		tier180: tierSet(p, profile.Tier180),
		tier240: tierSet(p, profile.Tier240),
	}
	e.cacheProfile = p
	e.cacheVersion = p.Version()
	e.cacheRules = r
	return r
}

func tierSet(p *profile.Profile, t profile.Tier) map[int]bool {
	set := make(map[int]bool)
	for _, id := range p.TierGifts(t) {
		set[id] = true
	}
	return set
}

// ActualExp returns the experience a single gift yields under r. Linked mode
// wins over everything: the override gift yields the configured value and
// every other gift its base value. Otherwise the higher tier of the gift's
// bracket wins over the lower, and an unassigned gift yields its base value.
// Gifts outside the two promotable brackets are never promoted.
func (e *Engine) ActualExp(r Ruleset, giftID, baseExp int) int {
	if r.Linked {
		if giftID == e.cfg.LinkedGiftID {
			return e.cfg.LinkedExp
		}
		return baseExp
	}

	switch baseExp {
	case profile.BracketGold:
		if r.tier60[giftID] {
			return int(profile.Tier60)
		}
		if r.tier40[giftID] {
			return int(profile.Tier40)
		}
	case profile.BracketPurple:
		if r.tier240[giftID] {
			return int(profile.Tier240)
		}
		if r.tier180[giftID] {
			return int(profile.Tier180)
		}
	}
	return baseExp
}

// TotalExp sums actual experience over every gift with a positive quantity.
// Gift ids missing from the catalog are skipped silently.
func (e *Engine) TotalExp(r Ruleset, quantities map[int]int) int {
	total := 0
	for id, qty := range quantities {
		if qty <= 0 {
			continue
		}
		g, ok := e.catalog.ByID(id)
		if !ok {
			continue
		}
		total += e.ActualExp(r, id, g.BaseExp) * qty
	}
	return total
}
