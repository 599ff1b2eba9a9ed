package profile

import (
	"sort"
	"strings"
)

// Profile is one named student configuration: preference tier sets, owned
// gift quantities, the starting level/experience and the linked-mode flag.
// Profiles are not safe for concurrent mutation; there is exactly one active
// editing context at a time.
type Profile struct {
	name string

	tiers        map[Tier]map[int]bool
	quantities   map[int]int
	startLevel   int
	startExp     int
	linked       bool
	linkedBackup map[Tier]map[int]bool

	// version counts mutations. Derived caches key on it to stay a
	// read-through view rather than a second source of truth.
	version uint64
}

// New creates an empty profile. The name must be non-empty after trimming.
func New(name string) (*Profile, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return nil, &ValidationError{Field: "profile name", Reason: "must not be empty"}
	}
	return &Profile{
		name:       trimmed,
		tiers:      emptyTierSets(),
		quantities: make(map[int]int),
		startLevel: 1,
	}, nil
}

func emptyTierSets() map[Tier]map[int]bool {
	sets := make(map[Tier]map[int]bool, 4)
	for _, t := range AllTiers() {
		sets[t] = make(map[int]bool)
	}
	return sets
}

// Name returns the profile name.
func (p *Profile) Name() string { return p.name }

// Version returns the mutation counter. It is transient state, never
// persisted.
func (p *Profile) Version() uint64 { return p.version }

func (p *Profile) bump() { p.version++ }

// AssignTier adds giftID to tier t, evicting it from the sibling tier of the
// same bracket.
func (p *Profile) AssignTier(t Tier, giftID int) error {
	if !t.Valid() {
		return &ValidationError{Field: "tier", Reason: "unknown tier"}
	}
	delete(p.tiers[t.Sibling()], giftID)
	p.tiers[t][giftID] = true
	p.bump()
	return nil
}

// ClearTier removes giftID from every tier set.
func (p *Profile) ClearTier(giftID int) {
	for _, set := range p.tiers {
		delete(set, giftID)
	}
	p.bump()
}

// InTier reports whether giftID is assigned to tier t.
func (p *Profile) InTier(t Tier, giftID int) bool {
	return p.tiers[t][giftID]
}

// TierGifts returns the gift ids assigned to tier t, sorted.
func (p *Profile) TierGifts(t Tier) []int {
	ids := make([]int, 0, len(p.tiers[t]))
	for id := range p.tiers[t] {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// SetQuantity records the owned quantity for giftID. Non-positive quantities
// clear the entry.
func (p *Profile) SetQuantity(giftID, qty int) {
	if qty <= 0 {
		delete(p.quantities, giftID)
	} else {
		p.quantities[giftID] = qty
	}
	p.bump()
}

// Quantity returns the owned quantity for giftID, 0 when unset.
func (p *Profile) Quantity(giftID int) int {
	return p.quantities[giftID]
}

// Quantities returns a copy of the positive gift quantities.
func (p *Profile) Quantities() map[int]int {
	out := make(map[int]int, len(p.quantities))
	for id, qty := range p.quantities {
		out[id] = qty
	}
	return out
}

// StartLevel returns the starting level.
func (p *Profile) StartLevel() int { return p.startLevel }

// StartExp returns the experience already accrued within the starting level.
func (p *Profile) StartExp() int { return p.startExp }

// SetStartLevel sets the starting level and resets the in-level experience
// to zero.
func (p *Profile) SetStartLevel(level int) error {
	if level < 1 {
		return &ValidationError{Field: "start level", Reason: "must be at least 1"}
	}
	p.startLevel = level
	p.startExp = 0
	p.bump()
	return nil
}

// SetStartExp sets the experience already accrued within the starting level.
func (p *Profile) SetStartExp(exp int) error {
	if exp < 0 {
		return &ValidationError{Field: "start exp", Reason: "must not be negative"}
	}
	p.startExp = exp
	p.bump()
	return nil
}

// Linked reports whether linked mode is engaged.
func (p *Profile) Linked() bool { return p.linked }

// SetLinked drives the linked-mode state machine. Engaging snapshots the
// four tier sets and clears them, so every gift falls back to its base value
// except the single configured override. Disengaging restores the snapshot
// verbatim and discards it; with no snapshot (the flag was loaded already
// engaged) the tier sets are left empty. Toggling to the current state is a
// no-op. Transitions are synchronous and atomic within the profile.
func (p *Profile) SetLinked(on bool) {
	if on == p.linked {
		return
	}
	if on {
		p.linkedBackup = p.tiers
		p.tiers = emptyTierSets()
	} else {
		if p.linkedBackup != nil {
			p.tiers = p.linkedBackup
			p.linkedBackup = nil
		}
	}
	p.linked = on
	p.bump()
}
