package profile

import (
	"encoding/json"
	"fmt"
)

// document is the on-disk shape of a profile. Tier sets are serialized as
// sorted lists and reconstructed as sets on read; this conversion is the
// only place the list form exists.
type document struct {
	Tier40Gifts    []int       `json:"tier40_gifts"`
	Tier60Gifts    []int       `json:"tier60_gifts"`
	Tier180Gifts   []int       `json:"tier180_gifts"`
	Tier240Gifts   []int       `json:"tier240_gifts"`
	GiftQuantities map[int]int `json:"gift_quantities"`
	StartLevel     int         `json:"start_level"`
	StartExp       int         `json:"start_exp"`
	IsLinked       bool        `json:"is_linked"`
}

// Encode serializes the profile. Only positive quantities are written, and
// transient state (version counter, linked backup) is omitted.
func (p *Profile) Encode() ([]byte, error) {
	doc := document{
		Tier40Gifts:    p.TierGifts(Tier40),
		Tier60Gifts:    p.TierGifts(Tier60),
		Tier180Gifts:   p.TierGifts(Tier180),
		Tier240Gifts:   p.TierGifts(Tier240),
		GiftQuantities: p.Quantities(),
		StartLevel:     p.startLevel,
		StartExp:       p.startExp,
		IsLinked:       p.linked,
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode profile %q: %w", p.name, err)
	}
	return data, nil
}

// Decode reconstructs a profile from its serialized form. Missing fields
// take their defaults: start level 1, everything else empty.
func Decode(name string, data []byte) (*Profile, error) {
	p, err := New(name)
	if err != nil {
		return nil, err
	}

	doc := document{StartLevel: 1}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode profile %q: %w", name, err)
	}
	if doc.StartLevel < 1 {
		doc.StartLevel = 1
	}
	if doc.StartExp < 0 {
		doc.StartExp = 0
	}

	// A hand-edited document can list a gift in both tiers of a bracket;
	// the higher tier keeps it, as resolution would pick it anyway.
	for _, id := range doc.Tier40Gifts {
		p.tiers[Tier40][id] = true
	}
	for _, id := range doc.Tier60Gifts {
		delete(p.tiers[Tier40], id)
		p.tiers[Tier60][id] = true
	}
	for _, id := range doc.Tier180Gifts {
		p.tiers[Tier180][id] = true
	}
	for _, id := range doc.Tier240Gifts {
		delete(p.tiers[Tier180], id)
		p.tiers[Tier240][id] = true
	}
	for id, qty := range doc.GiftQuantities {
		if qty > 0 {
			p.quantities[id] = qty
		}
	}
	p.startLevel = doc.StartLevel
	p.startExp = doc.StartExp
	p.linked = doc.IsLinked
	return p, nil
}
