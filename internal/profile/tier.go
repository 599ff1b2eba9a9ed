package profile

// Base experience values of the two promotable gift brackets. Gifts with any
// other base value are never promoted.
const (
	BracketGold   = 20
	BracketPurple = 120
)

// Tier identifies a preference tier. Its numeric value is the experience a
// promoted gift yields.
type Tier int

const (
	Tier40  Tier = 40
	Tier60  Tier = 60
	Tier180 Tier = 180
	Tier240 Tier = 240
)

// AllTiers returns the tiers in bracket order.
func AllTiers() []Tier {
	return []Tier{Tier40, Tier60, Tier180, Tier240}
}

// Valid reports whether t is a known tier.
func (t Tier) Valid() bool {
	switch t {
	case Tier40, Tier60, Tier180, Tier240:
		return true
	}
	return false
}

// Bracket returns the base experience value the tier promotes, or 0 for an
// unknown tier.
func (t Tier) Bracket() int {
	switch t {
	case Tier40, Tier60:
		return BracketGold
	case Tier180, Tier240:
		return BracketPurple
	}
	return 0
}

// Sibling returns the other tier of the same bracket. A gift may belong to
// at most one tier per bracket; assigning it to one evicts it from the
// sibling.
func (t Tier) Sibling() Tier {
	switch t {
	case Tier40:
		return Tier60
	case Tier60:
		return Tier40
	case Tier180:
		return Tier240
	case Tier240:
		return Tier180
	}
	return 0
}
