package favor

import "github.com/arantir/favorcalc/internal/profile"

// Projection is the computed summary handed to the presentation layer.
type Projection struct {
	StartLevel   int
	StartExp     int
	ReachedLevel int
	// ExpGained is the experience contributed purely by gifts.
	ExpGained int
	// ExpToNext is the experience still needed for ReachedLevel+1. It is
	// meaningless when HasNext is false: past the last tabulated level
	// there is no further entry to measure against.
	ExpToNext int
	HasNext   bool
}

// Project computes the level projection for p. A nil profile projects from
// level 1 with no gifts under the fallback ruleset.
func (e *Engine) Project(p *profile.Profile) Projection {
	r := e.RulesFor(p)
	startLevel, startExp := 1, 0
	var quantities map[int]int
	if p != nil {
		startLevel = p.StartLevel()
		startExp = p.StartExp()
		quantities = p.Quantities()
	}
	return e.ProjectRules(r, startLevel, startExp, quantities)
}

// ProjectRules is the pure projection over explicit inputs: accumulate the
// starting state and the resolved gift experience, then look up the highest
// reachable level and the distance to the one after it.
func (e *Engine) ProjectRules(r Ruleset, startLevel, startExp int, quantities map[int]int) Projection {
	base := e.table.CumulativeExp(startLevel)
	giftExp := e.TotalExp(r, quantities)
	total := base + startExp + giftExp

	reached := e.table.HighestReachable(total, startLevel)
	proj := Projection{
		StartLevel:   startLevel,
		StartExp:     startExp,
		ReachedLevel: reached,
		ExpGained:    giftExp,
	}
	if next, ok := e.table.Lookup(reached + 1); ok {
		proj.ExpToNext = next - total
		proj.HasNext = true
	}
	return proj
}
