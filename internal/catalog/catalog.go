package catalog

import (
	"fmt"
	"sort"
)

// Gift is one catalog entry: a giftable item with its base experience value.
type Gift struct {
	ID      int
	Name    string
	BaseExp int
}

// Catalog maps gift ids to their definitions. Loaded once, immutable after.
type Catalog struct {
	byID  map[int]Gift
	order []int
}

// New builds a Catalog, rejecting duplicate gift ids.
func New(gifts []Gift) (*Catalog, error) {
	c := &Catalog{byID: make(map[int]Gift, len(gifts))}
	for _, g := range gifts {
		if _, dup := c.byID[g.ID]; dup {
			return nil, fmt.Errorf("duplicate gift id %d", g.ID)
		}
		if g.BaseExp < 0 {
			return nil, fmt.Errorf("gift %d has negative base experience", g.ID)
		}
		c.byID[g.ID] = g
		c.order = append(c.order, g.ID)
	}
	sort.Ints(c.order)
	return c, nil
}

// ByID returns the gift with the given id and whether it exists.
func (c *Catalog) ByID(id int) (Gift, bool) {
	g, ok := c.byID[id]
	return g, ok
}

// Gifts returns all gifts ordered by id.
func (c *Catalog) Gifts() []Gift {
	gifts := make([]Gift, 0, len(c.order))
	for _, id := range c.order {
		gifts = append(gifts, c.byID[id])
	}
	return gifts
}

// Len returns the number of gifts.
func (c *Catalog) Len() int {
	return len(c.byID)
}
