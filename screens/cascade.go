// ABOUTME: Cascading hierarchical selector (country→state→city and friends)
// ABOUTME: Selections apply immediately; option loads resolve later by token
package screens

import "fmt"

// Option is one choice in a cascade level.
type Option struct {
	ID    int64
	Label string
}

type cascadeLevel struct {
	options  []Option
	selected int64
	token    int
}

// Cascade keeps an ordered chain of dependent selects consistent: a child
// option set is always the subset scoped to the selected parent, and a
// selection that falls out of its option set is cleared. It performs no
// network calls itself: the owner starts each level's option fetch, runs
// it, and hands the result back with the token the fetch was started
// under, the same contract List uses.
type Cascade struct {
	names      []string
	levels     []cascadeLevel
	generation int
}

// NewCascade builds a chain with one level per name, in parent-to-child
// order ("country", "state", "city").
func NewCascade(names ...string) *Cascade {
	if len(names) == 0 {
		panic("cascade needs at least one level")
	}
	return &Cascade{
		names:  names,
		levels: make([]cascadeLevel, len(names)),
	}
}

func (c *Cascade) Depth() int               { return len(c.levels) }
func (c *Cascade) Name(level int) string    { return c.names[level] }
func (c *Cascade) Selected(level int) int64 { return c.levels[level].selected }

// Options returns the current option set of a level.
func (c *Cascade) Options(level int) []Option { return c.levels[level].options }

// BeginLoad marks a level's option set as pending and returns the token
// the resolution must carry. Starting a newer load, or clearing the level
// through an ancestor change, supersedes the fetch.
func (c *Cascade) BeginLoad(level int) int {
	c.generation++
	c.levels[level].token = c.generation
	return c.generation
}

// ResolveLoad applies a finished option fetch. Stale tokens are discarded.
// A failed load leaves the level without options; selections above it
// stay in place.
func (c *Cascade) ResolveLoad(level, token int, options []Option, err error) bool {
	if c.levels[level].token != token {
		return false
	}
	if err != nil {
		c.levels[level].options = nil
		return true
	}
	c.levels[level].options = options
	if c.levels[level].selected != 0 && !optionPresent(options, c.levels[level].selected) {
		c.levels[level].selected = 0
		c.clearBelow(level)
	}
	return true
}

// Select picks a value at one level and clears every level beneath it,
// both selections and option sets. The id must be zero (the empty value)
// or one of the loaded options. When a non-zero pick has a child level,
// the caller reloads that child's options through BeginLoad/ResolveLoad.
func (c *Cascade) Select(level int, id int64) error {
	if level < 0 || level >= len(c.levels) {
		return fmt.Errorf("no cascade level %d", level)
	}
	if id != 0 && !optionPresent(c.levels[level].options, id) {
		return fmt.Errorf("%s has no option %d", c.names[level], id)
	}
	c.levels[level].selected = id
	c.clearBelow(level)
	return nil
}

// clearBelow empties descendant selections and option sets and invalidates
// their in-flight loads.
func (c *Cascade) clearBelow(level int) {
	for i := level + 1; i < len(c.levels); i++ {
		c.levels[i].options = nil
		c.levels[i].selected = 0
		c.levels[i].token = 0
	}
}

func optionPresent(options []Option, id int64) bool {
	if id == 0 {
		return false
	}
	for _, o := range options {
		if o.ID == id {
			return true
		}
	}
	return false
}
