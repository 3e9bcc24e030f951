// Package pattern implements Fen's match-pattern engine: coverage
// tracking, irrefutability testing, and lowering a pattern into a
// comparison expression plus the bindings it introduces (spec §4.5).
package pattern

// MatchCoverage tracks the cases a Match expression's pattern list has yet
// to prove handled. Booleans start with {true, false}; enumerations start
// with one entry per variant name; everything else starts with the single
// synthetic "all" case, cleared only by a final irrefutable pattern
// (spec §4.5).
type MatchCoverage struct {
	remaining map[string]struct{}
}

// NewBoolCoverage seeds {"true", "false"}.
func NewBoolCoverage() *MatchCoverage {
	return &MatchCoverage{remaining: map[string]struct{}{"true": {}, "false": {}}}
}

// NewEnumCoverage seeds one entry per variant-constructor method name.
func NewEnumCoverage(variantNames []string) *MatchCoverage {
	remaining := make(map[string]struct{}, len(variantNames))
	for _, n := range variantNames {
		remaining[n] = struct{}{}
	}
	return &MatchCoverage{remaining: remaining}
}

// NewOtherCoverage seeds the single "all" case.
func NewOtherCoverage() *MatchCoverage {
	return &MatchCoverage{remaining: map[string]struct{}{"all": {}}}
}

// IsCaseCovered reports whether name has already been marked covered.
func (c *MatchCoverage) IsCaseCovered(name string) bool {
	_, stillOpen := c.remaining[name]
	return !stillOpen
}

// AreAllCasesCovered reports whether every case this coverage started
// with has been marked.
func (c *MatchCoverage) AreAllCasesCovered() bool { return len(c.remaining) == 0 }

// MarkCaseAsCovered removes name from the remaining set, if present.
func (c *MatchCoverage) MarkCaseAsCovered(name string) {
	delete(c.remaining, name)
}

// MarkAllCovered clears every remaining case — what an irrefutable
// pattern does regardless of the coverage kind it's up against.
func (c *MatchCoverage) MarkAllCovered() {
	for k := range c.remaining {
		delete(c.remaining, k)
	}
}
