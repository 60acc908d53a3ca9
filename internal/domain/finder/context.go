package finder

// Query is what the user asked for.
type Query struct {
	Name       string
	Category   Category
	IgnoreCase bool
}

// TraversalContext is the read-only bundle every visit step receives.
// It is built once before the walk and never mutated during it; the folded
// target name is computed here rather than inside the per-node check.
type TraversalContext struct {
	targetKinds     KindFilter
	lines           []string
	targetName      string
	foldedName      string
	caseInsensitive bool
}

// NewTraversalContext builds the context for q. lines must be the contents of
// the same file the tree was parsed from.
func NewTraversalContext(q Query, lines []string) *TraversalContext {
	tc := &TraversalContext{
		targetKinds:     ResolveKinds(q.Category),
		lines:           lines,
		targetName:      q.Name,
		caseInsensitive: q.IgnoreCase,
	}
	if q.IgnoreCase {
		tc.foldedName = foldASCII(q.Name)
	}
	return tc
}

// TargetKinds returns the resolved kind filter.
func (tc *TraversalContext) TargetKinds() KindFilter { return tc.targetKinds }

// TargetName returns the name as given, unfolded.
func (tc *TraversalContext) TargetName() string { return tc.targetName }

// CaseInsensitive reports whether names are compared with ASCII folding.
func (tc *TraversalContext) CaseInsensitive() bool { return tc.caseInsensitive }

// Lines returns the loaded source lines, indexed by line number - 1.
func (tc *TraversalContext) Lines() []string { return tc.lines }
