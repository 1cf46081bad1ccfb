package correction

// correctionState is one frame of the per-depth traversal stack. The
// engine walks the dictionary trie in lockstep with its caller; frame d
// snapshots the working registers as they were when the edge at output
// depth d was entered, so sibling branches restore from it.
type correctionState struct {
	parentIndex int
	siblingPos  int
	childCount  int

	inputIndex              int
	needsToTraverseAllNodes bool

	proximityCount  int
	transposedCount int
	excessiveCount  int
	skippedCount    int

	// positional shadows; they drift forward with the output cursor
	skipPos       int
	transposedPos int
	excessivePos  int

	lastCharExceeded bool

	// how the edge at this depth was classified
	matching          bool
	proximityMatching bool
	transposing       bool
	exceeding         bool
	skipping          bool
}

// reset seeds a root frame for a fresh traversal.
func (s *correctionState) reset(rootPos, childCount int, traverseAll bool) {
	*s = correctionState{
		parentIndex:             -1,
		siblingPos:              rootPos,
		childCount:              childCount,
		needsToTraverseAllNodes: traverseAll,
		skipPos:                 -1,
		transposedPos:           -1,
		excessivePos:            -1,
	}
}
