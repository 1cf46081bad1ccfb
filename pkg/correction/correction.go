/*
Package correction scores candidate dictionary words against a noisy key
sequence. It is the hard core of the keycorrect engine: a stateful
co-evaluator that walks in lockstep with an external trie traversal,
classifying every trie edge as matching, proximity-matching, skipped,
transposed, excessive, or unrelated, plus the ranking algorithm that
turns the accumulated state and a base dictionary frequency into a
comparable integer score.

A Correction is single-threaded and owned by one traversal at a time.
The caller drives it edge by edge:

	eng.InitCorrection(session, inputLength, maxDepth)
	eng.SetCorrectionParams(-1, -1, -1, -1, -1)
	eng.InitCorrectionState(0, rootChildCount, false)
	for each trie edge:
	    if !eng.InitProcessState(depth) { pop }
	    switch eng.ProcessCharAndCalcState(ch, isTerminal) { ... }
	    depth = eng.GoDownTree(depth, childCount, firstChildPos)
	on a terminal: word, freq := eng.GetFinalFreq(baseFreq, table)

There is no heap allocation on this path after New; the frame stack, the
candidate buffer, and the counters live inside the Correction.
*/
package correction

import (
	"github.com/inputkit/keycorrect/internal/textutil"
	"github.com/inputkit/keycorrect/pkg/proximity"
)

// EdgeKind classifies the outcome of processing one trie edge.
type EdgeKind int

const (
	// NotOnTerminal - the edge was consumed; keep descending.
	NotOnTerminal EdgeKind = iota
	// OnTerminal - the edge completed a candidate spanning the whole input.
	OnTerminal
	// Unrelated - the edge cannot explain the input; prune this subtree.
	Unrelated
	// TraverseAllOnTerminal - completion mode hit an in-dictionary word.
	TraverseAllOnTerminal
	// TraverseAllNotOnTerminal - completion mode, keep appending suffix.
	TraverseAllNotOnTerminal
)

// Correction holds one correction session: the typed input (through its
// proximity session), the per-depth frame stack, and the working
// registers of the current traversal branch.
type Correction struct {
	params Params

	proximityInfo proximity.Info
	inputLength   int
	maxDepth      int

	// inputs shorter than 5 taps tolerate 2 proximity substitutions,
	// longer ones half their length
	maxEditDistance int

	// at most one of the first three is non-negative per session, and at
	// most one of the last two
	skipPos           int
	excessivePos      int
	transposedPos     int
	spaceProximityPos int
	missingSpacePos   int

	outputIndex int
	inputIndex  int

	needsToTraverseAllNodes bool

	proximityCount  int
	transposedCount int
	excessiveCount  int
	skippedCount    int

	lastCharExceeded bool

	matching          bool
	proximityMatching bool
	transposing       bool
	exceeding         bool
	skipping          bool

	terminalInputIndex  int
	terminalOutputIndex int

	word   []uint16
	states []correctionState
}

// New allocates a Correction sized for params.MaxWordLength. The returned
// value is reusable across inputs via InitCorrection.
func New(params Params) *Correction {
	return &Correction{
		params:            params,
		skipPos:           -1,
		excessivePos:      -1,
		transposedPos:     -1,
		spaceProximityPos: -1,
		missingSpacePos:   -1,
		word:              make([]uint16, params.MaxWordLength),
		states:            make([]correctionState, params.MaxWordLength+1),
	}
}

// Params returns the session's tuning values.
func (c *Correction) Params() Params { return c.params }

// InitCorrection starts a session for one typed input. The proximity
// session must outlive the Correction's use of it.
func (c *Correction) InitCorrection(pi proximity.Info, inputLength, maxDepth int) {
	c.proximityInfo = pi
	c.inputLength = inputLength
	c.maxDepth = maxDepth
	if inputLength < 5 {
		c.maxEditDistance = 2
	} else {
		c.maxEditDistance = inputLength / 2
	}
}

// SetCorrectionParams selects which single correction this traversal
// attempts. Pass -1 for slots not in play. At most one of skipPos,
// excessivePos and transposedPos may be set, and at most one of
// spaceProximityPos and missingSpacePos.
func (c *Correction) SetCorrectionParams(skipPos, excessivePos, transposedPos, spaceProximityPos, missingSpacePos int) {
	c.skipPos = skipPos
	c.excessivePos = excessivePos
	c.transposedPos = transposedPos
	c.states[0].skipPos = skipPos
	c.states[0].excessivePos = excessivePos
	c.states[0].transposedPos = transposedPos

	c.spaceProximityPos = spaceProximityPos
	c.missingSpacePos = missingSpacePos

	c.checkState()
}

func (c *Correction) checkState() {
	hints := 0
	if c.skipPos >= 0 {
		hints++
	}
	if c.excessivePos >= 0 {
		hints++
	}
	if c.transposedPos >= 0 {
		hints++
	}
	if hints > 1 {
		corrLog.Warnf("conflicting correction hints: skip=%d excessive=%d transposed=%d",
			c.skipPos, c.excessivePos, c.transposedPos)
	}
}

// InitCorrectionState seeds frame 0 with the trie root.
func (c *Correction) InitCorrectionState(rootPos, childCount int, traverseAll bool) {
	c.states[0].reset(rootPos, childCount, traverseAll)
	c.states[0].transposedPos = c.transposedPos
	c.states[0].excessivePos = c.excessivePos
	c.states[0].skipPos = c.skipPos
}

// InitProcessState prepares to visit the next child at the given output
// depth. It reports false once the frame has no children left, which
// tells the caller to pop back up a level.
func (c *Correction) InitProcessState(outputIndex int) bool {
	state := &c.states[outputIndex]
	if state.childCount <= 0 {
		return false
	}
	c.outputIndex = outputIndex
	state.childCount--
	c.inputIndex = state.inputIndex
	c.needsToTraverseAllNodes = state.needsToTraverseAllNodes

	c.proximityCount = state.proximityCount
	c.transposedCount = state.transposedCount
	c.excessiveCount = state.excessiveCount
	c.skippedCount = state.skippedCount
	c.lastCharExceeded = state.lastCharExceeded

	c.transposedPos = state.transposedPos
	c.excessivePos = state.excessivePos
	c.skipPos = state.skipPos

	c.matching = false
	c.proximityMatching = false
	c.transposing = false
	c.exceeding = false
	c.skipping = false

	return true
}

// GoDownTree records descent bookkeeping in the current frame and returns
// the depth at which the children will be visited.
func (c *Correction) GoDownTree(parentIndex, childCount, firstChildPos int) int {
	c.states[c.outputIndex].parentIndex = parentIndex
	c.states[c.outputIndex].childCount = childCount
	c.states[c.outputIndex].siblingPos = firstChildPos
	return c.outputIndex
}

func (c *Correction) incrementInputIndex() {
	c.inputIndex++
}

// incrementOutputIndex pushes the working registers into the next frame.
// Sibling bookkeeping is carried over from the frame below; GoDownTree
// overwrites it when the caller actually descends.
func (c *Correction) incrementOutputIndex() {
	c.outputIndex++
	next := &c.states[c.outputIndex]
	prev := &c.states[c.outputIndex-1]
	next.parentIndex = prev.parentIndex
	next.childCount = prev.childCount
	next.siblingPos = prev.siblingPos
	next.inputIndex = c.inputIndex
	next.needsToTraverseAllNodes = c.needsToTraverseAllNodes

	next.proximityCount = c.proximityCount
	next.transposedCount = c.transposedCount
	next.excessiveCount = c.excessiveCount
	next.skippedCount = c.skippedCount

	next.skipPos = c.skipPos
	next.transposedPos = c.transposedPos
	next.excessivePos = c.excessivePos

	next.lastCharExceeded = c.lastCharExceeded

	next.matching = c.matching
	next.proximityMatching = c.proximityMatching
	next.transposing = c.transposing
	next.exceeding = c.exceeding
	next.skipping = c.skipping
}

// StartToTraverseAllNodes switches the current branch to completion mode:
// remaining trie characters are appended without consuming input.
func (c *Correction) StartToTraverseAllNodes() {
	c.needsToTraverseAllNodes = true
}

// NeedsToPrune reports whether descending further cannot produce an
// acceptable candidate. It is a hint for the caller; the engine does not
// check the depth bound itself.
func (c *Correction) NeedsToPrune() bool {
	depthBound := c.maxDepth
	if c.transposedPos >= 0 {
		depthBound = c.inputLength - 1
	}
	return c.outputIndex-1 >= depthBound || c.proximityCount > c.maxEditDistance
}

// isQuote reports whether c is an apostrophe the user did not type; those
// are consumed for free so contractions match bare inputs.
func (c *Correction) isQuote(ch uint16) bool {
	userTypedChar := c.proximityInfo.PrimaryCharAt(c.inputIndex)
	return ch == textutil.Quote && userTypedChar != textutil.Quote
}

// ProcessSkipChar emits ch into the candidate buffer without consuming
// input. Used for quotes and for completion mode.
func (c *Correction) ProcessSkipChar(ch uint16, isTerminal bool) EdgeKind {
	c.word[c.outputIndex] = ch
	if c.needsToTraverseAllNodes && isTerminal {
		c.terminalInputIndex = c.inputIndex
		c.terminalOutputIndex = c.outputIndex
		c.incrementOutputIndex()
		return TraverseAllOnTerminal
	}
	c.incrementOutputIndex()
	return TraverseAllNotOnTerminal
}

// ProcessCharAndCalcState consumes one trie edge producing ch, updating
// the correction state and classifying the edge.
func (c *Correction) ProcessCharAndCalcState(ch uint16, isTerminal bool) EdgeKind {
	kind := NotOnTerminal

	// The positional hints drift forward while their correction has not
	// fired yet, keeping them aligned with the output cursor after
	// completion mode appends characters. The drift is at most one step.
	if c.excessivePos >= 0 {
		if c.excessiveCount == 0 && c.excessivePos < c.outputIndex {
			c.excessivePos++
		}
		if c.excessivePos < c.inputLength-1 {
			c.exceeding = c.excessivePos == c.inputIndex
		}
	}

	if c.skipPos >= 0 {
		if c.skippedCount == 0 && c.skipPos < c.outputIndex {
			if c.skipPos < c.outputIndex-1 {
				corrLog.Warnf("skip hint fell %d behind output cursor", c.outputIndex-c.skipPos)
			}
			c.skipPos++
		}
		c.skipping = c.skipPos == c.outputIndex
	}

	if c.transposedPos >= 0 {
		if c.transposedCount == 0 && c.transposedPos < c.outputIndex {
			c.transposedPos++
		}
		if c.transposedPos < c.inputLength-1 {
			c.transposing = c.inputIndex == c.transposedPos
		}
	}

	if c.needsToTraverseAllNodes || c.isQuote(ch) {
		return c.ProcessSkipChar(ch, isTerminal)
	}

	// A transposition consumes two edges. On the second one the previous
	// input tap must supply the current character, or the attempt either
	// converts into an excessive insertion or reverts.
	secondTransposing := false
	if c.transposedCount%2 == 1 {
		if c.proximityInfo.MatchedProximityID(c.inputIndex-1, ch, false) == proximity.SameOrAccentedOrCapitalizedChar {
			c.transposedCount++
			secondTransposing = true
		} else if c.states[c.outputIndex].exceeding {
			c.transposedCount--
			c.excessiveCount++
			c.incrementInputIndex()
		} else {
			c.transposedCount--
			return Unrelated
		}
	}

	// Proximity substitutions are only allowed on the otherwise
	// unperturbed branch.
	checkProximityChars := !(c.skippedCount > 0 || c.excessivePos >= 0 || c.transposedPos >= 0)
	matchedProximityCharID := c.proximityInfo.MatchedProximityID(c.inputIndex, ch, checkProximityChars)

	if !secondTransposing && matchedProximityCharID == proximity.UnrelatedChar {
		if c.inputIndex-1 < c.inputLength && (c.exceeding || c.transposing) &&
			c.proximityInfo.MatchedProximityID(c.inputIndex+1, ch, false) == proximity.SameOrAccentedOrCapitalizedChar {
			if c.transposing {
				c.transposedCount++
			} else {
				c.excessiveCount++
				c.incrementInputIndex()
			}
		} else if c.skipping && c.proximityCount == 0 {
			// Skip this letter and continue deeper
			c.skippedCount++
			return c.ProcessSkipChar(ch, isTerminal)
		} else if checkProximityChars &&
			c.inputIndex > 0 &&
			c.states[c.outputIndex].proximityMatching &&
			c.states[c.outputIndex].skipping &&
			c.proximityInfo.MatchedProximityID(c.inputIndex-1, ch, false) == proximity.SameOrAccentedOrCapitalizedChar {
			// Saves cases like contrst --> contrast: "a" is in the
			// proximity set of "s", but treating it as a skipped char
			// scores better than a proximity substitution.
			c.skippedCount++
			c.proximityCount--
			return c.ProcessSkipChar(ch, isTerminal)
		} else {
			return Unrelated
		}
	} else if secondTransposing || matchedProximityCharID == proximity.SameOrAccentedOrCapitalizedChar {
		c.matching = true
	} else if matchedProximityCharID == proximity.NearProximityChar {
		c.proximityMatching = true
		c.proximityCount++
	}

	c.word[c.outputIndex] = ch

	c.lastCharExceeded = c.excessiveCount == 0 && c.skippedCount == 0 &&
		c.proximityCount == 0 && c.transposedCount == 0 &&
		c.excessivePos >= 0 && c.inputIndex == c.inputLength-2
	isSameAsUserTypedLength := c.inputLength == c.inputIndex+1 || c.lastCharExceeded
	if c.lastCharExceeded {
		c.excessiveCount++
	}
	if isSameAsUserTypedLength && isTerminal {
		c.terminalInputIndex = c.inputIndex
		c.terminalOutputIndex = c.outputIndex
		kind = OnTerminal
	}
	// Once the candidate has consumed every tap the rest of the branch is
	// pure completion.
	if isSameAsUserTypedLength {
		c.StartToTraverseAllNodes()
	}

	c.incrementInputIndex()
	c.incrementOutputIndex()

	return kind
}
