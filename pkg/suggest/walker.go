package suggest

import (
	"github.com/inputkit/keycorrect/pkg/correction"
	"github.com/inputkit/keycorrect/pkg/dictionary"
)

// walkFrame tracks the walker's position inside one trie node. The
// engine's own frame stack carries the correction state for the same
// depth; the two advance in lockstep.
type walkFrame struct {
	node *dictionary.Node
	next int
}

// runCorrectionPass walks the whole trie once with the given correction
// hints, emitting every accepted terminal candidate. Pass -1 for hints
// not in play.
func (c *Corrector) runCorrectionPass(trie *dictionary.Trie, table []int, skipPos, excessivePos, transposedPos int, emit func(word []uint16, freq int)) {
	eng := c.engine
	root := trie.Root()
	if len(root.Children()) == 0 {
		return
	}
	eng.SetCorrectionParams(skipPos, excessivePos, transposedPos, -1, -1)
	eng.InitCorrectionState(0, len(root.Children()), false)

	stack := make([]walkFrame, 1, 32)
	stack[0] = walkFrame{node: root}
	depth := 0

	for depth >= 0 {
		frame := &stack[depth]
		if !eng.InitProcessState(depth) {
			stack = stack[:depth]
			depth--
			continue
		}
		child := frame.node.Children()[frame.next]
		frame.next++

		kind := eng.ProcessCharAndCalcState(child.Char(), child.IsTerminal())
		if kind == correction.Unrelated {
			continue
		}
		if kind == correction.OnTerminal || kind == correction.TraverseAllOnTerminal {
			if word, freq := eng.GetFinalFreq(child.Freq(), table); freq >= 0 {
				emit(word, freq)
			}
		}
		if len(child.Children()) > 0 && !eng.NeedsToPrune() {
			depth = eng.GoDownTree(depth, len(child.Children()), 0)
			stack = append(stack, walkFrame{node: child})
		}
	}
}
