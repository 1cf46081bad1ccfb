package suggest

import (
	"sort"
	"strings"

	"github.com/inputkit/keycorrect/internal/textutil"
	"github.com/inputkit/keycorrect/internal/utils"
	"github.com/inputkit/keycorrect/pkg/correction"
	"github.com/inputkit/keycorrect/pkg/dictionary"
	"github.com/inputkit/keycorrect/pkg/proximity"
)

// Suggestion is one ranked candidate.
type Suggestion struct {
	Word      string
	Frequency int
	Corrected bool `json:",omitempty"`
}

// Corrector owns one correction engine and drives it over the dictionary
// trie for each typed word. It is single-threaded; give each goroutine its
// own Corrector over the shared loader.
type Corrector struct {
	loader *dictionary.Loader
	grid   *proximity.Grid
	engine *correction.Correction
	cache  *ResultCache
}

// NewCorrector wires a corrector over a loaded dictionary.
func NewCorrector(loader *dictionary.Loader, grid *proximity.Grid, params correction.Params) *Corrector {
	return &Corrector{
		loader: loader,
		grid:   grid,
		engine: correction.New(params),
		cache:  NewResultCache(512),
	}
}

// Stats returns statistics about the loaded dictionary.
func (c *Corrector) Stats() map[string]int {
	stats := c.loader.Stats()
	out := map[string]int{
		"totalWords":   stats.TotalWords,
		"maxFrequency": stats.MaxFrequency,
		"loadedFiles":  stats.LoadedFiles,
	}
	for k, v := range c.cache.Stats() {
		out[k] = v
	}
	return out
}

// Suggest evaluates every correction the engine supports for one typed
// word: the unperturbed pass, one pass per skipped/excessive/transposed
// position, and the two-word split candidates. Results are deduplicated,
// the typed word itself is dropped, and the rest come back sorted by
// score descending, capped at limit.
func (c *Corrector) Suggest(typed string, limit int) []Suggestion {
	params := c.engine.Params()
	input := textutil.Encode(typed)
	inputLength := len(input)
	if inputLength == 0 || inputLength > params.MaxWordLength {
		return nil
	}

	if cached, ok := c.cache.Get(typed); ok {
		return capLimit(cached, limit)
	}

	session := proximity.NewSession(c.grid, typed)
	maxDepth := 2 * inputLength
	if maxDepth > params.MaxWordLength-1 {
		maxDepth = params.MaxWordLength - 1
	}
	c.engine.InitCorrection(session, inputLength, maxDepth)

	// The scoring matrix is shared by every candidate of this input.
	table := make([]int, (inputLength+1)*(maxDepth+2))

	capitals := capitalPositions(typed)
	filter := utils.NewSuggestionFilter(typed)
	var results []Suggestion

	emit := func(word []uint16, freq int) {
		decoded := textutil.Decode(word)
		if !filter.ShouldInclude(decoded) {
			return
		}
		results = append(results, Suggestion{
			Word:      ApplyCapitalization(decoded, capitals),
			Frequency: freq,
			Corrected: true,
		})
	}

	trie := c.loader.Trie()
	c.runCorrectionPass(trie, table, -1, -1, -1, emit)
	if inputLength >= 2 {
		for i := 0; i < inputLength; i++ {
			c.runCorrectionPass(trie, table, i, -1, -1, emit)
		}
		for i := 0; i < inputLength; i++ {
			c.runCorrectionPass(trie, table, -1, i, -1, emit)
		}
		for i := 0; i < inputLength-1; i++ {
			c.runCorrectionPass(trie, table, -1, -1, i, emit)
		}
	}

	results = append(results, c.splitCandidates(session, input, filter, capitals)...)

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Frequency > results[j].Frequency
	})

	c.cache.Put(typed, results)
	return capLimit(results, limit)
}

// splitCandidates scores "missing space" pairs (both halves are words) and
// "space proximity" pairs (a tap bordering the space bar stands in for
// the space itself).
func (c *Corrector) splitCandidates(session *proximity.Session, input []uint16, filter *utils.SuggestionFilter, capitals []bool) []Suggestion {
	inputLength := len(input)
	half := func(from, to int) string {
		return strings.ToLower(textutil.Decode(input[from:to]))
	}
	var results []Suggestion

	add := func(first, second string, freq int) {
		candidate := first + " " + second
		if freq <= 0 || !filter.ShouldInclude(candidate) {
			return
		}
		results = append(results, Suggestion{
			Word:      ApplyCapitalization(candidate, capitals),
			Frequency: freq,
			Corrected: true,
		})
	}

	for i := 1; i < inputLength; i++ {
		first := half(0, i)
		second := half(i, inputLength)
		firstFreq, firstOK := c.loader.Trie().Lookup(first)
		secondFreq, secondOK := c.loader.Trie().Lookup(second)
		if firstOK && secondOK {
			c.engine.SetCorrectionParams(-1, -1, -1, -1, i)
			add(first, second, c.engine.GetFreqForSplitTwoWords(firstFreq, secondFreq))
		}

		// The tap at the split position may have been an attempt at the
		// space bar itself; both halves then exclude it.
		if i < inputLength-1 && session.IsSpaceProximity(i) {
			first = half(0, i)
			second = half(i+1, inputLength)
			firstFreq, firstOK = c.loader.Trie().Lookup(first)
			secondFreq, secondOK = c.loader.Trie().Lookup(second)
			if firstOK && secondOK {
				c.engine.SetCorrectionParams(-1, -1, -1, i, -1)
				add(first, second, c.engine.GetFreqForSplitTwoWords(firstFreq, secondFreq))
			}
		}
	}
	return results
}

func capLimit(results []Suggestion, limit int) []Suggestion {
	if limit > 0 && len(results) > limit {
		return results[:limit]
	}
	return results
}
