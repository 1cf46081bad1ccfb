package suggest

import (
	"testing"

	"github.com/inputkit/keycorrect/pkg/correction"
	"github.com/inputkit/keycorrect/pkg/dictionary"
	"github.com/inputkit/keycorrect/pkg/proximity"
)

func newTestCorrector(words map[string]int) *Corrector {
	loader := dictionary.NewLoader("", 0)
	for word, freq := range words {
		loader.AddWord(word, freq)
	}
	return NewCorrector(loader, proximity.QWERTY(), correction.DefaultParams())
}

func find(suggestions []Suggestion, word string) (Suggestion, bool) {
	for _, s := range suggestions {
		if s.Word == word {
			return s, true
		}
	}
	return Suggestion{}, false
}

func TestProximityCorrection(t *testing.T) {
	corrector := newTestCorrector(map[string]int{
		"cat":  1000,
		"car":  1200,
		"card": 1000,
	})

	suggestions := corrector.Suggest("car", 10)

	if _, ok := find(suggestions, "car"); ok {
		t.Error("the typed word itself must never be suggested")
	}
	cat, ok := find(suggestions, "cat")
	if !ok {
		t.Fatalf("expected 'cat' among suggestions, got %v", suggestions)
	}
	if cat.Frequency != 6800 {
		t.Errorf("'cat' score = %d, want 6800", cat.Frequency)
	}
	if !cat.Corrected {
		t.Error("'cat' should be flagged as a correction")
	}
}

func TestMissingCharacterCorrection(t *testing.T) {
	corrector := newTestCorrector(map[string]int{
		"shell": 1000,
		"shelf": 1000,
	})

	suggestions := corrector.Suggest("shel", 10)

	shell, ok := find(suggestions, "shell")
	if !ok {
		t.Fatalf("expected 'shell' among suggestions, got %v", suggestions)
	}
	shelf, ok := find(suggestions, "shelf")
	if !ok {
		t.Fatalf("expected 'shelf' among suggestions, got %v", suggestions)
	}
	// the doubled 'l' reads as matched-then-skipped and wins
	if shell.Frequency <= shelf.Frequency {
		t.Errorf("'shell' (%d) should outrank 'shelf' (%d)", shell.Frequency, shelf.Frequency)
	}
}

func TestTranspositionCorrection(t *testing.T) {
	corrector := newTestCorrector(map[string]int{"the": 1000})

	suggestions := corrector.Suggest("hte", 10)
	the, ok := find(suggestions, "the")
	if !ok {
		t.Fatalf("expected 'the' among suggestions, got %v", suggestions)
	}
	if the.Frequency != 9600 {
		t.Errorf("'the' score = %d, want 9600", the.Frequency)
	}
}

func TestExcessiveCharacterCorrection(t *testing.T) {
	corrector := newTestCorrector(map[string]int{"word": 1000})

	suggestions := corrector.Suggest("woord", 10)
	if _, ok := find(suggestions, "word"); !ok {
		t.Fatalf("expected 'word' among suggestions, got %v", suggestions)
	}
}

func TestMissingSpaceCorrection(t *testing.T) {
	corrector := newTestCorrector(map[string]int{
		"hello": 1000,
		"world": 1000,
	})

	suggestions := corrector.Suggest("helloworld", 10)
	pair, ok := find(suggestions, "hello world")
	if !ok {
		t.Fatalf("expected 'hello world' among suggestions, got %v", suggestions)
	}
	if pair.Frequency != 1086398 {
		t.Errorf("split score = %d, want 1086398", pair.Frequency)
	}
}

func TestSpaceProximityCorrection(t *testing.T) {
	corrector := newTestCorrector(map[string]int{
		"hello": 1000,
		"world": 1000,
	})

	// 'b' borders the space bar; the halves exclude it
	suggestions := corrector.Suggest("hellobworld", 10)
	if _, ok := find(suggestions, "hello world"); !ok {
		t.Fatalf("expected 'hello world' among suggestions, got %v", suggestions)
	}
}

func TestCompletionThroughCorrection(t *testing.T) {
	corrector := newTestCorrector(map[string]int{
		"cat": 1000,
		"car": 900,
	})

	suggestions := corrector.Suggest("ca", 10)
	if _, ok := find(suggestions, "cat"); !ok {
		t.Errorf("expected completion 'cat', got %v", suggestions)
	}
	if _, ok := find(suggestions, "car"); !ok {
		t.Errorf("expected completion 'car', got %v", suggestions)
	}
}

func TestCapitalizationPreserved(t *testing.T) {
	corrector := newTestCorrector(map[string]int{"the": 1000})

	suggestions := corrector.Suggest("Hte", 10)
	if _, ok := find(suggestions, "The"); !ok {
		t.Errorf("expected capitalized 'The', got %v", suggestions)
	}
}

func TestSuggestionsSortedDescending(t *testing.T) {
	corrector := newTestCorrector(map[string]int{
		"shell": 1000,
		"shelf": 1000,
		"she":   500,
	})

	suggestions := corrector.Suggest("shel", 10)
	for i := 1; i < len(suggestions); i++ {
		if suggestions[i-1].Frequency < suggestions[i].Frequency {
			t.Errorf("suggestions out of order at %d: %v", i, suggestions)
		}
	}
}

func TestLimitIsHonored(t *testing.T) {
	corrector := newTestCorrector(map[string]int{
		"cat": 1000, "car": 900, "can": 800, "cap": 700, "cab": 600,
	})

	suggestions := corrector.Suggest("ca", 2)
	if len(suggestions) > 2 {
		t.Errorf("limit 2 returned %d suggestions", len(suggestions))
	}
}

func TestEmptyAndOversizedInput(t *testing.T) {
	corrector := newTestCorrector(map[string]int{"cat": 1000})

	if got := corrector.Suggest("", 10); got != nil {
		t.Errorf("empty input should yield nil, got %v", got)
	}

	long := make([]byte, 100)
	for i := range long {
		long[i] = 'a'
	}
	if got := corrector.Suggest(string(long), 10); got != nil {
		t.Errorf("oversized input should yield nil, got %v", got)
	}
}

func TestResultCacheRoundTrip(t *testing.T) {
	corrector := newTestCorrector(map[string]int{"the": 1000})

	first := corrector.Suggest("hte", 10)
	second := corrector.Suggest("hte", 10)
	if len(first) != len(second) {
		t.Fatalf("cached result differs: %v vs %v", first, second)
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("cached suggestion %d differs: %v vs %v", i, first[i], second[i])
		}
	}
	if corrector.cache.Stats()["cacheHits"] == 0 {
		t.Error("second call should have hit the cache")
	}
}

func TestCompletions(t *testing.T) {
	corrector := newTestCorrector(map[string]int{
		"prefix":   100,
		"pretty":   900,
		"presence": 500,
		"other":    1000,
	})

	completions := corrector.Completions("pre", 10)
	if len(completions) != 3 {
		t.Fatalf("expected 3 completions, got %v", completions)
	}
	if completions[0].Word != "pretty" {
		t.Errorf("highest frequency first, got %q", completions[0].Word)
	}
	for _, c := range completions {
		if c.Corrected {
			t.Errorf("plain completions are not corrections: %v", c)
		}
	}
}

func TestResultCacheEviction(t *testing.T) {
	cache := NewResultCache(2)
	cache.Put("a", []Suggestion{{Word: "x"}})
	cache.Put("b", []Suggestion{{Word: "y"}})

	// touch "a" so "b" becomes the eviction victim
	cache.Get("a")
	cache.Put("c", []Suggestion{{Word: "z"}})

	if _, ok := cache.Get("b"); ok {
		t.Error("'b' should have been evicted")
	}
	if _, ok := cache.Get("a"); !ok {
		t.Error("'a' should have survived")
	}
	if _, ok := cache.Get("c"); !ok {
		t.Error("'c' should be present")
	}
}
