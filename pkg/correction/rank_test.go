package correction

import (
	"testing"
)

func splitEngine(t *testing.T, typed string) *Correction {
	t.Helper()
	eng, _ := newEngine(t, typed)
	return eng
}

func TestSplitTwoWordsMissingSpace(t *testing.T) {
	eng := splitEngine(t, "helloworld")
	eng.SetCorrectionParams(-1, -1, -1, -1, 5)

	got := eng.GetFreqForSplitTwoWords(1000, 1000)
	if got <= 0 {
		t.Fatalf("split score must be positive, got %d", got)
	}

	// each half demoted by (100 - 100/6), summed, adjusted by
	// (100 - 100/100), 2^10, (100 + 100/10), and the missing-space rate
	want := 1086398
	if got != want {
		t.Errorf("split score = %d, want %d", got, want)
	}

	// bit-stable across calls
	if again := eng.GetFreqForSplitTwoWords(1000, 1000); again != got {
		t.Errorf("split score not deterministic: %d then %d", got, again)
	}
}

func TestSplitTwoWordsSpaceProximity(t *testing.T) {
	eng := splitEngine(t, "hellobworld")
	eng.SetCorrectionParams(-1, -1, -1, 5, -1)

	proximityScore := eng.GetFreqForSplitTwoWords(1000, 1000)
	if proximityScore <= 0 {
		t.Fatalf("space-proximity split must be positive, got %d", proximityScore)
	}

	// bit-stable across calls
	if again := eng.GetFreqForSplitTwoWords(1000, 1000); again != proximityScore {
		t.Errorf("space-proximity score not deterministic: %d then %d", proximityScore, again)
	}
}

func TestSplitTwoWordsZeroLengthHalfRejects(t *testing.T) {
	eng := splitEngine(t, "hello")
	eng.SetCorrectionParams(-1, -1, -1, -1, 0)
	if got := eng.GetFreqForSplitTwoWords(1000, 1000); got != 0 {
		t.Errorf("zero-length first half must score 0, got %d", got)
	}

	// space proximity on the last tap leaves an empty second half
	eng.SetCorrectionParams(-1, -1, -1, 4, -1)
	if got := eng.GetFreqForSplitTwoWords(1000, 1000); got != 0 {
		t.Errorf("zero-length second half must score 0, got %d", got)
	}
}

func TestSplitTwoWordsSaturates(t *testing.T) {
	eng := splitEngine(t, "helloworld")
	eng.SetCorrectionParams(-1, -1, -1, -1, 5)

	got := eng.GetFreqForSplitTwoWords(intMax, intMax)
	if got <= 0 {
		t.Errorf("saturated inputs must stay positive, got %d", got)
	}
	if got > intMax {
		t.Errorf("score exceeded the saturation bound: %d", got)
	}
}

func TestShortCandidateIsRejected(t *testing.T) {
	// a one-character candidate never clears the minimum suggest depth
	eng, _ := newEngine(t, "a")
	eng.SetCorrectionParams(-1, -1, -1, -1, -1)

	kind := driveWord(t, eng, "s")
	if kind != OnTerminal {
		t.Fatalf("expected OnTerminal, got %v", kind)
	}
	if _, freq := eng.GetFinalFreq(1000, newTable(eng)); freq != -1 {
		t.Errorf("single-char candidate must be rejected, got %d", freq)
	}
}

func TestMissingCharacterPromotesDoubledLetter(t *testing.T) {
	// shel -> shell: every tap matches and the candidate's extra 'l'
	// doubles the previous one, so the match-skip promotion applies but
	// the full-word bonus does not
	eng, _ := newEngine(t, "shel")
	eng.SetCorrectionParams(-1, -1, -1, -1, -1)

	kind := driveWord(t, eng, "shell")
	if kind != TraverseAllOnTerminal {
		t.Fatalf("expected TraverseAllOnTerminal, got %v", kind)
	}
	_, withDouble := eng.GetFinalFreq(1000, newTable(eng))
	if withDouble <= 0 {
		t.Fatalf("shell should score positively, got %d", withDouble)
	}

	// same shape without the doubled letter
	eng2, _ := newEngine(t, "shel")
	eng2.SetCorrectionParams(-1, -1, -1, -1, -1)
	kind = driveWord(t, eng2, "shelf")
	if kind != TraverseAllOnTerminal {
		t.Fatalf("expected TraverseAllOnTerminal, got %v", kind)
	}
	_, withoutDouble := eng2.GetFinalFreq(1000, newTable(eng2))
	if withoutDouble <= 0 {
		t.Fatalf("shelf should score positively, got %d", withoutDouble)
	}

	if withDouble <= withoutDouble {
		t.Errorf("doubled letter should outrank plain completion: %d vs %d", withDouble, withoutDouble)
	}
}

func TestAccentOnlyDifferenceGetsFullMatchPromotion(t *testing.T) {
	eng, _ := newEngine(t, "cafe")
	eng.SetCorrectionParams(-1, -1, -1, -1, -1)

	kind := driveWord(t, eng, "café")
	if kind != OnTerminal {
		t.Fatalf("expected OnTerminal, got %v", kind)
	}
	_, freq := eng.GetFinalFreq(1000, newTable(eng))
	if freq <= 0 {
		t.Fatalf("accent-only candidate should score, got %d", freq)
	}

	// base 1000, weight 2^4, cap255 promotion, full-match rate, full word
	// multiplier: a very large score, far beyond any non-exact candidate
	if freq < 1000*16*255 {
		t.Errorf("accent-only match should carry the 255x promotion, got %d", freq)
	}
}
