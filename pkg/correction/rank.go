package correction

import (
	"github.com/inputkit/keycorrect/internal/logger"
	"github.com/inputkit/keycorrect/internal/textutil"
)

var corrLog = logger.Default("correction")

// GetFinalFreq converts the state accumulated at the last accepted
// terminal edge plus the dictionary's base frequency into a final score.
// It returns the candidate's code units and the score, or (nil, -1) when
// the candidate is rejected: identical to what was typed, shorter than
// the minimum suggestion depth, or an attempted correction that never
// fired. editDistanceTable is the caller-owned scoring matrix, reused
// across candidates.
func (c *Correction) GetFinalFreq(freq int, editDistanceTable []int) ([]uint16, int) {
	outputIndex := c.terminalOutputIndex
	inputIndex := c.terminalInputIndex
	if c.proximityInfo.SameAsTyped(c.word[:outputIndex+1]) || outputIndex < c.params.MinSuggestDepth {
		return nil, -1
	}
	finalFreq := c.calculateFinalFreq(inputIndex, outputIndex, freq, editDistanceTable)
	if finalFreq < 0 {
		return nil, -1
	}
	return c.word[: outputIndex+1 : outputIndex+1], finalFreq
}

func (c *Correction) calculateFinalFreq(inputIndex, outputIndex, freq int, table []int) int {
	excessivePos := c.excessivePos
	transposedPos := c.transposedPos
	inputLength := c.inputLength
	typedLetterMultiplier := c.params.TypedLetterMultiplier
	skippedCount := c.skippedCount
	proximityMatchedCount := c.proximityCount

	if skippedCount >= inputLength || inputLength == 0 {
		return -1
	}
	// A hinted correction that never fired means the branch only survived
	// by accident; reject rather than score it as a clean match.
	if transposedPos >= 0 && c.transposedCount == 0 {
		return -1
	}
	if excessivePos >= 0 && c.excessiveCount == 0 {
		return -1
	}

	sameLength := inputLength == inputIndex+1
	if c.lastCharExceeded {
		sameLength = inputLength == inputIndex+2
	}

	matchCount := inputLength - proximityMatchedCount
	if excessivePos >= 0 {
		matchCount--
	}
	if matchCount < 0 {
		// Proximity matching is disabled on excessive branches, so this
		// should be unreachable; clamp instead of guessing.
		corrLog.Warnf("negative match count clamped: proximity=%d input=%d", proximityMatchedCount, inputLength)
		matchCount = 0
	}

	word := c.word
	skipped := skippedCount > 0

	quoteDiffCount := textutil.CountQuotes(word, outputIndex+1) -
		textutil.CountQuotes(c.proximityInfo.PrimaryInputWord(), inputLength)
	if quoteDiffCount < 0 {
		quoteDiffCount = 0
	}

	var matchWeight int
	ed := 0
	adjustedProximityMatchedCount := proximityMatchedCount

	if excessivePos < 0 && transposedPos < 0 && (proximityMatchedCount > 0 || skipped) {
		primaryInputWord := c.proximityInfo.PrimaryInputWord()
		ed = editDistance(table, primaryInputWord, inputLength, word, outputIndex+1)
		matchWeight = powCapped(typedLetterMultiplier, outputIndex+1-ed)
		if ed == 1 && inputLength == outputIndex {
			// A candidate one char longer with a single edit is a plain
			// missed letter; promote it.
			matchWeight = mulRate(c.params.JustOneCorrectionPromotionRate, matchWeight)
		}
		ed -= quoteDiffCount
		if ed < 0 {
			ed = 0
		}
		adjusted := ed - (outputIndex + 1 - inputLength)
		if adjusted < 0 {
			adjusted = 0
		}
		if adjusted > proximityMatchedCount {
			adjusted = proximityMatchedCount
		}
		adjustedProximityMatchedCount = adjusted
	} else {
		matchWeight = powCapped(typedLetterMultiplier, matchCount)
	}

	finalFreq := mulCapped(freq, matchWeight)

	// Demotion for a word with a missing character, softened for longer
	// inputs where a miss is more forgivable.
	if skipped {
		demotionRate := c.params.MissingCharDemotionRate *
			(10*inputLength - c.params.MissingCharDemotionStartPos10X) /
			(10*inputLength - c.params.MissingCharDemotionStartPos10X + 10)
		finalFreq = mulRate(demotionRate, finalFreq)
	}

	if transposedPos >= 0 {
		finalFreq = mulRate(c.params.TransposedCharsDemotionRate, finalFreq)
	}

	if excessivePos >= 0 {
		finalFreq = mulRate(c.params.ExcessiveCharDemotionRate, finalFreq)
		if !c.proximityInfo.ExistsAdjacentProximityChars(inputIndex) {
			// The tap at the terminal input index has no keyboard
			// neighbors; demote the deletion harder.
			finalFreq = mulRate(c.params.ExcessiveCharOutOfProximityRate, finalFreq)
		}
	}

	for i := 0; i < adjustedProximityMatchedCount; i++ {
		finalFreq = mulCapped(finalFreq, typedLetterMultiplier)
		finalFreq = mulRate(c.params.ProximityCharDemotionRate, finalFreq)
	}

	errorCount := proximityMatchedCount + skippedCount
	finalFreq = mulRate(100-c.params.CorrectionCountDemotionRateBase*errorCount/inputLength, finalFreq)

	// Full exact match modulo accents and capitalization.
	if matchCount == outputIndex+1 {
		if sameLength && transposedPos < 0 && !skipped && excessivePos < 0 {
			finalFreq = cap255ForFullMatch(finalFreq)
		}
	}

	if proximityMatchedCount == 0 && transposedPos < 0 && !skipped && excessivePos < 0 {
		finalFreq = mulRate(c.params.FullMatchedWordsPromotionRate, finalFreq)
	}

	// When every tap matched and the next output char repeats the last
	// matched one, the word reads as matched-then-skipped rather than
	// matched-then-completed (shel -> shell); promote it slightly so the
	// doubled-letter reading wins.
	if matchCount == inputLength && matchCount >= 2 && !skipped &&
		matchCount < len(word) && word[matchCount] == word[matchCount-1] {
		finalFreq = mulRate(c.params.MatchSkipPromotionRate, finalFreq)
	}

	if sameLength {
		finalFreq = mulCapped(finalFreq, c.params.FullWordMultiplier)
	}

	return finalFreq
}

// GetFreqForSplitTwoWords combines two per-word frequencies into one score
// for a missing-space or space-proximity candidate. Exactly one of the two
// split positions must have been set via SetCorrectionParams. The rates
// deliberately pre-compensate a downstream length normalization: each half
// is demoted by (1 - 1/(len+1)) rather than (1 - 1/len), and the total is
// adjusted by (1 - 1/T^2) and (1 + 1/T) to cancel the normalizer's own
// demotion of the synthetic pair.
func (c *Correction) GetFreqForSplitTwoWords(firstFreq, secondFreq int) int {
	spaceProximityPos := c.spaceProximityPos
	missingSpacePos := c.missingSpacePos
	if spaceProximityPos >= 0 && missingSpacePos >= 0 {
		corrLog.Warnf("conflicting split hints: spaceProximity=%d missingSpace=%d",
			spaceProximityPos, missingSpacePos)
	}
	isSpaceProximity := spaceProximityPos >= 0
	inputLength := c.inputLength

	firstWordLength := missingSpacePos
	secondWordLength := inputLength - missingSpacePos
	if isSpaceProximity {
		firstWordLength = spaceProximityPos
		secondWordLength = inputLength - spaceProximityPos - 1
	}
	typedLetterMultiplier := c.params.TypedLetterMultiplier

	if firstWordLength == 0 || secondWordLength == 0 {
		return 0
	}

	firstDemotionRate := 100 - 100/(firstWordLength+1)
	tempFirstFreq := mulRate(firstDemotionRate, firstFreq)

	secondDemotionRate := 100 - 100/(secondWordLength+1)
	tempSecondFreq := mulRate(secondDemotionRate, secondFreq)

	totalLength := firstWordLength + secondWordLength

	totalFreq := tempFirstFreq + tempSecondFreq

	totalFreq = mulRate(100-100/(totalLength*totalLength), totalFreq)
	totalFreq = mulCapped(totalFreq, powCapped(typedLetterMultiplier, totalLength))
	totalFreq = mulRate(100+100/totalLength, totalFreq)

	if isSpaceProximity {
		totalFreq = mulCapped(totalFreq, typedLetterMultiplier)
		totalFreq = mulRate(c.params.ProximityCharDemotionRate, totalFreq)
	}

	totalFreq = mulRate(c.params.MissingSpaceCharDemotionRate, totalFreq)
	return totalFreq
}
