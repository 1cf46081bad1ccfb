package correction

// Params carries the tuning knobs of the ranking policy. Rates are
// per-hundred multipliers: a rate of 80 demotes a frequency to 80%.
// These are policy, not contract; callers usually take DefaultParams
// or load overrides from the [tuning] config section.
type Params struct {
	TypedLetterMultiplier int
	FullWordMultiplier    int
	MinSuggestDepth       int
	MaxWordLength         int

	MissingCharDemotionRate         int
	MissingCharDemotionStartPos10X  int
	TransposedCharsDemotionRate     int
	ExcessiveCharDemotionRate       int
	ExcessiveCharOutOfProximityRate int
	ProximityCharDemotionRate       int
	CorrectionCountDemotionRateBase int
	FullMatchedWordsPromotionRate   int
	JustOneCorrectionPromotionRate  int
	MatchSkipPromotionRate          int
	MissingSpaceCharDemotionRate    int
}

// DefaultParams returns the reference tuning values.
func DefaultParams() Params {
	return Params{
		TypedLetterMultiplier: 2,
		FullWordMultiplier:    2,
		MinSuggestDepth:       1,
		MaxWordLength:         48,

		MissingCharDemotionRate:         80,
		MissingCharDemotionStartPos10X:  12,
		TransposedCharsDemotionRate:     60,
		ExcessiveCharDemotionRate:       75,
		ExcessiveCharOutOfProximityRate: 75,
		ProximityCharDemotionRate:       50,
		CorrectionCountDemotionRateBase: 45,
		FullMatchedWordsPromotionRate:   120,
		JustOneCorrectionPromotionRate:  60,
		MatchSkipPromotionRate:          105,
		MissingSpaceCharDemotionRate:    58,
	}
}
