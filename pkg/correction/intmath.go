package correction

import "math"

// Scores saturate at the signed 32-bit maximum on every platform, so two
// builds never diverge on overflow behavior.
const intMax = math.MaxInt32

// mulCapped returns min(a*b, intMax).
func mulCapped(a, b int) int {
	if a == intMax || b == intMax {
		return intMax
	}
	product := int64(a) * int64(b)
	if product > intMax {
		return intMax
	}
	return int(product)
}

// powCapped returns base**n, saturating. n == 0 yields 1.
func powCapped(base, n int) int {
	if n == 0 {
		return 1
	}
	ret := base
	for i := 1; i < n; i++ {
		ret = mulCapped(ret, base)
	}
	return ret
}

// mulRate scales freq by rate percent. Large frequencies are divided
// before multiplying so the magnitude survives the intermediate product;
// small ones multiply first to keep precision. A saturated freq stays
// saturated.
func mulRate(rate, freq int) int {
	if freq == intMax {
		return intMax
	}
	if freq > 1000000 {
		return mulCapped(freq/100, rate)
	}
	return mulCapped(freq, rate) / 100
}

// cap255ForFullMatch returns min(255*x, intMax). The factor is the
// promotion applied to candidates differing from the input only by
// accents or capitalization.
func cap255ForFullMatch(x int) int {
	return mulCapped(255, x)
}
