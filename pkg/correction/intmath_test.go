package correction

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMulCapped(t *testing.T) {
	cases := []struct {
		a, b, want int
	}{
		{0, 5, 0},
		{1, 1, 1},
		{1000, 1000, 1000000},
		{intMax, 1, intMax},
		{intMax, 2, intMax},
		{intMax, intMax, intMax},
		{1 << 20, 1 << 20, intMax},
		{46341, 46341, intMax}, // just past the int32 square root
		{46340, 46340, 46340 * 46340},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, mulCapped(tc.a, tc.b), "mulCapped(%d, %d)", tc.a, tc.b)
	}
}

func TestMulCappedSaturationAbsorbs(t *testing.T) {
	// once saturated, no multiplier brings the value back down
	for _, k := range []int{1, 2, 100, intMax} {
		assert.Equal(t, intMax, mulCapped(intMax, k))
	}
}

func TestPowCapped(t *testing.T) {
	assert.Equal(t, 1, powCapped(2, 0))
	assert.Equal(t, 1, powCapped(intMax, 0))
	assert.Equal(t, 2, powCapped(2, 1))
	assert.Equal(t, 1024, powCapped(2, 10))
	assert.Equal(t, 1<<30, powCapped(2, 30))
	assert.Equal(t, intMax, powCapped(2, 31))
	assert.Equal(t, intMax, powCapped(2, 64))
	assert.Equal(t, 243, powCapped(3, 5))
}

func TestMulRate(t *testing.T) {
	// small values multiply first, then divide
	assert.Equal(t, 499, mulRate(50, 999))
	assert.Equal(t, 840, mulRate(84, 1000))
	assert.Equal(t, 0, mulRate(50, 1))

	// large values divide first so the magnitude survives; 1680 is below
	// the threshold and multiplies first
	assert.Equal(t, 1000000, mulRate(50, 2000000))
	assert.Equal(t, 1663, mulRate(99, 1680))

	// saturation is absorbing
	assert.Equal(t, intMax, mulRate(50, intMax))
	assert.Equal(t, intMax, mulRate(100, intMax))
}

func TestCap255ForFullMatch(t *testing.T) {
	assert.Equal(t, 255, cap255ForFullMatch(1))
	assert.Equal(t, 2550, cap255ForFullMatch(10))
	assert.Equal(t, intMax, cap255ForFullMatch(intMax))
	assert.Equal(t, intMax, cap255ForFullMatch(intMax/2))
}
