package correction

import "github.com/inputkit/keycorrect/internal/textutil"

// editDistance fills table with the Damerau-Levenshtein matrix between
// input[:inputLength] and output[:outputLength] and returns the distance.
// Characters are compared after base-lowercase folding, so accents and
// capitalization are free. table is caller-owned and must hold at least
// (inputLength+1)*(outputLength+1) cells; it is reused across candidates
// to keep the scoring path allocation-free.
func editDistance(table []int, input []uint16, inputLength int, output []uint16, outputLength int) int {
	width := outputLength + 1
	for i := 0; i <= inputLength; i++ {
		table[i*width] = i
	}
	for j := 0; j <= outputLength; j++ {
		table[j] = j
	}

	for i := 0; i < inputLength; i++ {
		ci := textutil.ToBaseLower(input[i])
		for j := 0; j < outputLength; j++ {
			co := textutil.ToBaseLower(output[j])
			cost := 1
			if ci == co {
				cost = 0
			}
			v := table[i*width+j+1] + 1
			if ins := table[(i+1)*width+j] + 1; ins < v {
				v = ins
			}
			if sub := table[i*width+j] + cost; sub < v {
				v = sub
			}
			if i >= 1 && j >= 1 &&
				ci == textutil.ToBaseLower(output[j-1]) &&
				co == textutil.ToBaseLower(input[i-1]) {
				if swap := table[(i-1)*width+j-1] + cost; swap < v {
					v = swap
				}
			}
			table[(i+1)*width+j+1] = v
		}
	}
	return table[(inputLength+1)*width-1]
}
