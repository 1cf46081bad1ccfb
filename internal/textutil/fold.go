// Package textutil holds small text helpers shared by the correction engine
// and the dictionary loaders: base-lowercase folding of UTF-16 code units and
// apostrophe counting.
package textutil

import (
	"sync"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Quote is the plain ASCII apostrophe. Dictionaries carry it inside words
// ("don't"); the engine treats it as freely insertable.
const Quote uint16 = 0x0027

var (
	foldMu    sync.RWMutex
	foldCache = make(map[uint16]uint16, 256)
)

// ToBaseLower folds a UTF-16 code unit to its base lowercase form: the
// character is decomposed (NFD), combining marks are dropped, and the
// remaining base character is lowercased. So 'É' and 'é' both fold to 'e'.
// Code units are folded independently; surrogate halves fold to themselves.
func ToBaseLower(c uint16) uint16 {
	if c < 0x80 {
		if c >= 'A' && c <= 'Z' {
			return c + ('a' - 'A')
		}
		return c
	}
	if c >= 0xD800 && c <= 0xDFFF {
		return c
	}

	foldMu.RLock()
	folded, ok := foldCache[c]
	foldMu.RUnlock()
	if ok {
		return folded
	}

	folded = c
	for _, r := range norm.NFD.String(string(rune(c))) {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		r = unicode.ToLower(r)
		if r <= 0xFFFF {
			folded = uint16(r)
		}
		break
	}

	foldMu.Lock()
	foldCache[c] = folded
	foldMu.Unlock()
	return folded
}

// CountQuotes returns the number of apostrophes in word[:length].
func CountQuotes(word []uint16, length int) int {
	count := 0
	for i := 0; i < length && i < len(word); i++ {
		if word[i] == Quote {
			count++
		}
	}
	return count
}

// Encode converts a string to the UTF-16 code units the engine works on.
// Characters outside the BMP are dropped; soft keyboards do not produce them.
func Encode(s string) []uint16 {
	units := make([]uint16, 0, len(s))
	for _, r := range s {
		if r > 0xFFFF {
			continue
		}
		units = append(units, uint16(r))
	}
	return units
}

// Decode converts engine code units back to a string.
func Decode(units []uint16) string {
	runes := make([]rune, len(units))
	for i, u := range units {
		runes[i] = rune(u)
	}
	return string(runes)
}
