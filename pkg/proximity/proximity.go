// Package proximity classifies candidate characters against the user's
// taps using keyboard geometry. The correction engine consults it on
// every trie edge; all answers are pure functions of the tap index and
// the character for the lifetime of a session.
package proximity

import (
	"github.com/inputkit/keycorrect/internal/textutil"
)

// ID is the three-valued classification of a candidate character against
// one tap.
type ID int

const (
	// UnrelatedChar - the candidate has nothing to do with this tap.
	UnrelatedChar ID = iota
	// NearProximityChar - the candidate sits on a neighboring key.
	NearProximityChar
	// SameOrAccentedOrCapitalizedChar - same base letter, possibly with a
	// different case or accent.
	SameOrAccentedOrCapitalizedChar
)

// Info is what the correction engine needs to know about the typed input.
// Implementations must answer consistently for the whole session and
// tolerate out-of-range indices (classify as unrelated).
type Info interface {
	InputLength() int
	PrimaryCharAt(index int) uint16
	PrimaryInputWord() []uint16
	MatchedProximityID(index int, c uint16, checkProximity bool) ID
	ExistsAdjacentProximityChars(index int) bool
	SameAsTyped(word []uint16) bool
}

// Session binds a grid to one typed input. It implements Info.
type Session struct {
	grid  *Grid
	input []uint16
}

// NewSession starts a proximity session for a typed word.
func NewSession(grid *Grid, typed string) *Session {
	return &Session{
		grid:  grid,
		input: textutil.Encode(typed),
	}
}

// InputLength returns the number of taps.
func (s *Session) InputLength() int { return len(s.input) }

// PrimaryCharAt returns the primary character of tap index, or zero when
// the index is out of range.
func (s *Session) PrimaryCharAt(index int) uint16 {
	if index < 0 || index >= len(s.input) {
		return 0
	}
	return s.input[index]
}

// PrimaryInputWord returns the typed primary characters.
func (s *Session) PrimaryInputWord() []uint16 { return s.input }

// MatchedProximityID classifies c against tap index. With checkProximity
// false only the same-or-accented and unrelated answers are possible.
func (s *Session) MatchedProximityID(index int, c uint16, checkProximity bool) ID {
	primary := s.PrimaryCharAt(index)
	if primary == 0 {
		return UnrelatedChar
	}
	if textutil.ToBaseLower(primary) == textutil.ToBaseLower(c) {
		return SameOrAccentedOrCapitalizedChar
	}
	if checkProximity && s.grid.AreNear(primary, c) {
		return NearProximityChar
	}
	return UnrelatedChar
}

// ExistsAdjacentProximityChars reports whether tap index has any near
// neighbor on the keyboard.
func (s *Session) ExistsAdjacentProximityChars(index int) bool {
	if index < 0 || index >= len(s.input) {
		return false
	}
	return s.grid.HasNeighbors(s.input[index])
}

// SameAsTyped reports whether the candidate is exactly what was typed,
// code unit for code unit.
func (s *Session) SameAsTyped(word []uint16) bool {
	if len(word) != len(s.input) {
		return false
	}
	for i, c := range word {
		if c != s.input[i] {
			return false
		}
	}
	return true
}

// IsSpaceProximity reports whether tap index may have been an attempt at
// the space bar. The suggestion layer uses it to seed space-proximity
// split candidates.
func (s *Session) IsSpaceProximity(index int) bool {
	if index < 0 || index >= len(s.input) {
		return false
	}
	return s.grid.IsNearSpace(s.input[index])
}

func foldRune(c uint16) rune {
	return rune(textutil.ToBaseLower(c))
}
