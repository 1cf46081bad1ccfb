package proximity

// qwertyNeighbors maps each lowercase key to the keys surrounding it on a
// QWERTY layout. A tap is "near" another character when either key lists
// the other as a neighbor.
var qwertyNeighbors = map[rune]string{
	'q': "was", 'w': "qase", 'e': "wsdr", 'r': "edft", 't': "rfgy",
	'y': "tghu", 'u': "yhji", 'i': "ujko", 'o': "iklp", 'p': "ol",
	'a': "qwsz", 's': "awedxz", 'd': "serfcx", 'f': "drtgvc", 'g': "ftyhbv",
	'h': "gyujnb", 'j': "huikmn", 'k': "jiolm", 'l': "kop",
	'z': "asx", 'x': "zsdc", 'c': "xdfv", 'v': "cfgb", 'b': "vghn",
	'n': "bhjm", 'm': "njk",
}

// spaceAdjacent lists the bottom-row keys bordering the space bar. A tap
// on one of these may have been an attempt at the space itself.
var spaceAdjacent = map[rune]bool{
	'c': true, 'v': true, 'b': true, 'n': true, 'm': true,
}

// Grid is a keyboard geometry: which keys neighbor which. It is immutable
// and shared between sessions.
type Grid struct {
	neighbors map[rune]string
	nearSpace map[rune]bool
}

// QWERTY returns the grid for a standard QWERTY soft keyboard.
func QWERTY() *Grid {
	return &Grid{
		neighbors: qwertyNeighbors,
		nearSpace: spaceAdjacent,
	}
}

// NewGrid builds a grid from a custom neighbor table, for layouts other
// than QWERTY.
func NewGrid(neighbors map[rune]string, nearSpace map[rune]bool) *Grid {
	return &Grid{neighbors: neighbors, nearSpace: nearSpace}
}

// HasNeighbors reports whether the key for c has any adjacent keys.
func (g *Grid) HasNeighbors(c uint16) bool {
	return len(g.neighbors[foldRune(c)]) > 0
}

// AreNear reports whether two characters sit on adjacent keys.
func (g *Grid) AreNear(a, b uint16) bool {
	ra, rb := foldRune(a), foldRune(b)
	if ra == rb {
		return true
	}
	for _, n := range g.neighbors[ra] {
		if n == rb {
			return true
		}
	}
	for _, n := range g.neighbors[rb] {
		if n == ra {
			return true
		}
	}
	return false
}

// IsNearSpace reports whether the key for c borders the space bar.
func (g *Grid) IsNearSpace(c uint16) bool {
	return g.nearSpace[foldRune(c)]
}
