package suggest

import (
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/inputkit/keycorrect/internal/utils"
)

// Frequency floors for prefix completions. Short and repetitive prefixes
// match half the dictionary, so they get a higher floor.
const (
	minCompletionFreq      = 20
	shortPrefixMinFreq     = 24
	shortPrefixLengthBound = 2
)

// Completions returns plain prefix completions from the patricia store,
// highest frequency first. These back-fill the suggestion list when the
// correction passes produce fewer than limit candidates.
func (c *Corrector) Completions(prefix string, limit int) []Suggestion {
	lowerPrefix := strings.ToLower(prefix)
	capitals := capitalPositions(prefix)

	minFreqThreshold := minCompletionFreq
	if len(lowerPrefix) <= shortPrefixLengthBound || utils.IsRepetitive(lowerPrefix) {
		minFreqThreshold = shortPrefixMinFreq
	}

	var suggestions []Suggestion
	err := c.loader.Store().VisitSubtree(patricia.Prefix(lowerPrefix), func(p patricia.Prefix, item patricia.Item) error {
		word := string(p)
		if word == lowerPrefix {
			return nil
		}

		freq := 1
		switch v := item.(type) {
		case int:
			freq = v
		case int32:
			freq = int(v)
		case uint32:
			freq = int(v)
		default:
			log.Errorf("Unknown item type: %T for word %s", item, p)
		}

		if freq < minFreqThreshold {
			return nil
		}

		suggestions = append(suggestions, Suggestion{
			Word:      ApplyCapitalization(word, capitals),
			Frequency: freq,
		})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting completion store: %v", err)
		return nil
	}

	sort.Slice(suggestions, func(i, j int) bool {
		return suggestions[i].Frequency > suggestions[j].Frequency
	})
	return capLimit(suggestions, limit)
}

// capitalPositions remembers which positions of the typed word were
// capitalized so suggestions can mirror the pattern.
func capitalPositions(typed string) []bool {
	positions := make([]bool, 0, len(typed))
	for _, r := range typed {
		positions = append(positions, r >= 'A' && r <= 'Z')
	}
	return positions
}

// ApplyCapitalization re-applies the typed capitalization pattern onto a
// suggestion.
func ApplyCapitalization(word string, capitalPositions []bool) string {
	if len(capitalPositions) == 0 {
		return word
	}
	wordRunes := []rune(word)
	for i := 0; i < len(wordRunes) && i < len(capitalPositions); i++ {
		if capitalPositions[i] && wordRunes[i] >= 'a' && wordRunes[i] <= 'z' {
			wordRunes[i] = wordRunes[i] - 'a' + 'A'
		}
	}
	return string(wordRunes)
}
