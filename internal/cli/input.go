// Package cli handles cmd line input and suggestions for DBG and testing various features
package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/inputkit/keycorrect/internal/utils"
	"github.com/inputkit/keycorrect/pkg/suggest"
)

// InputHandler processes typed words from stdin and prints ranked
// corrections. It accepts flags controlling word length bounds, the
// suggestion limit, and input filtering.
type InputHandler struct {
	corrector     suggest.Suggester
	minWordLength int
	maxWordLength int
	suggestLimit  int
	noFilter      bool
}

// NewInputHandler handles initialization of the InputHandler with basic parameters
func NewInputHandler(corrector suggest.Suggester, minLength, maxLength, limit int, noFilter bool) *InputHandler {
	return &InputHandler{
		corrector:     corrector,
		minWordLength: minLength,
		maxWordLength: maxLength,
		suggestLimit:  limit,
		noFilter:      noFilter,
	}
}

// Start begins the interface loop.
// It continuously prompts for input, reads a line from stdin,
// and passes the trimmed word to handleInput() for processing.
// Loop terminates if an error occurs while reading from stdin
func (h *InputHandler) Start() error {
	log.Print("keycorrect CLI")
	reader := bufio.NewReader(os.Stdin)
	log.Print("type a word and press Enter to see corrections (Ctrl+C to exit):")

	for {
		log.Print("> ")
		word, err := reader.ReadString('\n')
		if err != nil {
			return err
		}
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		h.handleInput(word)
	}
}

// handleInput runs a single typed word through the corrector and prints
// the ranked candidates with their scores.
func (h *InputHandler) handleInput(word string) {
	if len(word) < h.minWordLength {
		log.Errorf("Word too short: %s", word)
		return
	}
	if len(word) > h.maxWordLength {
		log.Errorf("Word too long: %s", word)
		return
	}

	if !h.noFilter && !utils.IsValidInput(word) {
		log.Infof("No corrections for input: '%s'", word)
		return
	}

	start := time.Now()
	suggestions := h.corrector.Suggest(word, h.suggestLimit)
	if len(suggestions) < h.suggestLimit {
		suggestions = append(suggestions, h.corrector.Completions(word, h.suggestLimit-len(suggestions))...)
	}
	elapsed := time.Since(start)
	log.Debugf("Took [ %v ] for word '%s'", elapsed, word)

	if len(suggestions) == 0 {
		log.Warnf("No suggestions found for word: '%s'", word)
		return
	}

	log.Printf("Found %d suggestions for '%s':", len(suggestions), word)
	for i, s := range suggestions {
		marker := " "
		if s.Corrected {
			marker = "*"
		}
		fmtFreq := utils.FormatWithCommas(s.Frequency)
		clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", s.Word)
		log.Printf("%2d.%s %-40s (score: %12s)", i+1, marker, clWord, fmtFreq)
	}
}
