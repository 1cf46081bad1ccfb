/*
Package dictionary loads word/frequency data and exposes it two ways: a
character-level trie the correction engine walks edge by edge, and a
patricia-backed completion store for plain prefix lookups. Both views are
filled from the same files: chunked binary dictionaries (dict_0001.bin,
dict_0002.bin, ...) or plain text word lists.
*/
package dictionary

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/edsrzf/mmap-go"
	"github.com/tchap/go-patricia/v2/patricia"
)

// maxEntryWordLength guards against corrupt files claiming absurd word
// lengths; real dictionary words never get close.
const maxEntryWordLength = 64

// Loader reads dictionary files from a directory into memory.
type Loader struct {
	dirPath  string
	maxWords int

	trie      *Trie
	store     *patricia.Trie
	wordFreqs map[string]int

	totalWords   int
	maxFrequency int
	loadedFiles  []string
}

// LoaderStats provides statistics about the loaded dictionary
type LoaderStats struct {
	TotalWords   int
	MaxFrequency int
	LoadedFiles  int
}

// ChunkInfo contains metadata about a chunk file
type ChunkInfo struct {
	ChunkID   int
	Filename  string
	WordCount int
}

// NewLoader creates a loader for a directory. maxWords of zero means no
// limit.
func NewLoader(dirPath string, maxWords int) *Loader {
	return &Loader{
		dirPath:   dirPath,
		maxWords:  maxWords,
		trie:      NewTrie(),
		store:     patricia.NewTrie(),
		wordFreqs: make(map[string]int),
	}
}

// Trie returns the correction trie.
func (l *Loader) Trie() *Trie { return l.trie }

// Store returns the patricia completion store. Items are int frequencies.
func (l *Loader) Store() *patricia.Trie { return l.store }

// WordFreq returns the frequency of an exact word, or zero.
func (l *Loader) WordFreq(word string) int {
	return l.wordFreqs[strings.ToLower(word)]
}

// Stats returns loading statistics.
func (l *Loader) Stats() LoaderStats {
	return LoaderStats{
		TotalWords:   l.totalWords,
		MaxFrequency: l.maxFrequency,
		LoadedFiles:  len(l.loadedFiles),
	}
}

// AddWord inserts a single word into both views.
func (l *Loader) AddWord(word string, freq int) {
	word = strings.ToLower(strings.TrimSpace(word))
	if word == "" || freq <= 0 {
		return
	}
	if existing, ok := l.wordFreqs[word]; ok && existing >= freq {
		return
	}
	if _, ok := l.wordFreqs[word]; !ok {
		l.totalWords++
	}
	l.wordFreqs[word] = freq
	l.trie.Insert(word, freq)
	l.store.Insert(patricia.Prefix(word), freq)
	if freq > l.maxFrequency {
		l.maxFrequency = freq
	}
}

// Load reads every dictionary file in the directory: binary chunks in ID
// order first, then text lists.
func (l *Loader) Load() error {
	chunks, err := l.availableChunks()
	if err != nil {
		return err
	}

	loaded := 0
	for _, chunk := range chunks {
		if l.maxWords > 0 && l.totalWords >= l.maxWords {
			log.Debugf("Word limit %d reached, skipping remaining chunks", l.maxWords)
			break
		}
		count, err := l.loadChunk(chunk.Filename)
		if err != nil {
			log.Errorf("Failed to load chunk %s: %v", chunk.Filename, err)
			continue
		}
		l.loadedFiles = append(l.loadedFiles, chunk.Filename)
		loaded += count
	}

	textFiles, err := filepath.Glob(filepath.Join(l.dirPath, "*.txt"))
	if err == nil {
		for _, filename := range textFiles {
			if l.maxWords > 0 && l.totalWords >= l.maxWords {
				break
			}
			count, err := l.loadTextFile(filename)
			if err != nil {
				log.Errorf("Failed to load word list %s: %v", filename, err)
				continue
			}
			l.loadedFiles = append(l.loadedFiles, filename)
			loaded += count
		}
	}

	if len(l.loadedFiles) == 0 {
		return fmt.Errorf("no dictionary files found in %s", l.dirPath)
	}
	log.Debugf("Loaded %d entries from %d files", loaded, len(l.loadedFiles))
	return nil
}

// availableChunks scans the directory for chunk files sorted by ID.
func (l *Loader) availableChunks() ([]ChunkInfo, error) {
	pattern := filepath.Join(l.dirPath, "dict_*.bin")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan for chunk files: %w", err)
	}

	var chunks []ChunkInfo
	for _, file := range files {
		basename := filepath.Base(file)
		idStr := strings.TrimSuffix(strings.TrimPrefix(basename, "dict_"), ".bin")
		chunkID, err := strconv.Atoi(idStr)
		if err != nil {
			continue
		}
		chunks = append(chunks, ChunkInfo{ChunkID: chunkID, Filename: file})
	}

	sort.Slice(chunks, func(i, j int) bool {
		return chunks[i].ChunkID < chunks[j].ChunkID
	})
	return chunks, nil
}

// loadChunk maps a binary chunk read-only and parses its entries. The
// format is a little-endian int32 entry count followed by
// [uint16 word length][word bytes][uint16 rank] records; rank 1 is the
// most frequent word.
func (l *Loader) loadChunk(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open chunk file %s: %w", filename, err)
	}
	defer file.Close()

	data, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		return 0, fmt.Errorf("failed to map chunk file %s: %w", filename, err)
	}
	defer data.Unmap()

	if len(data) < 4 {
		return 0, fmt.Errorf("chunk file %s is truncated", filename)
	}
	totalEntries := int(int32(binary.LittleEndian.Uint32(data[:4])))
	if totalEntries < 0 {
		return 0, fmt.Errorf("invalid entry count %d in %s", totalEntries, filename)
	}

	offset := 4
	count := 0
	for count < totalEntries {
		if offset+2 > len(data) {
			break
		}
		wordLen := int(binary.LittleEndian.Uint16(data[offset : offset+2]))
		offset += 2
		if wordLen == 0 || wordLen > maxEntryWordLength || offset+wordLen+2 > len(data) {
			return count, fmt.Errorf("corrupt entry at offset %d in %s", offset, filename)
		}
		word := string(data[offset : offset+wordLen])
		offset += wordLen
		rank := binary.LittleEndian.Uint16(data[offset : offset+2])
		offset += 2

		// rank 1 becomes the highest score
		score := int(65536 - uint32(rank))
		l.AddWord(word, score)
		count++

		if l.maxWords > 0 && l.totalWords >= l.maxWords {
			break
		}
	}

	log.Debugf("Chunk %s loaded: %d words", filename, count)
	return count, nil
}

// loadTextFile reads "word frequency" lines. Lines with no frequency get
// frequency one; malformed lines are skipped.
func (l *Loader) loadTextFile(filename string) (int, error) {
	file, err := os.Open(filename)
	if err != nil {
		return 0, fmt.Errorf("failed to open word list %s: %w", filename, err)
	}
	defer file.Close()

	count := 0
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		freq := 1
		if len(fields) > 1 {
			parsed, err := strconv.Atoi(fields[1])
			if err != nil {
				continue
			}
			freq = parsed
		}
		l.AddWord(fields[0], freq)
		count++

		if l.maxWords > 0 && l.totalWords >= l.maxWords {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return count, fmt.Errorf("failed to read word list %s: %w", filename, err)
	}
	return count, nil
}
