package dictionary

import (
	"os"
	"path/filepath"
	"testing"
)

func TestChunkRoundTrip(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "dict_0001.bin")

	entries := []WordEntry{
		{Word: "the", Rank: 1},
		{Word: "hello", Rank: 2},
		{Word: "world", Rank: 3},
	}
	if err := WriteChunk(filename, entries); err != nil {
		t.Fatalf("WriteChunk: %v", err)
	}

	loader := NewLoader(dir, 0)
	if err := loader.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	stats := loader.Stats()
	if stats.TotalWords != 3 {
		t.Errorf("TotalWords = %d, want 3", stats.TotalWords)
	}

	// rank 1 must convert to the highest score
	if loader.WordFreq("the") <= loader.WordFreq("hello") {
		t.Errorf("rank 1 should outscore rank 2: %d vs %d",
			loader.WordFreq("the"), loader.WordFreq("hello"))
	}
	if freq, ok := loader.Trie().Lookup("world"); !ok || freq <= 0 {
		t.Errorf("Lookup(world) = (%d, %v)", freq, ok)
	}
}

func TestLoadTextFile(t *testing.T) {
	dir := t.TempDir()
	content := "# comment\nhello 1000\nworld 800\nnofreq\nbroken x\n"
	if err := os.WriteFile(filepath.Join(dir, "words.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(dir, 0)
	if err := loader.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := loader.WordFreq("hello"); got != 1000 {
		t.Errorf("WordFreq(hello) = %d, want 1000", got)
	}
	if got := loader.WordFreq("world"); got != 800 {
		t.Errorf("WordFreq(world) = %d, want 800", got)
	}
	if got := loader.WordFreq("nofreq"); got != 1 {
		t.Errorf("bare words default to frequency 1, got %d", got)
	}
	if got := loader.WordFreq("broken"); got != 0 {
		t.Errorf("malformed lines must be skipped, got %d", got)
	}
}

func TestLoadChunksInIDOrder(t *testing.T) {
	dir := t.TempDir()
	if err := WriteChunk(filepath.Join(dir, "dict_0002.bin"), []WordEntry{{Word: "second", Rank: 10}}); err != nil {
		t.Fatal(err)
	}
	if err := WriteChunk(filepath.Join(dir, "dict_0001.bin"), []WordEntry{{Word: "first", Rank: 1}}); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(dir, 0)
	chunks, err := loader.availableChunks()
	if err != nil {
		t.Fatal(err)
	}
	if len(chunks) != 2 || chunks[0].ChunkID != 1 || chunks[1].ChunkID != 2 {
		t.Errorf("chunks not sorted by ID: %+v", chunks)
	}
}

func TestLoadEmptyDirFails(t *testing.T) {
	loader := NewLoader(t.TempDir(), 0)
	if err := loader.Load(); err == nil {
		t.Error("loading an empty directory should fail")
	}
}

func TestMaxWordsLimit(t *testing.T) {
	dir := t.TempDir()
	entries := []WordEntry{
		{Word: "one", Rank: 1},
		{Word: "two", Rank: 2},
		{Word: "three", Rank: 3},
		{Word: "four", Rank: 4},
	}
	if err := WriteChunk(filepath.Join(dir, "dict_0001.bin"), entries); err != nil {
		t.Fatal(err)
	}

	loader := NewLoader(dir, 2)
	if err := loader.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := loader.Stats().TotalWords; got != 2 {
		t.Errorf("TotalWords = %d, want 2", got)
	}
}

func TestDetectFileFormat(t *testing.T) {
	dir := t.TempDir()
	chunkPath := filepath.Join(dir, "dict_0001.bin")
	if err := WriteChunk(chunkPath, []WordEntry{{Word: "hi", Rank: 1}}); err != nil {
		t.Fatal(err)
	}
	textPath := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(textPath, []byte("hi 10\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if format, err := DetectFileFormat(chunkPath); err != nil || format != FormatChunk {
		t.Errorf("DetectFileFormat(chunk) = (%v, %v)", format, err)
	}
	if format, err := DetectFileFormat(textPath); err != nil || format != FormatText {
		t.Errorf("DetectFileFormat(text) = (%v, %v)", format, err)
	}
}
