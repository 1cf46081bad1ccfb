package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inputkit/keycorrect/pkg/correction"
)

func TestDefaultConfigMatchesReferenceParams(t *testing.T) {
	cfg := DefaultConfig()
	if got, want := cfg.Tuning.Params(), correction.DefaultParams(); got != want {
		t.Errorf("default tuning does not round-trip to the reference params:\n got %+v\nwant %+v", got, want)
	}
}

func TestLoadConfigOverridesTuning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[server]
max_limit = 16

[tuning]
typed_letter_multiplier = 3
proximity_char_demotion_rate = 40
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.MaxLimit != 16 {
		t.Errorf("MaxLimit = %d, want 16", cfg.Server.MaxLimit)
	}
	if cfg.Tuning.TypedLetterMultiplier != 3 {
		t.Errorf("TypedLetterMultiplier = %d, want 3", cfg.Tuning.TypedLetterMultiplier)
	}
	if cfg.Tuning.ProximityCharDemotionRate != 40 {
		t.Errorf("ProximityCharDemotionRate = %d, want 40", cfg.Tuning.ProximityCharDemotionRate)
	}
	// untouched keys keep their defaults
	if cfg.Tuning.FullWordMultiplier != 2 {
		t.Errorf("FullWordMultiplier = %d, want default 2", cfg.Tuning.FullWordMultiplier)
	}
}

func TestInitConfigCreatesDefaultFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := InitConfig(path)
	if err != nil {
		t.Fatalf("InitConfig: %v", err)
	}
	if _, statErr := os.Stat(path); statErr != nil {
		t.Errorf("config file was not created: %v", statErr)
	}
	if cfg.Tuning.TypedLetterMultiplier != 2 {
		t.Errorf("created config should carry defaults, got %+v", cfg.Tuning)
	}

	// loading it back yields the same values
	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig after InitConfig: %v", err)
	}
	if *reloaded != *cfg {
		t.Errorf("reloaded config differs:\n got %+v\nwant %+v", reloaded, cfg)
	}
}

func TestPartialParseOfBrokenFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	// the server section is fine, the trailing garbage breaks full decode
	content := "[server]\nmax_limit = 32\n\n[tuning\nbroken"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig should recover, got %v", err)
	}
	// recovery falls back to defaults when nothing salvageable parses
	if cfg.Tuning.TypedLetterMultiplier != 2 {
		t.Errorf("tuning should keep defaults, got %+v", cfg.Tuning)
	}
}
