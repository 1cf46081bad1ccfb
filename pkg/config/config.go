/*
Package config manages TOML config for keycorrect services.
*/
package config

import (
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/inputkit/keycorrect/internal/utils"
	"github.com/inputkit/keycorrect/pkg/correction"
)

// Config holds the entire config structure
type Config struct {
	Server ServerConfig `toml:"server"`
	Dict   DictConfig   `toml:"dict"`
	Tuning TuningConfig `toml:"tuning"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit     int  `toml:"max_limit"`
	MinWordLen   int  `toml:"min_word_len"`
	MaxWordLen   int  `toml:"max_word_len"`
	EnableFilter bool `toml:"enable_filter"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	MaxWords int `toml:"max_words"`
}

// TuningConfig exposes the ranking policy's rates. The defaults are the
// reference values; change them only with a scoring corpus at hand.
type TuningConfig struct {
	TypedLetterMultiplier int `toml:"typed_letter_multiplier"`
	FullWordMultiplier    int `toml:"full_word_multiplier"`
	MinSuggestDepth       int `toml:"min_suggest_depth"`
	MaxWordLength         int `toml:"max_word_length"`

	MissingCharDemotionRate         int `toml:"missing_char_demotion_rate"`
	MissingCharDemotionStartPos10X  int `toml:"missing_char_demotion_start_pos_10x"`
	TransposedCharsDemotionRate     int `toml:"transposed_chars_demotion_rate"`
	ExcessiveCharDemotionRate       int `toml:"excessive_char_demotion_rate"`
	ExcessiveCharOutOfProximityRate int `toml:"excessive_char_out_of_proximity_rate"`
	ProximityCharDemotionRate       int `toml:"proximity_char_demotion_rate"`
	CorrectionCountDemotionRateBase int `toml:"correction_count_demotion_rate_base"`
	FullMatchedWordsPromotionRate   int `toml:"full_matched_words_promotion_rate"`
	JustOneCorrectionPromotionRate  int `toml:"just_one_correction_promotion_rate"`
	MatchSkipPromotionRate          int `toml:"match_skip_promotion_rate"`
	MissingSpaceCharDemotionRate    int `toml:"missing_space_char_demotion_rate"`
}

// Params converts the tuning section into engine parameters.
func (t TuningConfig) Params() correction.Params {
	return correction.Params{
		TypedLetterMultiplier: t.TypedLetterMultiplier,
		FullWordMultiplier:    t.FullWordMultiplier,
		MinSuggestDepth:       t.MinSuggestDepth,
		MaxWordLength:         t.MaxWordLength,

		MissingCharDemotionRate:         t.MissingCharDemotionRate,
		MissingCharDemotionStartPos10X:  t.MissingCharDemotionStartPos10X,
		TransposedCharsDemotionRate:     t.TransposedCharsDemotionRate,
		ExcessiveCharDemotionRate:       t.ExcessiveCharDemotionRate,
		ExcessiveCharOutOfProximityRate: t.ExcessiveCharOutOfProximityRate,
		ProximityCharDemotionRate:       t.ProximityCharDemotionRate,
		CorrectionCountDemotionRateBase: t.CorrectionCountDemotionRateBase,
		FullMatchedWordsPromotionRate:   t.FullMatchedWordsPromotionRate,
		JustOneCorrectionPromotionRate:  t.JustOneCorrectionPromotionRate,
		MatchSkipPromotionRate:          t.MatchSkipPromotionRate,
		MissingSpaceCharDemotionRate:    t.MissingSpaceCharDemotionRate,
	}
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	params := correction.DefaultParams()
	return &Config{
		Server: ServerConfig{
			MaxLimit:     64,
			MinWordLen:   1,
			MaxWordLen:   params.MaxWordLength,
			EnableFilter: true,
		},
		Dict: DictConfig{
			MaxWords: 50000,
		},
		Tuning: TuningConfig{
			TypedLetterMultiplier: params.TypedLetterMultiplier,
			FullWordMultiplier:    params.FullWordMultiplier,
			MinSuggestDepth:       params.MinSuggestDepth,
			MaxWordLength:         params.MaxWordLength,

			MissingCharDemotionRate:         params.MissingCharDemotionRate,
			MissingCharDemotionStartPos10X:  params.MissingCharDemotionStartPos10X,
			TransposedCharsDemotionRate:     params.TransposedCharsDemotionRate,
			ExcessiveCharDemotionRate:       params.ExcessiveCharDemotionRate,
			ExcessiveCharOutOfProximityRate: params.ExcessiveCharOutOfProximityRate,
			ProximityCharDemotionRate:       params.ProximityCharDemotionRate,
			CorrectionCountDemotionRateBase: params.CorrectionCountDemotionRateBase,
			FullMatchedWordsPromotionRate:   params.FullMatchedWordsPromotionRate,
			JustOneCorrectionPromotionRate:  params.JustOneCorrectionPromotionRate,
			MatchSkipPromotionRate:          params.MatchSkipPromotionRate,
			MissingSpaceCharDemotionRate:    params.MissingSpaceCharDemotionRate,
		},
	}
}

// InitConfig loads config from file or creates default if missing.
// Path resolution is the caller's job (utils.PathResolver).
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages the known keys of a file that is valid TOML but
// does not decode into Config (a value of the wrong type, say). The file
// is decoded whole, so a TOML syntax error anywhere salvages nothing and
// every value keeps its default.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		if val, ok := utils.ExtractInt64(dictSection, "max_words"); ok {
			config.Dict.MaxWords = val
		}
	}
	if tuningSection, ok := utils.ExtractSection(tempConfig, "tuning"); ok {
		extractTuningConfig(tuningSection, &config.Tuning)
	}
	return config, nil
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "min_word_len"); ok {
		server.MinWordLen = val
	}
	if val, ok := utils.ExtractInt64(data, "max_word_len"); ok {
		server.MaxWordLen = val
	}
	if val, ok := utils.ExtractBool(data, "enable_filter"); ok {
		server.EnableFilter = val
	}
}

// extractTuningConfig extracts the tuning rates from a map
func extractTuningConfig(data map[string]any, tuning *TuningConfig) {
	keys := map[string]*int{
		"typed_letter_multiplier":              &tuning.TypedLetterMultiplier,
		"full_word_multiplier":                 &tuning.FullWordMultiplier,
		"min_suggest_depth":                    &tuning.MinSuggestDepth,
		"max_word_length":                      &tuning.MaxWordLength,
		"missing_char_demotion_rate":           &tuning.MissingCharDemotionRate,
		"missing_char_demotion_start_pos_10x":  &tuning.MissingCharDemotionStartPos10X,
		"transposed_chars_demotion_rate":       &tuning.TransposedCharsDemotionRate,
		"excessive_char_demotion_rate":         &tuning.ExcessiveCharDemotionRate,
		"excessive_char_out_of_proximity_rate": &tuning.ExcessiveCharOutOfProximityRate,
		"proximity_char_demotion_rate":         &tuning.ProximityCharDemotionRate,
		"correction_count_demotion_rate_base":  &tuning.CorrectionCountDemotionRateBase,
		"full_matched_words_promotion_rate":    &tuning.FullMatchedWordsPromotionRate,
		"just_one_correction_promotion_rate":   &tuning.JustOneCorrectionPromotionRate,
		"match_skip_promotion_rate":            &tuning.MatchSkipPromotionRate,
		"missing_space_char_demotion_rate":     &tuning.MissingSpaceCharDemotionRate,
	}
	for key, dst := range keys {
		if val, ok := utils.ExtractInt64(data, key); ok {
			*dst = val
		}
	}
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}
