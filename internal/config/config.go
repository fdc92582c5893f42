// Package config provides the configuration schema and loader for the
// lexiclash scoring service.
package config

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure for lexiclash.
// It is typically loaded from a YAML file using [Load] or [LoadFromReader].
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Providers ProvidersConfig `yaml:"providers"`
	Scoring   ScoringConfig   `yaml:"scoring"`
}

// ServerConfig holds process-wide settings.
type ServerConfig struct {
	// LogLevel controls verbosity. Empty defaults to info.
	LogLevel LogLevel `yaml:"log_level"`
}

// ProvidersConfig declares which provider implementation to use for each
// external service.
type ProvidersConfig struct {
	STT        ProviderEntry `yaml:"stt"`
	Assessment ProviderEntry `yaml:"assessment"`
}

// ProviderEntry is the common configuration block shared by all provider
// types.
type ProviderEntry struct {
	// Name selects the provider implementation (e.g., "deepgram", "azure").
	Name string `yaml:"name"`

	// APIKey is the authentication key for the provider's API if any.
	APIKey string `yaml:"api_key"`

	// BaseURL overrides the provider's default API endpoint.
	// Leave empty to use the provider's built-in default.
	BaseURL string `yaml:"base_url"`

	// Language is the BCP-47 language tag sent with every request
	// (e.g., "th-TH").
	Language string `yaml:"language"`

	// Options holds provider-specific configuration values not covered by
	// the standard fields above.
	Options map[string]any `yaml:"options"`
}

// ScoringConfig tunes the alignment thresholds and battle formulas. Zero
// values mean "use the built-in default" — see [DefaultScoring].
type ScoringConfig struct {
	// CloseThreshold is the minimum similarity for a substituted word to be
	// rated close. Default: 0.8.
	CloseThreshold float64 `yaml:"close_threshold"`

	// PartialThreshold is the minimum similarity for a substituted word to
	// be rated partial. Default: 0.5. Must stay below CloseThreshold.
	PartialThreshold float64 `yaml:"partial_threshold"`

	// BaseDamageRegular and BaseDamageSpecial are the pre-multiplier attack
	// damages per item rarity. Defaults: 50 and 60.
	BaseDamageRegular float64 `yaml:"base_damage_regular"`
	BaseDamageSpecial float64 `yaml:"base_damage_special"`

	// AttackRevealPenalty is the flat attack multiplier penalty applied when
	// the answer was revealed. Default: 0.20.
	AttackRevealPenalty float64 `yaml:"attack_reveal_penalty"`

	// DefenseRevealCap bounds how much of the defensive discount a reveal
	// can cancel. Default: 0.20.
	DefenseRevealCap float64 `yaml:"defense_reveal_cap"`

	// WeakWordThreshold is the per-word accuracy below which a word is
	// called out in coaching feedback. Default: 80.
	WeakWordThreshold float64 `yaml:"weak_word_threshold"`

	// MaxWeakWords caps how many words the coaching feedback calls out.
	// Default: 3.
	MaxWeakWords int `yaml:"max_weak_words"`
}

// DefaultScoring returns the built-in scoring tuning.
func DefaultScoring() ScoringConfig {
	return ScoringConfig{
		CloseThreshold:      0.8,
		PartialThreshold:    0.5,
		BaseDamageRegular:   50,
		BaseDamageSpecial:   60,
		AttackRevealPenalty: 0.20,
		DefenseRevealCap:    0.20,
		WeakWordThreshold:   80,
		MaxWeakWords:        3,
	}
}

// withDefaults returns s with every zero field replaced by its default.
func (s ScoringConfig) withDefaults() ScoringConfig {
	def := DefaultScoring()
	if s.CloseThreshold == 0 {
		s.CloseThreshold = def.CloseThreshold
	}
	if s.PartialThreshold == 0 {
		s.PartialThreshold = def.PartialThreshold
	}
	if s.BaseDamageRegular == 0 {
		s.BaseDamageRegular = def.BaseDamageRegular
	}
	if s.BaseDamageSpecial == 0 {
		s.BaseDamageSpecial = def.BaseDamageSpecial
	}
	if s.AttackRevealPenalty == 0 {
		s.AttackRevealPenalty = def.AttackRevealPenalty
	}
	if s.DefenseRevealCap == 0 {
		s.DefenseRevealCap = def.DefenseRevealCap
	}
	if s.WeakWordThreshold == 0 {
		s.WeakWordThreshold = def.WeakWordThreshold
	}
	if s.MaxWeakWords == 0 {
		s.MaxWeakWords = def.MaxWeakWords
	}
	return s
}
