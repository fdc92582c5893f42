package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"gopkg.in/yaml.v3"
)

// ValidProviderNames lists known provider names per provider kind.
// Used by [Validate] to warn about unrecognised provider names.
var ValidProviderNames = map[string][]string{
	"stt":        {"deepgram", "google", "whisper", "azure"},
	"assessment": {"azure", "speechace"},
}

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader] and
// [Validate].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r, fills in scoring defaults, and
// validates the result. Useful in tests where configs are constructed from
// string literals.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	cfg.Scoring = cfg.Scoring.withDefaults()
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	validateProviderName("stt", cfg.Providers.STT.Name)
	validateProviderName("assessment", cfg.Providers.Assessment.Name)

	if cfg.Providers.Assessment.Name == "" {
		slog.Warn("no assessment provider configured; scores will be derived from recognizer output only")
	}

	s := cfg.Scoring
	if s.CloseThreshold <= 0 || s.CloseThreshold > 1 {
		errs = append(errs, fmt.Errorf("scoring.close_threshold %.2f is out of range (0, 1]", s.CloseThreshold))
	}
	if s.PartialThreshold <= 0 || s.PartialThreshold > 1 {
		errs = append(errs, fmt.Errorf("scoring.partial_threshold %.2f is out of range (0, 1]", s.PartialThreshold))
	}
	if s.PartialThreshold >= s.CloseThreshold {
		errs = append(errs, fmt.Errorf("scoring.partial_threshold %.2f must be below close_threshold %.2f", s.PartialThreshold, s.CloseThreshold))
	}
	if s.BaseDamageRegular < 0 {
		errs = append(errs, fmt.Errorf("scoring.base_damage_regular %.1f is negative", s.BaseDamageRegular))
	}
	if s.BaseDamageSpecial < 0 {
		errs = append(errs, fmt.Errorf("scoring.base_damage_special %.1f is negative", s.BaseDamageSpecial))
	}
	if s.AttackRevealPenalty < 0 || s.AttackRevealPenalty > 1 {
		errs = append(errs, fmt.Errorf("scoring.attack_reveal_penalty %.2f is out of range [0, 1]", s.AttackRevealPenalty))
	}
	if s.DefenseRevealCap < 0 || s.DefenseRevealCap > 1 {
		errs = append(errs, fmt.Errorf("scoring.defense_reveal_cap %.2f is out of range [0, 1]", s.DefenseRevealCap))
	}
	if s.WeakWordThreshold < 0 || s.WeakWordThreshold > 100 {
		errs = append(errs, fmt.Errorf("scoring.weak_word_threshold %.1f is out of range [0, 100]", s.WeakWordThreshold))
	}
	if s.MaxWeakWords < 1 {
		errs = append(errs, fmt.Errorf("scoring.max_weak_words %d must be at least 1", s.MaxWeakWords))
	}

	return errors.Join(errs...)
}

// validateProviderName logs a warning if name is non-empty and not found in
// the [ValidProviderNames] list for the given kind.
func validateProviderName(kind, name string) {
	if name == "" {
		return
	}
	known, ok := ValidProviderNames[kind]
	if !ok {
		return
	}
	if slices.Contains(known, name) {
		return
	}
	slog.Warn("unknown provider name — may be a typo or third-party provider",
		"kind", kind,
		"name", name,
		"known", known,
	)
}
