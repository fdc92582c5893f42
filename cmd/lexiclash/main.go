// Command lexiclash scores pre-recognized spoken attempts from the command
// line. It reads a JSON attempt description, runs the full scoring engine
// (alignment, battle multipliers, coaching feedback), and prints the
// assessment result as JSON.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lexiclash/lexiclash/internal/assess"
	"github.com/lexiclash/lexiclash/internal/assess/align"
	"github.com/lexiclash/lexiclash/internal/assess/battle"
	"github.com/lexiclash/lexiclash/internal/assess/coach"
	"github.com/lexiclash/lexiclash/internal/config"
	"github.com/lexiclash/lexiclash/internal/observe"
	"github.com/lexiclash/lexiclash/pkg/provider/assessment"
	"github.com/lexiclash/lexiclash/pkg/types"
)

const version = "0.1.0"

func main() {
	os.Exit(run())
}

// attemptFile is the JSON shape read from -request.
type attemptFile struct {
	// ReferenceText is the expected phrase. Empty means free-speech mode.
	ReferenceText string `json:"reference_text"`

	// Hypothesis is the recognizer's ordered word sequence.
	Hypothesis []types.WordToken `json:"hypothesis"`

	// Provider optionally carries pronunciation assessment scores captured
	// alongside the recognition.
	Provider *assessment.Result `json:"provider,omitempty"`

	// Context holds the game-state scalars.
	Context types.AssessmentContext `json:"context"`
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "path to the YAML configuration file (optional; defaults apply)")
	requestPath := flag.String("request", "-", "path to the JSON attempt file, or - for stdin")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg := &config.Config{Scoring: config.DefaultScoring()}
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				fmt.Fprintf(os.Stderr, "lexiclash: config file %q not found\n", *configPath)
			} else {
				fmt.Fprintf(os.Stderr, "lexiclash: %v\n", err)
			}
			return 1
		}
		cfg = loaded
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	logger := newLogger(cfg.Server.LogLevel)
	slog.SetDefault(logger)

	// ── Telemetry ─────────────────────────────────────────────────────────────
	telemetry, err := observe.InitProvider("lexiclash", version)
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.Warn("telemetry shutdown error", "err", err)
		}
	}()

	// ── Read the attempt ──────────────────────────────────────────────────────
	attempt, err := readAttempt(*requestPath)
	if err != nil {
		slog.Error("failed to read attempt", "err", err)
		return 1
	}

	// ── Score ─────────────────────────────────────────────────────────────────
	engine := newEngine(cfg.Scoring)
	result, err := engine.Evaluate(assess.Request{
		ReferenceText: attempt.ReferenceText,
		Hypothesis:    attempt.Hypothesis,
		Provider:      attempt.Provider,
		Context:       attempt.Context,
	})
	if err != nil {
		slog.Error("failed to score attempt", "err", err)
		return 1
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		slog.Error("failed to encode result", "err", err)
		return 1
	}
	return 0
}

// newEngine builds a scoring engine tuned from the scoring config.
func newEngine(s config.ScoringConfig) *assess.Engine {
	return assess.New(
		assess.WithAligner(align.New(
			align.WithCloseThreshold(s.CloseThreshold),
			align.WithPartialThreshold(s.PartialThreshold),
		)),
		assess.WithCalculator(battle.New(
			battle.WithBaseDamage(s.BaseDamageRegular, s.BaseDamageSpecial),
			battle.WithRevealPenalties(s.AttackRevealPenalty, s.DefenseRevealCap),
		)),
		assess.WithGenerator(coach.New(
			coach.WithWeakWordThreshold(s.WeakWordThreshold),
			coach.WithMaxWeakWords(s.MaxWeakWords),
		)),
	)
}

// readAttempt decodes the attempt JSON from path, or stdin when path is "-".
func readAttempt(path string) (*attemptFile, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open %q: %w", path, err)
		}
		defer f.Close()
		r = f
	}
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	attempt := &attemptFile{}
	if err := dec.Decode(attempt); err != nil {
		return nil, fmt.Errorf("decode attempt json: %w", err)
	}
	return attempt, nil
}

// ── Logger ─────────────────────────────────────────────────────────────────────

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
