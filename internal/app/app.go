// Package app wires the speech providers and the scoring engine into the
// end-to-end attempt-scoring flow.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lexiclash/lexiclash/internal/assess"
	"github.com/lexiclash/lexiclash/internal/observe"
	"github.com/lexiclash/lexiclash/pkg/provider/assessment"
	"github.com/lexiclash/lexiclash/pkg/provider/stt"
	"github.com/lexiclash/lexiclash/pkg/types"
)

// ErrNoAudio is returned by [App.ScoreAttempt] when the request carries no
// audio bytes.
var ErrNoAudio = errors.New("app: attempt carries no audio")

// Option is a functional option for configuring an [App].
type Option func(*App)

// WithEngine replaces the default scoring engine.
func WithEngine(e *assess.Engine) Option {
	return func(a *App) { a.engine = e }
}

// WithMetrics replaces the default metrics instance. Useful in tests to
// isolate instrument state.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithAssessment attaches a pronunciation assessment provider. name labels
// provider metrics. Without it, scores are derived from recognizer output
// alone.
func WithAssessment(name string, p assessment.Provider) Option {
	return func(a *App) {
		a.assessorName = name
		a.assessor = p
	}
}

// App scores spoken attempts end to end: speech recognition, optional
// pronunciation assessment, then the in-process scoring engine. Safe for
// concurrent use.
type App struct {
	engine  *assess.Engine
	metrics *observe.Metrics

	sttName string
	stt     stt.Provider

	assessorName string
	assessor     assessment.Provider
}

// New returns an [App] using the given speech recognizer. name labels
// provider metrics.
func New(name string, recognizer stt.Provider, opts ...Option) *App {
	a := &App{
		engine:  assess.New(),
		metrics: observe.DefaultMetrics(),
		sttName: name,
		stt:     recognizer,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// AttemptRequest carries one spoken attempt to score.
type AttemptRequest struct {
	// Audio is the raw audio of the attempt, in whatever encoding the
	// configured providers accept.
	Audio []byte

	// Language is the BCP-47 tag of the target language (e.g., "th-TH").
	Language string

	// SampleRate is the audio sample rate in Hz. Zero lets providers assume
	// their default.
	SampleRate int

	// ReferenceText is the expected phrase. Empty means free-speech mode.
	ReferenceText string

	// Context holds the game-state scalars.
	Context types.AssessmentContext
}

// ScoreAttempt recognizes the attempt audio, optionally runs pronunciation
// assessment in parallel, and scores the result.
//
// A recognizer failure aborts the attempt. An assessment provider failure is
// degraded service, not an error: the attempt is scored from recognizer
// output alone and the failure is logged and counted.
func (a *App) ScoreAttempt(ctx context.Context, req AttemptRequest) (*types.AssessmentResult, error) {
	if len(req.Audio) == 0 {
		return nil, ErrNoAudio
	}

	ctx, span := observe.StartSpan(ctx, "app.ScoreAttempt")
	defer span.End()
	start := time.Now()

	var (
		transcript types.Transcript
		provided   *assessment.Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		t, err := a.stt.Recognize(gctx, req.Audio, stt.RecognizeConfig{
			Language:      req.Language,
			SampleRate:    req.SampleRate,
			ReferenceText: req.ReferenceText,
		})
		if err != nil {
			a.metrics.RecordProviderRequest(gctx, a.sttName, "stt", "error")
			a.metrics.RecordProviderError(gctx, a.sttName, "stt")
			return fmt.Errorf("app: recognize attempt: %w", err)
		}
		a.metrics.RecordProviderRequest(gctx, a.sttName, "stt", "ok")
		transcript = t
		return nil
	})
	if a.assessor != nil {
		g.Go(func() error {
			res, err := a.assessor.Assess(gctx, req.Audio, req.ReferenceText, assessment.Config{
				Language: req.Language,
			})
			if err != nil {
				a.metrics.RecordProviderRequest(gctx, a.assessorName, "assessment", "error")
				a.metrics.RecordProviderError(gctx, a.assessorName, "assessment")
				observe.Logger(gctx).Warn("assessment provider failed; deriving scores from recognizer output",
					"provider", a.assessorName,
					"error", err,
				)
				return nil
			}
			a.metrics.RecordProviderRequest(gctx, a.assessorName, "assessment", "ok")
			provided = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result, err := a.engine.Evaluate(assess.Request{
		ReferenceText: req.ReferenceText,
		Hypothesis:    transcript.Words,
		Provider:      provided,
		Context:       req.Context,
	})
	if err != nil {
		return nil, fmt.Errorf("app: evaluate attempt: %w", err)
	}

	a.metrics.AssessmentDuration.Record(ctx, time.Since(start).Seconds())
	a.metrics.PronunciationScore.Record(ctx, result.PronunciationScore)
	a.metrics.RecordAssessment(ctx, string(result.Rating), string(req.Context.Interaction))
	for _, c := range result.Comparisons {
		a.metrics.RecordWordComparison(ctx, string(c.MatchType))
	}

	observe.Logger(ctx).Info("attempt scored",
		"rating", result.Rating,
		"pronunciation_score", result.PronunciationScore,
		"attack_damage", result.AttackDamage,
		"defense_multiplier", result.DefenseMultiplier,
		"words", len(result.Comparisons),
	)

	return result, nil
}
